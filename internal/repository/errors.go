package repository

import "errors"

var (
	ErrUpdateFailed     = errors.New("update failed")
	ErrDeleteFailed     = errors.New("delete failed")
	ErrConnectionFailed = errors.New("cache connection failed")
	ErrQueryFailed      = errors.New("cache query failed")
)
