package event

// OrderCreated is the payload published by the order service when a checkout
// completes. Only UserID drives cart behavior; the remaining fields are
// carried for logging. UserID is a pointer so that an absent user reference
// is distinguishable from a zero value.
type OrderCreated struct {
	OrderID     int64              `json:"orderId"`
	UserID      *int64             `json:"userId"`
	TotalAmount float64            `json:"totalAmount"`
	Items       []OrderCreatedItem `json:"items"`
}

type OrderCreatedItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
