package entity

import "errors"

type CartItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func NewCartItem(productID int64, quantity int, price float64) (*CartItem, error) {
	if productID <= 0 {
		return nil, errors.New("product ID must be positive for cart item")
	}
	if quantity <= 0 {
		return nil, errors.New("cart item quantity must be positive")
	}
	return &CartItem{ProductID: productID, Quantity: quantity, Price: price}, nil
}

type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID: userID,
		Items:  make([]CartItem, 0),
	}
}

func (c *Cart) GetItem(productID int64) (*CartItem, int) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

// AddItem merges by productID: quantities accumulate, the incoming price
// replaces the stored one.
func (c *Cart) AddItem(productID int64, quantity int, price float64) error {
	newItem, err := NewCartItem(productID, quantity, price)
	if err != nil {
		return err
	}

	item, _ := c.GetItem(productID)
	if item != nil {
		item.Quantity += quantity
		item.Price = price
	} else {
		c.Items = append(c.Items, *newItem)
	}
	return nil
}

// RemoveItem drops every line with the given productID. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
