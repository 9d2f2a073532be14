package domain

import "time"

// Cart a donor's pending items, held for the process lifetime
type Cart struct {
	ID        string     `json:"_id"`
	DonorID   string     `json:"donorId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CartItem one line in a cart
type CartItem struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// Total sums quantity*amount over all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += float64(it.Quantity) * it.Amount
	}
	return total
}
