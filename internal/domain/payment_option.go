package domain

import "time"

// PaymentOption admin-managed payment method entry (payment_options table)
type PaymentOption struct {
	ID          string    `db:"id" json:"_id"`
	Type        string    `db:"type" json:"type"` // mpesa, paypal, flutterwave, other
	Label       string    `db:"label" json:"label"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// IsValidPaymentOptionType reports whether t is a known option type.
func IsValidPaymentOptionType(t string) bool {
	switch t {
	case "mpesa", "paypal", "flutterwave", "other":
		return true
	}
	return false
}
