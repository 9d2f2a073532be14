package domain

import "time"

// Donation a ledger row (donations table). DonorID is optional and unchecked.
type Donation struct {
	ID           string    `db:"id" json:"_id"`
	DonorID      string    `db:"donor_id" json:"donorid,omitempty"`
	Amount       float64   `db:"amount" json:"amount"`
	Currency     string    `db:"currency" json:"currency"`
	DonationType string    `db:"donation_type" json:"donationType"`
	Message      string    `db:"message" json:"message,omitempty"`
	Date         time.Time `db:"date" json:"date"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// DonationType ledger classification
type DonationType string

const (
	DonationGeneral        DonationType = "general"
	DonationRecurring      DonationType = "recurring"
	DonationWeekly         DonationType = "weekly"
	DonationOneTime        DonationType = "onetime"
	DonationSpecialProject DonationType = "specialproject"
)

// IsValid reports whether t is a known donation type.
func (t DonationType) IsValid() bool {
	switch t {
	case DonationGeneral, DonationRecurring, DonationWeekly, DonationOneTime, DonationSpecialProject:
		return true
	}
	return false
}

// CurrencyTotal donation sum for one currency
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
