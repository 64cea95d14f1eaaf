package model

import "time"

// DonationRecord is an immutable historical record of a donation. It
// snapshots the item's name and category because the item itself is removed
// from the wardrobe when donated.
type DonationRecord struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ItemName    string    `json:"item_name"`
	Category    string    `json:"category"`
	CharityName string    `json:"charity_name"`
	ImpactScore int       `json:"impact_score"`
	DonatedAt   time.Time `json:"donated_at"`
}

// Impact scores and placeholders for donation logging.
const (
	ImpactItemDonation    = 15
	ImpactGenericDonation = 10

	GenericDonationName     = "General Clothing Bundle"
	GenericDonationCategory = "Mixed"
	DefaultCharityName      = "Local Community Center"
)
