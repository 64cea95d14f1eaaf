package model

import "time"

// ClothingItem represents a single garment in a user's wardrobe.
type ClothingItem struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Color      string    `json:"color,omitempty"`
	Season     string    `json:"season,omitempty"`
	Occasion   string    `json:"occasion,omitempty"`
	ImageMime  string    `json:"image_mime,omitempty"`
	TimesWorn  int       `json:"times_worn"`
	CelebTwin  string    `json:"celeb_twin,omitempty"`
	StylingTip string    `json:"styling_tip,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Well-known categories. The column is free-form (AI classification may
// produce values like "Vintage Denim Jacket"), but outfit assembly keys on
// these four.
const (
	CategoryTop       = "Top"
	CategoryBottom    = "Bottom"
	CategoryShoes     = "Shoes"
	CategoryOuterwear = "Outerwear"
)

// CO2PerWearKg is the estimated CO2 saved per wear of an existing garment
// instead of a new purchase, used for the wardrobe impact counter.
const CO2PerWearKg = 0.5
