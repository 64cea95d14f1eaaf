package model

import "time"

// Charity is a verified donation partner curated by an administrator.
type Charity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Lat       *float64  `json:"lat"`
	Lon       *float64  `json:"lon"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate types.
const (
	CandidateVerified  = "Verified Partner"
	CandidateNonProfit = "Non-Profit"
)

// CharityCandidate is a donation destination offered to the user, either a
// verified partner from the local store or a facility discovered through an
// external geodata lookup.
type CharityCandidate struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// Candidate converts a verified charity into a candidate entry.
func (c *Charity) Candidate() CharityCandidate {
	return CharityCandidate{
		Name:    c.Name,
		Type:    CandidateVerified,
		Address: c.Address,
		Lat:     c.Lat,
		Lon:     c.Lon,
	}
}
