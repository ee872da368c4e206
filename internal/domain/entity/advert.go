package entity

import "time"

// Advert is a listing published by a vendor.
type Advert struct {
	ID          string
	Title       string
	Description string
	Category    string
	Price       float64
	Flyer       string // URL of the hosted flyer image.
	OwnerID     string // Creator's user ID; set once and never reassigned.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether userID owns the advert.
func (a *Advert) IsOwnedBy(userID string) bool {
	return a != nil && userID != "" && a.OwnerID == userID
}
