package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"
)

// ErrAdvertNotFound is returned when no advert matches the ID (and owner, for owner-scoped calls).
var ErrAdvertNotFound = errors.New("advert not found")

// AdvertMatch holds case-insensitive substrings tested against an advert's fields.
// An advert matches when any of the three fields contains its pattern; an empty
// pattern matches every value of that field.
type AdvertMatch struct {
	Title       string
	Description string
	Category    string
}

// MatchAll builds an AdvertMatch that applies the same text to every field.
func MatchAll(text string) *AdvertMatch {
	return &AdvertMatch{Title: text, Description: text, Category: text}
}

// AdvertFilter narrows an advert search. Zero values disable the corresponding constraint.
type AdvertFilter struct {
	Match     *AdvertMatch
	OwnerID   string
	ExcludeID string
	Limit     int
	Skip      int
}

// AdvertRepository is the advert collection. Owner-scoped methods filter on both
// ID and owner so that they never touch another vendor's advert.
type AdvertRepository interface {
	// Create persists a new advert and fills in its store-assigned ID and timestamps.
	Create(ctx context.Context, advert *entity.Advert) error

	// FindByID returns ErrInvalidID for malformed IDs and ErrAdvertNotFound when nothing matches.
	FindByID(ctx context.Context, id string) (*entity.Advert, error)

	// Search lists adverts matching the filter, in insertion order.
	Search(ctx context.Context, filter AdvertFilter) ([]*entity.Advert, error)

	// CountByOwnerAndTitle counts the owner's adverts with exactly this title.
	CountByOwnerAndTitle(ctx context.Context, ownerID, title string) (int64, error)

	// ReplaceOwned overwrites every mutable field of the advert identified by
	// advert.ID and advert.OwnerID. A zero match yields ErrAdvertNotFound.
	ReplaceOwned(ctx context.Context, advert *entity.Advert) error

	// DeleteOwned removes the advert with the ID owned by ownerID. A zero match yields ErrAdvertNotFound.
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
