package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// Page selects a window of a result list. A zero Limit means the configured default.
type Page struct {
	Limit int
	Skip  int
}

// AdvertInput holds the caller-supplied fields of an advert.
// A nil Flyer asks for a generated image.
type AdvertInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Flyer       []byte
}

// CreateAdvertInput defines the data required to publish an advert.
type CreateAdvertInput struct {
	OwnerID string
	AdvertInput
}

// ReplaceAdvertInput defines the data required to overwrite an owned advert.
type ReplaceAdvertInput struct {
	ID      string
	OwnerID string
	AdvertInput
}

// ListAdvertsInput defines a public advert search.
type ListAdvertsInput struct {
	Query string
	Page
}

// AdvertUsecase defines the advert resource operations.
type AdvertUsecase interface {
	Create(ctx context.Context, input CreateAdvertInput) (*entity.Advert, error)
	List(ctx context.Context, input ListAdvertsInput) ([]*entity.Advert, error)
	Get(ctx context.Context, id string) (*entity.Advert, error)
	Similar(ctx context.Context, id string, page Page) ([]*entity.Advert, error)
	Replace(ctx context.Context, input ReplaceAdvertInput) (*entity.Advert, error)
	Delete(ctx context.Context, id, ownerID string) error
	ListMine(ctx context.Context, ownerID string, page Page) ([]*entity.Advert, error)
}
