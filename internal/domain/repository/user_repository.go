// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"
)

var (
	// ErrUserNotFound is a domain-specific error returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidID is returned when an identifier is not in the store's ID format.
	ErrInvalidID = errors.New("invalid identifier")
)

// UserRepository is the credential store. Users are created once and read afterwards;
// there is no update or delete.
type UserRepository interface {
	// Create persists a new user and fills in its store-assigned ID and CreatedAt.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	// A malformed ID is reported as ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// CountByEmail returns how many users are registered with the email address.
	CountByEmail(ctx context.Context, email string) (int64, error)
}
