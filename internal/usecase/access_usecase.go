package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// AccessUsecase decides whether an authenticated identity may use a resource.
type AccessUsecase interface {
	// Authorize loads the user and checks its stored role against allowed.
	// Unknown users, unknown stored roles and roles outside allowed all yield ErrForbidden.
	Authorize(ctx context.Context, userID string, allowed ...entity.Role) error
}
