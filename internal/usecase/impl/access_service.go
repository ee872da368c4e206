package impl

import (
	"context"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type accessService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// AccessServiceParams holds dependencies for AccessService, injected by Fx.
type AccessServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewAccessService creates the authorization use case.
func NewAccessService(params AccessServiceParams) usecase.AccessUsecase {
	return &accessService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *accessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authorize reads the role from the store on every call; a role change takes
// effect on the caller's next request without issuing a new token.
func (srv *accessService) Authorize(ctx context.Context, userID string, allowed ...entity.Role) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Authorization for unknown user", slog.String("userID", userID))

		return domainerrors.ErrForbidden
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user for authorization")
	}

	if !user.Role.IsValid() {
		srv.log(ctx).Error("Stored user role is not recognised", slog.String("userID", userID), slog.String("role", user.Role.String()))

		return domainerrors.ErrForbidden
	}

	if !entity.Roles(allowed).Contains(user.Role) {
		srv.log(ctx).Warn("Role not allowed",
			slog.String("userID", userID),
			slog.String("role", user.Role.String()),
			slog.Any("allowed", entity.Roles(allowed).ToStrings()),
		)

		return domainerrors.ErrForbidden
	}

	return nil
}
