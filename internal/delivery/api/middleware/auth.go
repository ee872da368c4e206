package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Authentication failure reasons recorded in logs and metrics. Clients only ever see UNAUTHENTICATED.
const (
	ReasonMissingHeader  = "missing_header"
	ReasonNotBearer      = "not_bearer"
	ReasonTokenMalformed = "token_malformed"
	ReasonTokenSignature = "token_signature"
	ReasonTokenExpired   = "token_expired"
	ReasonTokenRejected  = "token_rejected"
	ReasonForbidden      = "forbidden"
)

const bearerScheme = "Bearer"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Access       usecase.AccessUsecase
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	access   usecase.AccessUsecase
	metrics  service.MetricsRecorder
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		access:   params.Access,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}
}

// Authenticate validates the bearer access token and stores its subject as the caller's user ID.
// It never touches the credential store.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.reject(c, ReasonMissingHeader, nil)
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || !strings.EqualFold(scheme, bearerScheme) || tokenString == "" {
			return m.reject(c, ReasonNotBearer, nil)
		}

		claims, err := m.tokenSvc.VerifyToken(tokenString)
		if err != nil {
			return m.reject(c, tokenFailureReason(err), err)
		}

		deliverycontext.SetUserID(c, claims.Subject)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's stored role against roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := deliverycontext.GetUserID(c)
			if !ok {
				return m.reject(c, ReasonMissingHeader, nil)
			}

			if err := m.access.Authorize(c.Request().Context(), userID, roles...); err != nil {
				if errors.Is(err, domainerrors.ErrForbidden) {
					m.metrics.RecordAuthFailure(ReasonForbidden)
				}

				return err
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) reject(c echo.Context, reason string, cause error) error {
	m.metrics.RecordAuthFailure(reason)

	attrs := []any{slog.String("reason", reason), slog.String("path", c.Request().URL.Path)}
	if cause != nil {
		attrs = append(attrs, slog.Any("error", cause))
	}
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Warn("Authentication failed", attrs...)

	return domainerrors.ErrUnauthenticated
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return ReasonTokenExpired
	case errors.Is(err, service.ErrTokenSignatureInvalid):
		return ReasonTokenSignature
	case errors.Is(err, service.ErrTokenMalformed):
		return ReasonTokenMalformed
	default:
		return ReasonTokenRejected
	}
}
