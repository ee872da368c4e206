package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/service"
	mockSvc "marketplace/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authorizeFunc func(ctx context.Context, userID string, allowed ...entity.Role) error

func (f authorizeFunc) Authorize(ctx context.Context, userID string, allowed ...entity.Role) error {
	return f(ctx, userID, allowed...)
}

type authFixtures struct {
	echo         *echo.Echo
	tokenService *mockSvc.MockTokenService
	metrics      *mockSvc.MockMetricsRecorder
}

func createTestAuthMiddleware(t *testing.T, access authorizeFunc) authFixtures {
	tokenService := mockSvc.NewMockTokenService(t)
	metrics := mockSvc.NewMockMetricsRecorder(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := NewAuthMiddleware(AuthMiddlewareParams{
		TokenService: tokenService,
		Access:       access,
		Metrics:      metrics,
		Logger:       logger,
	})

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError
	e.GET("/me", func(c echo.Context) error {
		userID, _ := deliverycontext.GetUserID(c)

		return c.String(http.StatusOK, userID+"|"+deliverycontext.GetUserIDFromContext(c.Request().Context()))
	}, m.Authenticate)
	e.GET("/vendor", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, m.Authenticate, m.RequireRole(entity.RoleVendor))

	return authFixtures{echo: e, tokenService: tokenService, metrics: metrics}
}

func serve(e *echo.Echo, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error.Code, body.Error.Message
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	code, _ := errorBody(t, rec)

	return code
}

func claimsFor(subject string) *service.Claims {
	return &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}
}

func TestAuthenticate_StoresSubject(t *testing.T) {
	fx := createTestAuthMiddleware(t, nil)
	fx.tokenService.EXPECT().VerifyToken("good").Return(claimsFor("user-1"), nil)

	rec := serve(fx.echo, "/me", "Bearer good")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1|user-1", rec.Body.String())
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		verifyErr     error
		wantReason    string
	}{
		{name: "missing header", wantReason: ReasonMissingHeader},
		{name: "basic scheme", authorization: "Basic dXNlcjpwYXNz", wantReason: ReasonNotBearer},
		{name: "bearer without token", authorization: "Bearer ", wantReason: ReasonNotBearer},
		{name: "expired", authorization: "Bearer t", verifyErr: service.ErrTokenExpired, wantReason: ReasonTokenExpired},
		{name: "bad signature", authorization: "Bearer t", verifyErr: service.ErrTokenSignatureInvalid, wantReason: ReasonTokenSignature},
		{name: "malformed", authorization: "Bearer t", verifyErr: service.ErrTokenMalformed, wantReason: ReasonTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthMiddleware(t, nil)
			if tt.verifyErr != nil {
				fx.tokenService.EXPECT().VerifyToken("t").Return(nil, tt.verifyErr)
			}
			fx.metrics.EXPECT().RecordAuthFailure(tt.wantReason).Return()

			rec := serve(fx.echo, "/me", tt.authorization)

			code, message := errorBody(t, rec)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHENTICATED", code)
			assert.Equal(t, domainerrors.ErrUnauthenticated.Message(), message)
			assert.NotContains(t, rec.Body.String(), "details")
		})
	}
}

func TestAuthenticate_AcceptsLowercaseScheme(t *testing.T) {
	fx := createTestAuthMiddleware(t, nil)
	fx.tokenService.EXPECT().VerifyToken("good").Return(claimsFor("user-1"), nil)

	rec := serve(fx.echo, "/me", "bearer good")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Allows(t *testing.T) {
	var gotUser string
	var gotRoles []entity.Role
	fx := createTestAuthMiddleware(t, func(_ context.Context, userID string, allowed ...entity.Role) error {
		gotUser = userID
		gotRoles = allowed

		return nil
	})
	fx.tokenService.EXPECT().VerifyToken("good").Return(claimsFor("user-1"), nil)

	rec := serve(fx.echo, "/vendor", "Bearer good")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, []entity.Role{entity.RoleVendor}, gotRoles)
}

func TestRequireRole_Forbidden(t *testing.T) {
	fx := createTestAuthMiddleware(t, func(context.Context, string, ...entity.Role) error {
		return domainerrors.ErrForbidden
	})
	fx.tokenService.EXPECT().VerifyToken("good").Return(claimsFor("user-1"), nil)
	fx.metrics.EXPECT().RecordAuthFailure(ReasonForbidden).Return()

	rec := serve(fx.echo, "/vendor", "Bearer good")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
}

func TestRequireRole_StoreFailureIsInternal(t *testing.T) {
	fx := createTestAuthMiddleware(t, func(context.Context, string, ...entity.Role) error {
		return errors.New("connection refused")
	})
	fx.tokenService.EXPECT().VerifyToken("good").Return(claimsFor("user-1"), nil)

	rec := serve(fx.echo, "/vendor", "Bearer good")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	metrics := mockSvc.NewMockMetricsRecorder(t)
	m := NewAuthMiddleware(AuthMiddlewareParams{
		Metrics: metrics,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	metrics.EXPECT().RecordAuthFailure(ReasonMissingHeader).Return()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := m.RequireRole(entity.RoleVendor)(func(echo.Context) error { return nil })(c)

	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}
