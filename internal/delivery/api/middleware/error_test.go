package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/delivery/api/response"
	deliverycontext "marketplace/internal/delivery/context"
	domainerrors "marketplace/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/adverts", nil), rec)
	deliverycontext.SetRequestID(c, "req-1")

	NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestHandleHTTPError_AppErrorKeepsClientDetails(t *testing.T) {
	rec, body := handleError(t, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("title: is required"), "bind"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "title: is required", body.Error.Details)
	assert.Equal(t, "req-1", body.Meta.RequestID)
}

func TestHandleHTTPError_HidesDetailsOnServerErrors(t *testing.T) {
	rec, body := handleError(t, domainerrors.NewDatabaseExecuteError(errors.New("pq: boom"), "failed to insert advert"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", body.Error.Code)
	assert.Nil(t, body.Error.Details)
}

func TestHandleHTTPError_EchoError(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_TOO_LARGE", body.Error.Code)
}

func TestHandleHTTPError_UnknownErrorIsOpaque(t *testing.T) {
	rec, body := handleError(t, errors.New("secret connection string leaked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}
