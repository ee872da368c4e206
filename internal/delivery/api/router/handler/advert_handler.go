package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/delivery/api/response"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const flyerFormField = "flyer"

// AdvertHandlerParams holds dependencies for AdvertHandler, injected by Fx.
type AdvertHandlerParams struct {
	fx.In

	AdvertUC usecase.AdvertUsecase
	Logger   *slog.Logger
}

// AdvertHandler holds dependencies for advert-related handlers
type AdvertHandler struct {
	advertUC usecase.AdvertUsecase
	logger   *slog.Logger
}

// NewAdvertHandler is the constructor for AdvertHandler
func NewAdvertHandler(params AdvertHandlerParams) *AdvertHandler {
	return &AdvertHandler{
		advertUC: params.AdvertUC,
		logger:   params.Logger,
	}
}

// AdvertRequest is the body of create and replace requests, sent as JSON or
// as a (multipart) form. A multipart body may carry the flyer image in the "flyer" file field.
type AdvertRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,max=200"`
	Description string  `json:"description" form:"description" validate:"required,max=5000"`
	Category    string  `json:"category" form:"category" validate:"required,max=100"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
}

// AdvertResponse is the public view of an advert.
type AdvertResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Flyer       string    `json:"flyer"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newAdvertResponse(advert *entity.Advert) *AdvertResponse {
	return &AdvertResponse{
		ID:          advert.ID,
		Title:       advert.Title,
		Description: advert.Description,
		Category:    advert.Category,
		Price:       advert.Price,
		Flyer:       advert.Flyer,
		OwnerID:     advert.OwnerID,
		CreatedAt:   advert.CreatedAt,
		UpdatedAt:   advert.UpdatedAt,
	}
}

func newAdvertResponses(adverts []*entity.Advert) []*AdvertResponse {
	out := make([]*AdvertResponse, 0, len(adverts))
	for _, advert := range adverts {
		out = append(out, newAdvertResponse(advert))
	}

	return out
}

// Create handles publishing a new advert for the authenticated vendor.
func (h *AdvertHandler) Create(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	input, err := h.bindAdvertInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	advert, err := h.advertUC.Create(c.Request().Context(), usecase.CreateAdvertInput{
		OwnerID:     ownerID,
		AdvertInput: *input,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAdvertResponse(advert))
}

// List handles the public advert search.
func (h *AdvertHandler) List(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	adverts, err := h.advertUC.List(c.Request().Context(), usecase.ListAdvertsInput{
		Query: c.QueryParam("query"),
		Page:  page,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdvertResponses(adverts))
}

// Get handles retrieving a single advert.
func (h *AdvertHandler) Get(c echo.Context) error {
	advert, err := h.advertUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdvertResponse(advert))
}

// Similar handles listing adverts similar to the one in the path.
func (h *AdvertHandler) Similar(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	adverts, err := h.advertUC.Similar(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdvertResponses(adverts))
}

// Replace handles overwriting an advert owned by the caller.
func (h *AdvertHandler) Replace(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	input, err := h.bindAdvertInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	advert, err := h.advertUC.Replace(c.Request().Context(), usecase.ReplaceAdvertInput{
		ID:          c.Param("id"),
		OwnerID:     ownerID,
		AdvertInput: *input,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdvertResponse(advert))
}

// Delete handles removing an advert owned by the caller.
func (h *AdvertHandler) Delete(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	if err := h.advertUC.Delete(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Advert deleted successfully"})
}

// ListMine handles listing the caller's own adverts.
func (h *AdvertHandler) ListMine(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	adverts, err := h.advertUC.ListMine(c.Request().Context(), ownerID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAdvertResponses(adverts))
}

func (h *AdvertHandler) bindAdvertInput(c echo.Context) (*usecase.AdvertInput, error) {
	var req AdvertRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("malformed advert body")
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	flyer, err := readFlyer(c)
	if err != nil {
		return nil, err
	}

	return &usecase.AdvertInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Flyer:       flyer,
	}, nil
}

// readFlyer returns the uploaded flyer bytes, or nil when the request carries no flyer file.
func readFlyer(c echo.Context) ([]byte, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}

	fileHeader, err := c.FormFile(flyerFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.ErrInvalidFlyer.WithDetails("unreadable flyer upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded flyer")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded flyer")
	}
	if len(data) == 0 {
		return nil, domainerrors.ErrInvalidFlyer.WithDetails("flyer file is empty")
	}

	return data, nil
}

func bindPage(c echo.Context) (usecase.Page, error) {
	var page usecase.Page
	if err := echo.QueryParamsBinder(c).
		Int("limit", &page.Limit).
		Int("skip", &page.Skip).
		BindError(); err != nil {
		return usecase.Page{}, domainerrors.ErrInvalidPagination
	}
	if page.Limit < 0 || page.Skip < 0 {
		return usecase.Page{}, domainerrors.ErrInvalidPagination
	}

	return page, nil
}
