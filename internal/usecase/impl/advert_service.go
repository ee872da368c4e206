package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"marketplace/config"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type advertService struct {
	advertRepo repository.AdvertRepository
	blobStore  service.BlobStore
	generator  service.ImageGenerator
	publisher  service.EventPublisher
	metrics    service.MetricsRecorder
	cfg        *config.AdvertsConfig
	now        func() time.Time
	logger     *slog.Logger
}

// AdvertServiceParams holds dependencies for AdvertService, injected by Fx.
type AdvertServiceParams struct {
	fx.In

	AdvertRepo repository.AdvertRepository
	BlobStore  service.BlobStore
	Generator  service.ImageGenerator
	Publisher  service.EventPublisher
	Metrics    service.MetricsRecorder
	Config     *config.Config
	Logger     *slog.Logger
}

// NewAdvertService creates the advert resource use case.
func NewAdvertService(params AdvertServiceParams) usecase.AdvertUsecase {
	cfg := &config.AdvertsConfig{}
	if params.Config != nil && params.Config.Adverts != nil {
		cfg = params.Config.Adverts
	}

	return &advertService{
		advertRepo: params.AdvertRepo,
		blobStore:  params.BlobStore,
		generator:  params.Generator,
		publisher:  params.Publisher,
		metrics:    params.Metrics,
		cfg:        cfg,
		now:        time.Now,
		logger:     params.Logger,
	}
}

func (srv *advertService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create publishes a new advert for input.OwnerID. Titles are unique per owner
// at creation time only; two concurrent requests may still both pass the check.
func (srv *advertService) Create(ctx context.Context, input usecase.CreateAdvertInput) (*entity.Advert, error) {
	count, err := srv.advertRepo.CountByOwnerAndTitle(ctx, input.OwnerID, input.Title)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for duplicate advert title")
	}
	if count > 0 {
		srv.log(ctx).Warn("Duplicate advert title", slog.String("ownerID", input.OwnerID), slog.String("title", input.Title))

		return nil, domainerrors.ErrAdvertAlreadyExists
	}

	flyerURL, err := srv.resolveFlyer(ctx, &input.AdvertInput)
	if err != nil {
		return nil, err
	}

	advert := &entity.Advert{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Flyer:       flyerURL,
		OwnerID:     input.OwnerID,
	}
	if err := srv.advertRepo.Create(ctx, advert); err != nil {
		srv.log(ctx).Error("Failed to create advert", slog.String("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create advert")
	}

	srv.log(ctx).Info("Advert created", slog.String("advertID", advert.ID), slog.String("ownerID", advert.OwnerID))
	srv.publish(ctx, service.AdvertCreated, advert)

	return advert, nil
}

// List returns adverts whose title, description or category contain the query.
func (srv *advertService) List(ctx context.Context, input usecase.ListAdvertsInput) ([]*entity.Advert, error) {
	limit, skip, err := srv.window(input.Page, srv.cfg.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	filter := repository.AdvertFilter{Limit: limit, Skip: skip}
	if query := strings.TrimSpace(input.Query); query != "" {
		filter.Match = repository.MatchAll(query)
	}

	adverts, err := srv.advertRepo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search adverts")
	}

	return adverts, nil
}

// Get returns a single advert.
func (srv *advertService) Get(ctx context.Context, id string) (*entity.Advert, error) {
	return srv.load(ctx, id)
}

// Similar lists other adverts sharing text with the reference advert's fields.
func (srv *advertService) Similar(ctx context.Context, id string, page usecase.Page) ([]*entity.Advert, error) {
	limit, skip, err := srv.window(page, srv.cfg.DefaultSimilarPageSize)
	if err != nil {
		return nil, err
	}

	reference, err := srv.load(ctx, id)
	if err != nil {
		return nil, err
	}

	adverts, err := srv.advertRepo.Search(ctx, repository.AdvertFilter{
		Match: &repository.AdvertMatch{
			Title:       reference.Title,
			Description: reference.Description,
			Category:    reference.Category,
		},
		ExcludeID: reference.ID,
		Limit:     limit,
		Skip:      skip,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search similar adverts")
	}

	return adverts, nil
}

// Replace overwrites every mutable field of an advert owned by input.OwnerID.
// A foreign advert is reported as not found before any flyer work happens.
func (srv *advertService) Replace(ctx context.Context, input usecase.ReplaceAdvertInput) (*entity.Advert, error) {
	existing, err := srv.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(input.OwnerID) {
		srv.log(ctx).Warn("Replace on a foreign advert", slog.String("advertID", input.ID), slog.String("callerID", input.OwnerID))

		return nil, domainerrors.ErrAdvertNotFound
	}

	flyerURL, err := srv.resolveFlyer(ctx, &input.AdvertInput)
	if err != nil {
		return nil, err
	}

	advert := &entity.Advert{
		ID:          existing.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Flyer:       flyerURL,
		OwnerID:     existing.OwnerID,
		CreatedAt:   existing.CreatedAt,
	}
	if err := srv.advertRepo.ReplaceOwned(ctx, advert); err != nil {
		return nil, srv.translate(err, "failed to replace advert")
	}

	srv.log(ctx).Info("Advert replaced", slog.String("advertID", advert.ID))
	srv.publish(ctx, service.AdvertReplaced, advert)

	return advert, nil
}

// Delete removes an advert owned by ownerID.
func (srv *advertService) Delete(ctx context.Context, id, ownerID string) error {
	if err := srv.advertRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrAdvertNotFound) {
			srv.log(ctx).Warn("Delete matched no owned advert", slog.String("advertID", id), slog.String("callerID", ownerID))
		}

		return srv.translate(err, "failed to delete advert")
	}

	srv.log(ctx).Info("Advert deleted", slog.String("advertID", id))
	srv.publish(ctx, service.AdvertDeleted, &entity.Advert{ID: id, OwnerID: ownerID})

	return nil
}

// ListMine lists the caller's adverts. A zero limit returns all of them unless a maximum page size is configured.
func (srv *advertService) ListMine(ctx context.Context, ownerID string, page usecase.Page) ([]*entity.Advert, error) {
	limit, skip, err := srv.window(page, 0)
	if err != nil {
		return nil, err
	}

	adverts, err := srv.advertRepo.Search(ctx, repository.AdvertFilter{OwnerID: ownerID, Limit: limit, Skip: skip})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owned adverts")
	}

	return adverts, nil
}

func (srv *advertService) load(ctx context.Context, id string) (*entity.Advert, error) {
	advert, err := srv.advertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.translate(err, "failed to find advert")
	}

	return advert, nil
}

// resolveFlyer uploads the supplied flyer, or a generated one when none is given, and returns its URL.
func (srv *advertService) resolveFlyer(ctx context.Context, input *usecase.AdvertInput) (string, error) {
	data := input.Flyer
	source := service.FlyerSourceUploaded

	if len(data) == 0 {
		generated, err := srv.generate(ctx, input.Title)
		if err != nil {
			return "", err
		}
		data = generated
		source = service.FlyerSourceGenerated
	}

	contentType := mimetype.Detect(data).String()
	if !strings.HasPrefix(contentType, "image/") {
		srv.log(ctx).Warn("Flyer is not an image", slog.String("contentType", contentType), slog.String("source", source))
		if source == service.FlyerSourceGenerated {
			return "", domainerrors.ErrImageGenerationFailed.WithDetails("generator returned " + contentType)
		}

		return "", domainerrors.ErrInvalidFlyer.WithDetails("detected " + contentType)
	}

	uploadCtx, cancel := withOptionalTimeout(ctx, srv.cfg.UploadTimeout)
	defer cancel()

	url, err := srv.blobStore.Upload(uploadCtx, data, contentType)
	if err != nil {
		srv.log(ctx).Error("Failed to upload flyer", slog.String("source", source), slog.Any("error", err))

		return "", fmt.Errorf("%w: %w", domainerrors.ErrFlyerUploadFailed, err)
	}

	srv.metrics.RecordFlyer(source)

	return url, nil
}

func (srv *advertService) generate(ctx context.Context, prompt string) ([]byte, error) {
	genCtx, cancel := withOptionalTimeout(ctx, srv.cfg.GenerationTimeout)
	defer cancel()

	start := srv.now()
	data, err := srv.generator.Generate(genCtx, prompt)
	if err != nil {
		srv.log(ctx).Error("Flyer generation failed", slog.String("prompt", prompt), slog.Any("error", err))

		return nil, fmt.Errorf("%w: %w", domainerrors.ErrImageGenerationFailed, err)
	}
	if len(data) == 0 {
		return nil, domainerrors.ErrImageGenerationFailed.WithDetails("generator returned no image")
	}

	srv.log(ctx).Debug("Flyer generated", slog.Int("bytes", len(data)), slog.Duration("elapsed", srv.now().Sub(start)))

	return data, nil
}

// window validates a page and applies the default and maximum page sizes.
func (srv *advertService) window(page usecase.Page, defaultLimit int) (int, int, error) {
	if page.Limit < 0 || page.Skip < 0 {
		return 0, 0, domainerrors.ErrInvalidPagination
	}

	limit := page.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if srv.cfg.MaxPageSize > 0 && (limit == 0 || limit > srv.cfg.MaxPageSize) {
		limit = srv.cfg.MaxPageSize
	}

	return limit, page.Skip, nil
}

// translate maps repository sentinels onto the application error catalogue.
func (srv *advertService) translate(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return domainerrors.ErrInvalidAdvertID
	case errors.Is(err, repository.ErrAdvertNotFound):
		return domainerrors.ErrAdvertNotFound
	default:
		return errors.Wrap(err, message)
	}
}

// publish emits an advert event. Delivery failures are logged and never fail the request.
func (srv *advertService) publish(ctx context.Context, eventType service.AdvertEventType, advert *entity.Advert) {
	event := &service.AdvertEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		AdvertID:   advert.ID,
		OwnerID:    advert.OwnerID,
		Title:      advert.Title,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishAdvertEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish advert event",
			slog.String("type", string(eventType)),
			slog.String("advertID", advert.ID),
			slog.Any("error", err),
		)
	}
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
