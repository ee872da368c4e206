package impl

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	mockRepo "marketplace/internal/mocks/repository"
	mockSvc "marketplace/internal/mocks/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngFlyer = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type advertServiceFixtures struct {
	service    usecase.AdvertUsecase
	advertRepo *mockRepo.MockAdvertRepository
	blobStore  *mockSvc.MockBlobStore
	generator  *mockSvc.MockImageGenerator
	publisher  *mockSvc.MockEventPublisher
	metrics    *mockSvc.MockMetricsRecorder
}

func createTestAdvertService(t *testing.T) advertServiceFixtures {
	return createTestAdvertServiceWithMax(t, 0)
}

func createTestAdvertServiceWithMax(t *testing.T, maxPageSize int) advertServiceFixtures {
	advertRepo := mockRepo.NewMockAdvertRepository(t)
	blobStore := mockSvc.NewMockBlobStore(t)
	generator := mockSvc.NewMockImageGenerator(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	metrics := mockSvc.NewMockMetricsRecorder(t)

	cfg := newTestConfig()
	cfg.Adverts.MaxPageSize = maxPageSize

	srv := NewAdvertService(AdvertServiceParams{
		AdvertRepo: advertRepo,
		BlobStore:  blobStore,
		Generator:  generator,
		Publisher:  publisher,
		Metrics:    metrics,
		Config:     cfg,
		Logger:     newDiscardLogger(),
	})

	return advertServiceFixtures{
		service:    srv,
		advertRepo: advertRepo,
		blobStore:  blobStore,
		generator:  generator,
		publisher:  publisher,
		metrics:    metrics,
	}
}

func eventOfType(eventType service.AdvertEventType) any {
	return mock.MatchedBy(func(event *service.AdvertEvent) bool { return event.Type == eventType })
}

func createInput(flyer []byte) usecase.CreateAdvertInput {
	return usecase.CreateAdvertInput{
		OwnerID: "owner-1",
		AdvertInput: usecase.AdvertInput{
			Title:       "Bike",
			Description: "Red road bike",
			Category:    "Sport",
			Price:       120,
			Flyer:       flyer,
		},
	}
}

func TestAdvertService_Create_WithUploadedFlyer(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(0, nil)
	fx.blobStore.EXPECT().Upload(mock.Anything, pngFlyer, "image/png").Return("https://cdn/flyers/a.png", nil)
	fx.metrics.EXPECT().RecordFlyer(service.FlyerSourceUploaded).Return()
	fx.advertRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Advert")).
		Run(func(_ context.Context, advert *entity.Advert) { advert.ID = "advert-1" }).
		Return(nil)
	fx.publisher.EXPECT().
		PublishAdvertEvent(ctx, mock.MatchedBy(func(event *service.AdvertEvent) bool {
			return event.Type == service.AdvertCreated && event.AdvertID == "advert-1" && event.OwnerID == "owner-1"
		})).
		Return(nil)

	advert, err := fx.service.Create(ctx, createInput(pngFlyer))

	require.NoError(t, err)
	assert.Equal(t, "advert-1", advert.ID)
	assert.Equal(t, "owner-1", advert.OwnerID)
	assert.Equal(t, "https://cdn/flyers/a.png", advert.Flyer)
	assert.Equal(t, 120.0, advert.Price)
	fx.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAdvertService_Create_GeneratesFlyerFromTitle(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(0, nil)
	fx.generator.EXPECT().
		Generate(mock.Anything, "Bike").
		Run(func(genCtx context.Context, _ string) {
			_, ok := genCtx.Deadline()
			assert.True(t, ok, "generation must run under a deadline")
		}).
		Return(pngFlyer, nil)
	fx.blobStore.EXPECT().Upload(mock.Anything, pngFlyer, "image/png").Return("/flyers/b.png", nil)
	fx.metrics.EXPECT().RecordFlyer(service.FlyerSourceGenerated).Return()
	fx.advertRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAdvertEvent(ctx, eventOfType(service.AdvertCreated)).Return(nil)

	advert, err := fx.service.Create(ctx, createInput(nil))

	require.NoError(t, err)
	assert.Equal(t, "/flyers/b.png", advert.Flyer)
}

func TestAdvertService_Create_DuplicateTitle(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(1, nil)

	_, err := fx.service.Create(ctx, createInput(nil))

	assert.True(t, errors.Is(err, domainerrors.ErrAdvertAlreadyExists))
	fx.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	fx.advertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdvertService_Create_GenerationFails(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(0, nil)
	quotaErr := errors.New("quota exceeded")
	fx.generator.EXPECT().Generate(mock.Anything, "Bike").Return(nil, quotaErr)

	_, err := fx.service.Create(ctx, createInput(nil))

	assert.True(t, errors.Is(err, domainerrors.ErrImageGenerationFailed))
	assert.True(t, errors.Is(err, quotaErr), "generator cause lost: %v", err)
	assert.Contains(t, err.Error(), "quota exceeded")
	fx.blobStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	fx.advertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdvertService_Create_RejectsNonImageFlyer(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(0, nil)

	_, err := fx.service.Create(ctx, createInput([]byte("definitely not an image")))

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidFlyer))
	fx.blobStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvertService_Create_UploadFails(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(0, nil)
	bucketErr := errors.New("bucket gone")
	fx.blobStore.EXPECT().Upload(mock.Anything, pngFlyer, "image/png").Return("", bucketErr)

	_, err := fx.service.Create(ctx, createInput(pngFlyer))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerrors.ErrFlyerUploadFailed.ErrorCode(), appErr.ErrorCode())
	assert.True(t, errors.Is(err, bucketErr), "upload cause lost: %v", err)
	fx.advertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdvertService_Create_PublishFailureIsIgnored(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().CountByOwnerAndTitle(ctx, "owner-1", "Bike").Return(0, nil)
	fx.blobStore.EXPECT().Upload(mock.Anything, pngFlyer, "image/png").Return("/flyers/c.png", nil)
	fx.metrics.EXPECT().RecordFlyer(service.FlyerSourceUploaded).Return()
	fx.advertRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAdvertEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	advert, err := fx.service.Create(ctx, createInput(pngFlyer))

	require.NoError(t, err)
	assert.Equal(t, "/flyers/c.png", advert.Flyer)
}

func TestAdvertService_List(t *testing.T) {
	tests := []struct {
		name       string
		maxPage    int
		input      usecase.ListAdvertsInput
		wantFilter repository.AdvertFilter
	}{
		{
			name:       "empty query matches all with default page size",
			input:      usecase.ListAdvertsInput{},
			wantFilter: repository.AdvertFilter{Limit: 20},
		},
		{
			name:       "query applies to every field",
			input:      usecase.ListAdvertsInput{Query: " Bike ", Page: usecase.Page{Limit: 5, Skip: 10}},
			wantFilter: repository.AdvertFilter{Match: repository.MatchAll("Bike"), Limit: 5, Skip: 10},
		},
		{
			name:       "limit is capped",
			maxPage:    50,
			input:      usecase.ListAdvertsInput{Page: usecase.Page{Limit: 500}},
			wantFilter: repository.AdvertFilter{Limit: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAdvertServiceWithMax(t, tt.maxPage)

			ctx := context.Background()
			want := []*entity.Advert{{ID: "a1"}}
			fx.advertRepo.EXPECT().Search(ctx, tt.wantFilter).Return(want, nil)

			got, err := fx.service.List(ctx, tt.input)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestAdvertService_List_InvalidPagination(t *testing.T) {
	fx := createTestAdvertService(t)

	_, err := fx.service.List(context.Background(), usecase.ListAdvertsInput{Page: usecase.Page{Skip: -1}})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPagination))
}

func TestAdvertService_Get(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "found"},
		{name: "malformed id", repoErr: repository.ErrInvalidID, wantErr: domainerrors.ErrInvalidAdvertID},
		{name: "missing", repoErr: repository.ErrAdvertNotFound, wantErr: domainerrors.ErrAdvertNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAdvertService(t)

			ctx := context.Background()
			var stored *entity.Advert
			if tt.repoErr == nil {
				stored = &entity.Advert{ID: "a1", Title: "Bike"}
			}
			fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(stored, tt.repoErr)

			got, err := fx.service.Get(ctx, "a1")

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

				return
			}
			require.NoError(t, err)
			assert.Same(t, stored, got)
		})
	}
}

func TestAdvertService_Similar(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	reference := &entity.Advert{ID: "a1", Title: "Bike", Description: "Red", Category: "Sport"}
	fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(reference, nil)
	fx.advertRepo.EXPECT().
		Search(ctx, repository.AdvertFilter{
			Match:     &repository.AdvertMatch{Title: "Bike", Description: "Red", Category: "Sport"},
			ExcludeID: "a1",
			Limit:     10,
		}).
		Return([]*entity.Advert{{ID: "a2"}}, nil)

	got, err := fx.service.Similar(ctx, "a1", usecase.Page{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)
}

func TestAdvertService_Similar_MissingReference(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(nil, repository.ErrAdvertNotFound)

	_, err := fx.service.Similar(ctx, "a1", usecase.Page{})

	assert.True(t, errors.Is(err, domainerrors.ErrAdvertNotFound))
}

func replaceInput(ownerID string, flyer []byte) usecase.ReplaceAdvertInput {
	return usecase.ReplaceAdvertInput{
		ID:      "a1",
		OwnerID: ownerID,
		AdvertInput: usecase.AdvertInput{
			Title:       "Bike v2",
			Description: "Blue road bike",
			Category:    "Sport",
			Price:       99.5,
			Flyer:       flyer,
		},
	}
}

func TestAdvertService_Replace_Success(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &entity.Advert{ID: "a1", Title: "Bike", OwnerID: "owner-1", CreatedAt: createdAt}

	fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(existing, nil)
	fx.generator.EXPECT().Generate(mock.Anything, "Bike v2").Return(pngFlyer, nil)
	fx.blobStore.EXPECT().Upload(mock.Anything, pngFlyer, "image/png").Return("/flyers/new.png", nil)
	fx.metrics.EXPECT().RecordFlyer(service.FlyerSourceGenerated).Return()
	fx.advertRepo.EXPECT().
		ReplaceOwned(ctx, mock.MatchedBy(func(advert *entity.Advert) bool {
			return advert.ID == "a1" && advert.OwnerID == "owner-1" && advert.Title == "Bike v2" && advert.Flyer == "/flyers/new.png"
		})).
		Return(nil)
	fx.publisher.EXPECT().PublishAdvertEvent(ctx, eventOfType(service.AdvertReplaced)).Return(nil)

	advert, err := fx.service.Replace(ctx, replaceInput("owner-1", nil))

	require.NoError(t, err)
	assert.Equal(t, "Blue road bike", advert.Description)
	assert.Equal(t, 99.5, advert.Price)
	assert.Equal(t, createdAt, advert.CreatedAt)
}

func TestAdvertService_Replace_ForeignAdvertLooksMissing(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(&entity.Advert{ID: "a1", OwnerID: "owner-1"}, nil)

	_, err := fx.service.Replace(ctx, replaceInput("owner-2", nil))

	assert.True(t, errors.Is(err, domainerrors.ErrAdvertNotFound))
	fx.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	fx.advertRepo.AssertNotCalled(t, "ReplaceOwned", mock.Anything, mock.Anything)
}

func TestAdvertService_Replace_VanishedBeforeWrite(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(&entity.Advert{ID: "a1", OwnerID: "owner-1"}, nil)
	fx.blobStore.EXPECT().Upload(mock.Anything, pngFlyer, "image/png").Return("/flyers/x.png", nil)
	fx.metrics.EXPECT().RecordFlyer(service.FlyerSourceUploaded).Return()
	fx.advertRepo.EXPECT().ReplaceOwned(ctx, mock.Anything).Return(repository.ErrAdvertNotFound)

	_, err := fx.service.Replace(ctx, replaceInput("owner-1", pngFlyer))

	assert.True(t, errors.Is(err, domainerrors.ErrAdvertNotFound))
}

func TestAdvertService_Replace_InvalidID(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().FindByID(ctx, "a1").Return(nil, repository.ErrInvalidID)

	_, err := fx.service.Replace(ctx, replaceInput("owner-1", nil))

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidAdvertID))
}

func TestAdvertService_Delete(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	fx.advertRepo.EXPECT().DeleteOwned(ctx, "a1", "owner-1").Return(nil)
	fx.publisher.EXPECT().
		PublishAdvertEvent(ctx, mock.MatchedBy(func(event *service.AdvertEvent) bool {
			return event.Type == service.AdvertDeleted && event.AdvertID == "a1"
		})).
		Return(nil)

	require.NoError(t, fx.service.Delete(ctx, "a1", "owner-1"))
}

func TestAdvertService_Delete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "not owned", repoErr: repository.ErrAdvertNotFound, wantErr: domainerrors.ErrAdvertNotFound},
		{name: "malformed id", repoErr: repository.ErrInvalidID, wantErr: domainerrors.ErrInvalidAdvertID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAdvertService(t)

			ctx := context.Background()
			fx.advertRepo.EXPECT().DeleteOwned(ctx, "a1", "owner-2").Return(tt.repoErr)

			err := fx.service.Delete(ctx, "a1", "owner-2")

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			fx.publisher.AssertNotCalled(t, "PublishAdvertEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestAdvertService_ListMine(t *testing.T) {
	fx := createTestAdvertService(t)

	ctx := context.Background()
	mine := []*entity.Advert{{ID: "a1", OwnerID: "owner-1"}, {ID: "a2", OwnerID: "owner-1"}}
	fx.advertRepo.EXPECT().Search(ctx, repository.AdvertFilter{OwnerID: "owner-1"}).Return(mine, nil)

	got, err := fx.service.ListMine(ctx, "owner-1", usecase.Page{})

	require.NoError(t, err)
	assert.Equal(t, mine, got)
}
