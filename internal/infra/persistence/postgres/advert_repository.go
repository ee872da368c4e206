package postgres

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// advertRepository implements the repository.AdvertRepository interface using GORM.
type advertRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAdvertRepository is the constructor for advertRepository.
func NewAdvertRepository(db *gorm.DB) repository.AdvertRepository {
	return &advertRepository{db: db, now: time.Now}
}

// Create persists a new advert with a freshly generated UUIDv7.
func (repo *advertRepository) Create(ctx context.Context, advert *entity.Advert) error {
	ownerID, err := uuid.Parse(advert.OwnerID)
	if err != nil {
		return repository.ErrInvalidID
	}

	id, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "failed to generate advert id")
	}

	advertM := fromAdvertDomain(advert)
	advertM.ID = id
	advertM.OwnerID = ownerID

	if err := repo.db.WithContext(ctx).Create(advertM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "advert owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create advert")
	}

	advert.ID = advertM.ID.String()
	advert.CreatedAt = advertM.CreatedAt
	advert.UpdatedAt = advertM.UpdatedAt

	return nil
}

// FindByID retrieves a single advert by its unique ID.
func (repo *advertRepository) FindByID(ctx context.Context, id string) (*entity.Advert, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}

	var advertM model.AdvertModel
	if err := repo.db.WithContext(ctx).Where("id = ?", uid).First(&advertM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdvertNotFound
		}

		return nil, errors.Wrap(err, "failed to find advert by id")
	}

	return toAdvertDomain(&advertM), nil
}

// Search lists adverts in insertion order. Match patterns are literal and case-insensitive.
func (repo *advertRepository) Search(ctx context.Context, filter repository.AdvertFilter) ([]*entity.Advert, error) {
	query := repo.db.WithContext(ctx).Model(&model.AdvertModel{})

	if filter.OwnerID != "" {
		ownerID, err := uuid.Parse(filter.OwnerID)
		if err != nil {
			return []*entity.Advert{}, nil
		}
		query = query.Where("owner_id = ?", ownerID)
	}

	if filter.ExcludeID != "" {
		if excludeID, err := uuid.Parse(filter.ExcludeID); err == nil {
			query = query.Where("id <> ?", excludeID)
		}
	}

	if m := filter.Match; m != nil && m.Title != "" && m.Description != "" && m.Category != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ? OR category ILIKE ?",
			containsPattern(m.Title), containsPattern(m.Description), containsPattern(m.Category))
	}

	query = query.Order("created_at ASC").Order("id ASC")
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var advertMs []*model.AdvertModel
	if err := query.Find(&advertMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search adverts")
	}

	adverts := make([]*entity.Advert, 0, len(advertMs))
	for _, advertM := range advertMs {
		adverts = append(adverts, toAdvertDomain(advertM))
	}

	return adverts, nil
}

// CountByOwnerAndTitle counts the owner's adverts carrying exactly this title.
func (repo *advertRepository) CountByOwnerAndTitle(ctx context.Context, ownerID, title string) (int64, error) {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return 0, nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.AdvertModel{}).
		Where("owner_id = ? AND title = ?", uid, title).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count adverts by owner and title")
	}

	return count, nil
}

// ReplaceOwned overwrites the mutable fields of an owned advert.
// PostgreSQL reports matched rows for UPDATE, so identical values still count as a match.
func (repo *advertRepository) ReplaceOwned(ctx context.Context, advert *entity.Advert) error {
	id, ownerID, err := parseOwnedIDs(advert.ID, advert.OwnerID)
	if err != nil {
		return err
	}

	updatedAt := repo.now()
	result := repo.db.WithContext(ctx).Model(&model.AdvertModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{
			"title":       advert.Title,
			"description": advert.Description,
			"category":    advert.Category,
			"price":       advert.Price,
			"flyer":       advert.Flyer,
			"updated_at":  updatedAt,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to replace advert")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAdvertNotFound
	}

	advert.UpdatedAt = updatedAt

	return nil
}

// DeleteOwned removes an owned advert.
func (repo *advertRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	advertID, ownerUUID, err := parseOwnedIDs(id, ownerID)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", advertID, ownerUUID).
		Delete(&model.AdvertModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete advert")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAdvertNotFound
	}

	return nil
}

// parseOwnedIDs rejects a malformed advert ID and treats a malformed owner as no match.
func parseOwnedIDs(id, ownerID string) (uuid.UUID, uuid.UUID, error) {
	advertID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, repository.ErrInvalidID
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, repository.ErrAdvertNotFound
	}

	return advertID, ownerUUID, nil
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// --- Mapper Functions ---

func toAdvertDomain(data *model.AdvertModel) *entity.Advert {
	if data == nil {
		return nil
	}

	return &entity.Advert{
		ID:          data.ID.String(),
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Price:       data.Price,
		Flyer:       data.Flyer,
		OwnerID:     data.OwnerID.String(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromAdvertDomain(data *entity.Advert) *model.AdvertModel {
	if data == nil {
		return nil
	}

	return &model.AdvertModel{
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Price:       data.Price,
		Flyer:       data.Flyer,
	}
}
