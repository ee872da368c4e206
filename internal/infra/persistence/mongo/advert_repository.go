package mongo

import (
	"context"
	"regexp"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type advertDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Flyer       string             `bson:"flyer"`
	Owner       string             `bson:"owner"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// advertRepository implements repository.AdvertRepository on a MongoDB collection.
type advertRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewAdvertRepository is the constructor for advertRepository.
func NewAdvertRepository(db *mongo.Database) repository.AdvertRepository {
	return &advertRepository{coll: db.Collection(advertsCollection), now: time.Now}
}

func (repo *advertRepository) Create(ctx context.Context, advert *entity.Advert) error {
	now := repo.now().UTC().Truncate(time.Millisecond)
	doc := fromAdvertDomain(advert)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create advert")
	}

	advert.ID = doc.ID.Hex()
	advert.CreatedAt = now
	advert.UpdatedAt = now

	return nil
}

func (repo *advertRepository) FindByID(ctx context.Context, id string) (*entity.Advert, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}

	var doc advertDocument
	if err := repo.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAdvertNotFound
		}

		return nil, errors.Wrap(err, "failed to find advert by id")
	}

	return toAdvertDomain(&doc), nil
}

// Search lists adverts in _id order, which follows insertion order for generated ObjectIDs.
func (repo *advertRepository) Search(ctx context.Context, filter repository.AdvertFilter) ([]*entity.Advert, error) {
	query := bson.D{}

	if filter.OwnerID != "" {
		query = append(query, bson.E{Key: "owner", Value: filter.OwnerID})
	}

	if filter.ExcludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(filter.ExcludeID); err == nil {
			query = append(query, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
		}
	}

	if m := filter.Match; m != nil && m.Title != "" && m.Description != "" && m.Category != "" {
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: containsRegex(m.Title)}},
			bson.D{{Key: "description", Value: containsRegex(m.Description)}},
			bson.D{{Key: "category", Value: containsRegex(m.Category)}},
		}})
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Skip > 0 {
		findOpts.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		findOpts.SetLimit(int64(filter.Limit))
	}

	cursor, err := repo.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search adverts")
	}
	defer cursor.Close(ctx)

	var docs []advertDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode adverts")
	}

	adverts := make([]*entity.Advert, 0, len(docs))
	for i := range docs {
		adverts = append(adverts, toAdvertDomain(&docs[i]))
	}

	return adverts, nil
}

func (repo *advertRepository) CountByOwnerAndTitle(ctx context.Context, ownerID, title string) (int64, error) {
	count, err := repo.coll.CountDocuments(ctx, bson.D{
		{Key: "owner", Value: ownerID},
		{Key: "title", Value: title},
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count adverts by owner and title")
	}

	return count, nil
}

// ReplaceOwned overwrites every mutable field with $set, keeping _id, owner and
// created_at. MatchedCount is used so that an identical replacement is still a success.
func (repo *advertRepository) ReplaceOwned(ctx context.Context, advert *entity.Advert) error {
	oid, err := primitive.ObjectIDFromHex(advert.ID)
	if err != nil {
		return repository.ErrInvalidID
	}

	updatedAt := repo.now().UTC().Truncate(time.Millisecond)
	result, err := repo.coll.UpdateOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "owner", Value: advert.OwnerID},
	}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: advert.Title},
		{Key: "description", Value: advert.Description},
		{Key: "category", Value: advert.Category},
		{Key: "price", Value: advert.Price},
		{Key: "flyer", Value: advert.Flyer},
		{Key: "updated_at", Value: updatedAt},
	}}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace advert")
	}
	if result.MatchedCount == 0 {
		return repository.ErrAdvertNotFound
	}

	advert.UpdatedAt = updatedAt

	return nil
}

func (repo *advertRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}

	result, err := repo.coll.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "owner", Value: ownerID},
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete advert")
	}
	if result.DeletedCount == 0 {
		return repository.ErrAdvertNotFound
	}

	return nil
}

// containsRegex matches s literally anywhere in the field, ignoring case.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func toAdvertDomain(doc *advertDocument) *entity.Advert {
	return &entity.Advert{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Category:    doc.Category,
		Price:       doc.Price,
		Flyer:       doc.Flyer,
		OwnerID:     doc.Owner,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func fromAdvertDomain(advert *entity.Advert) advertDocument {
	return advertDocument{
		Title:       advert.Title,
		Description: advert.Description,
		Category:    advert.Category,
		Price:       advert.Price,
		Flyer:       advert.Flyer,
		Owner:       advert.OwnerID,
	}
}
