package memory

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	user := &entity.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: entity.RoleVendor}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	err := users.Create(ctx, &entity.User{Email: "alice@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	found, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	found, err = users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	count, err := users.CountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = users.FindByID(ctx, "missing")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	_, err = users.FindByEmail(ctx, "ghost@example.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func seedAdverts(t *testing.T, adverts repository.AdvertRepository, items ...*entity.Advert) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, adverts.Create(context.Background(), item))
	}
}

func TestAdvertRepository_SearchOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	adverts := NewStore().Adverts()

	seedAdverts(t, adverts,
		&entity.Advert{Title: "Red Bike", Category: "sports", OwnerID: "o1"},
		&entity.Advert{Title: "Sofa", Description: "comfy", Category: "home", OwnerID: "o2"},
		&entity.Advert{Title: "Blue bike", Category: "sports", OwnerID: "o1"},
		&entity.Advert{Title: "Lamp", Description: "BIKE shaped", Category: "home", OwnerID: "o2"},
	)

	all, err := adverts.Search(ctx, repository.AdvertFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"Red Bike", "Sofa", "Blue bike", "Lamp"}, titles(all))

	bikes, err := adverts.Search(ctx, repository.AdvertFilter{Match: repository.MatchAll("bike")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Bike", "Blue bike", "Lamp"}, titles(bikes))

	page, err := adverts.Search(ctx, repository.AdvertFilter{Match: repository.MatchAll("bike"), Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue bike"}, titles(page))

	mine, err := adverts.Search(ctx, repository.AdvertFilter{OwnerID: "o2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sofa", "Lamp"}, titles(mine))

	similar, err := adverts.Search(ctx, repository.AdvertFilter{
		Match:     &repository.AdvertMatch{Title: "Red Bike", Description: "", Category: "sports"},
		ExcludeID: all[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sofa", "Blue bike", "Lamp"}, titles(similar), "empty description pattern matches everything")

	literal, err := adverts.Search(ctx, repository.AdvertFilter{Match: repository.MatchAll(".*")})
	require.NoError(t, err)
	assert.Empty(t, literal)
}

func TestAdvertRepository_OwnedMutations(t *testing.T) {
	ctx := context.Background()
	adverts := NewStore().Adverts()

	advert := &entity.Advert{Title: "Bike", Price: 10, OwnerID: "o1", Flyer: "f1"}
	seedAdverts(t, adverts, advert)

	count, err := adverts.CountByOwnerAndTitle(ctx, "o1", "Bike")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	count, err = adverts.CountByOwnerAndTitle(ctx, "o1", "bike")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "title comparison is exact")

	intruder := *advert
	intruder.OwnerID = "o2"
	intruder.Title = "Stolen"
	assert.True(t, errors.Is(adverts.ReplaceOwned(ctx, &intruder), repository.ErrAdvertNotFound))

	replacement := &entity.Advert{ID: advert.ID, OwnerID: "o1", Title: "Bike", Price: 10, Flyer: "f1"}
	require.NoError(t, adverts.ReplaceOwned(ctx, replacement), "identical replacement still matches")

	got, err := adverts.FindByID(ctx, advert.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bike", got.Title)
	assert.Equal(t, "o1", got.OwnerID)

	assert.True(t, errors.Is(adverts.DeleteOwned(ctx, advert.ID, "o2"), repository.ErrAdvertNotFound))
	require.NoError(t, adverts.DeleteOwned(ctx, advert.ID, "o1"))
	assert.True(t, errors.Is(adverts.DeleteOwned(ctx, advert.ID, "o1"), repository.ErrAdvertNotFound))

	_, err = adverts.FindByID(ctx, advert.ID)
	assert.True(t, errors.Is(err, repository.ErrAdvertNotFound))
}

func TestAdvertRepository_InvalidIDs(t *testing.T) {
	ctx := context.Background()
	adverts := NewStore().Adverts()

	_, err := adverts.FindByID(ctx, "abc")
	assert.True(t, errors.Is(err, repository.ErrInvalidID))
	assert.True(t, errors.Is(adverts.ReplaceOwned(ctx, &entity.Advert{ID: "abc"}), repository.ErrInvalidID))
	assert.True(t, errors.Is(adverts.DeleteOwned(ctx, "abc", "o1"), repository.ErrInvalidID))

	_, err = adverts.FindByID(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, repository.ErrAdvertNotFound))
}

func titles(adverts []*entity.Advert) []string {
	out := make([]string, 0, len(adverts))
	for _, a := range adverts {
		out = append(out, a.Title)
	}

	return out
}
