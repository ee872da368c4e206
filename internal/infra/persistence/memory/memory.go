// Package memory keeps users and adverts in process memory. It backs local runs
// and end-to-end tests where no database is available.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// Store holds both collections behind a single lock.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	adverts []*entity.Advert // insertion order
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*entity.User),
		now:   time.Now,
	}
}

// Users returns the store as a repository.UserRepository.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Adverts returns the store as a repository.AdvertRepository.
func (s *Store) Adverts() repository.AdvertRepository {
	return &advertRepository{store: s}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate id")
	}

	return id.String(), nil
}

type userRepository struct {
	store *Store
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}

	id, err := newID()
	if err != nil {
		return err
	}

	user.ID = id
	user.CreatedAt = s.now()
	stored := *user
	s.users[id] = &stored

	return nil
}

func (repo *userRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user

	return &found, nil
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) CountByEmail(_ context.Context, email string) (int64, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, user := range s.users {
		if user.Email == email {
			count++
		}
	}

	return count, nil
}

type advertRepository struct {
	store *Store
}

func (repo *advertRepository) Create(_ context.Context, advert *entity.Advert) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return err
	}

	now := s.now()
	advert.ID = id
	advert.CreatedAt = now
	advert.UpdatedAt = now
	stored := *advert
	s.adverts = append(s.adverts, &stored)

	return nil
}

func (repo *advertRepository) FindByID(_ context.Context, id string) (*entity.Advert, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrInvalidID
	}

	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, repository.ErrAdvertNotFound
	}
	found := *s.adverts[idx]

	return &found, nil
}

func (repo *advertRepository) Search(_ context.Context, filter repository.AdvertFilter) ([]*entity.Advert, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	adverts := make([]*entity.Advert, 0)
	skipped := 0
	for _, advert := range s.adverts {
		if !matches(advert, filter) {
			continue
		}
		if skipped < filter.Skip {
			skipped++

			continue
		}
		if filter.Limit > 0 && len(adverts) >= filter.Limit {
			break
		}
		found := *advert
		adverts = append(adverts, &found)
	}

	return adverts, nil
}

func (repo *advertRepository) CountByOwnerAndTitle(_ context.Context, ownerID, title string) (int64, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, advert := range s.adverts {
		if advert.OwnerID == ownerID && advert.Title == title {
			count++
		}
	}

	return count, nil
}

func (repo *advertRepository) ReplaceOwned(_ context.Context, advert *entity.Advert) error {
	if _, err := uuid.Parse(advert.ID); err != nil {
		return repository.ErrInvalidID
	}

	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(advert.ID)
	if idx < 0 || s.adverts[idx].OwnerID != advert.OwnerID {
		return repository.ErrAdvertNotFound
	}

	stored := s.adverts[idx]
	stored.Title = advert.Title
	stored.Description = advert.Description
	stored.Category = advert.Category
	stored.Price = advert.Price
	stored.Flyer = advert.Flyer
	stored.UpdatedAt = s.now()

	advert.CreatedAt = stored.CreatedAt
	advert.UpdatedAt = stored.UpdatedAt

	return nil
}

func (repo *advertRepository) DeleteOwned(_ context.Context, id, ownerID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrInvalidID
	}

	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 || s.adverts[idx].OwnerID != ownerID {
		return repository.ErrAdvertNotFound
	}
	s.adverts = slices.Delete(s.adverts, idx, idx+1)

	return nil
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.adverts, func(a *entity.Advert) bool { return a.ID == id })
}

func matches(advert *entity.Advert, filter repository.AdvertFilter) bool {
	if filter.OwnerID != "" && advert.OwnerID != filter.OwnerID {
		return false
	}
	if filter.ExcludeID != "" && advert.ID == filter.ExcludeID {
		return false
	}
	if m := filter.Match; m != nil {
		return containsFold(advert.Title, m.Title) ||
			containsFold(advert.Description, m.Description) ||
			containsFold(advert.Category, m.Category)
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
