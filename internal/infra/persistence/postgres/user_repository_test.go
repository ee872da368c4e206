package postgres

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "email", "password_hash", "role", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	user := &entity.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: entity.RoleVendor}
	require.NoError(t, repo.Create(context.Background(), user))

	_, err := uuid.Parse(user.ID)
	assert.NoError(t, err)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.Create(context.Background(), &entity.User{Email: "alice@example.com", Role: entity.RoleGuest})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDatabaseFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &entity.User{Email: "alice@example.com", Role: entity.RoleGuest})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "alice", "alice@example.com", "hash", "vendor", createdAt))

	user, err := repo.FindByID(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, entity.RoleVendor, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIDMalformed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet(), "no query is issued for a malformed id")
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.NewString(), "bob", "bob@example.com", "hash", "guest", time.Now()))

	user, err := repo.FindByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, entity.RoleGuest, user.Role)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(sqlmock.NewRows(userColumns))
	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
