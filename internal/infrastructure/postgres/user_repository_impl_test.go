package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/photobook/user-image-service/internal/domain/entity"
	"github.com/photobook/user-image-service/internal/domain/repository"
	pginfra "github.com/photobook/user-image-service/internal/infrastructure/postgres"
)

var userColumns = []string{"id", "uuid", "username", "email", "password", "role", "photo", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	now := time.Now()
	u := &entity.User{UUID: uuid.New(), Username: "a", Email: "a@x.com", Password: "hash", Role: entity.RoleUser}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (uuid, username, email, password, role, photo)`)).
		WithArgs(u.UUID, "a", "a@x.com", "hash", "user", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	require.NoError(t, r.Create(context.Background(), u))
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, now, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = r.Create(context.Background(), &entity.User{UUID: uuid.New(), Email: "a@x.com", Role: entity.RoleUser})
	require.ErrorIs(t, err, repository.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), id, "a", "a@x.com", "hash", "manager", strPtr("uploads/p.png"), now, now))

	u, err := r.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, id, u.UUID)
	require.Equal(t, entity.RoleManager, u.Role)
	require.Equal(t, "uploads/p.png", *u.Photo)
	require.Equal(t, "hash", u.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUUID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE uuid = $1`)).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	u, err := r.GetByUUID(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_ExcludesPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	now := time.Now()
	mock.ExpectQuery(`SELECT id, uuid, username, email, role, photo, created_at, updated_at\s+FROM users\s+ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "uuid", "username", "email", "role", "photo", "created_at", "updated_at"}).
			AddRow(int64(1), uuid.New(), "a", "a@x.com", "user", strPtr("uploads/a.png"), now, now).
			AddRow(int64(2), uuid.New(), "b", "b@x.com", "admin", strPtr("uploads/b.png"), now, now))

	users, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "a@x.com", users[0].Email)
	require.Empty(t, users[0].Password)
	require.Equal(t, entity.RoleAdmin, users[1].Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePhoto(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("uploads/new.png", id).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), id, "a", "a@x.com", "hash", "user", strPtr("uploads/new.png"), now, now))

	u, err := r.UpdatePhoto(context.Background(), id, "uploads/new.png")
	require.NoError(t, err)
	require.Equal(t, "uploads/new.png", *u.Photo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_WrapsDriverErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewUserRepository(mock)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).WillReturnError(boom)

	_, err = r.List(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepository_CreateAndGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewImageRepository(mock)
	owner := uuid.New()
	now := time.Now()
	data := []byte{0x89, 0x50, 0x4e, 0x47}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO images (user_uuid, image_data, content_type)`)).
		WithArgs(owner, data, "image/png").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM images`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_uuid", "image_data", "content_type", "created_at", "updated_at"}).
			AddRow(int64(3), owner, data, "image/png", now, now))

	img := &entity.Image{UserUUID: owner, Data: data, ContentType: "image/png"}
	require.NoError(t, r.Create(context.Background(), img))
	require.Equal(t, int64(3), img.ID)

	got, err := r.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, data, got.Data)
	require.Equal(t, owner, got.UserUUID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := pginfra.NewImageRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM images`)).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)

	_, err = r.GetByID(context.Background(), 9)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
