package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/photobook/user-image-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches a lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// List returns every user without the password hash.
	List(ctx context.Context) ([]entity.User, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) (*entity.User, error)
}
