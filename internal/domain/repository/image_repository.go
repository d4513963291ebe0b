package repository

import (
	"context"

	"github.com/photobook/user-image-service/internal/domain/entity"
)

// ImageRepository persists uploaded images. There is no update or delete path.
type ImageRepository interface {
	Create(ctx context.Context, img *entity.Image) error
	GetByID(ctx context.Context, id int64) (*entity.Image, error)
}
