package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/photobook/user-image-service/internal/domain/entity"
	"github.com/photobook/user-image-service/internal/domain/repository"
)

type ImageRepository struct {
	db DB
}

func NewImageRepository(db DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, img *entity.Image) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO images (user_uuid, image_data, content_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, img.UserUUID, img.Data, img.ContentType)

	if err := row.Scan(&img.ID, &img.CreatedAt, &img.UpdatedAt); err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*entity.Image, error) {
	img := &entity.Image{}
	row := r.db.QueryRow(ctx, `
		SELECT id, user_uuid, image_data, content_type, created_at, updated_at
		FROM images
		WHERE id = $1
	`, id)
	if err := row.Scan(&img.ID, &img.UserUUID, &img.Data, &img.ContentType,
		&img.CreatedAt, &img.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan image: %w", err)
	}
	return img, nil
}

var _ repository.ImageRepository = (*ImageRepository)(nil)
