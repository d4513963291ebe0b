package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/photobook/user-image-service/internal/domain/entity"
	repo "github.com/photobook/user-image-service/internal/domain/repository"
)

// ImageService stores raw image uploads against an existing user
type ImageService struct {
	Users  repo.UserRepository
	Images repo.ImageRepository
}

func NewImageService(users repo.UserRepository, images repo.ImageRepository) *ImageService {
	return &ImageService{Users: users, Images: images}
}

// Upload checks the owner exists and inserts the image. The two steps are not atomic.
func (s *ImageService) Upload(ctx context.Context, userUUID, contentType string, data []byte) (*entity.Image, error) {
	id, err := uuid.Parse(userUUID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if _, err := s.Users.GetByUUID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	img := &entity.Image{UserUUID: id, Data: data, ContentType: contentType}
	if err := s.Images.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ImageService) Get(ctx context.Context, id int64) (*entity.Image, error) {
	img, err := s.Images.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrImageNotFound
	}
	return img, err
}
