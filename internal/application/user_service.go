package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/photobook/user-image-service/internal/domain/entity"
	repo "github.com/photobook/user-image-service/internal/domain/repository"
	"github.com/photobook/user-image-service/internal/infrastructure/storage"
	"github.com/photobook/user-image-service/pkg/helpers"
	"github.com/photobook/user-image-service/pkg/mailer"
)

// JobPublisher queues background jobs such as emails
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Upload is a file received from a client
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UserService implements registration, login and profile flows.
// Redis, ES and Jobs are optional; when nil the matching side effect is skipped.
type UserService struct {
	Repo   repo.UserRepository
	Files  storage.FileStore
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	Redis        redis.Cmdable
	ES           *elasticsearch.Client
	ESUsersIndex string

	Jobs            JobPublisher
	MailSendEnabled bool
	AppName         string
	LoginURL        string
}

func NewUserService(r repo.UserRepository, files storage.FileStore, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Files: files, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Photo    *Upload
}

// Register creates a user. The unique email constraint is the final word on conflicts;
// the lookup beforehand only avoids storing a photo for a request that will be rejected.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidRole
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	email := entity.NormalizeEmail(in.Email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		UUID:     uuid.New(),
		Username: in.Username,
		Email:    email,
		Password: hash,
		Role:     role,
	}

	if in.Photo != nil {
		ref, err := s.Files.Save(ctx, in.Photo.Filename, in.Photo.ContentType, in.Photo.Body)
		if err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}
		u.Photo = &ref
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		s.discardPhoto(u.Photo)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	_ = s.indexUser(ctx, u)
	s.queueWelcome(ctx, u)
	return u, nil
}

// discardPhoto removes a stored photo whose user row was never written
func (s *UserService) discardPhoto(ref *string) {
	if ref == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Files.Delete(ctx, *ref); err != nil {
		helpers.LogWarn(s.Logger, "discard photo failed", err, logrus.Fields{"photo": *ref})
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateAccessToken(u.UUID.String(), u.Username, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.recordSession(ctx, u, exp)
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

// UpdatePhoto replaces the profile photo of the user with email. The previous file is kept.
func (s *UserService) UpdatePhoto(ctx context.Context, email string, photo Upload) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ref, err := s.Files.Save(ctx, photo.Filename, photo.ContentType, photo.Body)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	updated, err := s.Repo.UpdatePhoto(ctx, u.UUID, ref)
	if err != nil {
		s.discardPhoto(&ref)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	_ = s.indexUser(ctx, updated)
	return updated, nil
}

// GetProfile resolves the user a token was issued to
func (s *UserService) GetProfile(ctx context.Context, userUUID string) (*entity.User, error) {
	id, err := uuid.Parse(userUUID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByUUID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) recordSession(ctx context.Context, u *entity.User, exp time.Time) {
	if s.Redis == nil {
		return
	}
	key := helpers.SessionKey(u.UUID.String())
	fields := map[string]any{
		"uuid":       u.UUID.String(),
		"username":   u.Username,
		"email":      u.Email,
		"role":       string(u.Role),
		"logged_in":  true,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		"expires_at": exp.UTC().Format(time.RFC3339Nano),
	}
	if err := helpers.RedisHSetWithTTL(ctx, s.Redis, key, fields, time.Until(exp)); err != nil {
		helpers.LogWarn(s.Logger, "redis session record failed", err, logrus.Fields{"key": key})
	}
}

func (s *UserService) queueWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil || !s.MailSendEnabled {
		return
	}
	job := mailer.WelcomeJob(s.AppName, s.LoginURL, u.Email, u.Username, string(u.Role))
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "publish welcome email failed", err, logrus.Fields{"uuid": u.UUID.String()})
	}
}
