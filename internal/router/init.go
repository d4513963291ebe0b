package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/photobook/user-image-service/internal/application"
	"github.com/photobook/user-image-service/internal/container"
	"github.com/photobook/user-image-service/internal/domain/repository"
	pginfra "github.com/photobook/user-image-service/internal/infrastructure/postgres"
	"github.com/photobook/user-image-service/internal/infrastructure/storage"
	handlers "github.com/photobook/user-image-service/internal/interface/http"
	"github.com/photobook/user-image-service/internal/router/modules"
	"github.com/photobook/user-image-service/pkg/helpers"
)

// Deps are the collaborators the HTTP modules are built from
type Deps struct {
	Users  repository.UserRepository
	Images repository.ImageRepository
	Files  storage.FileStore
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	// Configure applies optional integrations to the user service
	Configure func(*application.UserService)

	UploadDir      string
	ServeUploads   bool
	MetricsEnabled bool
	Health         func(ctx context.Context) error
}

// DepsFromContainer wires Postgres repositories and the optional clients held by c
func DepsFromContainer(c *container.Container) Deps {
	cfg := c.Config
	return Deps{
		Users:  pginfra.NewUserRepository(c.Pool),
		Images: pginfra.NewImageRepository(c.Pool),
		Files:  c.Files,
		JWT:    c.JWT,
		Logger: c.Logger,
		Configure: func(s *application.UserService) {
			if c.Redis != nil {
				s.Redis = c.Redis
			}
			if c.ES != nil {
				s.ES, s.ESUsersIndex = c.ES, cfg.ESUsersIndex
			}
			if c.Rabbit != nil {
				s.Jobs = c.Rabbit
			}
			s.MailSendEnabled = cfg.MailSendEnabled
			s.AppName = cfg.AppName
			if cfg.FrontendURL != "" {
				s.LoginURL = cfg.FrontendURL + "/login"
			}
		},
		UploadDir:      cfg.UploadDir,
		ServeUploads:   cfg.StorageBackend == "local",
		MetricsEnabled: cfg.MetricsEnabled,
		Health:         c.Pool.Ping,
	}
}

// InitModules builds services and handlers from d and registers their modules
func InitModules(r *Registry, d Deps) {
	userSvc := application.NewUserService(d.Users, d.Files, d.JWT, d.Logger)
	if d.Configure != nil {
		d.Configure(userSvc)
	}
	imageSvc := application.NewImageService(d.Users, d.Images)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger), d.JWT))
	r.Add(modules.NewImageModule(handlers.NewImageHandler(imageSvc, d.Logger)))
	r.Add(modules.NewSystemModule(modules.SystemOptions{
		UploadDir:      d.UploadDir,
		ServeUploads:   d.ServeUploads,
		MetricsEnabled: d.MetricsEnabled,
		Health:         d.Health,
	}))
}
