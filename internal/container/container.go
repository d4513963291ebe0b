package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/photobook/user-image-service/config"
	pginfra "github.com/photobook/user-image-service/internal/infrastructure/postgres"
	"github.com/photobook/user-image-service/internal/infrastructure/storage"
	"github.com/photobook/user-image-service/pkg/helpers"
)

// Container holds the process wide clients shared by every request.
// Redis, ES and Rabbit are nil when unconfigured or unreachable.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool   *pgxpool.Pool
	Files  storage.FileStore
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher
}

// New connects the required Postgres pool and file store, then the optional integrations.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	pool, err := pginfra.NewPool(ctx, cfg.DatabaseURL, pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.Pool = pool

	files, err := storage.New(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("file store: %w", err)
	}
	c.Files = files

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			helpers.LogWarn(logger, "redis unavailable, login sessions will not be recorded", err, logrus.Fields{"addr": cfg.RedisAddr})
		} else {
			c.Redis = rdb
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			err = helpers.EnsureESIndex(ctx, es, cfg.ESUsersIndex, helpers.UsersIndexMapping)
		}
		if err != nil {
			helpers.LogWarn(logger, "elasticsearch unavailable, user search disabled", err, logrus.Fields{"index": cfg.ESUsersIndex})
		} else {
			c.ES = es
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, welcome emails disabled", err, logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
		} else {
			c.Rabbit = pub
		}
	}

	return c, nil
}

// Close releases every client in reverse order of construction
func (c *Container) Close() {
	c.Rabbit.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Files != nil {
		if err := c.Files.Close(); err != nil {
			helpers.LogWarn(c.Logger, "close file store", err, nil)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
