package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/photobook/user-image-service/internal/domain/entity"
	"github.com/photobook/user-image-service/internal/domain/repository"
)

type RepositoryIntegrationTestSuite struct {
	suite.Suite
	ctx    context.Context
	pgc    *tcpostgres.PostgresContainer
	pool   *pgxpool.Pool
	users  *UserRepository
	images *ImageRepository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("photobook"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgc = pgc

	dsn, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	s.Require().NoError(RunMigrations(dsn, "../../../db/migrations", logger))

	pool, err := NewPool(s.ctx, dsn, PoolOptions{MaxConns: 4})
	s.Require().NoError(err)
	s.pool = pool
	s.users = NewUserRepository(pool)
	s.images = NewImageRepository(pool)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgc != nil {
		s.Require().NoError(s.pgc.Terminate(s.ctx))
	}
}

func (s *RepositoryIntegrationTestSuite) newUser(email string) *entity.User {
	return &entity.User{UUID: uuid.New(), Username: "it", Email: email, Password: "hash", Role: entity.RoleUser}
}

func (s *RepositoryIntegrationTestSuite) TestCreateFindAndUpdatePhoto() {
	u := s.newUser("it-1@x.com")
	s.Require().NoError(s.users.Create(s.ctx, u))
	s.NotZero(u.ID)

	found, err := s.users.GetByEmail(s.ctx, "it-1@x.com")
	s.Require().NoError(err)
	s.Equal(u.UUID, found.UUID)
	s.Nil(found.Photo)

	updated, err := s.users.UpdatePhoto(s.ctx, u.UUID, "uploads/it.png")
	s.Require().NoError(err)
	s.Equal("uploads/it.png", *updated.Photo)
	s.False(updated.UpdatedAt.Before(found.UpdatedAt))
}

func (s *RepositoryIntegrationTestSuite) TestUniqueEmailIsEnforced() {
	s.Require().NoError(s.users.Create(s.ctx, s.newUser("dup@x.com")))
	err := s.users.Create(s.ctx, s.newUser("dup@x.com"))
	s.ErrorIs(err, repository.ErrDuplicate)
}

func (s *RepositoryIntegrationTestSuite) TestConcurrentRegistrationsProduceOneRow() {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.users.Create(s.ctx, s.newUser("race@x.com")); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(1, success)
}

func (s *RepositoryIntegrationTestSuite) TestImagesRoundTrip() {
	owner := uuid.New()
	img := &entity.Image{UserUUID: owner, Data: []byte("raw-bytes"), ContentType: "image/jpeg"}
	s.Require().NoError(s.images.Create(s.ctx, img))

	got, err := s.images.GetByID(s.ctx, img.ID)
	s.Require().NoError(err)
	s.Equal([]byte("raw-bytes"), got.Data)
	s.Equal("image/jpeg", got.ContentType)
	s.Equal(owner, got.UserUUID)
}

func TestRepositoryIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Docker is not available, skipping integration test.")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
