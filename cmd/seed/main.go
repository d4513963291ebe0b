package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/photobook/user-image-service/config"
	"github.com/photobook/user-image-service/internal/domain/entity"
	pginfra "github.com/photobook/user-image-service/internal/infrastructure/postgres"
	"github.com/photobook/user-image-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := flag.String("email", "admin@photobook.local", "admin email")
	password := flag.String("password", "password123", "admin password")
	username := flag.String("username", "admin", "admin username")
	flag.Parse()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.DatabaseURL, pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var (
		id     int64
		userID uuid.UUID
	)
	err = pool.QueryRow(ctx, `
		INSERT INTO users (uuid, username, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, updated_at = now()
		RETURNING id, uuid
	`, uuid.New(), *username, entity.NormalizeEmail(*email), hash, string(entity.RoleAdmin)).Scan(&id, &userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded admin: id=%d uuid=%s email=%s password=%s\n", id, userID, entity.NormalizeEmail(*email), *password)
}
