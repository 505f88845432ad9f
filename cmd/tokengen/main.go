// Команда tokengen выпускает access токен для существующего профиля.
//
//	go run ./cmd/tokengen -profile 6f1c...-uuid
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/contracts-backend/internal/config"
	"github.com/ignatzorin/contracts-backend/internal/db"
	"github.com/ignatzorin/contracts-backend/internal/logger"
	"github.com/ignatzorin/contracts-backend/internal/repository"
	"github.com/ignatzorin/contracts-backend/internal/service"
)

func main() {
	profileFlag := flag.String("profile", "", "id профиля")
	ttl := flag.Duration("ttl", 0, "время жизни токена (по умолчанию ACCESS_TOKEN_TTL)")
	flag.Parse()

	profileID, err := uuid.Parse(*profileFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tokengen: -profile должен быть UUID")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("tokengen: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolOptions{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		log.Fatalf("tokengen: ошибка подключения к базе: %v", err)
	}
	defer conn.Close()

	profile, err := repository.NewProfileRepository(conn).GetByID(ctx, profileID)
	if err != nil {
		log.Fatalf("tokengen: профиль %s: %v", profileID, err)
	}

	tokenTTL := cfg.AccessTokenTTL
	if *ttl > 0 {
		tokenTTL = *ttl
	}

	token, exp, err := service.NewTokenManager(cfg.JWTSecret, tokenTTL).Issue(profile)
	if err != nil {
		log.Fatalf("tokengen: %v", err)
	}

	fmt.Fprintf(os.Stderr, "%s (%s), действует до %s\n", profile.FullName(), profile.Role, exp.Format(time.RFC3339))
	fmt.Println(token)
}
