// seed crea la cuenta SUPER_ADMIN inicial a partir de SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
// Aplica las migraciones pendientes antes. Si el email ya existe no hace nada.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ophuaconnect-api/pkg/config"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	seed, err := config.LoadSeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuración del seed: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = run(ctx, cfg, seed, log)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("seed fallido")
		os.Exit(1)
	}
}

// run aplica migraciones y crea el SUPER_ADMIN; cierra el pool antes de volver.
func run(ctx context.Context, cfg *config.Config, seed *config.SeedConfig, log *logger.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, log); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}

	uc := auth.NewAuthUseCase(postgres.NewStore(pool), postgres.NewTxRunner(pool), auth.Config{
		JWTSecret:  cfg.JWT.Secret,
		TokenTTL:   cfg.JWT.TTL(),
		Issuer:     cfg.JWT.Issuer,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)

	created, err := uc.CreateSuperAdmin(ctx, seed.AdminEmail, seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("crear SUPER_ADMIN: %w", err)
	}
	if !created {
		log.Info().Str("email", seed.AdminEmail).Msg("el SUPER_ADMIN ya existía")
		return nil
	}
	log.Info().Str("email", seed.AdminEmail).Msg("SUPER_ADMIN creado")
	return nil
}
