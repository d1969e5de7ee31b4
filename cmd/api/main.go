package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ophuaconnect-api/docs"
	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
	"github.com/jhoicas/ophuaconnect-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/ophuaconnect-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ophuaconnect-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ophuaconnect-api/internal/interfaces/http"
	"github.com/jhoicas/ophuaconnect-api/pkg/config"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// @title                      OphuaConnect API
// @version                    1.0
// @description                API de tarjetas de presentación digitales: cuentas personales, empresas y empleados con aprobación, y directorio público.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Bearer {token}
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arranca el servidor y bloquea hasta que ctx se cancele o el listener falle.
// Los recursos abiertos se cierran siempre antes de volver.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, log); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}

	healthChecks := map[string]httpRouter.Pinger{"database": pool}

	// Redis es opcional: sin REDIS_URL el login no tiene límite de intentos.
	var throttle httpRouter.LoginThrottle
	if cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("REDIS_URL inválida: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis no disponible al arrancar; el límite de intentos se omite mientras falle")
		}
		lt := cache.NewLoginThrottle(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		throttle = lt
		healthChecks["redis"] = lt
	}

	store := postgres.NewStore(pool)
	txRunner := postgres.NewTxRunner(pool)
	links := usecase.NewLinks(cfg.Public.BaseURL)
	scope := auth.NewScopeChecker(store.CompanyAdmins())

	authUC := auth.NewAuthUseCase(store, txRunner, auth.Config{
		JWTSecret:  cfg.JWT.Secret,
		TokenTTL:   cfg.JWT.TTL(),
		Issuer:     cfg.JWT.Issuer,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)

	// PDF: tarjeta de contacto con QR hacia la página pública
	cardGenerator := infrapdf.NewMarotoCardGenerator()

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.DocsEnabled {
		docs.SwaggerInfo.Host = cfg.HTTP.Addr()
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "OphuaConnect API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Authenticator: auth.NewAuthenticator(store, cfg.JWT.Secret),
		Scope:         scope,
		CompanyUC:     usecase.NewCompanyUseCase(store, scope, links, log),
		EmployeeUC:    usecase.NewEmployeeUseCase(store, scope, log),
		PersonalUC:    usecase.NewPersonalUseCase(store.PersonalProfiles()),
		AccountUC:     usecase.NewAccountUseCase(store.Accounts(), log),
		PublicUC:      usecase.NewPublicUseCase(store, cardGenerator, links),
		Throttle:      throttle,
		HealthChecks:  healthChecks,
		Log:           log,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
