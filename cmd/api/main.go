package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/bazar-api/docs"
	"github.com/jhoicas/bazar-api/internal/application/auth"
	"github.com/jhoicas/bazar-api/internal/application/usecase"
	"github.com/jhoicas/bazar-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bazar-api/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/bazar-api/internal/interfaces/http"
	"github.com/jhoicas/bazar-api/pkg/config"
	"github.com/jhoicas/bazar-api/pkg/jwt"
	"github.com/jhoicas/bazar-api/pkg/logger"
)

// @title                       Bazar API
// @version                     1.0
// @description                 Marketplace multi-tenant: usuarios, catálogos, categorías y productos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar migraciones")
		}
		applied, err := migrator.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	tokens, err := jwt.NewManager(jwt.Config{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.JWT.TTL(),
		Issuer:    cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar JWT")
	}

	txRunner := postgres.NewTxRunner(pool)
	hasher := security.NewBcryptHasher()

	deps := httpRouter.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(txRunner, hasher, tokens),
		CatalogUC:  usecase.NewCatalogUseCase(txRunner),
		CategoryUC: usecase.NewCategoryUseCase(txRunner),
		ProductUC:  usecase.NewProductUseCase(txRunner),
		UserUC:     usecase.NewUserUseCase(txRunner, hasher),
	}

	// La UI de swagger solo se monta si el archivo existe.
	docsFile := cfg.HTTP.DocsFile
	if docsFile != "" {
		if _, err := os.Stat(docsFile); err != nil {
			log.Warn().Str("file", docsFile).Msg("swagger.json no encontrado, /docs desactivado")
			docsFile = ""
		}
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:     cfg.App.Name,
		Logger:   log,
		DocsFile: docsFile,
	}, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
