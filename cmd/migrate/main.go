// Comando migrate: aplica o muestra el estado de las migraciones SQL embebidas.
//
//	migrate up      aplica las pendientes
//	migrate status  lista cada versión y su fecha de aplicación
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jhoicas/bazar-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bazar-api/pkg/config"
	"github.com/jhoicas/bazar-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "up" && cmd != "status" {
		fmt.Fprintf(os.Stderr, "uso: %s [up|status]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	migrator, err := postgres.NewMigrator(pool)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar migraciones")
	}

	switch cmd {
	case "up":
		applied, err := migrator.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Strs("applied", applied).Msg("aplicar migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	case "status":
		status, err := migrator.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("estado de migraciones")
		}
		printStatus(os.Stdout, status)
	}
}

func printStatus(w io.Writer, status []postgres.MigrationStatus) {
	for _, s := range status {
		applied := "pendiente"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%-36s %s\n", s.Version, applied)
	}
	fmt.Fprintf(w, "%d pendiente(s)\n", postgres.Pending(status))
}
