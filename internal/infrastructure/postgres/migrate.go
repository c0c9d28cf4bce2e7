package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationLockID clave del advisory lock que serializa migraciones concurrentes.
const migrationLockID = 72_530_001

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Migration archivo SQL embebido; Version es el nombre sin extensión (ej. 001_initial_schema).
type Migration struct {
	Version string
	SQL     string
}

// MigrationStatus estado de una migración. AppliedAt nil si está pendiente.
type MigrationStatus struct {
	Version   string
	AppliedAt *time.Time
}

// Migrator aplica las migraciones embebidas en orden lexicográfico, cada una en su propia transacción.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []Migration
}

// NewMigrator carga las migraciones embebidas.
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	migrations, err := loadMigrations(migrationFiles)
	if err != nil {
		return nil, err
	}
	return &Migrator{pool: pool, migrations: migrations}, nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var list []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		body, err := fs.ReadFile(fsys, "migrations/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		list = append(list, Migration{
			Version: strings.TrimSuffix(e.Name(), ".sql"),
			SQL:     string(body),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list, nil
}

// Migrations devuelve las migraciones conocidas en orden de aplicación.
func (m *Migrator) Migrations() []Migration {
	return m.migrations
}

// Up aplica las migraciones pendientes y devuelve las versiones aplicadas en esta ejecución.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	var applied []string
	for _, mig := range m.migrations {
		ok, err := m.apply(ctx, mig)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, mig.Version)
		}
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) (bool, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin migration %s: %w", mig.Version, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockID); err != nil {
		return false, fmt.Errorf("lock migration %s: %w", mig.Version, err)
	}
	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, mig.Version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", mig.Version, err)
	}
	if exists {
		return false, nil
	}
	// Sin argumentos pgx usa el protocolo simple y admite varias sentencias.
	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return false, fmt.Errorf("apply migration %s: %w", mig.Version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
		return false, fmt.Errorf("record migration %s: %w", mig.Version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit migration %s: %w", mig.Version, err)
	}
	return true, nil
}

// Status devuelve cada migración conocida con su fecha de aplicación (si la tiene).
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	appliedAt := make(map[string]time.Time)
	rows, err := m.pool.Query(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		if !isUndefinedTable(err) {
			return nil, fmt.Errorf("query schema_migrations: %w", err)
		}
	} else {
		defer rows.Close()
		for rows.Next() {
			var v string
			var at time.Time
			if err := rows.Scan(&v, &at); err != nil {
				return nil, fmt.Errorf("scan schema_migrations: %w", err)
			}
			appliedAt[v] = at
		}
		if err := rows.Err(); err != nil && !isUndefinedTable(err) {
			return nil, fmt.Errorf("query schema_migrations: %w", err)
		}
	}

	status := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		s := MigrationStatus{Version: mig.Version}
		if at, ok := appliedAt[mig.Version]; ok {
			s.AppliedAt = &at
		}
		status = append(status, s)
	}
	return status, nil
}

// Pending cuenta las migraciones sin aplicar.
func Pending(status []MigrationStatus) int {
	n := 0
	for _, s := range status {
		if s.AppliedAt == nil {
			n++
		}
	}
	return n
}

func isUndefinedTable(err error) bool {
	return hasCode(err, undefinedTable)
}
