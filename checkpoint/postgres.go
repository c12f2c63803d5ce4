package checkpoint

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/peggy-bridge/orchestrator/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	queryLoad = `SELECT height FROM peggo_checkpoints WHERE key = $1`
	querySave = `INSERT INTO peggo_checkpoints (key, height, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET height = EXCLUDED.height, updated_at = now()
WHERE peggo_checkpoints.height <= EXCLUDED.height`
)

// Postgres stores checkpoints in the peggo_checkpoints table
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

// OpenPostgres connects to dsn through the pgx driver and applies pending migrations
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if err := MigratePostgres(dsn); err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// MigratePostgres brings the schema up to date
func MigratePostgres(dsn string) error {
	logger := log.GetLogger().WithModule("checkpoint.postgres")

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("checkpoint schema is up to date", "version", version, "dirty", dirty)
	return nil
}

// migrateURL rewrites a postgres URL to the scheme of the migrate pgx/v5 driver
func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

func (p *Postgres) Load(ctx context.Context, key string) (uint64, bool, error) {
	var height int64
	err := p.db.QueryRowContext(ctx, queryLoad, key).Scan(&height)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("failed to load checkpoint %s: %w", key, err)
	}
	return uint64(height), true, nil
}

func (p *Postgres) Save(ctx context.Context, key string, height uint64) error {
	res, err := p.db.ExecContext(ctx, querySave, key, int64(height))
	if err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: key=%s, given=%d", ErrRegression, key, height)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
