package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/logger"

	_ "github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	pgCfg := cfg.Private.Pg
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Querier abstracts *sql.DB and *sql.Tx so core query logic stays
// transaction-agnostic.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// uniqueSlug appends -2, -3, ... until the slug is free in table. table is
// always a compile-time constant, never user input.
func uniqueSlug(ctx context.Context, q Querier, table, slug string) (string, error) {
	if slug == "" {
		return slug, nil
	}
	candidate := slug
	for i := 2; ; i++ {
		var exists bool
		err := q.QueryRowContext(ctx,
			fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1)", table),
			candidate).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}
