package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectTimeout  = 5 * time.Second
	queryTimeout    = 3 * time.Second
	pgUndefinedCode = "42P01"
)

var ErrNoGarmentsTable = errors.New("garments table does not exist")

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the seed set from a garments table. It never writes:
// garments added at runtime stay in memory only.
type PostgresSource struct {
	db querier
}

func NewPostgresSource(db querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// OpenPostgres connects a pool and pings it, failing fast when the database
// does not answer.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (s *PostgresSource) Load(ctx context.Context) ([]Garment, error) {
	out := make([]Garment, 0, 32)

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.Query(ctx, `
			SELECT description, img, COALESCE(gender, ''), COALESCE(season, ''), price
			FROM garments
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var g Garment
			if err := rows.Scan(&g.Description, &g.Img, &g.Gender, &g.Season, &g.Price); err != nil {
				return err
			}
			out = append(out, g)
		}
		return rows.Err()
	})

	if isUndefinedTable(err) {
		return nil, ErrNoGarmentsTable
	}
	if err != nil {
		return nil, fmt.Errorf("load garments: %w", err)
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedCode
}
