package psql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

// Store implements repository.Store on a pool or on an open transaction
type Store struct {
	db TxBeginner
}

// NewStore creates a store backed by db, usually a *pgxpool.Pool
func NewStore(db TxBeginner) *Store {
	return &Store{db: db}
}

// NewPool connects to PostgreSQL and verifies the connection
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// WithTx runs fn inside a transaction, or a savepoint when the store is
// already transactional. Errors from fn are returned unchanged.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	var fnErr error
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		fnErr = fn(&Store{db: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return &domain.StorageError{Op: "transaction", Err: err}
	}
	return nil
}

func (s *Store) Contents() repository.ContentRepository {
	return NewContentRepository(s.db)
}

func (s *Store) Tracks() repository.TrackRepository {
	return NewTrackRepository(s.db)
}

func (s *Store) ContentTracks() repository.ContentTrackRepository {
	return NewContentTrackRepository(s.db)
}

func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.db)
}
