package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

// PSQLTrackRepository implements the TrackRepository interface
type PSQLTrackRepository struct {
	BaseRepository
}

// NewTrackRepository creates a new PostgreSQL track repository
func NewTrackRepository(db DBTX) *PSQLTrackRepository {
	return &PSQLTrackRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Upsert inserts the missing names in one statement, letting the unique
// constraint settle races, then reads back every requested row. Names are
// inserted in sorted order so concurrent upserts lock rows in the same order.
func (r *PSQLTrackRepository) Upsert(ctx context.Context, names []string) ([]domain.Track, error) {
	distinct := repository.DistinctNames(names)
	if len(distinct) == 0 {
		return []domain.Track{}, nil
	}

	insert := `
		INSERT INTO tracks (name)
		SELECT n FROM unnest($1::text[]) AS n ORDER BY n
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, distinct); err != nil {
		return nil, handlePostgresError("upsert tracks", err)
	}

	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM tracks WHERE name = ANY($1::text[])`, distinct)
	if err != nil {
		return nil, handlePostgresError("select upserted tracks", err)
	}
	defer rows.Close()

	found := make([]domain.Track, 0, len(distinct))
	for rows.Next() {
		var t domain.Track
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, handlePostgresError("scan track", err)
		}
		found = append(found, t)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("select upserted tracks", err)
	}

	ordered, missing := repository.OrderByNames(distinct, found)
	if len(missing) > 0 {
		return nil, &domain.StorageError{Op: "upsert tracks", Err: fmt.Errorf("tracks %q vanished during upsert", missing)}
	}
	return ordered, nil
}

// Get implements TrackRepository.Get
func (r *PSQLTrackRepository) Get(ctx context.Context, id int64) (*domain.Track, error) {
	var t domain.Track
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM tracks WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrackNotFound
		}
		return nil, handlePostgresError("get track", err)
	}
	return &t, nil
}

// Rename implements TrackRepository.Rename
func (r *PSQLTrackRepository) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE tracks SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return handlePostgresError("rename track", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTrackNotFound
	}
	return nil
}

// Delete implements TrackRepository.Delete; links go with the row
func (r *PSQLTrackRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tracks WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete track", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTrackNotFound
	}
	return nil
}

// List implements TrackRepository.List
func (r *PSQLTrackRepository) List(ctx context.Context, page domain.PageRequest, filter domain.SearchFilter) ([]*domain.Track, int, error) {
	where, args := searchClause(filter, 1)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tracks `+where, args...).Scan(&total); err != nil {
		return nil, 0, handlePostgresError("count tracks", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT id, name, created_at FROM tracks %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, handlePostgresError("list tracks", err)
	}
	defer rows.Close()

	tracks := []*domain.Track{}
	for rows.Next() {
		var t domain.Track
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, 0, handlePostgresError("scan track", err)
		}
		tracks = append(tracks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, handlePostgresError("list tracks", err)
	}
	return tracks, total, nil
}
