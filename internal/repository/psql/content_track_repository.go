package psql

import (
	"context"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

// PSQLContentTrackRepository implements the ContentTrackRepository interface
type PSQLContentTrackRepository struct {
	BaseRepository
}

// NewContentTrackRepository creates a new PostgreSQL link repository
func NewContentTrackRepository(db DBTX) *PSQLContentTrackRepository {
	return &PSQLContentTrackRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Link implements ContentTrackRepository.Link
func (r *PSQLContentTrackRepository) Link(ctx context.Context, contentID int64, trackIDs []int64) error {
	ids, positions := repository.LinkPositions(trackIDs)
	if len(ids) == 0 {
		return nil
	}

	query := `
		INSERT INTO contents_tracks (id_content, id_track, position)
		SELECT $1, t.id_track, t.position
		FROM unnest($2::bigint[], $3::int[]) AS t(id_track, position)
		ON CONFLICT (id_content, id_track) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, contentID, ids, positions); err != nil {
		return handlePostgresError("link tracks", err)
	}
	return nil
}

// ListByContent implements ContentTrackRepository.ListByContent
func (r *PSQLContentTrackRepository) ListByContent(ctx context.Context, contentID int64) ([]domain.LinkedTrack, error) {
	query := `
		SELECT t.id, t.name, ct.position
		FROM contents_tracks ct
		JOIN tracks t ON t.id = ct.id_track
		WHERE ct.id_content = $1
		ORDER BY ct.position NULLS LAST, t.id
	`
	rows, err := r.db.Query(ctx, query, contentID)
	if err != nil {
		return nil, handlePostgresError("list content tracks", err)
	}
	defer rows.Close()

	var linked []domain.LinkedTrack
	for rows.Next() {
		var (
			l   domain.LinkedTrack
			pos *int32
		)
		if err := rows.Scan(&l.ID, &l.Name, &pos); err != nil {
			return nil, handlePostgresError("scan content track", err)
		}
		if pos != nil {
			p := int(*pos)
			l.Position = &p
		}
		linked = append(linked, l)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list content tracks", err)
	}
	return linked, nil
}
