package repository

import (
	"context"

	"github.com/tendant/learning-tracks/internal/domain"
)

// ContentRepository defines the interface for content operations
type ContentRepository interface {
	// Create inserts content and fills its ID and CreatedAt. A duplicate
	// video id fails with domain.ErrContentExists.
	Create(ctx context.Context, content *domain.Content) error
	Get(ctx context.Context, id int64) (*domain.Content, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Content, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page domain.PageRequest, filter domain.SearchFilter) ([]*domain.Content, int, error)
}

// TrackRepository defines the interface for track operations
type TrackRepository interface {
	// Upsert makes sure a track exists for every distinct name and returns
	// them in order of first occurrence. Names that already exist, or that a
	// concurrent writer inserts first, resolve to the stored row.
	Upsert(ctx context.Context, names []string) ([]domain.Track, error)
	Get(ctx context.Context, id int64) (*domain.Track, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page domain.PageRequest, filter domain.SearchFilter) ([]*domain.Track, int, error)
}

// ContentTrackRepository defines the interface for content-track links
type ContentTrackRepository interface {
	// Link inserts one link per distinct track id. Pairs that are already
	// linked are skipped without error.
	Link(ctx context.Context, contentID int64, trackIDs []int64) error
	ListByContent(ctx context.Context, contentID int64) ([]domain.LinkedTrack, error)
}

// UserRepository defines the interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Store groups the repositories that share one transaction scope.
type Store interface {
	Contents() ContentRepository
	Tracks() TrackRepository
	ContentTracks() ContentTrackRepository
	Users() UserRepository

	// WithTx runs fn against a Store bound to a new transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithTx on a transactional Store opens a nested scope.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// DistinctNames returns names with duplicates removed, keeping the first
// occurrence of each.
func DistinctNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// LinkPositions returns the distinct track ids with the 1-based index of
// their first occurrence in trackIDs.
func LinkPositions(trackIDs []int64) ([]int64, []int32) {
	seen := make(map[int64]struct{}, len(trackIDs))
	ids := make([]int64, 0, len(trackIDs))
	positions := make([]int32, 0, len(trackIDs))
	for i, id := range trackIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		positions = append(positions, int32(i+1))
	}
	return ids, positions
}

// OrderByNames arranges tracks in the order their names appear in names.
// Names without a matching track are reported in missing.
func OrderByNames(names []string, tracks []domain.Track) (ordered []domain.Track, missing []string) {
	byName := make(map[string]domain.Track, len(tracks))
	for _, t := range tracks {
		byName[t.Name] = t
	}
	for _, n := range DistinctNames(names) {
		t, ok := byName[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		ordered = append(ordered, t)
	}
	return ordered, missing
}
