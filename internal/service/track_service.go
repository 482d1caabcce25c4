package service

import (
	"context"
	"log/slog"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

// TrackSearchFields are the columns track search matches against
var TrackSearchFields = []string{"name"}

// TrackService handles track-related operations
type TrackService struct {
	store repository.Store
}

// NewTrackService creates a new track service
func NewTrackService(store repository.Store) *TrackService {
	return &TrackService{store: store}
}

// Create upserts the labels and returns one track per distinct label.
// Labels that already exist resolve to their stored track.
func (s *TrackService) Create(ctx context.Context, names []string) ([]domain.Track, error) {
	if err := domain.ValidateTrackNames(names); err != nil {
		return nil, err
	}

	var tracks []domain.Track
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		tracks, err = tx.Tracks().Upsert(ctx, names)
		return err
	})
	if err != nil {
		return nil, &domain.TrackError{Op: "create", Err: err}
	}

	slog.Info("tracks upserted", "requested", len(names), "resolved", len(tracks))
	return tracks, nil
}

// Get retrieves a track by ID
func (s *TrackService) Get(ctx context.Context, id int64) (*domain.Track, error) {
	track, err := s.store.Tracks().Get(ctx, id)
	if err != nil {
		return nil, &domain.TrackError{TrackID: id, Op: "get", Err: err}
	}
	return track, nil
}

// List searches track names, newest first
func (s *TrackService) List(ctx context.Context, req ListRequest) (*domain.Page[*domain.Track], error) {
	page := domain.Paginate(req.PageNumber, req.PageSize)
	filter := domain.NewSearchFilter(req.Query, TrackSearchFields...)

	tracks, total, err := s.store.Tracks().List(ctx, page, filter)
	if err != nil {
		return nil, &domain.TrackError{Op: "list", Err: err}
	}
	return &domain.Page[*domain.Track]{Results: tracks, Total: total}, nil
}

// Rename changes a track's name under the same label rule as creation
func (s *TrackService) Rename(ctx context.Context, id int64, name string) error {
	if err := domain.ValidateTrackNames([]string{name}); err != nil {
		return err
	}
	if err := s.store.Tracks().Rename(ctx, id, name); err != nil {
		return &domain.TrackError{TrackID: id, Op: "rename", Err: err}
	}
	slog.Info("track renamed", "track_id", id)
	return nil
}

// Delete removes a track; its links go with it
func (s *TrackService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Tracks().Delete(ctx, id); err != nil {
		return &domain.TrackError{TrackID: id, Op: "delete", Err: err}
	}
	slog.Info("track deleted", "track_id", id)
	return nil
}
