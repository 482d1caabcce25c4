package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
	"github.com/tendant/learning-tracks/internal/youtube"
)

// VideoResolver fetches metadata for an external video id
type VideoResolver interface {
	Resolve(ctx context.Context, videoID string) (*youtube.VideoData, error)
}

// ContentSearchFields are the columns content search matches against
var ContentSearchFields = []string{"title", "description"}

// CreateContentRequest carries a video id and optional track labels
type CreateContentRequest struct {
	VideoID string
	Tracks  []string
}

// UpdateContentRequest sets the completed flag and attaches optional track labels
type UpdateContentRequest struct {
	Completed bool
	Tracks    []string
}

// ListRequest selects one page of a search
type ListRequest struct {
	Query      string
	PageNumber *int
	PageSize   *int
}

// ContentService handles content-related operations. Create and Update run
// content persistence, track upsert and linking in one transaction.
type ContentService struct {
	store    repository.Store
	resolver VideoResolver
}

// NewContentService creates a new content service
func NewContentService(store repository.Store, resolver VideoResolver) *ContentService {
	return &ContentService{
		store:    store,
		resolver: resolver,
	}
}

// Create resolves the video, validates the labels and stores the content
// with its tracks. Nothing is written when resolution or validation fails.
func (s *ContentService) Create(ctx context.Context, req CreateContentRequest) (*domain.Content, error) {
	videoID := strings.TrimSpace(req.VideoID)
	if videoID == "" {
		return nil, domain.ErrVideoIDRequired
	}

	video, err := s.resolver.Resolve(ctx, videoID)
	if err != nil {
		return nil, &domain.ContentError{Op: "resolve video", Err: err}
	}

	if err := domain.ValidateTrackNames(req.Tracks); err != nil {
		return nil, err
	}

	content := &domain.Content{
		VideoID:     videoID,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Contents().Create(ctx, content); err != nil {
			return err
		}
		if len(req.Tracks) == 0 {
			return nil
		}
		linked, err := attachTracks(ctx, tx, content.ID, req.Tracks)
		if err != nil {
			return err
		}
		content.Tracks = linked
		return nil
	})
	if err != nil {
		return nil, &domain.ContentError{Op: "create", Err: err}
	}

	slog.Info("content created", "content_id", content.ID, "video_id", content.VideoID, "tracks", len(content.Tracks))
	return content, nil
}

// Update sets the completed flag and links any new labels. Existing links
// are kept.
func (s *ContentService) Update(ctx context.Context, id int64, req UpdateContentRequest) (*domain.Content, error) {
	if err := domain.ValidateTrackNames(req.Tracks); err != nil {
		return nil, err
	}

	var content *domain.Content
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		content, err = tx.Contents().SetCompleted(ctx, id, req.Completed)
		if err != nil {
			return err
		}
		if len(req.Tracks) > 0 {
			if _, err := attachTracks(ctx, tx, id, req.Tracks); err != nil {
				return err
			}
		}
		content.Tracks, err = tx.ContentTracks().ListByContent(ctx, id)
		return err
	})
	if err != nil {
		return nil, &domain.ContentError{ContentID: id, Op: "update", Err: err}
	}

	slog.Info("content updated", "content_id", id, "completed", req.Completed, "tracks", len(req.Tracks))
	return content, nil
}

// attachTracks upserts the labels and links them to the content, returning
// the content's resulting track list.
func attachTracks(ctx context.Context, tx repository.Store, contentID int64, labels []string) ([]domain.LinkedTrack, error) {
	tracks, err := tx.Tracks().Upsert(ctx, labels)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int64, len(tracks))
	for _, t := range tracks {
		byName[t.Name] = t.ID
	}
	// Keep one id per input label so positions follow the request order.
	ids := make([]int64, 0, len(labels))
	for _, label := range labels {
		ids = append(ids, byName[label])
	}

	if err := tx.ContentTracks().Link(ctx, contentID, ids); err != nil {
		return nil, err
	}
	return tx.ContentTracks().ListByContent(ctx, contentID)
}

// Get retrieves a content with its tracks
func (s *ContentService) Get(ctx context.Context, id int64) (*domain.Content, error) {
	content, err := s.store.Contents().Get(ctx, id)
	if err != nil {
		return nil, &domain.ContentError{ContentID: id, Op: "get", Err: err}
	}
	content.Tracks, err = s.store.ContentTracks().ListByContent(ctx, id)
	if err != nil {
		return nil, &domain.ContentError{ContentID: id, Op: "get tracks", Err: err}
	}
	return content, nil
}

// List searches title and description, newest first
func (s *ContentService) List(ctx context.Context, req ListRequest) (*domain.Page[*domain.Content], error) {
	page := domain.Paginate(req.PageNumber, req.PageSize)
	filter := domain.NewSearchFilter(req.Query, ContentSearchFields...)

	contents, total, err := s.store.Contents().List(ctx, page, filter)
	if err != nil {
		return nil, &domain.ContentError{Op: "list", Err: err}
	}
	return &domain.Page[*domain.Content]{Results: contents, Total: total}, nil
}

// Delete removes a content; its links go with it
func (s *ContentService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Contents().Delete(ctx, id); err != nil {
		return &domain.ContentError{ContentID: id, Op: "delete", Err: err}
	}
	slog.Info("content deleted", "content_id", id)
	return nil
}
