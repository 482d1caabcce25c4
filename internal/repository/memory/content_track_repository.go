package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

type contentTrackRepository struct {
	store *Store
}

// Link creates missing links; existing pairs keep their position
func (r *contentTrackRepository) Link(ctx context.Context, contentID int64, trackIDs []int64) error {
	ids, positions := repository.LinkPositions(trackIDs)
	return r.store.do(func(d *dataset) error {
		if _, ok := d.contents[contentID]; !ok {
			return fmt.Errorf("link content %d: %w", contentID, domain.ErrContentNotFound)
		}
		for _, id := range ids {
			if _, ok := d.tracks[id]; !ok {
				return fmt.Errorf("link track %d: %w", id, domain.ErrTrackNotFound)
			}
		}

		now := r.store.now()
		for i, id := range ids {
			key := linkKey{contentID: contentID, trackID: id}
			if _, exists := d.links[key]; exists {
				continue
			}
			pos := int(positions[i])
			d.links[key] = domain.ContentTrack{
				ContentID: contentID,
				TrackID:   id,
				Position:  &pos,
				CreatedAt: now,
			}
		}
		return nil
	})
}

func (r *contentTrackRepository) ListByContent(ctx context.Context, contentID int64) ([]domain.LinkedTrack, error) {
	var out []domain.LinkedTrack
	err := r.store.do(func(d *dataset) error {
		for k, link := range d.links {
			if k.contentID != contentID {
				continue
			}
			t := d.tracks[k.trackID]
			out = append(out, domain.LinkedTrack{ID: t.ID, Name: t.Name, Position: link.Position})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Position, out[j].Position
		switch {
		case pi != nil && pj != nil && *pi != *pj:
			return *pi < *pj
		case pi == nil && pj != nil:
			return false
		case pi != nil && pj == nil:
			return true
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
