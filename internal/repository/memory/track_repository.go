package memory

import (
	"context"
	"sort"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

type trackRepository struct {
	store *Store
}

// Upsert inserts missing names and returns every distinct name's track
func (r *trackRepository) Upsert(ctx context.Context, names []string) ([]domain.Track, error) {
	var out []domain.Track
	err := r.store.do(func(d *dataset) error {
		byName := make(map[string]domain.Track, len(d.tracks))
		for _, t := range d.tracks {
			byName[t.Name] = t
		}

		for _, name := range repository.DistinctNames(names) {
			t, ok := byName[name]
			if !ok {
				d.nextTrackID++
				t = domain.Track{ID: d.nextTrackID, Name: name, CreatedAt: r.store.now()}
				d.tracks[t.ID] = t
			}
			out = append(out, t)
		}
		return nil
	})
	return out, err
}

func (r *trackRepository) Get(ctx context.Context, id int64) (*domain.Track, error) {
	var out *domain.Track
	err := r.store.do(func(d *dataset) error {
		t, ok := d.tracks[id]
		if !ok {
			return domain.ErrTrackNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *trackRepository) Rename(ctx context.Context, id int64, name string) error {
	return r.store.do(func(d *dataset) error {
		t, ok := d.tracks[id]
		if !ok {
			return domain.ErrTrackNotFound
		}
		for _, other := range d.tracks {
			if other.ID != id && other.Name == name {
				return domain.ErrTrackExists
			}
		}
		t.Name = name
		d.tracks[id] = t
		return nil
	})
}

// Delete removes a track and its links
func (r *trackRepository) Delete(ctx context.Context, id int64) error {
	return r.store.do(func(d *dataset) error {
		if _, ok := d.tracks[id]; !ok {
			return domain.ErrTrackNotFound
		}
		delete(d.tracks, id)
		for k := range d.links {
			if k.trackID == id {
				delete(d.links, k)
			}
		}
		return nil
	})
}

func (r *trackRepository) List(ctx context.Context, page domain.PageRequest, filter domain.SearchFilter) ([]*domain.Track, int, error) {
	var (
		out   []*domain.Track
		total int
	)
	err := r.store.do(func(d *dataset) error {
		matched := make([]*domain.Track, 0, len(d.tracks))
		for _, t := range d.tracks {
			values := make([]string, 0, len(filter.Fields))
			for _, f := range filter.Fields {
				if f == "name" {
					values = append(values, t.Name)
				}
			}
			if !filter.Match(values...) {
				continue
			}
			matched = append(matched, &t)
		}
		sort.Slice(matched, func(i, j int) bool {
			return newerFirst(matched[i].CreatedAt.UnixNano(), matched[i].ID, matched[j].CreatedAt.UnixNano(), matched[j].ID)
		})
		total = len(matched)
		out = paginate(matched, page)
		return nil
	})
	return out, total, err
}
