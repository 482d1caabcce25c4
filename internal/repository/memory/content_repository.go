package memory

import (
	"context"
	"sort"

	"github.com/tendant/learning-tracks/internal/domain"
)

type contentRepository struct {
	store *Store
}

// Create adds a new content; video ids are unique
func (r *contentRepository) Create(ctx context.Context, content *domain.Content) error {
	return r.store.do(func(d *dataset) error {
		for _, c := range d.contents {
			if c.VideoID == content.VideoID {
				return domain.ErrContentExists
			}
		}

		d.nextContentID++
		content.ID = d.nextContentID
		content.CreatedAt = r.store.now()

		stored := *content
		stored.Tracks = nil
		d.contents[stored.ID] = stored
		return nil
	})
}

// Get retrieves a content by ID
func (r *contentRepository) Get(ctx context.Context, id int64) (*domain.Content, error) {
	var out *domain.Content
	err := r.store.do(func(d *dataset) error {
		c, ok := d.contents[id]
		if !ok {
			return domain.ErrContentNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *contentRepository) SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Content, error) {
	var out *domain.Content
	err := r.store.do(func(d *dataset) error {
		c, ok := d.contents[id]
		if !ok {
			return domain.ErrContentNotFound
		}
		c.Completed = completed
		d.contents[id] = c
		out = &c
		return nil
	})
	return out, err
}

// Delete removes a content and its links
func (r *contentRepository) Delete(ctx context.Context, id int64) error {
	return r.store.do(func(d *dataset) error {
		if _, ok := d.contents[id]; !ok {
			return domain.ErrContentNotFound
		}
		delete(d.contents, id)
		for k := range d.links {
			if k.contentID == id {
				delete(d.links, k)
			}
		}
		return nil
	})
}

func (r *contentRepository) List(ctx context.Context, page domain.PageRequest, filter domain.SearchFilter) ([]*domain.Content, int, error) {
	var (
		out   []*domain.Content
		total int
	)
	err := r.store.do(func(d *dataset) error {
		matched := make([]*domain.Content, 0, len(d.contents))
		for _, c := range d.contents {
			values := make([]string, 0, len(filter.Fields))
			for _, f := range filter.Fields {
				values = append(values, contentField(c, f))
			}
			if !filter.Match(values...) {
				continue
			}
			matched = append(matched, &c)
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

func contentField(c domain.Content, field string) string {
	switch field {
	case "video_id":
		return c.VideoID
	case "title":
		return c.Title
	case "description":
		return c.Description
	}
	return ""
}

func newerFirst(atA, idA, atB, idB int64) bool {
	if atA != atB {
		return atA > atB
	}
	return idA > idB
}
