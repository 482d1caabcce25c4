// Package memory provides an in-memory Store with the same transaction
// semantics as the PostgreSQL one. Transactions are serialized.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

type linkKey struct {
	contentID int64
	trackID   int64
}

type dataset struct {
	contents map[int64]domain.Content
	tracks   map[int64]domain.Track
	links    map[linkKey]domain.ContentTrack
	users    map[int64]domain.User

	nextContentID int64
	nextTrackID   int64
	nextUserID    int64
}

func newDataset() *dataset {
	return &dataset{
		contents: make(map[int64]domain.Content),
		tracks:   make(map[int64]domain.Track),
		links:    make(map[linkKey]domain.ContentTrack),
		users:    make(map[int64]domain.User),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		contents:      make(map[int64]domain.Content, len(d.contents)),
		tracks:        make(map[int64]domain.Track, len(d.tracks)),
		links:         make(map[linkKey]domain.ContentTrack, len(d.links)),
		users:         make(map[int64]domain.User, len(d.users)),
		nextContentID: d.nextContentID,
		nextTrackID:   d.nextTrackID,
		nextUserID:    d.nextUserID,
	}
	for k, v := range d.contents {
		c.contents[k] = v
	}
	for k, v := range d.tracks {
		c.tracks[k] = v
	}
	for k, v := range d.links {
		c.links[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// Store is an in-memory implementation of repository.Store
type Store struct {
	mu  *sync.Mutex
	now func() time.Time

	// shared is the committed dataset; tx is set on transactional views.
	shared **dataset
	tx     *dataset
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	d := newDataset()
	return &Store{
		mu:     &sync.Mutex{},
		now:    func() time.Time { return time.Now().UTC() },
		shared: &d,
	}
}

// do runs fn against the dataset visible to this view. Outside a
// transaction it takes the store lock; inside, the lock is already held by
// the enclosing WithTx.
func (s *Store) do(fn func(d *dataset) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(*s.shared)
}

// WithTx runs fn on a snapshot and publishes it only if fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "begin", Err: err}
	}

	if s.tx != nil {
		view := &Store{mu: s.mu, now: s.now, shared: s.shared, tx: s.tx.clone()}
		if err := fn(view); err != nil {
			return err
		}
		*s.tx = *view.tx
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := &Store{mu: s.mu, now: s.now, shared: s.shared, tx: (*s.shared).clone()}
	if err := fn(view); err != nil {
		return err
	}
	*s.shared = view.tx
	return nil
}

func (s *Store) Contents() repository.ContentRepository {
	return &contentRepository{store: s}
}

func (s *Store) Tracks() repository.TrackRepository {
	return &trackRepository{store: s}
}

func (s *Store) ContentTracks() repository.ContentTrackRepository {
	return &contentTrackRepository{store: s}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Counts reports the number of stored contents, tracks and links
func (s *Store) Counts() (contents, tracks, links int) {
	_ = s.do(func(d *dataset) error {
		contents, tracks, links = len(d.contents), len(d.tracks), len(d.links)
		return nil
	})
	return contents, tracks, links
}

func paginate[T any](rows []T, page domain.PageRequest) []T {
	if page.Offset < 0 || page.Offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if page.Limit > 0 && page.Limit < end-page.Offset {
		end = page.Offset + page.Limit
	}
	return rows[page.Offset:end]
}
