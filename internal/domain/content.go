package domain

import (
	"time"
)

// Content represents one cataloged video
type Content struct {
	ID          int64     `json:"id"`
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Duration    int       `json:"duration"` // whole seconds
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`

	// Tracks is filled on reads and after create/update; it is not a column.
	Tracks []LinkedTrack `json:"tracks,omitempty"`
}

// Track represents a reusable topic label
type Track struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContentTrack links one Content to one Track
type ContentTrack struct {
	ContentID int64     `json:"contentId"`
	TrackID   int64     `json:"trackId"`
	Position  *int      `json:"position,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LinkedTrack is a Track as seen through a content's track list
type LinkedTrack struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position *int   `json:"position,omitempty"`
}

// User is an account that can obtain access tokens
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"createdAt"`
}
