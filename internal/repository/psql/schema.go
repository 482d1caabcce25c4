package psql

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	password   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT uq_users_name UNIQUE (name),
	CONSTRAINT uq_users_email UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS contents (
	id          BIGSERIAL PRIMARY KEY,
	video_id    TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT,
	duration    INTEGER,
	completed   BOOLEAN NOT NULL DEFAULT false,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT uq_contents_video_id UNIQUE (video_id)
);

CREATE TABLE IF NOT EXISTS tracks (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT uq_tracks_name UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS contents_tracks (
	id_content BIGINT NOT NULL,
	id_track   BIGINT NOT NULL,
	position   INTEGER,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (id_content, id_track),
	CONSTRAINT fk_contents_tracks_content FOREIGN KEY (id_content) REFERENCES contents (id) ON DELETE CASCADE,
	CONSTRAINT fk_contents_tracks_track FOREIGN KEY (id_track) REFERENCES tracks (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contents_tracks_track_position ON contents_tracks (id_track, position);
`

// Migrate creates the tables when they do not exist yet
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
