// Package store keeps a SQLite library of saved songs and the harvest runs
// that produced them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jfmyers9/verses/internal/catalog"
)

// ErrNotFound is returned when a song is not in the library.
var ErrNotFound = errors.New("not found")

// RunKind tells what a run saved.
type RunKind string

const (
	RunArtist RunKind = "artist"
	RunAlbum  RunKind = "album"
)

// Run is one saved artist harvest or album.
type Run struct {
	ID        string
	Kind      RunKind
	Name      string
	SourceID  int
	Songs     int
	CreatedAt time.Time
}

// Store manages the library database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the library database at path. Use
// ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			url TEXT,
			lyrics TEXT NOT NULL,
			data TEXT NOT NULL,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			source_id INTEGER NOT NULL,
			song_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS run_songs (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			song_id INTEGER NOT NULL REFERENCES songs(id),
			PRIMARY KEY (run_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist, saved_at);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveSong inserts or replaces a song.
func (s *Store) SaveSong(ctx context.Context, song *catalog.Song) error {
	return saveSong(ctx, s.db, song, time.Now())
}

func saveSong(ctx context.Context, db execer, song *catalog.Song, now time.Time) error {
	if song.ID <= 0 {
		return fmt.Errorf("song %q has no id", song.Title)
	}

	data, err := json.Marshal(song)
	if err != nil {
		return fmt.Errorf("failed to encode song %d: %w", song.ID, err)
	}

	album := ""
	if song.Album != nil {
		album = song.Album.Name
	}

	query := `
		INSERT INTO songs (id, title, artist, album, url, lyrics, data, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			url = excluded.url,
			lyrics = excluded.lyrics,
			data = excluded.data,
			saved_at = excluded.saved_at
	`

	if _, err := db.ExecContext(ctx, query,
		song.ID,
		song.Title,
		song.Artist,
		album,
		song.URL,
		song.Lyrics,
		string(data),
		now.Unix(),
	); err != nil {
		return fmt.Errorf("failed to save song %d: %w", song.ID, err)
	}

	return nil
}

// SaveArtist saves every song of the artist as one run.
func (s *Store) SaveArtist(ctx context.Context, artist *catalog.Artist) (Run, error) {
	return s.saveRun(ctx, RunArtist, artist.Name, artist.ID, artist.Songs())
}

// SaveAlbum saves every track of the album as one run.
func (s *Store) SaveAlbum(ctx context.Context, album *catalog.Album) (Run, error) {
	return s.saveRun(ctx, RunAlbum, album.Name, album.ID, album.Songs())
}

func (s *Store) saveRun(ctx context.Context, kind RunKind, name string, sourceID int, songs []*catalog.Song) (Run, error) {
	now := time.Now()
	run := Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Name:      name,
		SourceID:  sourceID,
		Songs:     len(songs),
		CreatedAt: time.Unix(now.Unix(), 0),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, kind, name, source_id, song_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Name, run.SourceID, run.Songs, now.Unix(),
	); err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, song := range songs {
		if err := saveSong(ctx, tx, song, now); err != nil {
			return Run{}, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_songs (run_id, position, song_id) VALUES (?, ?, ?)`,
			run.ID, i, song.ID,
		); err != nil {
			return Run{}, fmt.Errorf("failed to link song %d to run: %w", song.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return run, nil
}

// Song returns a saved song by id.
func (s *Store) Song(ctx context.Context, id int) (*catalog.Song, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM songs WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("song %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query song %d: %w", id, err)
	}

	var song catalog.Song
	if err := json.Unmarshal([]byte(data), &song); err != nil {
		return nil, fmt.Errorf("failed to decode song %d: %w", id, err)
	}
	return &song, nil
}

// Songs returns saved songs, newest first. An empty artist returns every
// artist's songs; limit <= 0 means no limit.
func (s *Store) Songs(ctx context.Context, artist string, limit int) ([]*catalog.Song, error) {
	query := `SELECT data FROM songs`
	var args []any
	if artist != "" {
		query += ` WHERE artist = ? COLLATE NOCASE`
		args = append(args, artist)
	}
	query += ` ORDER BY saved_at DESC, artist, title`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*catalog.Song
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}

		var song catalog.Song
		if err := json.Unmarshal([]byte(data), &song); err != nil {
			return nil, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}

	return songs, nil
}

// Runs returns saved runs, newest first. limit <= 0 means no limit.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, kind, name, source_id, song_count, created_at
		FROM runs
		ORDER BY created_at DESC, rowid DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var kind string
		var createdUnix int64

		if err := rows.Scan(&r.ID, &kind, &r.Name, &r.SourceID, &r.Songs, &createdUnix); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		r.Kind = RunKind(kind)
		r.CreatedAt = time.Unix(createdUnix, 0)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// RunSongs returns the songs of a run in their saved order.
func (s *Store) RunSongs(ctx context.Context, runID string) ([]*catalog.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.data
		FROM run_songs rs
		JOIN songs s ON s.id = rs.song_id
		WHERE rs.run_id = ?
		ORDER BY rs.position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run songs: %w", err)
	}
	defer rows.Close()

	var songs []*catalog.Song
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		var song catalog.Song
		if err := json.Unmarshal([]byte(data), &song); err != nil {
			return nil, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}

	return songs, nil
}

// Count returns the number of saved songs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
