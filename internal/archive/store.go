package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	_ "modernc.org/sqlite"
)

// Store is a local SQLite archive of users' listening histories
type Store struct {
	db *sql.DB
}

// Play is one archived play of a track
type Play struct {
	ID       int64
	User     string
	Track    string
	Artist   string
	Album    string
	PlayedAt time.Time
	Loved    bool
	URL      string
}

// ArtistCount is an artist with the number of archived plays
type ArtistCount struct {
	Artist string
	Plays  int
}

// Open opens (or creates) the archive at dbPath
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL,
			track TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL DEFAULT '',
			played_at INTEGER NOT NULL,
			loved BOOLEAN NOT NULL DEFAULT 0,
			url TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
			UNIQUE (user, played_at, artist, track)
		);

		CREATE INDEX IF NOT EXISTS idx_user_played_at ON plays(user, played_at);

		CREATE TABLE IF NOT EXISTS sync_gaps (
			user TEXT PRIMARY KEY,
			gap_from INTEGER NOT NULL DEFAULT 0,
			gap_to INTEGER NOT NULL DEFAULT 0
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save archives the finished plays among tracks and returns how many were
// new. Tracks that are still playing are skipped, and plays already in the
// archive are left untouched apart from their loved flag.
func (s *Store) Save(ctx context.Context, user string, tracks []lastfm.Track) (int, error) {
	if len(tracks) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plays (user, track, artist, album, played_at, loved, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user, played_at, artist, track) DO UPDATE SET loved = excluded.loved
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	before, err := countTx(ctx, tx, user)
	if err != nil {
		return 0, err
	}

	for _, t := range tracks {
		if t.NowPlaying {
			continue
		}
		_, err := stmt.ExecContext(ctx,
			user,
			t.Name,
			t.Artist.Name(),
			t.Album.Name,
			t.PlayedAt.Unix(),
			t.Loved,
			t.URL,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert play %q: %w", t.Name, err)
		}
	}

	after, err := countTx(ctx, tx, user)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return after - before, nil
}

// Latest returns the time of the user's newest archived play. ok is false
// when nothing is archived for the user.
func (s *Store) Latest(ctx context.Context, user string) (latest time.Time, ok bool, err error) {
	var unix sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		"SELECT MAX(played_at) FROM plays WHERE user = ?", user,
	).Scan(&unix)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query latest play: %w", err)
	}
	if !unix.Valid {
		return time.Time{}, false, nil
	}
	return time.Unix(unix.Int64, 0).UTC(), true, nil
}

// Gap is a range of a user's history that a sync started but did not
// finish. A zero From or To leaves that side unbounded.
type Gap struct {
	From time.Time
	To   time.Time
}

// Gap returns the user's unfinished sync range. ok is false when there is
// none.
func (s *Store) Gap(ctx context.Context, user string) (gap Gap, ok bool, err error) {
	var from, to int64
	err = s.db.QueryRowContext(ctx,
		"SELECT gap_from, gap_to FROM sync_gaps WHERE user = ?", user,
	).Scan(&from, &to)
	if errors.Is(err, sql.ErrNoRows) {
		return Gap{}, false, nil
	}
	if err != nil {
		return Gap{}, false, fmt.Errorf("failed to query sync gap: %w", err)
	}
	return Gap{From: fromUnix(from), To: fromUnix(to)}, true, nil
}

// SetGap records the user's unfinished sync range, replacing any previous one
func (s *Store) SetGap(ctx context.Context, user string, gap Gap) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_gaps (user, gap_from, gap_to) VALUES (?, ?, ?)
		ON CONFLICT (user) DO UPDATE SET gap_from = excluded.gap_from, gap_to = excluded.gap_to
	`, user, toUnix(gap.From), toUnix(gap.To))
	if err != nil {
		return fmt.Errorf("failed to save sync gap: %w", err)
	}
	return nil
}

// ClearGap forgets the user's unfinished sync range
func (s *Store) ClearGap(ctx context.Context, user string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sync_gaps WHERE user = ?", user); err != nil {
		return fmt.Errorf("failed to clear sync gap: %w", err)
	}
	return nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(unix int64) time.Time {
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}

// Count returns the number of archived plays of user
func (s *Store) Count(ctx context.Context, user string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM plays WHERE user = ?", user).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return count, nil
}

// Recent returns the user's newest plays, newest first.
// A limit of 0 or less returns every play.
func (s *Store) Recent(ctx context.Context, user string, limit int) ([]Play, error) {
	query := `
		SELECT id, user, track, artist, album, played_at, loved, url
		FROM plays
		WHERE user = ?
		ORDER BY played_at DESC, id DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var playedAt int64

		err := rows.Scan(&p.ID, &p.User, &p.Track, &p.Artist, &p.Album, &playedAt, &p.Loved, &p.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}

		p.PlayedAt = time.Unix(playedAt, 0).UTC()
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plays: %w", err)
	}

	return plays, nil
}

// TopArtists returns the user's most played artists in the archive
func (s *Store) TopArtists(ctx context.Context, user string, limit int) ([]ArtistCount, error) {
	query := `
		SELECT artist, COUNT(*) AS plays
		FROM plays
		WHERE user = ?
		GROUP BY artist
		ORDER BY plays DESC, artist ASC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query top artists: %w", err)
	}
	defer rows.Close()

	var artists []ArtistCount
	for rows.Next() {
		var a ArtistCount
		if err := rows.Scan(&a.Artist, &a.Plays); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, nil
}

// Prune removes the user's plays older than before
func (s *Store) Prune(ctx context.Context, user string, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM plays WHERE user = ? AND played_at < ?",
		user, before.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune plays: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func countTx(ctx context.Context, tx *sql.Tx, user string) (int, error) {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM plays WHERE user = ?", user).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return count, nil
}
