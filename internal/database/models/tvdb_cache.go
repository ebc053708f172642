package models

import (
	"database/sql"
	"time"
)

// WatchingItem is one entry of the custom-list payload served to Sonarr.
// A TVDBId of 0 means the title could not be resolved.
type WatchingItem struct {
	Title  string `json:"title"`
	TVDBId int    `json:"tvdbId"`
}

// TVDBCacheRepository persists resolved series name -> TVDB id pairs.
// Staleness is evaluated at read time; stale rows stay in place until the
// next successful resolution overwrites them.
type TVDBCacheRepository struct {
	db     *sql.DB
	maxAge time.Duration
}

func NewTVDBCacheRepository(db *sql.DB, maxAge time.Duration) *TVDBCacheRepository {
	return &TVDBCacheRepository{db: db, maxAge: maxAge}
}

// Get returns the cached TVDB id for seriesName. The second return value is
// false when there is no row or the row is older than the expiry window.
func (r *TVDBCacheRepository) Get(seriesName string) (int, bool, error) {
	row := r.db.QueryRow(
		"SELECT tvdb_id, created_at FROM tvdb_cache WHERE series_name = ?",
		seriesName,
	)

	var tvdbID int
	var createdAt string
	if err := row.Scan(&tvdbID, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}

	resolvedAt, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		// Unparseable timestamp, treat as stale
		return 0, false, nil
	}
	if time.Since(resolvedAt) >= r.maxAge {
		return 0, false, nil
	}
	return tvdbID, true, nil
}

// Set inserts or replaces the entry for seriesName with the current timestamp.
func (r *TVDBCacheRepository) Set(seriesName string, tvdbID int) error {
	_, err := r.db.Exec(
		"REPLACE INTO tvdb_cache (series_name, tvdb_id, created_at) VALUES (?, ?, ?)",
		seriesName, tvdbID, time.Now().Format(time.RFC3339Nano),
	)
	return err
}

// Count reports how many entries the cache holds, stale rows included.
func (r *TVDBCacheRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM tvdb_cache").Scan(&n)
	return n, err
}
