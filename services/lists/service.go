package lists

import (
	"database/sql"
	"fmt"
	"time"

	"ignisplay/internal/database"
	"ignisplay/models"
)

// Service owns the per-account media lists: viewing history, favorites and
// watchlist. Every operation is scoped by account id; calls with a zero
// account id or an empty media identity fall back to a safe default
// (false, empty slice, no mutation) instead of failing.
type Service struct {
	db *database.DB

	// now is swapped out by tests to control watched_at values.
	now func() time.Time
}

// NewService creates a list service on top of the shared database handle.
func NewService(db *database.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// AddToHistory records that the account watched the given media. At most
// one history row exists per (account, media) pair; rewatching refreshes
// the watched_at timestamp on the existing row.
func (s *Service) AddToHistory(accountID int64, media models.MediaRef) error {
	if accountID == 0 || media.ID == "" {
		return nil
	}

	_, err := s.db.Connection().Exec(`
		INSERT INTO history (user_id, media_id, title, poster_url, watched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, media_id) DO UPDATE SET watched_at = excluded.watched_at`,
		accountID, media.ID, media.Title, media.PosterURL, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// History returns the account's viewing history, most recently watched
// first. The result is a snapshot, not a live view.
func (s *Service) History(accountID int64) ([]models.HistoryEntry, error) {
	if accountID == 0 {
		return []models.HistoryEntry{}, nil
	}

	rows, err := s.db.Connection().Query(`
		SELECT id, user_id, media_id, title, poster_url, watched_at
		FROM history WHERE user_id = ? ORDER BY watched_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.MediaID, &e.Title, &e.PosterURL, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ToggleFavorite flips favorite membership for the media and reports the
// resulting state: true when the item is now favorited.
func (s *Service) ToggleFavorite(accountID int64, media models.MediaRef) (bool, error) {
	return s.toggle("favorites", accountID, media)
}

// IsFavorite reports whether the media is currently favorited.
func (s *Service) IsFavorite(accountID int64, mediaID string) (bool, error) {
	return s.contains("favorites", accountID, mediaID)
}

// Favorites returns the account's favorites in stored order.
func (s *Service) Favorites(accountID int64) ([]models.ListEntry, error) {
	return s.list("favorites", accountID)
}

// ToggleWatchlist flips watchlist membership for the media and reports the
// resulting state: true when the item is now on the list.
func (s *Service) ToggleWatchlist(accountID int64, media models.MediaRef) (bool, error) {
	return s.toggle("watchlist", accountID, media)
}

// IsInWatchlist reports whether the media is currently on the watchlist.
func (s *Service) IsInWatchlist(accountID int64, mediaID string) (bool, error) {
	return s.contains("watchlist", accountID, mediaID)
}

// Watchlist returns the account's watchlist in stored order.
func (s *Service) Watchlist(accountID int64) ([]models.ListEntry, error) {
	return s.list("watchlist", accountID)
}

// toggle removes the membership row when present, inserts it when absent.
// The unique (user_id, media_id) index makes a concurrent double-insert
// impossible; the loser of that race sees a no-op insert and still
// reports membership.
func (s *Service) toggle(table string, accountID int64, media models.MediaRef) (bool, error) {
	if accountID == 0 || media.ID == "" {
		return false, nil
	}

	conn := s.db.Connection()

	res, err := conn.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND media_id = ?", table),
		accountID, media.ID,
	)
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return false, nil
	}

	_, err = conn.Exec(
		fmt.Sprintf(`INSERT INTO %s (user_id, media_id, title, poster_url) VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, media_id) DO NOTHING`, table),
		accountID, media.ID, media.Title, media.PosterURL,
	)
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", table, err)
	}
	return true, nil
}

func (s *Service) contains(table string, accountID int64, mediaID string) (bool, error) {
	if accountID == 0 || mediaID == "" {
		return false, nil
	}

	var one int
	err := s.db.Connection().QueryRow(
		fmt.Sprintf("SELECT 1 FROM %s WHERE user_id = ? AND media_id = ?", table),
		accountID, mediaID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", table, err)
	}
	return true, nil
}

func (s *Service) list(table string, accountID int64) ([]models.ListEntry, error) {
	if accountID == 0 {
		return []models.ListEntry{}, nil
	}

	rows, err := s.db.Connection().Query(
		fmt.Sprintf("SELECT id, user_id, media_id, title, poster_url FROM %s WHERE user_id = ?", table),
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	entries := []models.ListEntry{}
	for rows.Next() {
		var e models.ListEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.MediaID, &e.Title, &e.PosterURL); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
