package models

import "time"

// HistoryEntry records that an account watched a media item. There is at
// most one entry per (account, media) pair; rewatching refreshes WatchedAt.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	MediaID   string    `json:"mediaId"`
	Title     string    `json:"title"`
	PosterURL string    `json:"posterUrl,omitempty"`
	WatchedAt time.Time `json:"watchedAt"`
}
