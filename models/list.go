package models

// ListEntry is a membership row in one of the per-account media lists
// (favorites or watchlist). The row's existence is the membership
// predicate; there is no flag column.
type ListEntry struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	MediaID   string `json:"mediaId"`
	Title     string `json:"title"`
	PosterURL string `json:"posterUrl,omitempty"`
}
