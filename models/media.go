package models

const (
	// MediaTypeMovie and MediaTypeSeries are the two media kinds the
	// catalog provider distinguishes.
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

// MediaSummary is a catalog item as returned by the metadata provider.
type MediaSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PosterURL   string `json:"posterUrl,omitempty"`
	BackdropURL string `json:"backdropUrl,omitempty"`
	Overview    string `json:"overview,omitempty"`
	Year        string `json:"year,omitempty"`
	Rating      string `json:"rating,omitempty"`
	MediaType   string `json:"mediaType"` // movie | series
}

// Key returns a stable identifier combining media type and ID.
func (m MediaSummary) Key() string {
	return m.MediaType + ":" + m.ID
}

// MediaRef carries the minimal media identity persisted alongside
// per-account list entries.
type MediaRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"posterUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

// Ref projects a summary down to the identity stored in list tables.
func (m MediaSummary) Ref() MediaRef {
	return MediaRef{
		ID:        m.ID,
		Title:     m.Title,
		PosterURL: m.PosterURL,
		MediaType: m.MediaType,
	}
}
