package models

// PlaybackResolution describes where the client should point its playback
// surface for a media item.
type PlaybackResolution struct {
	ID        string `json:"id"`
	MediaID   string `json:"mediaId"`
	MediaType string `json:"mediaType"`
	Title     string `json:"title,omitempty"`
	EmbedURL  string `json:"embedUrl"`
}
