package playback

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"ignisplay/models"
)

const defaultEmbedBaseURL = "https://vidsrc.xyz"

type historyRecorder interface {
	AddToHistory(accountID int64, media models.MediaRef) error
}

// Service resolves media items to the third-party embed URLs the playback
// surface loads, and reports playback starts into viewing history.
type Service struct {
	history      historyRecorder
	embedBaseURL string
}

// NewService returns a playback service recording starts through the given
// history recorder.
func NewService(history historyRecorder) *Service {
	return &Service{
		history:      history,
		embedBaseURL: defaultEmbedBaseURL,
	}
}

// Resolve builds the embed URL for a media item. Series resolve to their
// first episode; episode selection happens inside the embed player.
func (s *Service) Resolve(media models.MediaRef) (*models.PlaybackResolution, error) {
	if media.ID == "" {
		return nil, fmt.Errorf("media id is required")
	}

	embedURL := fmt.Sprintf("%s/embed/movie/%s", s.embedBaseURL, media.ID)
	if media.MediaType == models.MediaTypeSeries {
		embedURL = fmt.Sprintf("%s/embed/tv/%s/1/1", s.embedBaseURL, media.ID)
	}

	return &models.PlaybackResolution{
		ID:        uuid.NewString(),
		MediaID:   media.ID,
		MediaType: media.MediaType,
		Title:     media.Title,
		EmbedURL:  embedURL,
	}, nil
}

// Start resolves the media and records it in the account's viewing history
// exactly once per call. Anonymous playback (zero account id) still
// resolves but leaves no history behind.
func (s *Service) Start(accountID int64, media models.MediaRef) (*models.PlaybackResolution, error) {
	resolution, err := s.Resolve(media)
	if err != nil {
		return nil, err
	}

	if err := s.history.AddToHistory(accountID, media); err != nil {
		return nil, fmt.Errorf("record playback start: %w", err)
	}

	log.Printf("[playback] start resolution=%s media=%s account=%d", resolution.ID, media.ID, accountID)
	return resolution, nil
}
