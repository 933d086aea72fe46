package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"ignisplay/models"
)

const (
	tmdbAPIBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL    = "https://image.tmdb.org/t/p/w500"
	tmdbBackdropBaseURL = "https://image.tmdb.org/t/p/w1280"
)

// Catalog categories understood by FetchCatalog.
const (
	CategoryTop      = "top"
	CategoryTrending = "trending"
	CategoryNew      = "new"
	CategoryDiscover = "discover"
	CategoryAction   = "action"
	CategoryComedy   = "comedy"
	CategoryDrama    = "drama"
)

// ErrUnknownCategory is returned by FetchCatalog for a category it does not
// recognise.
var ErrUnknownCategory = fmt.Errorf("unknown catalog category")

// Client fetches movie metadata from the TMDB API.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client

	// Cache of page results to avoid hammering the API on every screen load.
	cacheMu  sync.RWMutex
	cache    map[string]*cacheEntry
	cacheTTL time.Duration
}

type cacheEntry struct {
	items     []models.MediaSummary
	fetchedAt time.Time
}

// NewClient creates a TMDB catalog client.
func NewClient(apiKey, language string) *Client {
	if language == "" {
		language = "en-US"
	}
	return &Client{
		apiKey:     apiKey,
		language:   language,
		baseURL:    tmdbAPIBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      make(map[string]*cacheEntry),
		cacheTTL:   10 * time.Minute,
	}
}

// tmdbListResponse is the common shape of TMDB list endpoints.
type tmdbListResponse struct {
	Results []tmdbItem `json:"results"`
}

type tmdbItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"` // TV shows carry "name" instead of "title"
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	MediaType    string  `json:"media_type"`
}

// FetchCatalog returns one page of the named catalog category.
func (c *Client) FetchCatalog(ctx context.Context, category string, page int) ([]models.MediaSummary, error) {
	if page < 1 {
		page = 1
	}
	pageParam := strconv.Itoa(page)

	switch category {
	case CategoryTop:
		items, err := c.fetchList(ctx, "/movie/top_rated", url.Values{"page": {pageParam}})
		if err != nil {
			return nil, err
		}
		// The home rail shows a short leaderboard only.
		if len(items) > 10 {
			items = items[:10]
		}
		return items, nil
	case CategoryTrending:
		return c.fetchList(ctx, "/trending/movie/week", url.Values{"page": {pageParam}})
	case CategoryNew:
		return c.fetchList(ctx, "/movie/now_playing", url.Values{"page": {pageParam}})
	case CategoryDiscover:
		return c.fetchList(ctx, "/discover/movie", url.Values{
			"sort_by": {"popularity.desc"},
			"page":    {pageParam},
		})
	case CategoryAction, CategoryComedy, CategoryDrama:
		return c.fetchList(ctx, "/discover/movie", url.Values{
			"with_genres": {genreID(category)},
			"sort_by":     {"popularity.desc"},
			"page":        {pageParam},
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

// Search queries movies and series matching the given text. An empty query
// returns an empty result without touching the API.
func (c *Client) Search(ctx context.Context, query string, page int) ([]models.MediaSummary, error) {
	if query == "" {
		return []models.MediaSummary{}, nil
	}
	if page < 1 {
		page = 1
	}
	return c.fetchList(ctx, "/search/multi", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
}

func genreID(category string) string {
	switch category {
	case CategoryAction:
		return "28"
	case CategoryComedy:
		return "35"
	case CategoryDrama:
		return "18"
	}
	return ""
}

func (c *Client) fetchList(ctx context.Context, endpoint string, params url.Values) ([]models.MediaSummary, error) {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	if cached := c.cachedItems(requestURL); cached != nil {
		return cached, nil
	}

	var payload tmdbListResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", endpoint, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("fetch %s: status %d", endpoint, resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("fetch %s: status %d", endpoint, resp.StatusCode))
			}

			payload = tmdbListResponse{}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				return fmt.Errorf("decode %s response: %w", endpoint, err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	items := make([]models.MediaSummary, 0, len(payload.Results))
	for _, raw := range payload.Results {
		if summary, ok := formatMedia(raw); ok {
			items = append(items, summary)
		}
	}

	c.storeItems(requestURL, items)
	return items, nil
}

// formatMedia maps a raw TMDB item onto the catalog shape the client
// consumes. Items without a usable title (e.g. people from multi-search)
// are dropped.
func formatMedia(item tmdbItem) (models.MediaSummary, bool) {
	if item.MediaType == "person" {
		return models.MediaSummary{}, false
	}

	title := item.Title
	if title == "" {
		title = item.Name
	}
	if title == "" {
		return models.MediaSummary{}, false
	}

	mediaType := models.MediaTypeMovie
	if item.MediaType == "tv" || item.FirstAirDate != "" {
		mediaType = models.MediaTypeSeries
	}

	release := item.ReleaseDate
	if release == "" {
		release = item.FirstAirDate
	}
	year := ""
	if len(release) >= 4 {
		year = release[:4]
	}

	rating := "N/A"
	if item.VoteAverage > 0 {
		rating = strconv.FormatFloat(item.VoteAverage, 'f', 1, 64)
	}

	summary := models.MediaSummary{
		ID:        strconv.FormatInt(item.ID, 10),
		Title:     title,
		Overview:  item.Overview,
		Year:      year,
		Rating:    rating,
		MediaType: mediaType,
	}
	if item.PosterPath != "" {
		summary.PosterURL = tmdbImageBaseURL + item.PosterPath
	}
	if item.BackdropPath != "" {
		summary.BackdropURL = tmdbBackdropBaseURL + item.BackdropPath
	}
	return summary, true
}

func (c *Client) cachedItems(key string) []models.MediaSummary {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()

	entry, ok := c.cache[key]
	if !ok || time.Since(entry.fetchedAt) > c.cacheTTL {
		return nil
	}
	return entry.items
}

func (c *Client) storeItems(key string, items []models.MediaSummary) {
	c.cacheMu.Lock()
	c.cache[key] = &cacheEntry{items: items, fetchedAt: time.Now()}
	c.cacheMu.Unlock()
}
