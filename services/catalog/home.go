package catalog

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"ignisplay/models"
)

// Section is one titled rail on the home screen.
type Section struct {
	Title    string                `json:"title"`
	Category string                `json:"category"`
	Items    []models.MediaSummary `json:"items"`
}

var homeSections = []struct {
	title    string
	category string
}{
	{"Top 10", CategoryTop},
	{"Trending Now", CategoryTrending},
	{"New Releases", CategoryNew},
	{"Action", CategoryAction},
	{"Comedy", CategoryComedy},
	{"Drama", CategoryDrama},
}

// Home fetches the first page of every home-screen section concurrently.
// A failure in any section fails the whole call; the screen either renders
// a full home page or falls back to its error state.
func (c *Client) Home(ctx context.Context) ([]Section, error) {
	sections := make([]Section, len(homeSections))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, def := range homeSections {
		i, def := i, def
		p.Go(func(ctx context.Context) error {
			items, err := c.FetchCatalog(ctx, def.category, 1)
			if err != nil {
				return err
			}
			sections[i] = Section{Title: def.title, Category: def.category, Items: items}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}
