package tmdb

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"
)

// Bundle is the details page payload: an item's details and credits fetched
// together.
type Bundle struct {
	Details json.RawMessage `json:"details"`
	Credits json.RawMessage `json:"credits"`
}

// Bundle fetches details and credits concurrently. If either lookup fails the
// other is cancelled and the first error is returned.
func (c *Client) Bundle(ctx context.Context, mediaType string, id int64) (*Bundle, error) {
	var b Bundle

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		details, err := c.Details(ctx, mediaType, id)
		if err != nil {
			return err
		}
		b.Details = details
		return nil
	})
	g.Go(func() error {
		credits, err := c.Credits(ctx, mediaType, id)
		if err != nil {
			return err
		}
		b.Credits = credits
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}
