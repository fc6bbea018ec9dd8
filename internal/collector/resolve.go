package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
)

// resolveChannel turns a source row into a full channel record. Strategies
// run cheapest first: a canonical id costs 1 unit, a handle or username
// lookup costs 1, and the free-text search fallback costs 100. A strategy
// only falls through on "not found"; quota and transport errors surface
// immediately.
func (c *Collector) resolveChannel(ctx context.Context, src source.Source) (*youtubeapi.Channel, error) {
	ref := source.ExtractChannelID(src.YoutubeURL)
	if ref == "" {
		return nil, fmt.Errorf("no channel reference in url %q: %w", src.YoutubeURL, youtubeapi.ErrChannelNotFound)
	}

	if source.IsChannelID(ref) {
		return c.lookupChannel(ctx, func(ctx context.Context) (*youtubeapi.Channel, error) {
			return c.Api.ChannelById(ctx, ref)
		})
	}

	if handle, ok := strings.CutPrefix(ref, "@"); ok {
		ch, err := c.lookupChannel(ctx, func(ctx context.Context) (*youtubeapi.Channel, error) {
			return c.Api.ChannelByHandle(ctx, handle)
		})
		if !errors.Is(err, youtubeapi.ErrChannelNotFound) {
			return ch, err
		}
		return c.searchChannel(ctx, handle)
	}

	// Legacy /user/ and /c/ names: try the username endpoint, then the
	// handle endpoint (many legacy names became handles), then search.
	ch, err := c.lookupChannel(ctx, func(ctx context.Context) (*youtubeapi.Channel, error) {
		return c.Api.ChannelByUsername(ctx, ref)
	})
	if !errors.Is(err, youtubeapi.ErrChannelNotFound) {
		return ch, err
	}

	ch, err = c.lookupChannel(ctx, func(ctx context.Context) (*youtubeapi.Channel, error) {
		return c.Api.ChannelByHandle(ctx, ref)
	})
	if !errors.Is(err, youtubeapi.ErrChannelNotFound) {
		return ch, err
	}

	return c.searchChannel(ctx, ref)
}

func (c *Collector) lookupChannel(ctx context.Context, lookup func(ctx context.Context) (*youtubeapi.Channel, error)) (*youtubeapi.Channel, error) {
	var ch *youtubeapi.Channel
	err := c.fetchWithRetry(ctx, func() error {
		var lookupErr error
		ch, lookupErr = lookup(ctx)
		return lookupErr
	})
	return ch, err
}

func (c *Collector) searchChannel(ctx context.Context, query string) (*youtubeapi.Channel, error) {
	c.Logger.Warn(ctx, "Falling back to search for %q (100 units)", query)

	var channelId string
	err := c.fetchWithRetry(ctx, func() error {
		var searchErr error
		channelId, searchErr = c.Api.SearchChannelId(ctx, query)
		return searchErr
	})
	if err != nil {
		return nil, err
	}

	return c.lookupChannel(ctx, func(ctx context.Context) (*youtubeapi.Channel, error) {
		return c.Api.ChannelById(ctx, channelId)
	})
}
