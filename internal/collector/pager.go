package collector

import (
	"context"
	"errors"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
)

// pageFetch fetches and persists one page. It returns the number of items
// persisted and the token of the next page; an empty token ends the loop.
type pageFetch func(ctx context.Context, pageToken string) (count int, nextToken string, err error)

// runPages drives a token-paginated fetch-persist loop. Each page is a
// separate durable unit: the budget gate runs before every page, and a
// failure on page N leaves pages 1..N-1 persisted.
func (c *Collector) runPages(ctx context.Context, maxItems int, fetch pageFetch) (PageOutcome, int) {
	total := 0
	pageToken := ""

	for {
		if ctx.Err() != nil {
			return PageInterrupted, total
		}
		if !c.Ledger.HasBudget() {
			return PageBudgetExhausted, total
		}

		var count int
		var nextToken string
		err := c.fetchWithRetry(ctx, func() error {
			var fetchErr error
			count, nextToken, fetchErr = fetch(ctx, pageToken)
			return fetchErr
		})
		if err != nil {
			return classifyFetchError(ctx, err), total
		}

		total += count
		if nextToken == "" {
			return PageComplete, total
		}
		if maxItems > 0 && total >= maxItems {
			return PageComplete, total
		}

		pageToken = nextToken
		c.sleep(ctx, time.Duration(c.Config.Collector.DelayBetweenPagesMs)*time.Millisecond)
	}
}

func classifyFetchError(ctx context.Context, err error) PageOutcome {
	switch {
	case ctx.Err() != nil:
		return PageInterrupted
	case youtubeapi.IsQuotaExceeded(err):
		return PageBudgetExhausted
	case youtubeapi.IsPermanent(err):
		return PageResourceError
	}
	return PageRetryExhausted
}

// fetchWithRetry runs fn with throttling and linear backoff. Quota and
// resource errors are returned immediately: retrying them cannot help and
// only burns wall time.
func (c *Collector) fetchWithRetry(ctx context.Context, fn func() error) error {
	maxRetries := c.Config.YoutubeApi.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		c.throttle(ctx)
		err = fn()
		if err == nil {
			return nil
		}
		if youtubeapi.IsQuotaExceeded(err) || youtubeapi.IsPermanent(err) || errors.Is(err, youtubeapi.ErrChannelNotFound) {
			return err
		}

		if attempt < maxRetries {
			delay := time.Duration(c.Config.YoutubeApi.RetryDelayMs*attempt) * time.Millisecond
			c.Logger.Warn(ctx, "Attempt %d/%d failed, retrying in %v: %v", attempt, maxRetries, delay, err)
			c.sleep(ctx, delay)
		}
	}
	return err
}

// throttle blocks until the per-second rate limiter admits one request.
func (c *Collector) throttle(ctx context.Context) {
	if c.Limiter == nil {
		return
	}
	for !c.Limiter.Allow() {
		if ctx.Err() != nil {
			return
		}
		c.sleep(ctx, time.Duration(c.Config.YoutubeApi.ThrottleDelay)*time.Millisecond)
	}
}

// sleep waits for d or until the context is cancelled.
func (c *Collector) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
