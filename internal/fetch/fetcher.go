package fetch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	retryAttempts = 3
	retryBackoff  = 500 * time.Millisecond
)

// Fetcher retrieves pages one at a time, sleeping a jittered delay after
// each request so the source server never sees rapid-fire or fixed-cadence
// traffic.
type Fetcher struct {
	client *http.Client
	delay  time.Duration
}

// New wraps the client with a base inter-request delay given in seconds.
func New(client *http.Client, delaySeconds float64) *Fetcher {
	return &Fetcher{
		client: client,
		delay:  time.Duration(delaySeconds * float64(time.Second)),
	}
}

// Page fetches one URL and parses the response as an HTML document.
// A non-2xx status after retries is an error; the caller decides whether
// that is fatal (index page) or skippable (single chapter).
func (f *Fetcher) Page(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", pageURL, err)
	}

	resp, err := DoWithRetry(f.client, req, retryAttempts, retryBackoff)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	f.pause(ctx)
	return doc, nil
}

func (f *Fetcher) pause(ctx context.Context) {
	d := Jitter(f.delay)
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Jitter perturbs the base delay by up to ±20% so the request cadence is
// not a detectable constant.
func Jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	span := int64(d) / 5
	if span == 0 {
		return d
	}
	return d - time.Duration(span) + time.Duration(rand.Int64N(2*span+1))
}
