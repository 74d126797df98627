// Package rod provides a browser-backed implementation of
// agentready.Fetcher. It renders JavaScript before capturing the HTML,
// which lets the audit compare what an executing reader sees against the
// served markup.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/agentready"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements agentready.Fetcher at compile time.
var _ agentready.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	lnchr   *launcher.Launcher
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{browser: browser, lnchr: l}, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns
// the rendered HTML wrapped in a Document. The status code comes from
// the navigation response; a missing response (e.g. about:blank) reports
// zero.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*agentready.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	var statusCode int
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			statusCode = e.Response.Status
			return true
		}
		return false
	})

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	return &agentready.Document{
		URL:        url,
		RawHTML:    html,
		StatusCode: statusCode,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.lnchr != nil {
		f.lnchr.Kill()
	}
	return err
}
