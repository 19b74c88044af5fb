package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// minContentLength is the shortest extraction still considered a real
	// posting; anything shorter suggests a JavaScript-rendered shell page.
	minContentLength = 500

	// defaultBrowserTimeout bounds a full headless render
	defaultBrowserTimeout = 30 * time.Second

	// renderSettle is how long scripts get to populate the page after load
	renderSettle = 3 * time.Second
)

// ShouldUseBrowser reports whether a plain HTTP fetch produced too little
// text, meaning the posting is likely rendered client-side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < minContentLength
}

// WithBrowser loads the URL in headless Chrome and returns the rendered
// HTML once scripts have had time to populate the page. Requires a Chrome
// or Chromium binary on the host.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss cookie banners when present; ignore failures.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}

// BrowserSimple renders with the default timeout
func BrowserSimple(ctx context.Context, url string) (string, error) {
	return WithBrowser(ctx, url, defaultBrowserTimeout)
}
