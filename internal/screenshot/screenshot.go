// Package screenshot captures share images from pages that mark themselves
// up with the screenshot readiness conventions: a .screenshot element
// wrapping the content, a .act-now-component-loaded sentinel once data
// components have mounted, and .act-now-component-loading sentinels while
// any are still fetching.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	viewportWidth  = 2800
	viewportHeight = 1575

	// DefaultTimeout bounds the wait for page readiness.
	DefaultTimeout = 15 * time.Second
)

// ErrTimeout is returned when the target page does not become ready within
// the capture timeout.
var ErrTimeout = errors.New("timed out waiting for page to be ready for screenshot")

// Service drives a shared headless browser. The browser process is started
// lazily on first capture and reused for the process lifetime; every
// capture gets its own tab and its own in-memory output buffer, so
// concurrent requests never contend on a file path.
type Service struct {
	timeout time.Duration

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// New creates a screenshot service. A zero timeout means DefaultTimeout.
func New(timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{timeout: timeout}
}

// allocator returns the shared browser allocator, starting it on first use.
func (s *Service) allocator() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allocCtx == nil {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(viewportWidth, viewportHeight),
		)
		s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
	return s.allocCtx
}

// Capture navigates a fresh tab to pageURL, waits for the readiness
// signals, and returns the PNG bytes of the .screenshot element.
func (s *Service) Capture(ctx context.Context, pageURL string) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(s.allocator())
	defer cancelTab()

	runCtx, cancel := context.WithTimeout(tabCtx, s.timeout)
	defer cancel()

	// Stop early if the caller's request context ends first.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(".screenshot", chromedp.ByQuery),
		chromedp.WaitReady(".act-now-component-loaded", chromedp.ByQuery),
		// The loading sentinels are display:none, so a hidden-wait would
		// fire while they are still on the DOM; wait for removal instead.
		chromedp.WaitNotPresent(".act-now-component-loading", chromedp.ByQuery),
		chromedp.Screenshot(".screenshot", &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, pageURL)
		}
		return nil, fmt.Errorf("capture %s: %w", pageURL, err)
	}
	return buf, nil
}

// Close shuts down the shared browser, if one was started.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCtx = nil
		s.allocCancel = nil
	}
}
