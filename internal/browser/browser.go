package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	defaultNavTimeout = 30 * time.Second
	defaultWaitTime   = 10 * time.Second
)

// Controller is the slice of a browser tab the chat parser drives.
type Controller interface {
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	Content(ctx context.Context) (string, error)
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	SaveState(ctx context.Context, path string) error
}

// Options configures the launcher.
type Options struct {
	Headless   bool
	NavTimeout time.Duration
}

// Launcher owns playwright lifecycle.
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
}

func NewLauncher(ctx context.Context, opts Options) (*Launcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = defaultNavTimeout
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &Launcher{pw: pw, browser: browser, opts: opts}, nil
}

// NewController opens a tab, restoring storage state from storagePath if it exists.
func (l *Launcher) NewController(ctx context.Context, storagePath string) (Controller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if strings.TrimSpace(storagePath) != "" {
		if _, err := os.Stat(storagePath); err == nil {
			opts.StorageStatePath = playwright.String(storagePath)
		}
	}
	bctx, err := l.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("new context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	page.SetDefaultTimeout(float64(l.opts.NavTimeout.Milliseconds()))
	return &controller{context: bctx, page: page, navTimeout: l.opts.NavTimeout}, nil
}

func (l *Launcher) Close() error {
	if l.browser != nil {
		_ = l.browser.Close()
	}
	if l.pw != nil {
		return l.pw.Stop()
	}
	return nil
}

type controller struct {
	context    playwright.BrowserContext
	page       playwright.Page
	navTimeout time.Duration
}

func (c *controller) Close(ctx context.Context) error {
	_ = ctx
	if c.page != nil {
		_ = c.page.Close()
	}
	if c.context != nil {
		return c.context.Close()
	}
	return nil
}

func (c *controller) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(c.navTimeout.Milliseconds())),
	})
	return wrap(err)
}

// Content serializes the current DOM, including script-rendered nodes.
func (c *controller) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	markup, err := c.page.Content()
	return markup, wrap(err)
}

func (c *controller) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = defaultWaitTime
	}
	loc := c.page.Locator(selector)
	return wrap(loc.First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(timeout.Seconds() * 1000),
		State:   playwright.WaitForSelectorStateAttached,
	}))
}

func (c *controller) SaveState(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := c.context.StorageState()
	if err != nil {
		return wrap(err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("playwright: %w", err)
}
