// Package browser renders diagram references by screenshotting the diagram
// editor in a headless browser.
package browser

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

const (
	// embedFlag asks the editor to show the diagram without its toolbars.
	embedFlag = "&embed"
	// stableWindow is how long the page must stay unchanged before it is captured.
	stableWindow = 300 * time.Millisecond
	// pngQuality is passed to element captures, which re-encode the cropped image.
	pngQuality = 100
)

// Renderer drives one browser process for the lifetime of a command.
type Renderer struct {
	cfg    domain.BrowserConfig
	logger ports.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRenderer creates a renderer. The browser is launched by Open.
func NewRenderer(cfg domain.BrowserConfig, logger ports.Logger) *Renderer {
	return &Renderer{cfg: cfg, logger: logger}
}

// Extension returns "png".
func (r *Renderer) Extension() string {
	return "png"
}

// Open launches the browser and connects to it. Calling Open on an open renderer is a no-op.
func (r *Renderer) Open(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return nil
	}

	l := launcher.New().Headless(r.cfg.Headless)
	if r.cfg.Bin != "" {
		l = l.Bin(r.cfg.Bin)
	}

	r.logger.Debug("launching browser")
	controlURL, err := l.Launch()
	if err != nil {
		return zerr.Wrap(err, "failed to launch browser")
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return zerr.With(zerr.Wrap(err, "failed to connect to browser"), "control_url", controlURL)
	}

	r.launcher = l
	// Detach from the Open context so the browser outlives it until Close.
	r.browser = browser.Context(context.WithoutCancel(ctx))
	return nil
}

// Close shuts the browser down. It is safe to call more than once.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.browser = nil
	r.launcher = nil

	if err != nil {
		return zerr.Wrap(err, "failed to close browser")
	}
	return nil
}

// Render loads req.URL in a fresh page and writes a PNG capture to req.Dest.
func (r *Renderer) Render(ctx context.Context, req domain.RenderRequest) error {
	r.mu.Lock()
	browser := r.browser
	r.mu.Unlock()

	if browser == nil {
		return domain.ErrRendererClosed
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	image, err := r.capture(ctx, browser, req.URL)
	if err != nil {
		return zerr.With(err, "url", req.URL)
	}

	if err := os.MkdirAll(filepath.Dir(req.Dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", filepath.Dir(req.Dest))
	}
	if err := os.WriteFile(req.Dest, image, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", req.Dest)
	}
	return nil
}

func (r *Renderer) capture(ctx context.Context, browser *rod.Browser, url string) ([]byte, error) {
	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: PageURL(url, r.cfg.Embed)})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open page")
	}
	defer func() {
		if err := page.Context(context.WithoutCancel(ctx)).Close(); err != nil {
			r.logger.Debug("failed to close page: " + err.Error())
		}
	}()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.cfg.Width,
		Height:            r.cfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, zerr.Wrap(err, "failed to set viewport")
	}

	if err := page.WaitLoad(); err != nil {
		return nil, zerr.Wrap(err, "page did not load")
	}
	if err := page.WaitStable(stableWindow); err != nil {
		return nil, zerr.Wrap(err, "page did not settle")
	}

	if r.cfg.Selector == "" {
		image, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return nil, zerr.Wrap(err, "failed to capture page")
		}
		return image, nil
	}

	el, err := page.Element(r.cfg.Selector)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "diagram element not found"), "selector", r.cfg.Selector)
	}
	image, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, pngQuality)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to capture diagram element")
	}
	return image, nil
}

// PageURL returns the address loaded for a reference URL.
func PageURL(url string, embed bool) string {
	if !embed {
		return url
	}
	return url + embedFlag
}
