package domain

import (
	"path/filepath"
	"time"
)

// RendererKind selects the render collaborator.
type RendererKind string

const (
	// RendererBrowser screenshots the diagram editor in a headless browser.
	RendererBrowser RendererKind = "browser"
	// RendererSVG draws the decoded graph as SVG without a browser.
	RendererSVG RendererKind = "svg"
)

// BrowserConfig configures the headless browser renderer.
type BrowserConfig struct {
	// Bin is the browser executable. Empty means download or discover one.
	Bin string
	// Headless runs the browser without a window.
	Headless bool
	// Timeout bounds a single render.
	Timeout time.Duration
	// Width and Height set the viewport in CSS pixels.
	Width  int
	Height int
	// Selector is the element captured. Empty captures the full page.
	Selector string
	// Embed appends the editor's embed flag to the URL before loading it.
	Embed bool
}

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory the configuration was loaded from.
	Root string
	// Host is the diagram editor host recognised by the scanner.
	Host string
	// CacheFile is the path of the cache file, relative to Root.
	CacheFile string
	// ArtifactDir is the directory rendered artifacts are written to, relative to Root.
	ArtifactDir string
	// Renderer selects the render collaborator.
	Renderer RendererKind
	// Browser configures the browser renderer.
	Browser BrowserConfig
	// Documents lists glob patterns of documents processed when no file is named.
	Documents []string
	// Ignore lists directory names skipped while expanding Documents.
	Ignore []string
	// Debounce is the quiet period before a saved document is processed in watch mode.
	Debounce time.Duration
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		Host:        DefaultHost,
		CacheFile:   DefaultCachePath(),
		ArtifactDir: DefaultArtifactPath(),
		Renderer:    RendererBrowser,
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  30 * time.Second,
			Width:    1280,
			Height:   800,
			Selector: "",
			Embed:    true,
		},
		Documents: []string{"*.md", "**/*.md"},
		Ignore:    []string{".git", ".jj", "node_modules", StateDirName},
		Debounce:  200 * time.Millisecond,
	}
}

// Resolve joins path onto Root unless it is already absolute.
func (c Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.Root, path)
}

// CachePath returns the cache file location.
func (c Config) CachePath() string {
	return c.Resolve(c.CacheFile)
}

// ArtifactPath returns the artifact directory location.
func (c Config) ArtifactPath() string {
	return c.Resolve(c.ArtifactDir)
}
