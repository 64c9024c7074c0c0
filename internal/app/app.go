// Package app implements the application layer for qsnap.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/qsnap/internal/adapters/watcher"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/qsnap/internal/engine/pipeline"
	"go.trai.ch/qsnap/internal/engine/scanner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	finder       ports.DocumentFinder
	files        ports.FileStore
	cache        ports.CacheStore
	inventory    ports.LinkInventory
	renderers    ports.RendererFactory
	tracer       ports.Tracer
	watcher      ports.Watcher
	digests      *watcher.Digests
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	finder ports.DocumentFinder,
	files ports.FileStore,
	cache ports.CacheStore,
	inventory ports.LinkInventory,
	renderers ports.RendererFactory,
	tracer ports.Tracer,
	w ports.Watcher,
	digests *watcher.Digests,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		finder:       finder,
		files:        files,
		cache:        cache,
		inventory:    inventory,
		renderers:    renderers,
		tracer:       tracer,
		watcher:      w,
		digests:      digests,
		logger:       log,
	}
}

// loggingConfigurer is implemented by loggers whose output mode can change at runtime.
type loggingConfigurer interface {
	SetJSON(enabled bool)
	SetVerbose(enabled bool)
}

// ConfigureLogging switches the logger to JSON output and/or debug level.
func (a *App) ConfigureLogging(jsonLogs, verbose bool) {
	if l, ok := a.logger.(loggingConfigurer); ok {
		l.SetJSON(jsonLogs)
		l.SetVerbose(verbose)
	}
}

// session is the state shared by the documents of one command.
type session struct {
	cfg      domain.Config
	renderer ports.Renderer
	pipeline *pipeline.Pipeline
}

func (a *App) loadConfig(cwd string) (domain.Config, error) {
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// open opens the configured renderer and builds the pipeline around it.
// The returned close function releases the renderer.
func (a *App) open(ctx context.Context, cfg domain.Config) (*session, func(), error) {
	renderer, err := a.renderers.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := renderer.Open(ctx); err != nil {
		return nil, nil, zerr.Wrap(err, "failed to open renderer")
	}

	p := pipeline.New(
		scanner.New(cfg.Host, a.logger),
		renderer,
		a.cache,
		a.files,
		a.tracer,
		a.logger,
		pipeline.Options{CachePath: cfg.CachePath(), ArtifactDir: cfg.ArtifactPath()},
	)

	closeFn := func() {
		if err := renderer.Close(); err != nil {
			a.logger.Warn("failed to close renderer: " + err.Error())
		}
	}
	return &session{cfg: cfg, renderer: renderer, pipeline: p}, closeFn, nil
}

// documents resolves the documents a command works on. Named files are resolved
// against cwd; with no names, every document matching the configured patterns is used.
func (a *App) documents(cfg domain.Config, cwd string, names []string) ([]string, error) {
	if len(names) == 0 {
		docs, err := a.finder.Find(cfg.Root, cfg.Documents, cfg.Ignore)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to find documents")
		}
		if len(docs) == 0 {
			return nil, zerr.With(domain.ErrNoDocuments, "root", cfg.Root)
		}
		return docs, nil
	}

	docs := make([]string, 0, len(names))
	for _, name := range names {
		if !filepath.IsAbs(name) {
			name = filepath.Join(cwd, name)
		}
		docs = append(docs, filepath.Clean(name))
	}
	slices.Sort(docs)
	return slices.Compact(docs), nil
}

// relative returns path relative to the project root for display.
func relative(cfg domain.Config, path string) string {
	rel, err := filepath.Rel(cfg.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// summarize logs one line describing a finished document run.
func (a *App) summarize(cfg domain.Config, report domain.Report) {
	rendered := report.Count(domain.OutcomeRendered)
	cached := report.Count(domain.OutcomeCacheHit)
	failed := report.Count(domain.OutcomeFailed)

	if len(report.References) == 0 {
		a.logger.Debug(fmt.Sprintf("%s: no diagram references", relative(cfg, report.Document)))
		return
	}

	msg := fmt.Sprintf("%s: %d rendered, %d cached, %d failed",
		relative(cfg, report.Document), rendered, cached, failed)
	if failed > 0 {
		a.logger.Warn(msg)
		return
	}
	a.logger.Info(msg)
}
