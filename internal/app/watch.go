package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/qsnap/internal/adapters/watcher"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// tempSuffix marks the temporary files of atomic document writes.
const tempSuffix = ".tmp"

// Watch processes every configured document once, then re-processes a document
// each time it is saved. Saves are debounced, and batches are processed one at a
// time, so two runs never overlap. Watch returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context, cwd string) error {
	cfg, err := a.loadConfig(cwd)
	if err != nil {
		return err
	}

	s, closeFn, err := a.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	docs, err := a.finder.Find(cfg.Root, cfg.Documents, cfg.Ignore)
	if err != nil {
		return zerr.Wrap(err, "failed to find documents")
	}
	for _, doc := range docs {
		if ctx.Err() != nil {
			return nil
		}
		a.processWatched(ctx, s, doc)
	}

	if err := a.watcher.Start(ctx, cfg.Root); err != nil {
		return zerr.Wrap(err, "failed to start watching")
	}
	a.logger.Info(fmt.Sprintf("watching %s for changes", cfg.Root))

	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan []string)
	debouncer := watcher.NewDebouncer(cfg.Debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-gctx.Done():
		}
	})

	// Event routine: feeds saves into the debouncer until the watcher stops.
	g.Go(func() error {
		for ev := range a.watcher.Events() {
			if ev.Operation == ports.OpRemove || strings.HasSuffix(ev.Path, tempSuffix) {
				continue
			}
			debouncer.Add(ev.Path)
		}
		return nil
	})

	// Worker routine: the only place documents are processed.
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-batches:
				a.processBatch(gctx, s, paths)
			}
		}
	})

	// Shutdown routine.
	g.Go(func() error {
		<-gctx.Done()
		debouncer.Stop()
		return a.watcher.Stop()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return zerr.Wrap(err, "watch failed")
	}
	return nil
}

// processBatch runs the changed documents of one debounced batch.
func (a *App) processBatch(ctx context.Context, s *session, paths []string) {
	docs, err := a.finder.Find(s.cfg.Root, s.cfg.Documents, s.cfg.Ignore)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to find documents"))
		return
	}

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if _, found := slices.BinarySearch(docs, path); !found {
			continue
		}
		if !a.digests.Changed(path) {
			a.logger.Debug(fmt.Sprintf("%s: unchanged", relative(s.cfg, path)))
			continue
		}
		a.processWatched(ctx, s, path)
	}
}

// processWatched runs one document and remembers its content afterwards, so the
// write that ends the run does not trigger another one.
func (a *App) processWatched(ctx context.Context, s *session, doc string) {
	report, err := s.pipeline.Process(ctx, doc)
	a.digests.Remember(doc)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error(err)
		}
		return
	}
	a.summarize(s.cfg, report)
}
