package app

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/engine/scanner"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// All removes every artifact and the cache file instead of only orphans.
	All bool
}

// Clean removes artifacts no document refers to and drops their cache records.
// An artifact is kept while a spliced link shows it, or while a raw reference
// would reuse it on the next run.
func (a *App) Clean(_ context.Context, cwd string, opts CleanOptions) error {
	cfg, err := a.loadConfig(cwd)
	if err != nil {
		return err
	}

	artifacts, err := a.finder.Find(cfg.ArtifactPath(), []string{"**/*"}, nil)
	if err != nil {
		return zerr.Wrap(err, "failed to list artifacts")
	}

	if opts.All {
		return a.cleanAll(cfg, artifacts)
	}

	records := a.cache.Load(cfg.CachePath())
	keep, err := a.referencedArtifacts(cfg, records)
	if err != nil {
		return err
	}

	removed := 0
	for _, path := range artifacts {
		if keep[path] {
			continue
		}
		if err := a.files.Remove(path); err != nil {
			return err
		}
		removed++
		a.logger.Info(fmt.Sprintf("removed %s", relative(cfg, path)))
	}

	pruned := records
	for _, rec := range records.All() {
		if !keep[filepath.Clean(rec.ArtifactPath)] {
			pruned = pruned.Remove(rec.URL)
		}
	}
	if pruned.Len() != records.Len() {
		if err := a.cache.Save(cfg.CachePath(), pruned); err != nil {
			return domain.NewFileIOError(cfg.CachePath(), err)
		}
	}

	a.logger.Info(fmt.Sprintf("removed %d orphaned artifacts, dropped %d cache records",
		removed, records.Len()-pruned.Len()))
	return nil
}

func (a *App) cleanAll(cfg domain.Config, artifacts []string) error {
	for _, path := range artifacts {
		if err := a.files.Remove(path); err != nil {
			return err
		}
	}
	if err := a.files.Remove(cfg.CachePath()); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %d artifacts and the cache file", len(artifacts)))
	return nil
}

// referencedArtifacts returns the artifact paths still in use by any document.
func (a *App) referencedArtifacts(cfg domain.Config, records domain.Records) (map[string]bool, error) {
	docs, err := a.finder.Find(cfg.Root, cfg.Documents, cfg.Ignore)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to find documents")
	}

	scan := scanner.New(cfg.Host, a.logger)
	keep := make(map[string]bool)
	for _, doc := range docs {
		text, err := a.files.ReadDocument(doc)
		if err != nil {
			return nil, domain.NewFileIOError(doc, err)
		}
		for _, link := range a.inventory.Links(text, cfg.Host) {
			keep[resolveImage(doc, link.ImagePath)] = true
		}
		for _, m := range scan.Scan(text) {
			if rec, ok := records.Get(m.URL); ok && !records.Changed(m.URL, m.Payload) {
				keep[filepath.Clean(rec.ArtifactPath)] = true
			}
		}
	}
	return keep, nil
}

// resolveImage turns an image path written in doc back into a file path.
func resolveImage(doc, imagePath string) string {
	if unescaped, err := url.PathUnescape(imagePath); err == nil {
		imagePath = unescaped
	}
	path := filepath.FromSlash(imagePath)
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(doc), path)
	}
	return filepath.Clean(path)
}
