package app

import (
	"context"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/engine/scanner"
)

// Status lists every diagram reference in the named documents, or in every
// configured document when none is named. Paths are relative to the project root.
func (a *App) Status(_ context.Context, cwd string, names []string) ([]domain.ReferenceStatus, error) {
	cfg, err := a.loadConfig(cwd)
	if err != nil {
		return nil, err
	}

	docs, err := a.documents(cfg, cwd, names)
	if err != nil {
		return nil, err
	}

	records := a.cache.Load(cfg.CachePath())
	scan := scanner.New(cfg.Host, a.logger)

	var entries []domain.ReferenceStatus
	for _, doc := range docs {
		text, err := a.files.ReadDocument(doc)
		if err != nil {
			return nil, domain.NewFileIOError(doc, err)
		}
		name := relative(cfg, doc)

		for _, link := range a.inventory.Links(text, cfg.Host) {
			path := resolveImage(doc, link.ImagePath)
			state := domain.StateRendered
			if !a.files.Exists(path) {
				state = domain.StateStale
			}
			entries = append(entries, domain.ReferenceStatus{
				Document:     name,
				URL:          link.URL,
				ArtifactPath: relative(cfg, path),
				State:        state,
			})
		}

		for _, m := range scan.Scan(text) {
			entry := domain.ReferenceStatus{Document: name, URL: m.URL, State: domain.StatePending}
			if rec, ok := records.Get(m.URL); ok && !records.Changed(m.URL, m.Payload) && a.files.Exists(rec.ArtifactPath) {
				entry.Cached = true
				entry.ArtifactPath = relative(cfg, rec.ArtifactPath)
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
