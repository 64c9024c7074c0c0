// Package pipeline drives one document through scan, render, splice and persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/qsnap/internal/engine/codec"
	"go.trai.ch/qsnap/internal/engine/fingerprint"
	"go.trai.ch/qsnap/internal/engine/scanner"
	"go.trai.ch/qsnap/internal/engine/splice"
	"go.trai.ch/zerr"
)

// Options locates the cache file and artifact directory of a project.
type Options struct {
	// CachePath is the path of the cache file.
	CachePath string
	// ArtifactDir is the directory artifacts are written to.
	ArtifactDir string
}

// Pipeline processes documents one at a time. It holds no per-run state,
// but callers must serialize runs that touch the same document or cache file.
type Pipeline struct {
	scanner  *scanner.Scanner
	renderer ports.Renderer
	cache    ports.CacheStore
	files    ports.FileStore
	tracer   ports.Tracer
	logger   ports.Logger
	opts     Options
	now      func() time.Time
}

// New creates a Pipeline. The renderer must already be open.
func New(
	scan *scanner.Scanner,
	renderer ports.Renderer,
	cache ports.CacheStore,
	files ports.FileStore,
	tracer ports.Tracer,
	logger ports.Logger,
	opts Options,
) *Pipeline {
	return &Pipeline{
		scanner:  scan,
		renderer: renderer,
		cache:    cache,
		files:    files,
		tracer:   tracer,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for record timestamps.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// run carries the state of a single document pass.
type run struct {
	doc     string
	records domain.Records
	dirty   bool
	edits   []splice.Edit
	report  domain.Report
}

// Process runs one full pass over the document at docPath.
// Per-reference failures are logged and recorded in the report; only a
// failure to read or write the document or cache file is returned.
func (p *Pipeline) Process(ctx context.Context, docPath string) (domain.Report, error) {
	ctx, span := p.tracer.Start(ctx, "document")
	defer span.End()
	span.SetAttribute("document", docPath)

	text, err := p.files.ReadDocument(docPath)
	if err != nil {
		perr := domain.NewFileIOError(docPath, err)
		span.RecordError(perr)
		return domain.Report{Document: docPath}, perr
	}

	r := &run{
		doc:     docPath,
		records: p.cache.Load(p.opts.CachePath),
		report:  domain.Report{Document: docPath},
	}

	matches := p.scanner.Scan(text)
	span.SetAttribute("references", len(matches))
	if len(matches) == 0 {
		return r.report, nil
	}

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return r.report, zerr.Wrap(err, "document run interrupted")
		}
		p.evaluate(ctx, r, m)
	}

	updated := splice.ApplyAll(text, r.edits)
	if updated != text {
		if err := p.files.WriteDocument(docPath, updated); err != nil {
			perr := domain.NewFileIOError(docPath, err)
			span.RecordError(perr)
			return r.report, perr
		}
		r.report.DocumentSaved = true
	}

	if r.dirty {
		if err := p.cache.Save(p.opts.CachePath, r.records); err != nil {
			perr := domain.NewFileIOError(p.opts.CachePath, err)
			span.RecordError(perr)
			return r.report, perr
		}
		r.report.CacheSaved = true
	}

	return r.report, nil
}

// evaluate moves one reference from Unseen to CacheHit, Spliced or Failed.
func (p *Pipeline) evaluate(ctx context.Context, r *run, m domain.ReferenceMatch) {
	ctx, span := p.tracer.Start(ctx, "reference")
	defer span.End()
	span.SetAttribute("offset", m.Span.Start)

	if rec, ok := r.records.Get(m.URL); ok && !r.records.Changed(m.URL, m.Payload) && p.files.Exists(rec.ArtifactPath) {
		span.SetAttribute("outcome", domain.OutcomeCacheHit.String())
		p.logger.Debug(fmt.Sprintf("cache hit for reference at offset %d in %s", m.Span.Start, r.doc))
		r.splice(m, rec.ArtifactPath)
		r.record(m, domain.OutcomeCacheHit, rec.ArtifactPath, nil)
		return
	}

	graph, err := codec.Decode(m.Payload)
	if err != nil {
		p.fail(r, span, m, domain.NewDecodeError(m.URL, err))
		return
	}

	dest := p.artifactPath(r.doc, graph)
	if err := p.renderer.Render(ctx, domain.RenderRequest{URL: m.URL, Graph: graph, Dest: dest}); err != nil {
		p.fail(r, span, m, domain.NewRenderError(m.URL, zerr.Wrap(err, domain.ErrRenderFailed.Error())))
		return
	}

	r.records = r.records.Put(domain.CacheRecord{
		URL:          m.URL,
		Payload:      m.Payload,
		ArtifactPath: dest,
		Timestamp:    p.now().Unix(),
	})
	r.dirty = true

	span.SetAttribute("outcome", domain.OutcomeRendered.String())
	p.logger.Info(fmt.Sprintf("rendered %s", dest))
	r.splice(m, dest)
	r.record(m, domain.OutcomeRendered, dest, nil)
}

func (p *Pipeline) fail(r *run, span ports.Span, m domain.ReferenceMatch, err *domain.PipelineError) {
	span.RecordError(err)
	span.SetAttribute("outcome", domain.OutcomeFailed.String())
	p.logger.Warn(err.Error() + "; " + err.Hint)
	r.record(m, domain.OutcomeFailed, "", err)
}

// artifactPath names the artifact after the document and the graph fingerprint.
func (p *Pipeline) artifactPath(docPath string, g domain.DiagramGraph) string {
	base := filepath.Base(docPath)
	slug := strings.TrimSuffix(base, filepath.Ext(base))
	name := slugify(slug) + "-" + fingerprint.Of(g) + "." + p.renderer.Extension()
	return filepath.Join(p.opts.ArtifactDir, name)
}

func (r *run) splice(m domain.ReferenceMatch, artifactPath string) {
	r.edits = append(r.edits, splice.Edit{
		Span:        m.Span,
		Replacement: splice.Replacement(LinkPath(r.doc, artifactPath), m.URL),
	})
}

func (r *run) record(m domain.ReferenceMatch, outcome domain.Outcome, artifactPath string, err error) {
	r.report.References = append(r.report.References, domain.ReferenceResult{
		Match:        m,
		Outcome:      outcome,
		ArtifactPath: artifactPath,
		Err:          err,
	})
}

// LinkPath returns artifactPath as written into the document: relative to the
// document's directory, with forward slashes and spaces escaped.
func LinkPath(docPath, artifactPath string) string {
	rel, err := filepath.Rel(filepath.Dir(docPath), artifactPath)
	if err != nil {
		rel = artifactPath
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), " ", "%20")
}

// slugify keeps letters, digits, dashes and underscores, mapping everything else to '-'.
func slugify(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "diagram"
	}
	return b.String()
}

// IsFatal reports whether err aborted a document run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var perr *domain.PipelineError
	if errors.As(err, &perr) {
		return perr.Kind.Fatal()
	}
	return true
}
