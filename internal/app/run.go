package app

import (
	"context"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/zerr"
)

// RunResult aggregates the reports of a run command.
type RunResult struct {
	Reports []domain.Report
	// Failed counts documents whose run was aborted by a fatal error.
	Failed int
}

// Run processes the named documents, or every configured document when none is named.
// Each document is processed to completion before the next one starts. A fatal
// error on one document is logged and the remaining documents still run; the
// returned error is then ErrRunFailed.
func (a *App) Run(ctx context.Context, cwd string, names []string) (RunResult, error) {
	cfg, err := a.loadConfig(cwd)
	if err != nil {
		return RunResult{}, err
	}

	docs, err := a.documents(cfg, cwd, names)
	if err != nil {
		return RunResult{}, err
	}

	s, closeFn, err := a.open(ctx, cfg)
	if err != nil {
		return RunResult{}, err
	}
	defer closeFn()

	var result RunResult
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, zerr.Wrap(err, "run interrupted")
		}

		report, err := s.pipeline.Process(ctx, doc)
		result.Reports = append(result.Reports, report)
		if err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			result.Failed++
			a.logger.Error(err)
			continue
		}
		a.summarize(s.cfg, report)
	}

	if result.Failed > 0 {
		return result, domain.ErrRunFailed
	}
	return result, nil
}
