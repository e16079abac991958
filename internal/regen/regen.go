// Package regen runs the configured regeneration jobs against a workspace.
//
// Every job reads its documents, computes their new contents in memory and
// only then writes. A job that fails leaves all of its documents untouched;
// jobs are independent of each other, so documents written by earlier jobs
// stay written.
package regen

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/phobologic/regen/internal/config"
	"github.com/phobologic/regen/internal/discover"
	"github.com/phobologic/regen/internal/document"
	"github.com/phobologic/regen/internal/model"
)

// Runner executes jobs from Config relative to Root.
type Runner struct {
	Root   string
	Config *config.Config
	Logger *zap.Logger

	// DryRun computes results without writing any document.
	DryRun bool
	// Diff fills in Result.Diff for changed documents.
	Diff bool
}

// pending is a computed document waiting to be written.
type pending struct {
	path   string
	before *document.Document
	after  *document.Document
	result model.Result
}

func (r *Runner) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) report() *model.Report {
	return &model.Report{Root: r.Root, DryRun: r.DryRun}
}

// All runs every configured job: cases, then paragraphs, then counters.
func (r *Runner) All(ctx context.Context) (*model.Report, error) {
	rep := r.report()
	for _, step := range []func(context.Context, *model.Report) error{
		r.cases, r.paragraphs, r.counters,
	} {
		if err := step(ctx, rep); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// Cases runs only the case regeneration jobs.
func (r *Runner) Cases(ctx context.Context) (*model.Report, error) {
	rep := r.report()
	return rep, r.cases(ctx, rep)
}

// Paragraphs runs only the paragraph numbering jobs.
func (r *Runner) Paragraphs(ctx context.Context) (*model.Report, error) {
	rep := r.report()
	return rep, r.paragraphs(ctx, rep)
}

// Counters runs only the counter numbering jobs.
func (r *Runner) Counters(ctx context.Context) (*model.Report, error) {
	rep := r.report()
	return rep, r.counters(ctx, rep)
}

// resolve expands a configured path into absolute document paths.
func (r *Runner) resolve(pattern string) ([]string, error) {
	return discover.Paths(r.Root, pattern)
}

// Inputs returns every document the configured jobs read, deduplicated
// and sorted. Globs are expanded once, at call time.
func (r *Runner) Inputs() ([]string, error) {
	var patterns []string
	for _, job := range r.Config.Cases {
		patterns = append(patterns, job.Source)
		for _, t := range job.Targets {
			patterns = append(patterns, t.Path)
		}
	}
	for _, job := range r.Config.Paragraphs {
		patterns = append(patterns, job.Path)
	}
	for _, job := range r.Config.Counters {
		patterns = append(patterns, job.Paths...)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, p := range patterns {
		paths, err := r.resolve(p)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Runner) rel(path string) string {
	rel, err := filepath.Rel(r.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// commit writes every changed document of one job and appends the results
// to rep. Nothing is written in dry-run mode.
func (r *Runner) commit(rep *model.Report, job string, docs []pending) error {
	for i := range docs {
		p := &docs[i]
		p.result.Changed = !p.before.Equal(p.after)
		if p.result.Changed && r.Diff {
			d, err := Diff(p.result.Path, p.before, p.after)
			if err != nil {
				return fmt.Errorf("%s: diffing %s: %w", job, p.result.Path, err)
			}
			p.result.Diff = d
		}
	}

	for i := range docs {
		p := &docs[i]
		log := r.log().With(zap.String("job", job), zap.String("path", p.result.Path))
		switch {
		case !p.result.Changed:
			log.Debug("up to date")
		case r.DryRun:
			log.Info("stale")
		default:
			if err := document.Write(p.path, p.after); err != nil {
				return fmt.Errorf("%s: %w", job, err)
			}
			log.Info("rewrote document",
				zap.Int("blocks", p.result.Blocks),
				zap.Int("lines", p.result.Lines))
		}
		rep.Results = append(rep.Results, p.result)
	}
	return nil
}
