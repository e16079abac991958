package regen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/phobologic/regen/internal/block"
	"github.com/phobologic/regen/internal/config"
	"github.com/phobologic/regen/internal/document"
	"github.com/phobologic/regen/internal/entity"
	"github.com/phobologic/regen/internal/model"
	"github.com/phobologic/regen/internal/render"
)

func (r *Runner) cases(ctx context.Context, rep *model.Report) error {
	for _, job := range r.Config.Cases {
		if err := ctx.Err(); err != nil {
			return err
		}
		docs, err := r.caseJob(job)
		if err != nil {
			return err
		}
		if err := r.commit(rep, job.Name, docs); err != nil {
			return err
		}
	}
	return nil
}

// caseJob computes every target of job. It returns an error, and no
// documents, if any target cannot be regenerated.
func (r *Runner) caseJob(job config.CaseJob) ([]pending, error) {
	log := r.log().With(zap.String("job", job.Name))

	srcPaths, err := r.resolve(job.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: source: %w", job.Name, err)
	}
	if len(srcPaths) != 1 {
		return nil, fmt.Errorf("%s: source %q matched %d files, want 1", job.Name, job.Source, len(srcPaths))
	}
	src, err := document.Read(srcPaths[0])
	if err != nil {
		return nil, fmt.Errorf("%s: source: %w", job.Name, err)
	}
	names, err := entity.Extract(src, job.Prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", job.Name, r.rel(srcPaths[0]), err)
	}
	log.Debug("extracted entities", zap.String("source", r.rel(srcPaths[0])), zap.Int("count", len(names)))

	var docs []pending
	seen := make(map[string]struct{})
	for _, target := range job.Targets {
		paths, err := r.resolve(target.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", job.Name, err)
		}
		for _, path := range paths {
			// Each target is computed from the document on disk, so a
			// second target for the same file would overwrite the first.
			if _, dup := seen[path]; dup {
				return nil, fmt.Errorf("%s: %s resolved by more than one target", job.Name, r.rel(path))
			}
			seen[path] = struct{}{}
			p, err := r.caseTarget(job, target, path, names)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", job.Name, r.rel(path), err)
			}
			docs = append(docs, p)
		}
	}
	return docs, nil
}

func (r *Runner) caseTarget(job config.CaseJob, target config.Target, path string, names []string) (pending, error) {
	doc, err := document.Read(path)
	if err != nil {
		return pending{}, err
	}

	newline := doc.Newline()
	bodies := make([][]string, len(target.Blocks))
	lines := 0
	for i, m := range target.Blocks {
		mode, err := render.ParseMode(m)
		if err != nil {
			return pending{}, err
		}
		rnd, err := renderer(job, mode, newline)
		if err != nil {
			return pending{}, err
		}
		body, err := rnd.Render(names)
		if err != nil {
			return pending{}, err
		}
		bodies[i] = body
		lines += len(body)
	}

	sc := block.ScannerFor(path, job.Scan == config.ScanSyntax)
	out, blocks, err := block.ReplaceAll(doc, job.Marker, block.Braces, sc, bodies)
	if err != nil {
		return pending{}, err
	}

	return pending{
		path:   path,
		before: doc,
		after:  out,
		result: model.Result{
			Job:    job.Name,
			Kind:   model.Cases,
			Path:   r.rel(path),
			Blocks: len(blocks),
			Lines:  lines,
		},
	}, nil
}

func renderer(job config.CaseJob, mode render.Mode, newline string) (*render.Renderer, error) {
	if t, ok := job.Templates[string(mode)]; ok {
		return render.New(t, newline)
	}
	return render.ForMode(mode, newline)
}
