package regen

import (
	"context"
	"fmt"

	"github.com/phobologic/regen/internal/document"
	"github.com/phobologic/regen/internal/model"
	"github.com/phobologic/regen/internal/number"
)

func (r *Runner) paragraphs(ctx context.Context, rep *model.Report) error {
	for _, job := range r.Config.Paragraphs {
		if err := ctx.Err(); err != nil {
			return err
		}
		paths, err := r.resolve(job.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", job.Name, err)
		}

		p := number.Paragraphs{Start: job.Start, Step: job.Step}
		if job.Close != "" {
			p.Close = job.Close[0]
		}
		var docs []pending
		for _, path := range paths {
			doc, err := document.Read(path)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			out, stats, err := p.Apply(doc)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", job.Name, r.rel(path), err)
			}
			docs = append(docs, pending{
				path:   path,
				before: doc,
				after:  out,
				result: model.Result{
					Job:    job.Name,
					Kind:   model.Paragraphs,
					Path:   r.rel(path),
					Blocks: stats.Paragraphs,
					Lines:  stats.Numbered,
				},
			})
		}
		if err := r.commit(rep, job.Name, docs); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) counters(ctx context.Context, rep *model.Report) error {
	for _, job := range r.Config.Counters {
		if err := ctx.Err(); err != nil {
			return err
		}
		rule, err := number.CallRule(job.Call)
		if err != nil {
			return fmt.Errorf("%s: %w", job.Name, err)
		}
		c := number.Counter{Rule: rule, Sentinel: job.Sentinel}

		var docs []pending
		seen := make(map[string]struct{})
		for _, pattern := range job.Paths {
			paths, err := r.resolve(pattern)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			for _, path := range paths {
				// Overlapping patterns number a document once.
				if _, dup := seen[path]; dup {
					continue
				}
				seen[path] = struct{}{}
				doc, err := document.Read(path)
				if err != nil {
					return fmt.Errorf("%s: %w", job.Name, err)
				}
				out, n := c.Renumber(doc)
				docs = append(docs, pending{
					path:   path,
					before: doc,
					after:  out,
					result: model.Result{
						Job:   job.Name,
						Kind:  model.Counters,
						Path:  r.rel(path),
						Lines: n,
					},
				})
			}
		}
		if err := r.commit(rep, job.Name, docs); err != nil {
			return err
		}
	}
	return nil
}
