package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phobologic/regen/internal/number"
	"github.com/phobologic/regen/internal/render"
)

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(c.Cases)+len(c.Paragraphs)+len(c.Counters) == 0 {
		add("no jobs configured")
	}

	names := make(map[string]struct{})
	checkName := func(kind, name string) {
		if strings.TrimSpace(name) == "" {
			add("%s job: missing name", kind)
			return
		}
		if _, dup := names[name]; dup {
			add("%s job %q: duplicate name", kind, name)
		}
		names[name] = struct{}{}
	}

	for _, j := range c.Cases {
		checkName("cases", j.Name)
		if j.Source == "" {
			add("cases job %q: missing source", j.Name)
		}
		if j.Prefix == "" {
			add("cases job %q: missing prefix", j.Name)
		}
		if j.Marker == "" {
			add("cases job %q: missing marker", j.Name)
		}
		if j.Scan != ScanSyntax && j.Scan != ScanPlain {
			add("cases job %q: scan must be %q or %q, got %q", j.Name, ScanSyntax, ScanPlain, j.Scan)
		}
		for mode, t := range j.Templates {
			if _, err := render.ParseMode(mode); err != nil {
				add("cases job %q: templates: %w", j.Name, err)
				continue
			}
			if _, err := render.New(t, "\n"); err != nil {
				add("cases job %q: templates[%s]: %w", j.Name, mode, err)
			}
		}
		if len(j.Targets) == 0 {
			add("cases job %q: no targets", j.Name)
		}
		for _, t := range j.Targets {
			if t.Path == "" {
				add("cases job %q: target missing path", j.Name)
			}
			if len(t.Blocks) == 0 {
				add("cases job %q: target %q lists no blocks", j.Name, t.Path)
			}
			for _, b := range t.Blocks {
				if _, err := render.ParseMode(b); err != nil {
					add("cases job %q: target %q: %w", j.Name, t.Path, err)
				}
			}
		}
	}

	for _, j := range c.Paragraphs {
		checkName("paragraphs", j.Name)
		if j.Path == "" {
			add("paragraphs job %q: missing path", j.Name)
		}
		if j.Start == "" {
			add("paragraphs job %q: missing start marker", j.Name)
		}
		if len(j.Close) != 1 {
			add("paragraphs job %q: close must be a single character, got %q", j.Name, j.Close)
		}
		if j.Step <= 0 {
			add("paragraphs job %q: step must be positive, got %d", j.Name, j.Step)
		}
	}

	for _, j := range c.Counters {
		checkName("counters", j.Name)
		if len(j.Paths) == 0 {
			add("counters job %q: no paths", j.Name)
		}
		if _, err := number.CallRule(j.Call); err != nil {
			add("counters job %q: %w", j.Name, err)
		}
		if j.Sentinel < 0 {
			add("counters job %q: sentinel must not be negative, got %d", j.Name, j.Sentinel)
		}
	}

	return errors.Join(errs...)
}
