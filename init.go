package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/regen/internal/config"
	"github.com/phobologic/regen/internal/document"
)

const (
	sentinelStart = "# regen:start"
	sentinelEnd   = "# regen:end"
)

func newInitCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config",
		Long: `Write the built-in job set to a config file. The jobs are wrapped in
sentinel comments so they can be updated in place on subsequent runs
without touching surrounding content. Creates the file if it does not
exist.

Content outside the section may only hold comments: an existing config
that defines jobs without the sentinels is refused, since appending the
built-in jobs would repeat its top-level keys.

path defaults to <root>/` + config.DefaultFile + `. With --dry-run and no path
the section itself is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, args)
		},
	}
}

func runInit(cmd *cobra.Command, opts *options, args []string) error {
	stdout := cmd.OutOrStdout()

	section, err := generateSection()
	if err != nil {
		return err
	}

	if opts.dryRun && len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, section)
		return nil
	}

	path := filepath.Join(opts.root, config.DefaultFile)
	if len(args) > 0 {
		path = args[0]
	}

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	updated := applySection(string(existing), section)

	// The result must still load, or the next run would fail.
	if _, err := config.Parse([]byte(updated)); err != nil {
		if !strings.Contains(string(existing), sentinelStart) {
			return fmt.Errorf("%s: existing content conflicts with the built-in jobs; wrap it in %q and %q to replace it: %w",
				path, sentinelStart, sentinelEnd, err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	if opts.dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := document.Write(path, document.Parse(updated)); err != nil {
		return err
	}
	opts.logger.Info("wrote regen section to " + path)
	return nil
}

// generateSection returns the sentinel-wrapped default config.
func generateSection() (string, error) {
	body, err := config.Default().Marshal()
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}
	return sentinelStart + "\n" + strings.TrimRight(string(body), "\n") + "\n" + sentinelEnd, nil
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if len(content) == 0 {
		return section + "\n"
	}
	return content + "\n" + section + "\n"
}
