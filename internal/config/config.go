// Package config loads the regen job configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/regen/internal/number"
	"github.com/phobologic/regen/internal/render"
)

// DefaultFile is the config file name looked up in the workspace root.
const DefaultFile = ".regen.yaml"

// Scan modes for case jobs.
const (
	ScanSyntax = "syntax"
	ScanPlain  = "plain"
)

// Config lists every job regen runs.
type Config struct {
	Cases      []CaseJob      `yaml:"cases,omitempty"`
	Paragraphs []ParagraphJob `yaml:"paragraphs,omitempty"`
	Counters   []CounterJob   `yaml:"counters,omitempty"`
}

// CaseJob regenerates marker blocks in targets from the entities declared
// in Source.
type CaseJob struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Prefix string `yaml:"prefix"`
	Marker string `yaml:"marker"`
	// Scan is "syntax" (ignore delimiters in comments and literals when
	// the target language is known) or "plain". Empty means syntax.
	Scan string `yaml:"scan,omitempty"`
	// Templates overrides the built-in templates per mode.
	Templates map[string]render.Templates `yaml:"templates,omitempty"`
	Targets   []Target                    `yaml:"targets"`
}

// Target is one document rewritten by a case job. Blocks lists the render
// mode of each marker block in document order; the document must contain
// exactly len(Blocks) markers.
type Target struct {
	Path   string   `yaml:"path"`
	Blocks []string `yaml:"blocks"`
}

// ParagraphJob renumbers a region of one document by paragraph.
type ParagraphJob struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"path"`
	Start string `yaml:"start"`
	Close string `yaml:"close,omitempty"`
	Step  int    `yaml:"step,omitempty"`
}

// CounterJob renumbers call(<int>) literals across whole documents. Paths
// may be globs relative to the workspace root.
type CounterJob struct {
	Name     string   `yaml:"name"`
	Paths    []string `yaml:"paths"`
	Call     string   `yaml:"call"`
	Sentinel int      `yaml:"sentinel,omitempty"`
}

// Default returns the built-in job set used when no config file exists.
func Default() *Config {
	return &Config{
		Cases: []CaseJob{{
			Name:   "render-actions",
			Source: "ABI/RenderActionWriter.cs",
			Prefix: "public void ",
			Marker: "switch (render_action.InnerCase)",
			Scan:   ScanSyntax,
			Targets: []Target{
				{Path: "HostInterpretRequest.cs", Blocks: []string{string(render.CallThrough)}},
				{Path: "HostLogRequest.cs", Blocks: []string{string(render.Log)}},
			},
		}},
		Paragraphs: []ParagraphJob{{
			Name:  "render-action-proto",
			Path:  "ABI/RenderAction.proto",
			Start: "oneof inner {",
			Close: "}",
			Step:  number.DefaultStep,
		}},
		Counters: []CounterJob{{
			Name:  "world-stats",
			Paths: []string{"and/world.go"},
			Call:  "stat.W",
		}},
	}
}

// Load reads the config at path. When the file does not exist the default
// configuration is returned with found set to false.
func Load(path string) (cfg *Config, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), false, nil
		}
		return nil, false, fmt.Errorf("reading config: %w", err)
	}
	cfg, err = Parse(data)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// Parse decodes and validates YAML config data. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config is empty")
		}
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) applyDefaults() {
	for i := range c.Cases {
		if c.Cases[i].Scan == "" {
			c.Cases[i].Scan = ScanSyntax
		}
	}
	for i := range c.Paragraphs {
		if c.Paragraphs[i].Close == "" {
			c.Paragraphs[i].Close = "}"
		}
		if c.Paragraphs[i].Step == 0 {
			c.Paragraphs[i].Step = number.DefaultStep
		}
	}
}
