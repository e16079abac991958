package number

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/regen/internal/document"
)

var (
	ErrStartNotFound = errors.New("start marker not found")
	ErrCloseNotFound = errors.New("closing line not found")
)

// DefaultStep is the distance between consecutive paragraph bases.
const DefaultStep = 100

// OverrideRule matches a leading "// N" comment that fixes a paragraph's
// base at N*Step.
var OverrideRule = regexp.MustCompile(`^\s*//\s*(\d+)`)

// Paragraphs numbers the region that follows a start marker, up to the
// first line whose trimmed text begins with Close. The region is split into
// paragraphs by blank lines. Each paragraph gets a base: N*Step when its
// first line is an override comment "// N", otherwise the previous base
// plus Step (Step for the first paragraph). Matching lines inside a
// paragraph are numbered base, base+1, ... in order.
type Paragraphs struct {
	Start string
	Close byte
	Step  int
	Rule  *Rule
}

func (p Paragraphs) withDefaults() Paragraphs {
	if p.Close == 0 {
		p.Close = '}'
	}
	if p.Step <= 0 {
		p.Step = DefaultStep
	}
	if p.Rule == nil {
		p.Rule = TrailingRule
	}
	return p
}

// Apply returns the renumbered document. Lines outside the region are
// copied unchanged.
func (p Paragraphs) Apply(doc *document.Document) (*document.Document, Stats, error) {
	p = p.withDefaults()

	start := -1
	for i, line := range doc.Lines {
		if strings.Contains(line, p.Start) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, Stats{}, fmt.Errorf("%w: %q", ErrStartNotFound, p.Start)
	}

	end := start + 1
	for end < doc.Len() && !strings.HasPrefix(strings.TrimSpace(doc.Lines[end]), string(p.Close)) {
		end++
	}
	if end >= doc.Len() {
		return nil, Stats{}, fmt.Errorf("%w: no line starting with %q after line %d", ErrCloseNotFound, p.Close, start+1)
	}

	region, stats := p.Region(doc.Lines[start+1 : end])

	out := make([]string, 0, doc.Len())
	out = append(out, doc.Lines[:start+1]...)
	out = append(out, region...)
	out = append(out, doc.Lines[end:]...)
	return document.New(out), stats, nil
}

// Region numbers lines that have already been cut out of a document.
func (p Paragraphs) Region(lines []string) ([]string, Stats) {
	p = p.withDefaults()

	var stats Stats
	out := make([]string, 0, len(lines))
	base, haveBase := 0, false

	for j := 0; j < len(lines); {
		if isBlank(lines[j]) {
			out = append(out, lines[j])
			j++
			continue
		}

		k := j
		for k < len(lines) && !isBlank(lines[k]) {
			k++
		}
		para := lines[j:k]

		body := para
		if n, ok := p.override(para[0]); ok {
			base = n * p.Step
			out = append(out, para[0])
			body = para[1:]
		} else if haveBase {
			base += p.Step
		} else {
			base = p.Step
		}
		haveBase = true

		seq := sequence{next: base}
		numbered, n := renumber(body, p.Rule, func(int) (int, bool) {
			return seq.take(), true
		})
		out = append(out, numbered...)

		stats.Paragraphs++
		stats.Numbered += n
		j = k
	}
	return out, stats
}

func (p Paragraphs) override(line string) (int, bool) {
	m := OverrideRule.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
