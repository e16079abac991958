// Package number rewrites integer literals in a document so they form
// predictable sequences: per-paragraph blocks of 100 inside a region, or a
// single document-wide count.
package number

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const numGroup = "num"

// Rule matches the integer literals a numbering pass may rewrite. The
// regexp must define a capture group named "num" around the digits; the
// rest of each match is kept verbatim.
type Rule struct {
	re  *regexp.Regexp
	idx int
}

// NewRule compiles expr into a Rule.
func NewRule(expr string) (*Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling rule: %w", err)
	}
	idx := re.SubexpIndex(numGroup)
	if idx < 0 {
		return nil, fmt.Errorf("rule %q has no (?P<%s>...) group", expr, numGroup)
	}
	return &Rule{re: re, idx: idx}, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(expr string) *Rule {
	r, err := NewRule(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the source expression.
func (r *Rule) String() string {
	return r.re.String()
}

// TrailingRule matches a line ending in "<int>;" with optional whitespace
// around the semicolon.
var TrailingRule = MustRule(`^(?P<prefix>.*?)(?P<num>\d+)\s*;(?P<suffix>\s*)$`)

// CallRule matches call(<int>) literals, e.g. CallRule("stat.W") matches
// "stat.W(12)".
func CallRule(call string) (*Rule, error) {
	if strings.TrimSpace(call) == "" {
		return nil, errors.New("empty call name")
	}
	return NewRule(regexp.QuoteMeta(call) + `\((?P<num>\d+)\)`)
}

// assignFunc decides the replacement for a matched literal. old is -1 when
// the literal does not fit in an int.
type assignFunc func(old int) (int, bool)

// rewrite replaces every literal the rule matches in line, asking assign
// for each replacement in left-to-right order. It reports how many
// literals were replaced.
func (r *Rule) rewrite(line string, assign assignFunc) (string, int) {
	content := strings.TrimRight(line, "\r\n")
	ending := line[len(content):]

	matches := r.re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return line, 0
	}

	var b strings.Builder
	last, n := 0, 0
	for _, m := range matches {
		start, end := m[2*r.idx], m[2*r.idx+1]
		if start < 0 {
			continue
		}
		old, err := strconv.Atoi(content[start:end])
		if err != nil {
			old = -1
		}
		v, ok := assign(old)
		if !ok {
			continue
		}
		b.WriteString(content[last:start])
		b.WriteString(strconv.Itoa(v))
		last = end
		n++
	}
	if n == 0 {
		return line, 0
	}
	b.WriteString(content[last:])
	b.WriteString(ending)
	return b.String(), n
}

// sequence hands out consecutive values starting at next.
type sequence struct {
	next int
}

func (s *sequence) take() int {
	v := s.next
	s.next++
	return v
}

// renumber applies assign to every rule match in lines and returns the
// rewritten lines with the number of literals replaced.
func renumber(lines []string, rule *Rule, assign assignFunc) ([]string, int) {
	out := make([]string, len(lines))
	total := 0
	for i, line := range lines {
		var n int
		out[i], n = rule.rewrite(line, assign)
		total += n
	}
	return out, total
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Stats summarises a numbering pass.
type Stats struct {
	Paragraphs int
	Numbered   int
}
