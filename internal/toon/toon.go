// Package toon implements TOON (Token-Oriented Object Notation) encoding
// of run reports.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/regen/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a Report into TOON format.
func Encode(r *model.Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(r.Root)))
	mode := "write"
	if r.DryRun {
		mode = "dry-run"
	}
	parts = append(parts, fmt.Sprintf("mode: %s", mode))

	var rows [][]string
	for i := range r.Results {
		res := &r.Results[i]
		rows = append(rows, []string{
			encodeValue(res.Job),
			encodeValue(string(res.Kind)),
			encodeValue(res.Path),
			strconv.Itoa(res.Blocks),
			strconv.Itoa(res.Lines),
			strconv.FormatBool(res.Changed),
		})
	}
	parts = append(parts, formatTabular("results", []string{"job", "kind", "path", "blocks", "lines", "changed"}, rows))

	return strings.Join(parts, "\n")
}

// formatTabular writes a TOON table. Cells must already be encoded.
func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n  %s", strings.Join(row, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
