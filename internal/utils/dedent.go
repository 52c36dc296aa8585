package utils

import "strings"

// Dedent strips the longest common leading whitespace from all non-blank
// lines of text. Lines consisting solely of whitespace are ignored when
// computing the common prefix and are normalized to empty lines in the
// result.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	haveMargin := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if !haveMargin {
			margin = indent
			haveMargin = true
			continue
		}
		n := 0
		for n < len(margin) && n < len(indent) && margin[n] == indent[n] {
			n++
		}
		margin = margin[:n]
	}

	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}

	return strings.Join(lines, "\n")
}
