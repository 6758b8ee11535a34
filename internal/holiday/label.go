package holiday

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	headingPrefix = regexp.MustCompile(`^\*+\s+`)
	todoKeyword   = regexp.MustCompile(`^(TODO|DONE|NEXT|WAITING|CANCELLED)\s+`)
	priorityMark  = regexp.MustCompile(`^\[#[A-Za-z0-9]\]\s*`)
	trailingTags  = regexp.MustCompile(`\s+:[\w@#%:]+:\s*$`)
)

// CleanLabel turns a registry heading into a short label:
// "** Día de la Memoria (feriado nacional)" -> "Día de la Memoria".
func CleanLabel(title string) string {
	label := strings.TrimSpace(title)
	label = headingPrefix.ReplaceAllString(label, "")
	label = todoKeyword.ReplaceAllString(label, "")
	label = priorityMark.ReplaceAllString(label, "")
	label = trailingTags.ReplaceAllString(label, "")

	if i := strings.Index(label, "("); i >= 0 {
		label = label[:i]
	}

	return strings.TrimRightFunc(label, unicode.IsSpace)
}
