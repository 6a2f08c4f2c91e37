package report

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Every frame line is exactly this wide.
const lineWidth = 80

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func span() string { return strings.Repeat("*", lineWidth) }

func spacer() string { return "*" + strings.Repeat(" ", lineWidth-2) + "*" }

// titleRow centers s between the frame columns. Width is measured on the
// ANSI-stripped text so styled titles stay aligned.
func titleRow(s string) string {
	const inner = lineWidth - 2
	w := visibleWidth(s)
	if w >= inner {
		return "*" + s + "*"
	}
	left := (inner - w) / 2
	return "*" + strings.Repeat(" ", left) + s + strings.Repeat(" ", inner-w-left) + "*"
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansiSeq.ReplaceAllString(s, ""))
}
