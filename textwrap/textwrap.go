// Package textwrap wraps a string into a sequence of pieces whose
// display width does not exceed a target width, breaking only at
// Unicode line-break opportunities (UAX #14). Display width is measured
// by East-Asian-width rules with ambiguous characters treated as
// narrow, matching the reference gettext tooling this package is
// compatible with.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// widthCondition pins East-Asian-width handling so wrapping is
// deterministic regardless of the host terminal/locale, rather than
// relying on go-runewidth's environment auto-detection.
var widthCondition = &runewidth.Condition{EastAsianWidth: false}

// Width returns the display width of s under the package's fixed
// East-Asian-width condition (ambiguous = narrow).
func Width(s string) int {
	return widthCondition.StringWidth(s)
}

// Wrap splits text into pieces whose display width does not exceed
// wrapwidth, breaking only at Unicode line-break opportunities. Each
// piece includes the trailing separator character that produced the
// break, so joining all pieces reproduces text exactly. The trailing
// segment is always emitted, even if empty. An over-long unbreakable
// run is emitted as a single piece rather than split mid-grapheme.
func Wrap(text string, wrapwidth int) []string {
	if text == "" {
		return []string{""}
	}

	var pieces []string
	var current strings.Builder
	currentWidth := 0

	state := -1
	rest := text
	for len(rest) > 0 {
		var segment string
		segment, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		segWidth := Width(segment)

		if currentWidth > 0 && currentWidth+segWidth > wrapwidth {
			pieces = append(pieces, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteString(segment)
		currentWidth += segWidth
	}
	pieces = append(pieces, current.String())
	return pieces
}
