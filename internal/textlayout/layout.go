package textlayout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// AvgCharWidth is the average glyph width as a fraction of the font size.
// It is a rough estimate for proportional fonts, not a glyph metric.
const AvgCharWidth = 0.5

// CharBudget estimates how many characters fit into maxWidth points at the
// given font size. It returns 0 when no sensible budget can be derived.
func CharBudget(maxWidth, fontSize float64) int {
	if !finite(maxWidth) || !finite(fontSize) || maxWidth <= 0 || fontSize <= 0 {
		return 0
	}
	budget := math.Floor(maxWidth / (fontSize * AvgCharWidth))
	if budget > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(budget)
}

// Lines splits value into printable lines. Explicit line breaks are always
// kept. When maxWidth yields a positive character budget, explicit lines
// longer than the budget are word wrapped; otherwise they are emitted as is.
func Lines(value string, maxWidth, fontSize float64) []string {
	if value == "" {
		return nil
	}
	budget := CharBudget(maxWidth, fontSize)

	var out []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if budget <= 0 || utf8.RuneCountInString(line) <= budget {
			out = append(out, line)
			continue
		}
		out = append(out, Wrap(line, budget)...)
	}
	return out
}

// Wrap greedily fills lines of at most budget characters on word boundaries.
// Words longer than budget are never split and end up on a line of their own.
func Wrap(line string, budget int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	if budget <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var (
		out     []string
		current strings.Builder
		width   int
	)
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if width > 0 && width+1+n > budget {
			out = append(out, current.String())
			current.Reset()
			width = 0
		}
		if width > 0 {
			current.WriteByte(' ')
			width++
		}
		current.WriteString(word)
		width += n
	}
	return append(out, current.String())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
