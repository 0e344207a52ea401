package projection

import (
	"fmt"
	"strings"

	"github.com/chainsim/go-projection/fold"
)

// layoutWidth is the fixed width used when rendering lines. Lines longer
// than this are hard-wrapped.
const layoutWidth = 120

// RenderLines formats each item independently and joins the results with
// newlines. Pure formatting: there are no failure modes.
func RenderLines[T fmt.Stringer]() fold.Fold[T, string] {
	return fold.MapResult(fold.Collect[T](), func(items []T) string {
		lines := make([]string, 0, len(items))
		for _, it := range items {
			lines = append(lines, wrapLine(it.String(), layoutWidth))
		}
		return strings.Join(lines, "\n")
	})
}

// wrapLine hard-wraps on rune boundaries so multi-byte characters are never
// split across a wrap.
func wrapLine(s string, width int) string {
	if len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	var b strings.Builder
	for len(runes) > width {
		b.WriteString(string(runes[:width]))
		b.WriteByte('\n')
		runes = runes[width:]
	}
	b.WriteString(string(runes))
	return b.String()
}
