package diag

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/kythe-go/cxxindex/internal/srcman"
)

// RenderCaret renders line with a caret under its col'th byte, the way
// the teacher's internal/errors.CompilerError.Format pointed at a
// column, rebuilt to measure visual width with golang.org/x/text/width
// instead of a plain len() so the caret still lines up under a
// full-width (e.g. CJK) source character.
func RenderCaret(line string, col int) string {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	visualCol := 0
	for _, r := range line[:col] {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			visualCol += 2
		default:
			visualCol++
		}
	}
	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", visualCol))
	sb.WriteByte('^')
	return sb.String()
}

// Render returns f's message followed by the source line it occurred
// on with a caret under the offending column, or just the message if
// f's location has no associated source (e.g. it was never resolved
// against a file).
func (f *Fault) Render(sm *srcman.Manager) string {
	if !f.Loc.Valid {
		return f.Error()
	}
	line, col := sm.LineAt(f.Loc)
	if line == "" {
		return f.Error()
	}
	return fmt.Sprintf("%s\n%s", f.Error(), RenderCaret(line, col))
}
