package gamegraph

import (
	"fmt"
	"strings"
)

const (
	tableFontSize = 7
	// Header text shown until per-player columns are rendered.
	tablePlaceholder = "xyz"
)

// FormatTable returns a Graphviz HTML-like label describing the given game.
// The returned string includes the enclosing angle brackets and can be
// used verbatim as a node label.
//
// Only the header row is rendered at the moment: the output does not
// depend on the contents of game.
func FormatTable(game Description) string {
	span := 1

	var b strings.Builder
	fmt.Fprintf(&b, `<<FONT POINT-SIZE="%d">`, tableFontSize)
	b.WriteString(`<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">`)
	fmt.Fprintf(&b, `<TR><TD COLSPAN="%d">%s</TD></TR>`, span, tablePlaceholder)
	// Legend row, starting with the empty corner cell.
	b.WriteString("<TR><TD></TD></TR>")
	b.WriteString("</TABLE></FONT>>")
	return b.String()
}
