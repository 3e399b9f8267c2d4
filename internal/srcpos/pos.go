// Package srcpos carries source positions shared by every later stage of
// the pipeline, from the lexer through the AIR builder.
package srcpos

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether p was never set.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.File == ""
}
