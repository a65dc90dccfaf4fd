// Package emitter serializes rewritten token lines back to text.
package emitter

import (
	"strings"

	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/rewrite"
)

// Emitter accumulates output text line by line.
type Emitter struct {
	b strings.Builder
}

// New creates an empty emitter.
func New() *Emitter { return &Emitter{} }

// sticky tokens take no space on the side touching the base
// expression: none before "(", "[", "." or "->", and none after them
// either. A "*" directly after "(" is a synthesized dereference and
// sticks too, so a wrapped base prints as "(*pp)->a".
func stickyLeft(t lexer.Token) bool {
	return t.IsPunct("(") || t.IsPunct("[") || t.IsPunct(".") || t.IsOperator("->")
}

// EmitLine writes one token line. Consecutive tokens are joined by a
// single space, except that nothing precedes ",", ")", "]" or ";" and
// sticky tokens bind to their neighbors. A preprocessor token is
// emitted alone on its own line and ends the line immediately.
func (e *Emitter) EmitLine(line []lexer.Token) {
	if len(line) == 0 {
		e.b.WriteByte('\n')
		return
	}
	bol := true
	var prev, prev2 lexer.Token
	for _, t := range line {
		if t.Kind == lexer.KindPreprocessor {
			if !bol {
				e.b.WriteByte('\n')
			}
			e.b.WriteString(t.Text)
			e.b.WriteByte('\n')
			return
		}
		space := !bol
		switch {
		case t.IsPunct(","), t.IsPunct(")"), t.IsPunct("]"), t.IsPunct(";"):
			space = false
		case stickyLeft(t):
			space = false
		case !bol && stickyLeft(prev):
			space = false
		case !bol && prev.IsOperator("*") && prev2.IsPunct("("):
			// dereference group "( * base )"
			space = false
		}
		if space {
			e.b.WriteByte(' ')
		}
		e.b.WriteString(t.Text)
		bol = false
		prev2 = prev
		prev = t
	}
	e.b.WriteByte('\n')
}

// EmitLines writes every line in order.
func (e *Emitter) EmitLines(lines []rewrite.Line) {
	for _, l := range lines {
		e.EmitLine(l.Tokens)
	}
}

// String returns the accumulated output.
func (e *Emitter) String() string { return e.b.String() }
