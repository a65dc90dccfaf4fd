package rewrite

import (
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/scope"
)

// RewriteMembers rewrites dotted member access on one line into
// pointer-access form wherever the base expression's resolved pointer
// depth requires it, producing a fresh token slice.
//
// For each identifier declared in a visible scope, the postfix
// operators that follow it are consumed first: an index group spends
// one array rank if any remain, else one pointer level; a call group
// spends nothing (return types are not tracked, so a call result used
// as a dotted base is never rewritten). Then each ". member" hop is
// rewritten by the remaining depth: at depth 1 the dot becomes "->";
// above 1 the whole base span so far is wrapped in "(*" and ")" and
// one level is peeled per hop; at depth 0 the dot stays. Names never
// declared anywhere are not treated as bases at all.
func RewriteMembers(line []lexer.Token, lineScope int, table *scope.Table) []lexer.Token {
	out := make([]lexer.Token, 0, len(line))

	for i := 0; i < len(line); i++ {
		t := line[i]
		if t.Kind != lexer.KindIdentifier {
			out = append(out, t)
			continue
		}

		vi := table.Resolve(lineScope, t.Text)
		if !vi.Known && vi.Rank == 0 {
			out = append(out, t)
			continue
		}

		depth := 0
		if vi.Known {
			depth = vi.Depth
		}
		rank := vi.Rank

		// the base span starts here in the output; depth>1 hops wrap
		// it again from this same point each time
		baseStart := len(out)
		out = append(out, t)
		j := i + 1

		// postfix walk: copy index and call groups whole
		for j < len(line) {
			if line[j].IsPunct("[") {
				end, ok := matchGroup(line, j, "[", "]")
				if !ok {
					break
				}
				if rank > 0 {
					rank--
				} else if depth > 0 {
					depth--
				}
				out = append(out, line[j:end+1]...)
				j = end + 1
				continue
			}
			if line[j].IsPunct("(") {
				end, ok := matchGroup(line, j, "(", ")")
				if !ok {
					break
				}
				out = append(out, line[j:end+1]...)
				j = end + 1
				continue
			}
			break
		}

		// member hops
		for j+1 < len(line) && line[j].IsPunct(".") && line[j+1].Kind == lexer.KindIdentifier {
			dot := line[j]
			switch {
			case depth == 1:
				dot.Kind = lexer.KindOperator
				dot.Text = "->"
				out = append(out, dot, line[j+1])
			case depth > 1:
				out = wrapDeref(out, baseStart, line[i], dot)
				dot.Kind = lexer.KindOperator
				dot.Text = "->"
				out = append(out, dot, line[j+1])
				depth--
			default:
				out = append(out, dot, line[j+1])
			}
			j += 2
		}

		i = j - 1
	}
	return out
}

// wrapDeref surrounds out[baseStart:] with "( *" and ")". Position
// info for the synthesized tokens is borrowed from the base and dot
// tokens they attach to.
func wrapDeref(out []lexer.Token, baseStart int, base, dot lexer.Token) []lexer.Token {
	lpar := base
	lpar.Kind = lexer.KindPunct
	lpar.Text = "("
	star := base
	star.Kind = lexer.KindOperator
	star.Text = "*"
	rpar := dot
	rpar.Kind = lexer.KindPunct
	rpar.Text = ")"

	wrapped := make([]lexer.Token, 0, len(out)+3)
	wrapped = append(wrapped, out[:baseStart]...)
	wrapped = append(wrapped, lpar, star)
	wrapped = append(wrapped, out[baseStart:]...)
	wrapped = append(wrapped, rpar)
	return wrapped
}

// matchGroup returns the index of the punctuation closing the group
// opened at i, or false when the line ends first.
func matchGroup(line []lexer.Token, i int, open, close string) (int, bool) {
	depth := 0
	for k := i; k < len(line); k++ {
		if line[k].IsPunct(open) {
			depth++
		} else if line[k].IsPunct(close) {
			depth--
			if depth == 0 {
				return k, true
			}
		}
	}
	return 0, false
}
