package rewrite

import (
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/scope"
)

// Line is one physical source line's tokens. Scope is the owning scope
// of the line's first token and stands in for the whole line when
// deciding semicolon rules.
type Line struct {
	Tokens []lexer.Token
	Scope  int
}

// SplitLines groups tokens by their original source line.
func SplitLines(toks []lexer.Token) []Line {
	var out []Line
	if len(toks) == 0 {
		return out
	}
	cur := toks[0].Line
	out = append(out, Line{Scope: toks[0].Scope})
	for _, t := range toks {
		if t.Line != cur {
			cur = t.Line
			out = append(out, Line{Scope: t.Scope})
		}
		last := &out[len(out)-1]
		last.Tokens = append(last.Tokens, t)
	}
	return out
}

// InsertBraceSemicolons inserts a ";" before any "}" that is not the
// line's first token when the preceding token plainly ends a statement
// (a value-like token or any operator). Enum bodies never take
// semicolons, so both a line inside one and a "}" that closes one are
// left alone — the latter matters for single-line enums, whose line
// scope is the enclosing scope.
func InsertBraceSemicolons(line []lexer.Token, kind scope.Kind, table *scope.Table) []lexer.Token {
	if kind == scope.KindEnum {
		return line
	}
	for i := 1; i < len(line); i++ {
		if !line[i].IsPunct("}") || table.KindOf(line[i].Scope) == scope.KindEnum {
			continue
		}
		prev := line[i-1]
		if prev.IsPunct(";") || prev.IsPunct("{") {
			continue
		}
		need := prev.Kind == lexer.KindIdentifier || prev.Kind == lexer.KindNumber ||
			prev.Kind == lexer.KindString || prev.Kind == lexer.KindOperator ||
			prev.IsPunct(")") || prev.IsPunct("]")
		if need {
			semi := prev
			semi.Kind = lexer.KindPunct
			semi.Text = ";"
			line = append(line[:i], append([]lexer.Token{semi}, line[i:]...)...)
			i++
		}
	}
	return line
}

// NeedsSemicolon decides whether a whole line should get a trailing
// ";" after rewriting. Enum bodies and preprocessor lines never do. A
// line ending in "}" gets one only when it is a single-line
// initializer list (contains both "=" and an earlier "{"); a line
// ending in ")" under a control-flow keyword is a header and gets
// none. Otherwise any value-like final token means the line is a
// statement cut short by the line break.
func NeedsSemicolon(line []lexer.Token, kind scope.Kind) bool {
	if len(line) == 0 || kind == scope.KindEnum {
		return false
	}
	first, last := line[0], line[len(line)-1]
	if first.Kind == lexer.KindPreprocessor {
		return false
	}

	if last.IsPunct("}") {
		hasEq, hasLBrace := false, false
		for _, t := range line[:len(line)-1] {
			if t.IsOperator("=") {
				hasEq = true
			}
			if t.IsPunct("{") {
				hasLBrace = true
			}
		}
		return hasEq && hasLBrace
	}

	if last.IsPunct("{") || last.IsPunct(";") {
		return false
	}

	if last.IsPunct(")") {
		for _, t := range line {
			switch {
			case t.IsKeyword("if"), t.IsKeyword("for"), t.IsKeyword("while"), t.IsKeyword("switch"):
				return false
			}
		}
	}

	return last.Kind == lexer.KindIdentifier || last.Kind == lexer.KindNumber ||
		last.Kind == lexer.KindString || last.IsPunct(")") || last.IsPunct("]")
}

// AppendSemicolon returns line with a synthesized trailing ";".
func AppendSemicolon(line []lexer.Token) []lexer.Token {
	last := line[len(line)-1]
	return append(line, lexer.Token{
		Kind: lexer.KindPunct,
		Text: ";",
		Line: last.Line,
		Col:  last.Col + 1,
	})
}
