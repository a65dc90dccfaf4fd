// Package rewrite holds the token-level transformation passes that
// turn analyzed C+ tokens into C++ tokens: the two scope-aware
// semicolon normalization passes, the pointer member-access rewriter,
// and end-of-line semicolon inference.
package rewrite

import (
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/scope"
)

// StripEnumSemicolons removes every ";" whose owning scope is an enum
// body. Enumerator lists are comma-separated; any semicolon in one is
// spurious. A semicolon right after the enum's closing brace belongs
// to the enclosing scope and survives.
func StripEnumSemicolons(toks []lexer.Token, table *scope.Table) []lexer.Token {
	out := toks[:0:0]
	for _, t := range toks {
		if t.IsPunct(";") && table.KindOf(t.Scope) == scope.KindEnum {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CloseTypeBlocks inserts a ";" after the closing brace of every
// struct/union/enum body that no declarator follows, turning a bare
// type definition into a complete statement. Preprocessor lines
// between the brace and the next real token are skipped when looking
// ahead; a following identifier, "*", "(", "[" or existing ";" means
// a declarator (or the semicolon itself) is already there and nothing
// is inserted.
func CloseTypeBlocks(toks []lexer.Token, table *scope.Table) []lexer.Token {
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if !t.IsPunct("}") || !table.KindOf(t.Scope).IsType() {
			continue
		}

		j := i + 1
		for j < len(toks) && toks[j].Kind == lexer.KindPreprocessor {
			j++
		}

		follows := false
		if j < len(toks) {
			n := toks[j]
			follows = n.Kind == lexer.KindIdentifier ||
				n.IsOperator("*") ||
				n.IsPunct("(") || n.IsPunct("[") || n.IsPunct(";")
		}
		if !follows {
			semi := t
			semi.Kind = lexer.KindPunct
			semi.Text = ";"
			toks = append(toks[:i+1], append([]lexer.Token{semi}, toks[i+1:]...)...)
			i++
		}
	}
	return toks
}
