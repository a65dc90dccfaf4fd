// Package translator drives the C+ to C++ translation pipeline for
// one source file: lex, scope analysis, semicolon normalization,
// member-access rewriting, serialization. The known-type set is owned
// by the caller and shared across every file of an invocation, so a
// typedef from an earlier file is still a known type in a later one.
package translator

import (
	"github.com/Janders1800/C-plus/pkg/translator/emitter"
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/rewrite"
	"github.com/Janders1800/C-plus/pkg/translator/scope"
)

// Translate converts one C+ source file to C++ text. types grows as
// aliases and tags are discovered and must never be reset between
// files of the same run. The only possible error is the scanner's
// *lexer.ForbiddenOperatorError.
func Translate(src []byte, types *scope.TypeSet) (string, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return "", err
	}

	table := scope.Analyze(toks, types)

	toks = rewrite.StripEnumSemicolons(toks, table)
	toks = rewrite.CloseTypeBlocks(toks, table)

	lines := rewrite.SplitLines(toks)
	out := emitter.New()
	for i := range lines {
		kind := table.KindOf(lines[i].Scope)
		l := rewrite.RewriteMembers(lines[i].Tokens, lines[i].Scope, table)
		l = rewrite.InsertBraceSemicolons(l, kind, table)
		if rewrite.NeedsSemicolon(l, kind) {
			l = rewrite.AppendSemicolon(l)
		}
		out.EmitLine(l)
	}
	return out.String(), nil
}
