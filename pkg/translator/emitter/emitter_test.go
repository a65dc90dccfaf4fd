package emitter_test

import (
	"testing"

	"github.com/Janders1800/C-plus/pkg/translator/emitter"
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/rewrite"
)

func lexLine(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	return toks
}

func emitOne(t *testing.T, src string) string {
	t.Helper()
	e := emitter.New()
	e.EmitLine(lexLine(t, src))
	return e.String()
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"binary ops", "x=y+1;", "x = y + 1;\n"},
		{"call", "f(a,b);", "f(a, b);\n"},
		{"index", "a[0]=b[i];", "a[0] = b[i];\n"},
		{"member dot", "v.field=1;", "v.field = 1;\n"},
		{"braces keep spaces", "struct S{int x;};", "struct S { int x; };\n"},
		{"deref group", "(*pp)", "(*pp)\n"},
		{"plain parens", "(a+b)*c", "(a + b) * c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitOne(t, tt.src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArrowSticks(t *testing.T) {
	line := []lexer.Token{
		{Kind: lexer.KindIdentifier, Text: "p"},
		{Kind: lexer.KindOperator, Text: "->"},
		{Kind: lexer.KindIdentifier, Text: "x"},
		{Kind: lexer.KindOperator, Text: "="},
		{Kind: lexer.KindNumber, Text: "1"},
		{Kind: lexer.KindPunct, Text: ";"},
	}
	e := emitter.New()
	e.EmitLine(line)
	if got := e.String(); got != "p->x = 1;\n" {
		t.Errorf("got %q, want %q", got, "p->x = 1;\n")
	}
}

func TestPreprocessorAlone(t *testing.T) {
	e := emitter.New()
	e.EmitLine(lexLine(t, "#include <stdio.h>"))
	if got := e.String(); got != "#include <stdio.h>\n" {
		t.Errorf("got %q", got)
	}
}

func TestEmptyLine(t *testing.T) {
	e := emitter.New()
	e.EmitLine(nil)
	if got := e.String(); got != "\n" {
		t.Errorf("got %q, want newline", got)
	}
}

func TestEmitLines(t *testing.T) {
	lines := []rewrite.Line{
		{Tokens: lexLine(t, "int x;")},
		{Tokens: lexLine(t, "int y;")},
	}
	e := emitter.New()
	e.EmitLines(lines)
	if got := e.String(); got != "int x;\nint y;\n" {
		t.Errorf("got %q", got)
	}
}
