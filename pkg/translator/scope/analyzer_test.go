package scope_test

import (
	"testing"

	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/scope"
)

func analyze(t *testing.T, src string) ([]lexer.Token, *scope.Table, *scope.TypeSet) {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	types := scope.NewTypeSet()
	table := scope.Analyze(toks, types)
	return toks, table, types
}

func TestScopeTree(t *testing.T) {
	src := "struct Vec {\nint x\n}\nvoid f() {\nif (1) {\n}\n}\n"
	_, table, _ := analyze(t, src)

	want := []struct {
		kind   scope.Kind
		parent int
		name   string
	}{
		{scope.KindGlobal, -1, ""},
		{scope.KindStruct, 0, "Vec"},
		{scope.KindFunction, 0, "f"},
		{scope.KindBlock, 2, ""},
	}
	if len(table.Scopes) != len(want) {
		t.Fatalf("got %d scopes, want %d: %+v", len(table.Scopes), len(want), table.Scopes)
	}
	for i, w := range want {
		s := table.Scopes[i]
		if s.Kind != w.kind || s.Parent != w.parent || s.Name != w.name {
			t.Errorf("scope %d = {%v parent=%d name=%q}, want {%v parent=%d name=%q}",
				i, s.Kind, s.Parent, s.Name, w.kind, w.parent, w.name)
		}
	}
}

func TestBraceReportsSurroundingScope(t *testing.T) {
	src := "struct S {\nint x\n}\n"
	toks, _, _ := analyze(t, src)

	// "{" and "}" belong to the scopes around them, not the struct body
	for _, tok := range toks {
		switch {
		case tok.IsPunct("{"):
			if tok.Scope != 0 {
				t.Errorf("'{' scope = %d, want 0", tok.Scope)
			}
		case tok.Text == "x":
			if tok.Scope != 1 {
				t.Errorf("'x' scope = %d, want 1", tok.Scope)
			}
		case tok.IsPunct("}"):
			if tok.Scope != 1 {
				t.Errorf("'}' scope = %d, want 1", tok.Scope)
			}
		}
	}
}

func TestUnmatchedCloseBraceStaysGlobal(t *testing.T) {
	src := "}\nint *p;\n"
	toks, table, _ := analyze(t, src)
	for _, tok := range toks {
		if tok.Scope != 0 {
			t.Errorf("token %q scope = %d, want 0", tok.Text, tok.Scope)
		}
	}
	vi := table.Resolve(0, "p")
	if !vi.Known || vi.Depth != 1 {
		t.Errorf("p = %+v, want depth 1", vi)
	}
}

func TestStrictDeclarators(t *testing.T) {
	src := "int *a, b[2][3], **c;\n"
	_, table, _ := analyze(t, src)

	tests := []struct {
		name  string
		depth int
		rank  int
	}{
		{"a", 1, 0},
		{"b", 0, 2},
		{"c", 2, 0},
	}
	for _, tt := range tests {
		vi := table.Resolve(0, tt.name)
		if !vi.Known || vi.Depth != tt.depth || vi.Rank != tt.rank {
			t.Errorf("%s = %+v, want depth %d rank %d", tt.name, vi, tt.depth, tt.rank)
		}
	}
}

func TestStructTagDeclarator(t *testing.T) {
	src := "struct S v;\n"
	_, table, types := analyze(t, src)
	vi := table.Resolve(0, "v")
	if !vi.Known || vi.Depth != 0 || vi.Rank != 0 {
		t.Errorf("v = %+v, want plain value record", vi)
	}
	if !types.Has("S") {
		t.Error("tag S not registered as a type")
	}
}

func TestRelaxedDeclaration(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		var_  string
		found bool
		depth int
		rank  int
	}{
		{"unknown pointer type", "Vec2 *v;\n", "v", true, 1, 0},
		{"unknown pointer array", "Vec2 *buf[16];\n", "buf", true, 1, 1},
		{"assignment guard", "Vec2 *v = 0\n", "v", true, 1, 0},
		{"call is not a declaration", "foo(v)\n", "v", false, 0, 0},
		{"plain expression", "v\n", "v", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, table, _ := analyze(t, tt.src)
			vi := table.Resolve(0, tt.var_)
			if vi.Known != tt.found {
				t.Fatalf("%s known = %v, want %v", tt.var_, vi.Known, tt.found)
			}
			if tt.found && (vi.Depth != tt.depth || vi.Rank != tt.rank) {
				t.Errorf("%s = %+v, want depth %d rank %d", tt.var_, vi, tt.depth, tt.rank)
			}
		})
	}
}

func TestMergeMinDepthMaxRank(t *testing.T) {
	src := "int **q;\nint *q;\nint *r;\nint **r;\n"
	_, table, _ := analyze(t, src)
	if vi := table.Resolve(0, "q"); vi.Depth != 1 {
		t.Errorf("q depth = %d, want 1 (minimum wins)", vi.Depth)
	}
	if vi := table.Resolve(0, "r"); vi.Depth != 1 {
		t.Errorf("r depth = %d, want 1 (later weaker declaration cannot raise it)", vi.Depth)
	}
}

func TestMergeTableDirect(t *testing.T) {
	table := scope.NewTable()
	table.Declare(0, "x", 2, 0)
	table.Declare(0, "x", 1, 1)
	table.Declare(0, "x", 3, 0)
	vi := table.Resolve(0, "x")
	if vi.Depth != 1 || vi.Rank != 1 {
		t.Errorf("x = %+v, want depth 1 rank 1", vi)
	}
}

func TestResolveWalksParents(t *testing.T) {
	src := "int *g;\nvoid f() {\nint n\n}\n"
	_, table, _ := analyze(t, src)

	fn := -1
	for _, s := range table.Scopes {
		if s.Kind == scope.KindFunction {
			fn = s.ID
		}
	}
	if fn == -1 {
		t.Fatal("function scope not found")
	}
	if vi := table.Resolve(fn, "g"); !vi.Known || vi.Depth != 1 {
		t.Errorf("g from function scope = %+v, want depth 1 via global", vi)
	}
	if vi := table.Resolve(fn, "nope"); vi.Known || vi.Rank != 0 {
		t.Errorf("nope = %+v, want unobserved", vi)
	}
}

func TestFunctionParamsBound(t *testing.T) {
	src := "struct Vec { int x\n}\nvoid f(Vec *p, int **q) {\np\n}\n"
	_, table, _ := analyze(t, src)

	fn := -1
	for _, s := range table.Scopes {
		if s.Kind == scope.KindFunction && s.Name == "f" {
			fn = s.ID
		}
	}
	if fn == -1 {
		t.Fatal("function scope not found")
	}
	if vi := table.Resolve(fn, "p"); !vi.Known || vi.Depth != 1 {
		t.Errorf("param p = %+v, want depth 1", vi)
	}
	if vi := table.Resolve(fn, "q"); !vi.Known || vi.Depth != 2 {
		t.Errorf("param q = %+v, want depth 2", vi)
	}
}

func TestPrototypeGetsNoScope(t *testing.T) {
	src := "int f(int *p);\n"
	_, table, _ := analyze(t, src)
	if len(table.Scopes) != 1 {
		t.Errorf("got %d scopes, want only the global scope: %+v", len(table.Scopes), table.Scopes)
	}
}

func TestTypedefRegistersLastIdentifier(t *testing.T) {
	src := "typedef unsigned long usize;\n"
	_, _, types := analyze(t, src)
	if !types.Has("usize") {
		t.Error("usize not registered")
	}
	// once known, the strict path applies to it
	src2 := "usize *a, b[4];\n"
	toks, err := lexer.Lex([]byte(src2))
	if err != nil {
		t.Fatal(err)
	}
	table := scope.Analyze(toks, types)
	if vi := table.Resolve(0, "b"); !vi.Known || vi.Rank != 1 {
		t.Errorf("b = %+v, want rank 1 via strict path", vi)
	}
}

func TestEnumScopeKind(t *testing.T) {
	src := "enum Color {\nRED\n}\n"
	toks, table, types := analyze(t, src)
	if !types.Has("Color") {
		t.Error("Color not registered")
	}
	for _, tok := range toks {
		if tok.Text == "RED" && table.KindOf(tok.Scope) != scope.KindEnum {
			t.Errorf("RED in %v scope, want Enum", table.KindOf(tok.Scope))
		}
	}
}
