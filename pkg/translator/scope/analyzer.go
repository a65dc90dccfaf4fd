package scope

import (
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
)

// Param is one (name, star count) pair parsed from a function's
// parameter list, bound into the body scope when it opens.
type Param struct {
	Name  string
	Stars int
}

// declShape classifies what, if anything, a token position begins.
// shapes are tried in a fixed priority order; shapeNone is a normal,
// silent outcome for any token that starts no declaration.
type declShape uint8

const (
	shapeNone declShape = iota
	shapeFunction
	shapeStrict
	shapeRelaxed
)

// Analyze runs the single forward scan over toks: it annotates every
// token with its enclosing scope id, builds the scope tree and the
// per-scope variable table, and grows types with every typedef alias
// and struct/union/enum tag it encounters. Each token is annotated
// before its structural effect is applied, so a brace reports the
// scope that surrounds it, not the one it opens or closes.
func Analyze(toks []lexer.Token, types *TypeSet) *Table {
	a := &analyzer{toks: toks, types: types, table: NewTable()}
	a.run()
	return a.table
}

type analyzer struct {
	toks  []lexer.Token
	types *TypeSet
	table *Table

	cur         int
	pendingKind Kind
	pendingName string
	hasPending  bool

	// parameter lists keyed by the token index of the body "{"
	paramsAt map[int][]Param
}

func (a *analyzer) run() {
	a.paramsAt = make(map[int][]Param)

	for i := 0; i < len(a.toks); i++ {
		a.toks[i].Scope = a.cur

		if a.toks[i].IsKeyword("typedef") {
			a.registerAlias(i)
		}
		if kw, ok := tagKind(a.toks[i]); ok {
			a.registerTag(i, kw)
		}

		handled := false
		switch shape, sig := a.classify(i); shape {
		case shapeFunction:
			if sig.lbrace != -1 {
				a.pendingKind = KindFunction
				a.pendingName = a.toks[sig.name].Text
				a.hasPending = true
				a.paramsAt[sig.lbrace] = a.parseParams(sig.lparen, sig.rparen)
			}
			// A bodiless prototype still suppresses the strict path.
		case shapeStrict:
			for _, d := range sig.decls {
				a.table.Declare(a.cur, d.name, d.stars, d.arrays)
			}
			handled = true
		}
		if !handled && a.toks[i].Kind == lexer.KindIdentifier {
			if name, stars, arrays, ok := a.matchRelaxed(i); ok {
				a.table.Declare(a.cur, name, stars, arrays)
			}
		}

		if a.toks[i].IsPunct("{") {
			a.openScope(i)
		}
		if a.toks[i].IsPunct("}") {
			a.closeScope()
		}
	}
}

// registerAlias scans forward from a typedef keyword to the next ";"
// or "}" and registers the last identifier in that span as a known
// type. A multi-alias typedef only registers its last name; the rest
// are silently missed.
func (a *analyzer) registerAlias(i int) {
	last := -1
	for j := i + 1; j < len(a.toks); j++ {
		if a.toks[j].IsPunct(";") || a.toks[j].IsPunct("}") {
			break
		}
		if a.toks[j].Kind == lexer.KindIdentifier {
			last = j
		}
	}
	if last != -1 {
		a.types.Add(a.toks[last].Text)
	}
}

// registerTag handles a struct/union/enum keyword: a following
// identifier becomes a known type, and the pair is remembered as the
// kind and name of the next scope to open.
func (a *analyzer) registerTag(i int, kind Kind) {
	a.pendingKind = kind
	a.pendingName = ""
	a.hasPending = true
	if i+1 < len(a.toks) && a.toks[i+1].Kind == lexer.KindIdentifier {
		a.types.Add(a.toks[i+1].Text)
		a.pendingName = a.toks[i+1].Text
	}
}

func tagKind(t lexer.Token) (Kind, bool) {
	switch {
	case t.IsKeyword("struct"):
		return KindStruct, true
	case t.IsKeyword("union"):
		return KindUnion, true
	case t.IsKeyword("enum"):
		return KindEnum, true
	}
	return 0, false
}

// typeStart reports whether the token at i can begin a type name: a
// known type identifier, a builtin type keyword, or a tag keyword.
func (a *analyzer) typeStart(i int) bool {
	t := a.toks[i]
	if t.Kind == lexer.KindIdentifier && a.types.Has(t.Text) {
		return true
	}
	if t.Kind == lexer.KindKeyword {
		if IsBuiltin(t.Text) {
			return true
		}
		if _, ok := tagKind(t); ok {
			return true
		}
	}
	return false
}

type declarator struct {
	name   string
	stars  int
	arrays int
}

type sigMatch struct {
	name   int
	lparen int
	rparen int
	lbrace int // -1 for a bodiless prototype
	decls  []declarator
}

// classify evaluates the declaration shapes in priority order at
// position i: FunctionSignature, then StrictDeclaration. The relaxed
// shape is handled separately by the caller: it is tried after any
// position that produced no record, type-start or not.
func (a *analyzer) classify(i int) (declShape, sigMatch) {
	if !a.typeStart(i) {
		return shapeNone, sigMatch{}
	}
	if sig, ok := a.matchSignature(i); ok {
		return shapeFunction, sig
	}
	if decls := a.matchStrict(i); len(decls) > 0 {
		return shapeStrict, sigMatch{decls: decls}
	}
	return shapeNone, sigMatch{}
}

// matchSignature recognizes "type [keywords/*/&]* name ( ... )" and,
// past any trailing keyword/identifier/*/& run, an optional body "{".
// Only a match that reaches a body brace marks a function; a bodiless
// prototype still matches (and so suppresses the strict path) but gets
// no scope.
func (a *analyzer) matchSignature(iType int) (sigMatch, bool) {
	n := len(a.toks)
	i := iType + 1
	for i < n && (a.toks[i].Kind == lexer.KindKeyword || a.toks[i].IsOperator("*") || a.toks[i].IsOperator("&")) {
		i++
	}
	if i >= n || a.toks[i].Kind != lexer.KindIdentifier {
		return sigMatch{}, false
	}
	m := sigMatch{name: i, lbrace: -1}
	if i+1 >= n || !a.toks[i+1].IsPunct("(") {
		return sigMatch{}, false
	}
	m.lparen = i + 1
	depth := 0
	j := i + 1
	for ; j < n; j++ {
		if a.toks[j].IsPunct("(") {
			depth++
		} else if a.toks[j].IsPunct(")") {
			depth--
			if depth == 0 {
				m.rparen = j
				j++
				break
			}
		}
	}
	if j >= n {
		return sigMatch{}, false
	}
	for j < n && (a.toks[j].Kind == lexer.KindKeyword || a.toks[j].Kind == lexer.KindIdentifier ||
		a.toks[j].IsOperator("*") || a.toks[j].IsOperator("&")) {
		j++
	}
	if j < n && a.toks[j].IsPunct("{") {
		m.lbrace = j
	}
	return m, true
}

// matchStrict consumes a type-name run and then a comma-separated list
// of declarators (stars, name, array suffixes). The type-name run is
// greedy over keywords and identifiers, so a starless first declarator
// is swallowed by it and produces no record; only names preceded by a
// "*" or following a comma are caught. That asymmetry is harmless for
// rewriting: a name this misses is a plain value and would never have
// its dot rewritten anyway.
func (a *analyzer) matchStrict(i int) []declarator {
	n := len(a.toks)
	j := i
	if _, ok := tagKind(a.toks[j]); ok {
		if j+1 < n && a.toks[j+1].Kind == lexer.KindIdentifier {
			j += 2
		}
	} else {
		for j < n && (a.toks[j].Kind == lexer.KindKeyword || a.toks[j].Kind == lexer.KindIdentifier) {
			j++
		}
	}

	var decls []declarator
	for j < n {
		stars := 0
		for j < n && a.toks[j].IsOperator("*") {
			stars++
			j++
		}
		if j >= n || a.toks[j].Kind != lexer.KindIdentifier {
			break
		}
		d := declarator{name: a.toks[j].Text, stars: stars}
		j++
		for j < n && a.toks[j].IsPunct("[") {
			for j < n && !a.toks[j].IsPunct("]") {
				j++
			}
			if j < n {
				j++
			}
			d.arrays++
		}
		decls = append(decls, d)
		if j < n && a.toks[j].IsPunct(",") {
			j++
			continue
		}
		break
	}
	return decls
}

// matchRelaxed is the fallback declarator heuristic for unknown type
// names. It greedily consumes the head identifier (or tag keyword plus
// name), a run of further keyword/identifier tokens, pointer stars, a
// candidate name and array suffixes, and accepts only when the next
// token is one that can follow a declarator. The trailing guard is
// what keeps ordinary expression statements from being misread as
// declarations.
func (a *analyzer) matchRelaxed(i int) (name string, stars, arrays int, ok bool) {
	n := len(a.toks)
	j := i

	head := a.toks[j]
	if _, isTag := tagKind(head); head.Kind != lexer.KindIdentifier && !isTag {
		return "", 0, 0, false
	}
	if head.Kind == lexer.KindKeyword {
		if j+1 < n && a.toks[j+1].Kind == lexer.KindIdentifier {
			j += 2
		} else {
			return "", 0, 0, false
		}
	} else {
		j++
	}

	for j < n && (a.toks[j].Kind == lexer.KindKeyword || a.toks[j].Kind == lexer.KindIdentifier) {
		j++
	}

	for j < n && a.toks[j].IsOperator("*") {
		stars++
		j++
	}

	if j >= n || a.toks[j].Kind != lexer.KindIdentifier {
		return "", 0, 0, false
	}
	name = a.toks[j].Text
	j++

	for j < n && a.toks[j].IsPunct("[") {
		k := j + 1
		for k < n && !a.toks[k].IsPunct("]") {
			k++
		}
		if k == n {
			break
		}
		j = k + 1
		arrays++
	}

	if j < n {
		next := a.toks[j]
		if next.IsPunct(";") || next.IsPunct(",") || next.IsPunct("[") ||
			next.IsPunct("{") || next.IsOperator("=") {
			return name, stars, arrays, true
		}
	}
	return "", 0, 0, false
}

// parseParams extracts (name, stars) pairs from the token span between
// a signature's parentheses. Commas split parameters with no regard to
// nesting, and anything that does not look like "type [*]* name" is
// skipped without complaint.
func (a *analyzer) parseParams(lp, rp int) []Param {
	var out []Param
	i := lp + 1
	for i < rp {
		if a.toks[i].IsPunct(",") {
			i++
			continue
		}
		if !a.typeStart(i) {
			i++
			continue
		}

		j := i
		if _, isTag := tagKind(a.toks[j]); isTag {
			if j+1 < rp && a.toks[j+1].Kind == lexer.KindIdentifier {
				j += 2
			} else {
				i++
				continue
			}
		} else {
			for j < rp && (a.toks[j].Kind == lexer.KindKeyword || a.toks[j].Kind == lexer.KindIdentifier) {
				j++
			}
		}
		stars := 0
		for j < rp && a.toks[j].IsOperator("*") {
			stars++
			j++
		}
		if j >= rp || a.toks[j].Kind != lexer.KindIdentifier {
			i = j
			continue
		}
		out = append(out, Param{Name: a.toks[j].Text, Stars: stars})
		j++

		// array suffixes on a parameter decay to the pointer the star
		// count already gave it; skip them
		for j < rp && a.toks[j].IsPunct("[") {
			for j < rp && !a.toks[j].IsPunct("]") {
				j++
			}
			if j < rp {
				j++
			}
		}
		for j < rp && !a.toks[j].IsPunct(",") {
			j++
		}
		i = j
	}
	return out
}

// openScope creates the scope a "{" begins, consuming any pending
// kind/name and binding recorded parameters when the brace is a
// function body entry.
func (a *analyzer) openScope(i int) {
	kind, name := KindBlock, ""
	if a.hasPending {
		kind, name = a.pendingKind, a.pendingName
	}
	id := a.table.Open(a.cur, kind, name)
	a.cur = id

	if ps, ok := a.paramsAt[i]; ok {
		for _, p := range ps {
			a.table.Declare(id, p.Name, p.Stars, 0)
		}
	}
	a.clearPending()
}

// closeScope returns to the parent scope. An unmatched "}" at the
// global scope stays at the global scope.
func (a *analyzer) closeScope() {
	if a.cur != 0 {
		a.cur = a.table.Scopes[a.cur].Parent
	}
	a.clearPending()
}

func (a *analyzer) clearPending() {
	a.pendingKind = KindBlock
	a.pendingName = ""
	a.hasPending = false
}
