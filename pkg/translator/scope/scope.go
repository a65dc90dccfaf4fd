// Package scope builds the scope tree and per-scope variable table a
// C+ source file implies, without a full grammar: a single forward
// scan over the token sequence tracks brace nesting, registers type
// names, and records each declared name's pointer depth and array
// rank. Later passes use the result read-only.
package scope

// Kind is the structural role of a lexical scope.
type Kind uint8

const (
	KindGlobal Kind = iota
	KindFunction
	KindStruct
	KindUnion
	KindEnum
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "Global"
	case KindFunction:
		return "Function"
	case KindStruct:
		return "Struct"
	case KindUnion:
		return "Union"
	case KindEnum:
		return "Enum"
	}
	return "Block"
}

// IsType reports whether the scope is a struct, union or enum body.
func (k Kind) IsType() bool {
	return k == KindStruct || k == KindUnion || k == KindEnum
}

// Scope is one node of the scope tree. Nodes live in a Table arena and
// refer to each other by id; id 0 is always the global scope, whose
// Parent is -1.
type Scope struct {
	ID     int
	Parent int
	Kind   Kind
	Name   string
}

// VarInfo records what declarations revealed about one name within one
// scope. Depth is the pointer-star count; Known is false until a
// declaration has been seen. Rank is the number of array suffixes.
//
// Repeated declarations of the same name merge asymmetrically: depth
// takes the minimum ever observed, rank the maximum.
type VarInfo struct {
	Depth int
	Rank  int
	Known bool
}

// Table is the arena of scopes for one file plus each scope's variable
// records.
type Table struct {
	Scopes []Scope
	vars   []map[string]VarInfo
}

// NewTable creates a table holding only the global scope.
func NewTable() *Table {
	return &Table{
		Scopes: []Scope{{ID: 0, Parent: -1, Kind: KindGlobal}},
		vars:   []map[string]VarInfo{{}},
	}
}

// Open appends a child scope of cur and returns its id.
func (t *Table) Open(cur int, kind Kind, name string) int {
	id := len(t.Scopes)
	t.Scopes = append(t.Scopes, Scope{ID: id, Parent: cur, Kind: kind, Name: name})
	t.vars = append(t.vars, map[string]VarInfo{})
	return id
}

// KindOf returns the kind of the given scope id, defaulting to Global
// for an out-of-range id.
func (t *Table) KindOf(id int) Kind {
	if id < 0 || id >= len(t.Scopes) {
		return KindGlobal
	}
	return t.Scopes[id].Kind
}

// Declare merges a declaration of name into the given scope: minimum
// pointer depth, maximum array rank.
func (t *Table) Declare(scopeID int, name string, depth, rank int) {
	vi, ok := t.vars[scopeID][name]
	if !ok || !vi.Known {
		vi.Depth = depth
		vi.Known = true
	} else if depth < vi.Depth {
		vi.Depth = depth
	}
	if rank > vi.Rank {
		vi.Rank = rank
	}
	t.vars[scopeID][name] = vi
}

// Resolve walks from scopeID up through parents and returns the first
// record found for name. A name absent from every enclosing scope
// yields the zero VarInfo (Known false, Rank 0).
func (t *Table) Resolve(scopeID int, name string) VarInfo {
	cur := scopeID
	for cur != -1 {
		if vi, ok := t.vars[cur][name]; ok {
			return vi
		}
		cur = t.Scopes[cur].Parent
	}
	return VarInfo{}
}

// TypeSet is the set of known type names. It is created once per
// invocation, seeded with the builtin scalar types, and threaded
// through every file's analysis so aliases registered in an earlier
// file are recognized in later ones.
type TypeSet struct {
	names map[string]struct{}
}

// builtinTypes are the scalar type names every run starts with.
var builtinTypes = []string{
	"void", "char", "short", "int", "long",
	"float", "double", "signed", "unsigned", "bool",
}

// NewTypeSet returns a set seeded with the builtin scalar type names.
func NewTypeSet() *TypeSet {
	s := &TypeSet{names: make(map[string]struct{}, len(builtinTypes))}
	for _, n := range builtinTypes {
		s.names[n] = struct{}{}
	}
	return s
}

// Add registers a type name.
func (s *TypeSet) Add(name string) { s.names[name] = struct{}{} }

// Has reports whether name is a known type.
func (s *TypeSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// IsBuiltin reports whether name is one of the builtin scalar types.
func IsBuiltin(name string) bool {
	for _, n := range builtinTypes {
		if n == name {
			return true
		}
	}
	return false
}
