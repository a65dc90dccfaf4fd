package lexer

// Kind represents the type of token produced by the scanner.
type Kind uint8

const (
	KindIdentifier   Kind = iota // names, including unknown type names
	KindNumber                   // decimal run with at most one interior dot
	KindString                   // double-quoted literal, escapes kept verbatim
	KindKeyword                  // member of the fixed keyword set
	KindOperator                 // one- or two-character operator
	KindPunct                    // ( ) { } [ ] ; , .
	KindPreprocessor             // a whole #-line, captured verbatim
	KindUnknown                  // anything else, passed through untouched
)

// Token is one lexical unit of C+ source. Text is carried directly
// because later passes synthesize tokens ( ";" "->" "(" "*" ")" ) that
// have no source span to point back into. Scope is back-filled by the
// scope analyzer; until then it is 0 (the global scope).
type Token struct {
	Kind  Kind
	Text  string
	Line  int
	Col   int
	Scope int
}

// Is reports whether the token has the given kind and exact text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(text string) bool { return t.Is(KindPunct, text) }

// IsOperator reports whether the token is the given operator.
func (t Token) IsOperator(text string) bool { return t.Is(KindOperator, text) }

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(text string) bool { return t.Is(KindKeyword, text) }

// Keywords is the fixed keyword set of the dialect. Identifier runs
// matching an entry lex as KindKeyword instead of KindIdentifier.
var Keywords = map[string]struct{}{
	"auto": {}, "break": {}, "case": {}, "char": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extern": {}, "float": {}, "for": {}, "goto": {},
	"if": {}, "inline": {}, "int": {}, "long": {}, "register": {},
	"return": {}, "short": {}, "signed": {}, "sizeof": {}, "static": {},
	"struct": {}, "switch": {}, "typedef": {}, "union": {}, "unsigned": {},
	"void": {}, "volatile": {}, "while": {}, "bool": {},
}

// twoCharOps are the recognized two-character operators, matched before
// any one-character operator. "->" is deliberately absent: it is the
// forbidden operator and handled as a fatal error by the scanner.
var twoCharOps = map[string]struct{}{
	"++": {}, "--": {}, "==": {}, "!=": {}, ">=": {}, "<=": {},
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "&&": {}, "||": {},
	"&=": {}, "|=": {}, "^=": {}, "<<": {}, ">>": {},
}
