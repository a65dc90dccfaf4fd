package lexer

import (
	"fmt"
	"strings"
)

// ForbiddenOperatorError reports an occurrence of "->" in C+ input.
// Pointers use "." in C+, so the operator can only appear by mistake;
// the whole run stops when it does.
type ForbiddenOperatorError struct {
	Line int
	Col  int
}

func (e *ForbiddenOperatorError) Error() string {
	return fmt.Sprintf("'->' is not allowed (line %d, col %d); pointers use '.' in C+", e.Line, e.Col)
}

// Normalize prepares raw file bytes for scanning: CRLF and bare CR
// become a single LF, and a backslash immediately before a line break
// splices the two physical lines together.
func Normalize(src []byte) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\r' {
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			b.WriteByte('\n')
			continue
		}
		b.WriteByte(c)
	}
	t := b.String()
	var u strings.Builder
	u.Grow(len(t))
	for i := 0; i < len(t); i++ {
		if t[i] == '\\' && i+1 < len(t) && t[i+1] == '\n' {
			i++
			continue
		}
		u.WriteByte(t[i])
	}
	return u.String()
}

// Scanner performs lexical analysis on normalized C+ source.
type Scanner struct {
	source string
	cursor int
	line   int
	col    int
}

// NewScanner creates a scanner for the given normalized source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source, line: 1, col: 1}
}

// Lex normalizes src and scans it to a complete token sequence.
// Comments never appear in the output. The only possible error is a
// *ForbiddenOperatorError.
func Lex(src []byte) ([]Token, error) {
	return NewScanner(Normalize(src)).ScanAll()
}

// ScanAll consumes the whole source and returns the token sequence.
func (s *Scanner) ScanAll() ([]Token, error) {
	var out []Token
	for s.cursor < len(s.source) {
		c := s.source[s.cursor]

		if c == '\n' {
			s.line++
			s.col = 1
			s.cursor++
			continue
		}
		if c == ' ' || c == '\t' || c == '\v' || c == '\f' {
			s.cursor++
			s.col++
			continue
		}

		if c == '#' {
			out = append(out, s.scanPreprocessor())
			continue
		}

		if c == '/' && s.cursor+1 < len(s.source) {
			if s.source[s.cursor+1] == '/' {
				s.skipLineComment()
				continue
			}
			if s.source[s.cursor+1] == '*' {
				s.skipBlockComment()
				continue
			}
		}

		if c == '"' {
			out = append(out, s.scanString())
			continue
		}

		if isDigit(c) {
			out = append(out, s.scanNumber())
			continue
		}

		if isIdentStart(c) {
			out = append(out, s.scanIdentifier())
			continue
		}

		if isOpChar(c) {
			tok, err := s.scanOperator()
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			continue
		}

		if isPunctChar(c) {
			out = append(out, Token{Kind: KindPunct, Text: string(c), Line: s.line, Col: s.col})
			s.cursor++
			s.col++
			continue
		}

		out = append(out, Token{Kind: KindUnknown, Text: string(c), Line: s.line, Col: s.col})
		s.cursor++
		s.col++
	}
	return out, nil
}

// scanPreprocessor captures a #-line verbatim through end of line.
func (s *Scanner) scanPreprocessor() Token {
	start := s.cursor
	startCol := s.col
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
		s.col++
	}
	return Token{Kind: KindPreprocessor, Text: s.source[start:s.cursor], Line: s.line, Col: startCol}
}

func (s *Scanner) skipLineComment() {
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
		s.col++
	}
}

func (s *Scanner) skipBlockComment() {
	s.cursor += 2
	s.col += 2
	for s.cursor+1 < len(s.source) {
		if s.source[s.cursor] == '\n' {
			s.line++
			s.col = 1
			s.cursor++
		} else if s.source[s.cursor] == '*' && s.source[s.cursor+1] == '/' {
			s.cursor += 2
			s.col += 2
			return
		} else {
			s.cursor++
			s.col++
		}
	}
	// unterminated comment: swallow the rest of the file
	s.cursor = len(s.source)
}

// scanString scans from the opening quote to the matching unescaped
// quote. A backslash consumes whatever character follows it; embedded
// line breaks are allowed and advance the line counter. The literal is
// kept verbatim, quotes and escapes included.
func (s *Scanner) scanString() Token {
	start := s.cursor
	startLine, startCol := s.line, s.col
	s.cursor++
	s.col++
	for s.cursor < len(s.source) {
		d := s.source[s.cursor]
		if d == '\\' {
			if s.cursor+1 < len(s.source) {
				s.cursor += 2
				s.col += 2
			} else {
				s.cursor++
				s.col++
			}
		} else if d == '"' {
			s.cursor++
			s.col++
			break
		} else if d == '\n' {
			s.cursor++
			s.line++
			s.col = 1
		} else {
			s.cursor++
			s.col++
		}
	}
	return Token{Kind: KindString, Text: s.source[start:s.cursor], Line: startLine, Col: startCol}
}

// scanNumber scans a decimal digit run with at most one interior dot.
// No exponent or suffix forms are recognized.
func (s *Scanner) scanNumber() Token {
	start := s.cursor
	startCol := s.col
	sawDot := false
	for s.cursor < len(s.source) {
		d := s.source[s.cursor]
		if isDigit(d) {
			s.cursor++
			s.col++
		} else if d == '.' && !sawDot {
			sawDot = true
			s.cursor++
			s.col++
		} else {
			break
		}
	}
	return Token{Kind: KindNumber, Text: s.source[start:s.cursor], Line: s.line, Col: startCol}
}

func (s *Scanner) scanIdentifier() Token {
	start := s.cursor
	startCol := s.col
	s.cursor++
	s.col++
	for s.cursor < len(s.source) && isIdentChar(s.source[s.cursor]) {
		s.cursor++
		s.col++
	}
	word := s.source[start:s.cursor]
	kind := KindIdentifier
	if _, ok := Keywords[word]; ok {
		kind = KindKeyword
	}
	return Token{Kind: kind, Text: word, Line: s.line, Col: startCol}
}

// scanOperator matches two-character forms before one-character forms.
// "->" is the fatal forbidden operator.
func (s *Scanner) scanOperator() (Token, error) {
	startCol := s.col
	if s.cursor+1 < len(s.source) {
		two := s.source[s.cursor : s.cursor+2]
		if two == "->" {
			return Token{}, &ForbiddenOperatorError{Line: s.line, Col: startCol}
		}
		if _, ok := twoCharOps[two]; ok {
			s.cursor += 2
			s.col += 2
			return Token{Kind: KindOperator, Text: two, Line: s.line, Col: startCol}, nil
		}
	}
	c := s.source[s.cursor]
	s.cursor++
	s.col++
	return Token{Kind: KindOperator, Text: string(c), Line: s.line, Col: startCol}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isOpChar(c byte) bool {
	return strings.IndexByte("+-*/%=&|!<>^~?:", c) >= 0
}

func isPunctChar(c byte) bool {
	switch c {
	case '(', ')', '{', '}', '[', ']', ';', ',', '.':
		return true
	}
	return false
}
