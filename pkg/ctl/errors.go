package ctl

import "fmt"

// LexError is raised when no lexer rule matches at the current cursor
// position. It carries the offending character and its source position.
type LexError struct {
	Line, Column int
	Char         rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Char, e.Line, e.Column)
}

// ParseError is raised whenever the parser requires a token kind/lexeme
// that is not present at the cursor, an enum name is redefined, or an
// identifier appears in type position without being a registered user type.
type ParseError struct {
	Token   Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d. Token: %s", e.Message, e.Token.Line, e.Token.Column, e.Token)
}

func newParseError(tok Token, format string, args ...any) error {
	return &ParseError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
