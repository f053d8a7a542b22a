package ctl

import "fmt"

// ----------------------------------------------------------------------------
// Token kinds

// Kind classifies a Token. The set is closed: the lexer never emits a kind
// outside this enumeration.
type Kind string

const (
	Whitespace          Kind = "WHITESPACE"
	Newline             Kind = "NEWLINE"
	EOF                 Kind = "EOF"
	Identifier          Kind = "IDENTIFIER"
	Number              Kind = "NUMBER"
	ArithmeticOperator  Kind = "ARITHMETIC_OPERATOR"
	ComparisonOperator  Kind = "COMPARISON_OPERATOR"
	LogicalOperator     Kind = "LOGICAL_OPERATOR"
	AssignmentOperator  Kind = "ASSIGNMENT_OPERATOR"
	Keyword             Kind = "KEYWORD"
	Symbol              Kind = "SYMBOL"
	StringLiteral       Kind = "STRING_LITERAL"
	Comment             Kind = "COMMENT"
	MultiLineComment    Kind = "MULTI_LINE_COMMENT"
	Divider             Kind = "DIVIDER"
	TypeKeyword         Kind = "TYPE_KEYWORD"
	MainKeyword         Kind = "MAIN_KEYWORD"
	If                  Kind = "IF"
	Else                Kind = "ELSE"
	ElseIf              Kind = "ELSE_IF"
	TemplateTypeKeyword Kind = "TEMPLATE_TYPE_KEYWORD"
	Char                Kind = "CHAR"
	AccessModifier      Kind = "ACCESS_MODIFIER"
	Modifier            Kind = "MODIFIER"
)

// ----------------------------------------------------------------------------
// Token

// A Token is a classified lexeme with its source position. Position is
// 1-based and points at the first character of Lexeme.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at line %d, column %d", t.Kind, t.Lexeme, t.Line, t.Column)
}

// Is reports whether the token has the given Kind and Lexeme. Used
// pervasively by the parser's lookahead predicates.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}
