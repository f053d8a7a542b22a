package ctl

import (
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------
// Node
//
// Every AST node is a value implementing Format(indent), which re-emits its
// canonical source text at the given indentation level (spec.md §4.3). There
// is no shared base struct carrying the optional comment the way the Python
// original's NodeBase does — each node that can carry a comment just holds
// the field itself, matching the "re-architect as a tagged variant" design
// note (spec.md §9).

type Node interface {
	Format(indent int) string
}

func indentStr(indent int) string { return strings.Repeat("  ", indent) }

// terminate adds the trailing ';' a statement needs unless its rendered
// form already ends in ';', '\n', or '}'.
func terminate(s string) string {
	if strings.HasSuffix(s, ";") || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "}") {
		return s
	}
	return s + ";"
}

// renderStmt formats a statement for a Program/Block/case body, adding a
// trailing ';' where the grammar requires one. Dividers, comments, blank
// markers, and '#'-led directives are never statements in that sense —
// spec.md §4.3 has them "pass through verbatim".
func renderStmt(n Node, indent int) string {
	switch n.(type) {
	case *DividerStmt, *CommentStmt, *MultiLineCommentStmt, *BlankLineStmt,
		*LibraryUseStmt, *PropertyStmt, *EventStmt:
		return n.Format(indent)
	default:
		return terminate(n.Format(indent))
	}
}

// ----------------------------------------------------------------------------
// Program

// Program is the AST root: an ordered sequence of top-level statements.
type Program struct {
	Statements []Node
}

func (p *Program) Format(indent int) string {
	var b strings.Builder
	prevBlank := false
	for i, stmt := range p.Statements {
		if _, isBlank := stmt.(*BlankLineStmt); isBlank {
			if prevBlank || i == 0 {
				continue // collapse consecutive/leading blank markers
			}
			b.WriteString("\n")
			prevBlank = true
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indentStr(indent))
		b.WriteString(renderStmt(stmt, indent))
		prevBlank = false
	}
	return b.String()
}

// ----------------------------------------------------------------------------
// Block

// Block is an ordered statement sequence braced on its own. Used for
// function/if/loop/try bodies.
type Block struct {
	Statements []Node
}

func (b *Block) Format(indent int) string {
	var out strings.Builder
	out.WriteString("{\n")
	prevBlank := false
	for _, stmt := range b.Statements {
		_, isBlank := stmt.(*BlankLineStmt)
		if isBlank && prevBlank {
			continue // collapse consecutive blank markers
		}
		prevBlank = isBlank
		if isBlank {
			out.WriteString("\n")
			continue
		}
		out.WriteString(indentStr(indent + 1))
		out.WriteString(renderStmt(stmt, indent+1))
		out.WriteString("\n")
	}
	out.WriteString(indentStr(indent))
	out.WriteString("}")
	return out.String()
}

// ----------------------------------------------------------------------------
// Literals

// NumberLiteral preserves the raw lexeme alongside the flags the parser
// derived from it, so formatting never has to re-derive float-ness from
// the text.
type NumberLiteral struct {
	Lexeme     string
	IsFloat    bool
	IsNegative bool
}

func (n *NumberLiteral) Format(int) string {
	if n.IsNegative && !strings.HasPrefix(n.Lexeme, "-") {
		return "-" + n.Lexeme
	}
	return n.Lexeme
}

type BoolLiteral struct{ Value bool }

func (b *BoolLiteral) Format(int) string {
	if b.Value {
		return "true"
	}
	return "false"
}

type CharLiteral struct{ Lexeme string }

func (c *CharLiteral) Format(int) string { return c.Lexeme }

type StringLiteralExpr struct{ Lexeme string }

func (s *StringLiteralExpr) Format(int) string { return s.Lexeme }

// IdentifierExpr is plain, global ($-prefixed), or pointer-taken (&-prefixed).
// At most one of IsGlobal/IsPointer is set; a plain identifier sets neither.
type IdentifierExpr struct {
	Name      string
	IsGlobal  bool
	IsPointer bool
}

func (i *IdentifierExpr) Format(int) string {
	switch {
	case i.IsGlobal:
		return "$" + i.Name
	case i.IsPointer:
		return "&" + i.Name
	default:
		return i.Name
	}
}

// ----------------------------------------------------------------------------
// Type expressions

// AtomicType is a built-in keyword, a dyn_/dyn_dyn_ collection type, or a
// user-defined name; UserTag is set to "enum_type"|"struct_type"|"class_type"
// when Name resolved against the parser's symbol table, empty otherwise.
type AtomicType struct {
	Name    string
	UserTag string
}

func (a *AtomicType) Format(int) string { return a.Name }

// TemplateType is a parameterized type such as vector<T> or shared_ptr<T, U>.
type TemplateType struct {
	Name  string
	Inner []Node
}

func (t *TemplateType) Format(indent int) string {
	parts := make([]string, len(t.Inner))
	for i, inner := range t.Inner {
		parts[i] = inner.Format(indent)
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// ----------------------------------------------------------------------------
// Declarations

// DeclIdentifier is one entry of a VarDecl's identifier list: a name, an
// optional initializer, and the pair of comments that may flank the '='.
type DeclIdentifier struct {
	Name           string
	Initializer    Node
	CommentBefore  string
	CommentAfter   string
}

func (d DeclIdentifier) format(indent int) string {
	if d.Initializer == nil {
		return d.Name
	}
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteString(" ")
	if d.CommentBefore != "" {
		b.WriteString("/*" + d.CommentBefore + "*/ ")
	}
	b.WriteString("= ")
	if d.CommentAfter != "" {
		b.WriteString("/*" + d.CommentAfter + "*/ ")
	}
	b.WriteString(d.Initializer.Format(indent))
	return b.String()
}

// VarDecl is a variable declaration: optional access modifier, optional
// modifiers, optional const, optional type, ordered identifier list.
type VarDecl struct {
	AccessModifier string
	Modifiers      []string
	IsConst        bool
	Type           Node
	Identifiers    []DeclIdentifier
}

func (v *VarDecl) Format(indent int) string {
	var parts []string
	if v.IsConst {
		parts = append(parts, "const")
	}
	if v.AccessModifier != "" {
		parts = append(parts, v.AccessModifier)
	}
	parts = append(parts, v.Modifiers...)
	if v.Type != nil {
		parts = append(parts, v.Type.Format(indent))
	}
	idents := make([]string, len(v.Identifiers))
	for i, id := range v.Identifiers {
		idents[i] = id.format(indent)
	}
	parts = append(parts, strings.Join(idents, ", "))
	return strings.Join(parts, " ")
}

// EnumValue is one entry of an enum declaration: a name and an optional
// explicit integer value.
type EnumValue struct {
	Name  string
	Value *int
}

// EnumDecl declares a named set of values, each optionally given an
// explicit integer.
type EnumDecl struct {
	Name   string
	Values []EnumValue
}

func (e *EnumDecl) Format(indent int) string {
	var b strings.Builder
	b.WriteString("enum ")
	b.WriteString(e.Name)
	b.WriteString(" {\n")
	for i, v := range e.Values {
		b.WriteString(indentStr(indent + 1))
		b.WriteString(v.Name)
		if v.Value != nil {
			b.WriteString(" = ")
			b.WriteString(strconv.Itoa(*v.Value))
		}
		if i != len(e.Values)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indentStr(indent))
	b.WriteString("}")
	return b.String()
}

// StructDecl declares a struct. Inheritance is preserved (spec.md §9 Open
// Question 3): the original's struct node silently drops it in one code
// path, but this implementation treats struct inheritance the same way
// class inheritance works.
type StructDecl struct {
	Name        string
	Inheritance Node
	Body        *Block
}

func (s *StructDecl) Format(indent int) string {
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(s.Name)
	if s.Inheritance != nil {
		b.WriteString(" : ")
		b.WriteString(s.Inheritance.Format(indent))
	}
	b.WriteString(" ")
	b.WriteString(s.Body.Format(indent))
	return b.String()
}

// ClassDecl declares a class; identical shape to StructDecl.
type ClassDecl struct {
	Name        string
	Inheritance Node
	Body        *Block
}

func (c *ClassDecl) Format(indent int) string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(c.Name)
	if c.Inheritance != nil {
		b.WriteString(" : ")
		b.WriteString(c.Inheritance.Format(indent))
	}
	b.WriteString(" ")
	b.WriteString(c.Body.Format(indent))
	return b.String()
}

// Param is one function parameter.
type Param struct {
	Type      Node
	Name      string
	Default   Node
	IsPointer bool
	IsConst   bool
}

func (p Param) format(indent int) string {
	var parts []string
	if p.IsConst {
		parts = append(parts, "const")
	}
	parts = append(parts, p.Type.Format(indent))
	name := p.Name
	if p.IsPointer {
		name = "&" + name
	}
	parts = append(parts, name)
	s := strings.Join(parts, " ")
	if p.Default != nil {
		s += " = " + p.Default.Format(indent)
	}
	return s
}

// FuncDecl declares a function, method, or constructor. IsConstructor is
// set when there is no explicit return type, the function is not main, and
// Name is registered as a class in the parser's symbol table; the parser
// does not check that Name is the enclosing class.
type FuncDecl struct {
	AccessModifier string
	Modifier       string
	ReturnType     Node
	Name           string
	IsMain         bool
	IsConstructor  bool
	Params         []Param
	Body           *Block
}

func (f *FuncDecl) Format(indent int) string {
	var parts []string
	if f.AccessModifier != "" {
		parts = append(parts, f.AccessModifier)
	}
	if f.Modifier != "" {
		parts = append(parts, f.Modifier)
	}
	if f.ReturnType != nil {
		parts = append(parts, f.ReturnType.Format(indent))
	}
	name := f.Name
	if f.IsMain {
		name = "main"
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.format(indent)
	}
	parts = append(parts, name+"("+strings.Join(params, ", ")+")")
	return strings.Join(parts, " ") + " " + f.Body.Format(indent)
}

// ----------------------------------------------------------------------------
// Statements

// AssignStmt covers both plain '=' and compound assignment operators
// (+= -= *= /= %=) — the operator is carried verbatim.
type AssignStmt struct {
	Target   Node
	Operator string
	Value    Node
}

func (a *AssignStmt) Format(indent int) string {
	return a.Target.Format(indent) + " " + a.Operator + " " + a.Value.Format(indent)
}

// IncDecStmt is a prefix or postfix ++/-- statement.
type IncDecStmt struct {
	Target   Node
	Operator string
	Prefix   bool
}

func (i *IncDecStmt) Format(indent int) string {
	if i.Prefix {
		return i.Operator + i.Target.Format(indent)
	}
	return i.Target.Format(indent) + i.Operator
}

func formatBranchBody(block *Block, inline Node, indent int, forceBraces bool) string {
	if block != nil {
		return " " + block.Format(indent)
	}
	if forceBraces {
		return " {\n" + indentStr(indent+1) + terminate(inline.Format(indent+1)) + "\n" + indentStr(indent) + "}"
	}
	return "\n" + indentStr(indent+1) + terminate(inline.Format(indent + 1))
}

// ElseIfClause is one `else if (...)` branch of an IfStmt.
type ElseIfClause struct {
	Cond    Node
	Block   *Block
	Inline  Node
	Comment string
}

// ElseClause is the trailing `else` branch of an IfStmt.
type ElseClause struct {
	Block   *Block
	Inline  Node
	Comment string
}

// IfStmt models if / else-if* / else?. Exactly one of Block and Inline is
// set on each clause (spec.md §3.2 invariant iii). When ElseIfs or Else is
// present, every inline branch is wrapped in braces on re-emit
// (spec.md boundary behaviors).
type IfStmt struct {
	Cond    Node
	Block   *Block
	Inline  Node
	Comment string
	ElseIfs []ElseIfClause
	Else    *ElseClause
}

func (s *IfStmt) Format(indent int) string {
	forceBraces := len(s.ElseIfs) > 0 || s.Else != nil
	var b strings.Builder
	b.WriteString("if (")
	b.WriteString(s.Cond.Format(indent))
	b.WriteString(")")
	if s.Comment != "" {
		b.WriteString(" /*" + s.Comment + "*/")
	}
	b.WriteString(formatBranchBody(s.Block, s.Inline, indent, forceBraces))
	for _, ei := range s.ElseIfs {
		b.WriteString(" else if (")
		b.WriteString(ei.Cond.Format(indent))
		b.WriteString(")")
		if ei.Comment != "" {
			b.WriteString(" /*" + ei.Comment + "*/")
		}
		b.WriteString(formatBranchBody(ei.Block, ei.Inline, indent, forceBraces))
	}
	if s.Else != nil {
		b.WriteString(" else")
		if s.Else.Comment != "" {
			b.WriteString(" /*" + s.Else.Comment + "*/")
		}
		b.WriteString(formatBranchBody(s.Else.Block, s.Else.Inline, indent, forceBraces))
	}
	return b.String()
}

type WhileStmt struct {
	Cond Node
	Body *Block
}

func (w *WhileStmt) Format(indent int) string {
	return "while (" + w.Cond.Format(indent) + ") " + w.Body.Format(indent)
}

type DoWhileStmt struct {
	Body *Block
	Cond Node
}

func (d *DoWhileStmt) Format(indent int) string {
	return "do " + d.Body.Format(indent) + " while (" + d.Cond.Format(indent) + ")"
}

// ForStmt is the C-style for loop; Init, Cond, Step may each be nil.
type ForStmt struct {
	Init Node
	Cond Node
	Step Node
	Body *Block
}

func (f *ForStmt) Format(indent int) string {
	init, cond, step := "", "", ""
	if f.Init != nil {
		init = f.Init.Format(indent)
	}
	if f.Cond != nil {
		cond = f.Cond.Format(indent)
	}
	if f.Step != nil {
		step = f.Step.Format(indent)
	}
	return "for (" + init + "; " + cond + "; " + step + ") " + f.Body.Format(indent)
}

// CaseClause is `case Expr : stmts` or, when IsDefault, `default : stmts`.
type CaseClause struct {
	IsDefault bool
	Value     Node
	Body      []Node
}

func (c CaseClause) format(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	if c.IsDefault {
		b.WriteString("default:")
	} else {
		b.WriteString("case " + c.Value.Format(indent) + ":")
	}
	for _, stmt := range c.Body {
		b.WriteString("\n")
		b.WriteString(indentStr(indent + 1))
		b.WriteString(renderStmt(stmt, indent+1))
	}
	return b.String()
}

type SwitchStmt struct {
	Expr  Node
	Cases []CaseClause
}

func (s *SwitchStmt) Format(indent int) string {
	var b strings.Builder
	b.WriteString("switch (")
	b.WriteString(s.Expr.Format(indent))
	b.WriteString(") {\n")
	for _, c := range s.Cases {
		b.WriteString(c.format(indent + 1))
		b.WriteString("\n")
	}
	b.WriteString(indentStr(indent))
	b.WriteString("}")
	return b.String()
}

// ReturnStmt carries an optional expression.
type ReturnStmt struct{ Value Node }

func (r *ReturnStmt) Format(indent int) string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.Format(indent)
}

type BreakStmt struct{}

func (*BreakStmt) Format(int) string { return "break" }

type ContinueStmt struct{}

func (*ContinueStmt) Format(int) string { return "continue" }

// TryStmt is try { } catch { } finally? { }. There is no typed catch
// binding in CTL.
type TryStmt struct {
	Try     *Block
	Catch   *Block
	Finally *Block
}

func (t *TryStmt) Format(indent int) string {
	s := "try " + t.Try.Format(indent) + " catch " + t.Catch.Format(indent)
	if t.Finally != nil {
		s += " finally " + t.Finally.Format(indent)
	}
	return s
}

// LibraryUseStmt is the `#uses "name"` directive.
type LibraryUseStmt struct{ Name string }

func (l *LibraryUseStmt) Format(int) string { return "#uses \"" + l.Name + "\"" }

// PropertyStmt is the `#property Type identifier` directive, reinstated
// from the original linter's PropertySetterNode (supplemented feature, not
// present in the distilled spec).
type PropertyStmt struct {
	Type Node
	Name string
}

func (p *PropertyStmt) Format(indent int) string {
	return "#property " + p.Type.Format(indent) + " " + p.Name
}

// EventStmt is the `#event identifier(Type id, ...)` directive, reinstated
// from the original linter's EventNode.
type EventStmt struct {
	Name   string
	Params []Param
}

func (e *EventStmt) Format(indent int) string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.format(indent)
	}
	return "#event " + e.Name + "(" + strings.Join(params, ", ") + ")"
}

// DividerStmt passes a box-drawing separator line through verbatim.
type DividerStmt struct{ Lexeme string }

func (d *DividerStmt) Format(int) string { return d.Lexeme }

// CommentStmt is a single-line `// ...` comment standing as its own
// statement (as opposed to one attached to another node).
type CommentStmt struct{ Text string }

func (c *CommentStmt) Format(int) string { return "//" + c.Text }

// MultiLineCommentStmt preserves a `/* ... */` block as its original lines.
type MultiLineCommentStmt struct{ Lines []string }

func (m *MultiLineCommentStmt) Format(indent int) string {
	if len(m.Lines) == 1 {
		return "/*" + m.Lines[0] + "*/"
	}
	var b strings.Builder
	b.WriteString("/*")
	for i, line := range m.Lines {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(indentStr(indent))
		}
		b.WriteString(line)
	}
	b.WriteString("*/")
	return b.String()
}

// BlankLineStmt marks a preserved blank line between two statements.
type BlankLineStmt struct{}

func (*BlankLineStmt) Format(int) string { return "" }

// ExprStmt wraps a bare expression used as a statement (function-call
// statements are the only expressions the grammar allows standalone).
type ExprStmt struct{ Expr Node }

func (e *ExprStmt) Format(indent int) string { return e.Expr.Format(indent) }

// ----------------------------------------------------------------------------
// Expressions

// BinaryExpr covers arithmetic, relational, logical, bitwise, and shift
// binary operators uniformly — including shift, which the original's
// formatter has a latent bug leaving unreturned in one branch
// (spec.md §9 Open Question 2: treated here as an ordinary binary node).
// Comment is attached only when the grammar allows one between operator
// and right operand (additive level).
type BinaryExpr struct {
	Op      string
	Left    Node
	Right   Node
	Comment string
}

func (b *BinaryExpr) Format(indent int) string {
	s := b.Left.Format(indent) + " " + b.Op + " "
	if b.Comment != "" {
		s += "/*" + b.Comment + "*/ "
	}
	return s + b.Right.Format(indent)
}

// UnaryExpr is prefix `!` or `~`; the operator is preserved verbatim.
type UnaryExpr struct {
	Op      string
	Operand Node
}

func (u *UnaryExpr) Format(indent int) string { return u.Op + u.Operand.Format(indent) }

type TernaryExpr struct {
	Cond Node
	Then Node
	Else Node
}

func (t *TernaryExpr) Format(indent int) string {
	return t.Cond.Format(indent) + " ? " + t.Then.Format(indent) + " : " + t.Else.Format(indent)
}

// AttributeAccess is `a.b`.
type AttributeAccess struct {
	Object Node
	Name   string
}

func (a *AttributeAccess) Format(indent int) string { return a.Object.Format(indent) + "." + a.Name }

// IndexAccess is `a[i]`.
type IndexAccess struct {
	Object Node
	Index  Node
}

func (a *IndexAccess) Format(indent int) string {
	return a.Object.Format(indent) + "[" + a.Index.Format(indent) + "]"
}

// CallExpr is `f(args)`.
type CallExpr struct {
	Callee Node
	Args   []Node
}

func (c *CallExpr) Format(indent int) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Format(indent)
	}
	return c.Callee.Format(indent) + "(" + strings.Join(args, ", ") + ")"
}

// StaticAccess is `T::m`, class-static/namespace access.
type StaticAccess struct {
	TypeName string
	Member   string
}

func (s *StaticAccess) Format(int) string { return s.TypeName + "::" + s.Member }

// EnumAccess is `E::V`, an enum value reference.
type EnumAccess struct {
	EnumName string
	Value    string
}

func (e *EnumAccess) Format(int) string { return e.EnumName + "::" + e.Value }

// ClassInit is `T(args)`, or `new T(args)` when IsNew is set.
type ClassInit struct {
	TypeName string
	Args     []Node
	IsNew    bool
}

func (c *ClassInit) Format(indent int) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Format(indent)
	}
	s := c.TypeName + "(" + strings.Join(args, ", ") + ")"
	if c.IsNew {
		s = "new " + s
	}
	return s
}

// CastExpr is `(T)expr`.
type CastExpr struct {
	Type Node
	Expr Node
}

func (c *CastExpr) Format(indent int) string {
	return "(" + c.Type.Format(indent) + ")" + c.Expr.Format(indent)
}
