package ctl_test

import (
	"testing"

	"github.com/mateuszpolis/ctlfmt/pkg/ctl"
)

func parseSource(t *testing.T, source string) *ctl.Program {
	t.Helper()
	tokens, err := ctl.Lex(source)
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", source, err)
	}
	program, err := ctl.Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", source, err)
	}
	return program
}

// S1: operator precedence nests multiplication inside addition.
func TestParsePrecedenceAdditiveOverMultiplicative(t *testing.T) {
	program := parseSource(t, "int x = 1 + 2 * 3;")
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ctl.VarDecl)
	if !ok {
		t.Fatalf("expected *ctl.VarDecl, got %T", program.Statements[0])
	}
	if len(decl.Identifiers) != 1 || decl.Identifiers[0].Name != "x" {
		t.Fatalf("expected a single identifier 'x', got %+v", decl.Identifiers)
	}
	outer, ok := decl.Identifiers[0].Initializer.(*ctl.BinaryExpr)
	if !ok || outer.Op != "+" {
		t.Fatalf("expected outer '+' BinaryExpr, got %+v", decl.Identifiers[0].Initializer)
	}
	inner, ok := outer.Right.(*ctl.BinaryExpr)
	if !ok || inner.Op != "*" {
		t.Fatalf("expected nested '*' BinaryExpr on the right, got %+v", outer.Right)
	}
}

// S2: an if with inline branches wraps them in braces once an else-if
// branch is present.
func TestParseIfElseIfWrapsInlineOnFormat(t *testing.T) {
	source := "if (a > 0) b = 1; else if (a < 0) b = -1; else b = 0;"
	program := parseSource(t, source)
	ifStmt, ok := program.Statements[0].(*ctl.IfStmt)
	if !ok {
		t.Fatalf("expected *ctl.IfStmt, got %T", program.Statements[0])
	}
	if ifStmt.Block != nil || ifStmt.Inline == nil {
		t.Fatalf("expected the primary branch to be an inline statement, got %+v", ifStmt)
	}
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("expected exactly one else-if branch, got %d", len(ifStmt.ElseIfs))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}

	out := ctl.Format(&ctl.Program{Statements: []ctl.Node{ifStmt}})
	if !containsAll(out, "if (a > 0) {", "else if (a < 0) {", "else {") {
		t.Errorf("expected every branch wrapped in braces, got:\n%s", out)
	}
}

func containsAll(haystack string, needles ...string) bool {
	for _, n := range needles {
		if !contains(haystack, n) {
			return false
		}
	}
	return true
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// S3: an enum declaration registers its name, and Color::RED round-trips
// as an EnumAccess.
func TestParseEnumDeclarationAndAccess(t *testing.T) {
	source := "enum Color { RED = 1, GREEN, BLUE = 4 }; Color c = Color::RED;"
	program := parseSource(t, source)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	enumDecl, ok := program.Statements[0].(*ctl.EnumDecl)
	if !ok {
		t.Fatalf("expected *ctl.EnumDecl, got %T", program.Statements[0])
	}
	if len(enumDecl.Values) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(enumDecl.Values))
	}
	if enumDecl.Values[1].Value != nil {
		t.Errorf("expected GREEN to have no explicit value, got %v", *enumDecl.Values[1].Value)
	}

	decl, ok := program.Statements[1].(*ctl.VarDecl)
	if !ok {
		t.Fatalf("expected *ctl.VarDecl, got %T", program.Statements[1])
	}
	access, ok := decl.Identifiers[0].Initializer.(*ctl.EnumAccess)
	if !ok || access.EnumName != "Color" || access.Value != "RED" {
		t.Fatalf("expected EnumAccess(Color, RED), got %+v", decl.Identifiers[0].Initializer)
	}
}

// S4: a for loop with a declaration init, relational condition, postfix
// step, and a compound assignment with an index-access value in the body.
func TestParseForLoop(t *testing.T) {
	source := "for (int i = 0; i < n; i++) { sum += a[i]; }"
	program := parseSource(t, source)
	forStmt, ok := program.Statements[0].(*ctl.ForStmt)
	if !ok {
		t.Fatalf("expected *ctl.ForStmt, got %T", program.Statements[0])
	}
	if _, ok := forStmt.Init.(*ctl.VarDecl); !ok {
		t.Fatalf("expected declaration init, got %T", forStmt.Init)
	}
	cond, ok := forStmt.Cond.(*ctl.BinaryExpr)
	if !ok || cond.Op != "<" {
		t.Fatalf("expected relational '<' condition, got %+v", forStmt.Cond)
	}
	step, ok := forStmt.Step.(*ctl.IncDecStmt)
	if !ok || step.Prefix {
		t.Fatalf("expected postfix increment step, got %+v", forStmt.Step)
	}
	if len(forStmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(forStmt.Body.Statements))
	}
	assign, ok := forStmt.Body.Statements[0].(*ctl.AssignStmt)
	if !ok || assign.Operator != "+=" {
		t.Fatalf("expected compound assignment, got %+v", forStmt.Body.Statements[0])
	}
	if _, ok := assign.Value.(*ctl.IndexAccess); !ok {
		t.Fatalf("expected index-access assignment value, got %T", assign.Value)
	}
}

// S5: a library-uses directive, a preserved blank line, then a function
// declaration.
func TestParseLibraryUseThenBlankLineThenFunction(t *testing.T) {
	source := "#uses \"ctrlMath\"\n\n\nvoid f() { return; }"
	program := parseSource(t, source)
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements (use, blank, func), got %d: %+v", len(program.Statements), program.Statements)
	}
	if _, ok := program.Statements[0].(*ctl.LibraryUseStmt); !ok {
		t.Fatalf("expected *ctl.LibraryUseStmt, got %T", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*ctl.BlankLineStmt); !ok {
		t.Fatalf("expected *ctl.BlankLineStmt, got %T", program.Statements[1])
	}
	if _, ok := program.Statements[2].(*ctl.FuncDecl); !ok {
		t.Fatalf("expected *ctl.FuncDecl, got %T", program.Statements[2])
	}
}

// S6: nested template types resolve their innermost user type against the
// symbol table.
func TestParseNestedTemplateType(t *testing.T) {
	source := "class Foo {} vector<shared_ptr<Foo>> v;"
	program := parseSource(t, source)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[1].(*ctl.VarDecl)
	if !ok {
		t.Fatalf("expected *ctl.VarDecl, got %T", program.Statements[1])
	}
	outer, ok := decl.Type.(*ctl.TemplateType)
	if !ok || outer.Name != "vector" {
		t.Fatalf("expected outer vector<> template type, got %+v", decl.Type)
	}
	inner, ok := outer.Inner[0].(*ctl.TemplateType)
	if !ok || inner.Name != "shared_ptr" {
		t.Fatalf("expected inner shared_ptr<> template type, got %+v", outer.Inner[0])
	}
	leaf, ok := inner.Inner[0].(*ctl.AtomicType)
	if !ok || leaf.Name != "Foo" || leaf.UserTag != "class_type" {
		t.Fatalf("expected leaf type Foo tagged class_type, got %+v", inner.Inner[0])
	}
}

func TestParseStructInheritanceIsPreserved(t *testing.T) {
	source := "struct Base {} struct Derived : Base {}"
	program := parseSource(t, source)
	derived, ok := program.Statements[1].(*ctl.StructDecl)
	if !ok {
		t.Fatalf("expected *ctl.StructDecl, got %T", program.Statements[1])
	}
	if derived.Inheritance == nil {
		t.Fatal("expected struct inheritance to be preserved, got nil")
	}
}

func TestParseClassSelfReferenceInBody(t *testing.T) {
	source := "class Node { Node next; }"
	program := parseSource(t, source)
	class, ok := program.Statements[0].(*ctl.ClassDecl)
	if !ok {
		t.Fatalf("expected *ctl.ClassDecl, got %T", program.Statements[0])
	}
	if len(class.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(class.Body.Statements))
	}
	if _, ok := class.Body.Statements[0].(*ctl.VarDecl); !ok {
		t.Fatalf("expected a field declaration referencing the enclosing class, got %T", class.Body.Statements[0])
	}
}

func TestParseRejectsRedefinedEnum(t *testing.T) {
	tokens, err := ctl.Lex("enum Color { RED }; enum Color { BLUE };")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if _, err := ctl.Parse(tokens); err == nil {
		t.Fatal("expected a parse error for a redefined enum name")
	}
}
