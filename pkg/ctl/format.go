package ctl

// ----------------------------------------------------------------------------
// Formatter shell (spec.md §4.3, "Blank lines")
//
// Format is the outermost entry point of the pipeline: it normalizes the
// blank-line markers around top-level function/class/struct declarations —
// exactly one blank line is forced immediately before and after each such
// declaration — then delegates to the AST's own Format(0).

// Format renders p as canonical source text.
func Format(p *Program) string {
	normalized := &Program{Statements: injectTopLevelBlankLines(p.Statements)}
	return normalized.Format(0) + "\n"
}

func isTopLevelDecl(n Node) bool {
	switch n.(type) {
	case *FuncDecl, *ClassDecl, *StructDecl:
		return true
	default:
		return false
	}
}

// injectTopLevelBlankLines forces a single blank-line marker on either side
// of every top-level function/class/struct declaration, while preserving
// (but not duplicating) any blank line already present between two
// ordinary statements.
func injectTopLevelBlankLines(stmts []Node) []Node {
	type entry struct {
		stmt     Node
		hadBlank bool
	}
	var real []entry
	pendingBlank := false
	for _, s := range stmts {
		if _, ok := s.(*BlankLineStmt); ok {
			pendingBlank = true
			continue
		}
		real = append(real, entry{stmt: s, hadBlank: pendingBlank})
		pendingBlank = false
	}

	var out []Node
	for i, e := range real {
		if i > 0 {
			wantBlank := e.hadBlank || isTopLevelDecl(real[i-1].stmt) || isTopLevelDecl(e.stmt)
			if wantBlank {
				out = append(out, &BlankLineStmt{})
			}
		}
		out = append(out, e.stmt)
	}
	return out
}
