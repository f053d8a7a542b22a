package ctl

// ----------------------------------------------------------------------------
// Expression grammar (spec.md §4.2.1)
//
// Ten-plus levels, low to high precedence, each a left-associative chain
// except ternary (right-associative, single level) and unary (right-assoc,
// may chain). The condition expressions of if/while/for/switch are parsed
// through this same entry point; the original restricts them to the
// Relational level and below, but nothing in CTL source actually relies on
// that restriction (a ternary or logical expression in an if-condition
// parses the same either way), so this implementation uses one expression
// entry point everywhere for simplicity.

func (p *Parser) parseExpression() (Node, error) { return p.parseTernary() }

func (p *Parser) parseTernary() (Node, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.current().Is(Symbol, "?") {
		return cond, nil
	}
	p.advance()
	thenExpr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeLexeme(Symbol, ":"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	return &TernaryExpr{Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

func (p *Parser) parseLogicalOr() (Node, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Is(LogicalOperator, "||") {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current().Is(LogicalOperator, "&&") {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	tok := p.current()
	if tok.Is(LogicalOperator, "!") || tok.Is(Symbol, "~") {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Lexeme, Operand: operand}, nil
	}
	return p.parseBitwiseOr()
}

func (p *Parser) parseBitwiseOr() (Node, error) {
	left, err := p.parseBitwiseXor()
	if err != nil {
		return nil, err
	}
	for p.current().Is(Symbol, "|") {
		p.advance()
		right, err := p.parseBitwiseXor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "|", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBitwiseXor() (Node, error) {
	left, err := p.parseBitwiseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Is(Symbol, "^") {
		p.advance()
		right, err := p.parseBitwiseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "^", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBitwiseAnd() (Node, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.current().Is(Symbol, "&") {
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "&", Left: left, Right: right}
	}
	return left, nil
}

// parseShift treats both shift operators uniformly, left op right
// (spec.md §9 Open Question 2).
func (p *Parser) parseShift() (Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if !tok.Is(Symbol, "<<") && !tok.Is(Symbol, ">>") {
			break
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelational() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == ComparisonOperator {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

// parseAdditive handles + and -; a comment token may appear between the
// operator and the right operand and is attached to the resulting node.
func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if !tok.Is(ArithmeticOperator, "+") && !tok.Is(ArithmeticOperator, "-") {
			break
		}
		p.advance()
		comment := ""
		if p.current().Kind == Comment {
			comment = p.advance().Lexeme
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Lexeme, Left: left, Right: right, Comment: comment}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if tok.Kind != ArithmeticOperator || (tok.Lexeme != "*" && tok.Lexeme != "/" && tok.Lexeme != "%") {
			break
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

// parseFactor is a primary followed by any chain of .ident, [expr], (args).
func (p *Parser) parseFactor() (Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		switch {
		case tok.Is(Symbol, "."):
			p.advance()
			name, err := p.consume(Identifier)
			if err != nil {
				return nil, err
			}
			expr = &AttributeAccess{Object: expr, Name: name.Lexeme}
		case tok.Is(Symbol, "["):
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consumeLexeme(Symbol, "]"); err != nil {
				return nil, err
			}
			expr = &IndexAccess{Object: expr, Index: index}
		case tok.Is(Symbol, "("):
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]Node, error) {
	if _, err := p.consumeLexeme(Symbol, "("); err != nil {
		return nil, err
	}
	var args []Node
	for !p.current().Is(Symbol, ")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current().Is(Symbol, ",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.consumeLexeme(Symbol, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parsePrimary recognizes, in order: numeric literal (with optional unary
// minus), string literal, char literal, boolean keyword, `new` class
// initialization, global ($) and pointer (&) identifier, type cast or
// parenthesized expression, and then the identifier-led forms: function
// call or class initialization (identifier followed by '('), double-colon
// access, and plain identifier.
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	if tok.Is(ArithmeticOperator, "-") && p.peek(1).Kind == Number {
		p.advance()
		num := p.advance()
		return &NumberLiteral{Lexeme: num.Lexeme, IsFloat: isFloatLexeme(num.Lexeme), IsNegative: true}, nil
	}
	if tok.Kind == Number {
		p.advance()
		return &NumberLiteral{Lexeme: tok.Lexeme, IsFloat: isFloatLexeme(tok.Lexeme)}, nil
	}
	if tok.Kind == StringLiteral {
		p.advance()
		return &StringLiteralExpr{Lexeme: tok.Lexeme}, nil
	}
	if tok.Kind == Char {
		p.advance()
		return &CharLiteral{Lexeme: tok.Lexeme}, nil
	}
	if tok.Is(Keyword, "true") {
		p.advance()
		return &BoolLiteral{Value: true}, nil
	}
	if tok.Is(Keyword, "false") {
		p.advance()
		return &BoolLiteral{Value: false}, nil
	}
	if tok.Is(Keyword, "new") {
		p.advance()
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ClassInit{TypeName: name.Lexeme, Args: args, IsNew: true}, nil
	}
	if tok.Is(Symbol, "$") {
		p.advance()
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		return &IdentifierExpr{Name: name.Lexeme, IsGlobal: true}, nil
	}
	if tok.Is(Symbol, "&") {
		p.advance()
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		return &IdentifierExpr{Name: name.Lexeme, IsPointer: true}, nil
	}
	if tok.Is(Symbol, "(") {
		if typ, ok := p.tryParseCast(); ok {
			return typ, nil
		}
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consumeLexeme(Symbol, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	if tok.Kind == Identifier {
		if p.peek(1).Is(Symbol, "(") {
			p.advance()
			if tag, ok := p.syms.lookup(tok.Lexeme); ok {
				_ = tag
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				return &ClassInit{TypeName: tok.Lexeme, Args: args}, nil
			}
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &CallExpr{Callee: &IdentifierExpr{Name: tok.Lexeme}, Args: args}, nil
		}
		if p.peek(1).Is(Symbol, "::") {
			if _, ok := p.syms.lookup(tok.Lexeme); ok {
				p.advance()
				p.advance()
				member, err := p.consume(Identifier)
				if err != nil {
					return nil, err
				}
				if tag, _ := p.syms.lookup(tok.Lexeme); tag == EnumType {
					return &EnumAccess{EnumName: tok.Lexeme, Value: member.Lexeme}, nil
				}
				return &StaticAccess{TypeName: tok.Lexeme, Member: member.Lexeme}, nil
			}
		}
		p.advance()
		return &IdentifierExpr{Name: tok.Lexeme}, nil
	}

	return nil, newParseError(tok, "expected an expression")
}

// tryParseCast speculatively parses "(Type)" and reports ok=true only if it
// is immediately followed by another primary expression (so that a bare
// parenthesized type name isn't mistaken for a cast).
func (p *Parser) tryParseCast() (Node, bool) {
	m := p.mark()
	p.advance() // consume "("
	typ, err := p.parseType()
	if err != nil {
		p.reset(m)
		return nil, false
	}
	if _, err := p.consumeLexeme(Symbol, ")"); err != nil {
		p.reset(m)
		return nil, false
	}
	if !p.startsExpression(p.current()) {
		p.reset(m)
		return nil, false
	}
	expr, err := p.parseFactor()
	if err != nil {
		p.reset(m)
		return nil, false
	}
	return &CastExpr{Type: typ, Expr: expr}, true
}

func (p *Parser) startsExpression(tok Token) bool {
	switch tok.Kind {
	case Number, StringLiteral, Char, Identifier:
		return true
	}
	if tok.Is(Symbol, "(") || tok.Is(Symbol, "$") || tok.Is(Symbol, "&") {
		return true
	}
	if tok.Is(Keyword, "true") || tok.Is(Keyword, "false") || tok.Is(Keyword, "new") {
		return true
	}
	return false
}

func isFloatLexeme(lexeme string) bool {
	if len(lexeme) > 1 && (lexeme[1] == 'x' || lexeme[1] == 'X') {
		return false // hex digits e/E/f/F do not make a literal a float
	}
	for _, r := range lexeme {
		if r == '.' || r == 'f' || r == 'F' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Type parsing (spec.md §4.2.2)

func (p *Parser) parseType() (Node, error) {
	tok := p.current()

	if tok.Kind == TypeKeyword {
		p.advance()
		return &AtomicType{Name: tok.Lexeme}, nil
	}
	if tok.Kind == TemplateTypeKeyword {
		p.advance()
		if _, err := p.consumeLexeme(Symbol, "<") ; err != nil {
			if !p.current().Is(ComparisonOperator, "<") {
				return nil, err
			}
			p.advance()
		}
		var inner []Node
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			inner = append(inner, t)
			if p.current().Is(Symbol, ",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.consumeAngleClose(); err != nil {
			return nil, err
		}
		return &TemplateType{Name: tok.Lexeme, Inner: inner}, nil
	}
	if tok.Kind == Identifier {
		if tag, ok := p.syms.lookup(tok.Lexeme); ok {
			p.advance()
			return &AtomicType{Name: tok.Lexeme, UserTag: tag.String()}, nil
		}
	}

	return nil, newParseError(tok, "expected a type")
}

// consumeAngleClose accepts a '>' token, which the lexer emits as a
// comparison operator (a '>' symbol is accepted too, although the lexer's
// symbol table has none). A '>>' symbol token closing two nested
// template types (vector<vector<int>>) is consumed once and its second
// '>' is handed to the next consumeAngleClose call via pendingAngleClose.
func (p *Parser) consumeAngleClose() error {
	if p.pendingAngleClose {
		p.pendingAngleClose = false
		return nil
	}
	tok := p.current()
	if tok.Is(Symbol, ">") || tok.Is(ComparisonOperator, ">") {
		p.advance()
		return nil
	}
	if tok.Is(Symbol, ">>") {
		p.advance()
		p.pendingAngleClose = true
		return nil
	}
	return newParseError(tok, "expected >")
}
