package ctl

import "strconv"

// ----------------------------------------------------------------------------
// Variable declarations (spec.md §3.2, §4.2 predicate 3)

func (p *Parser) parseVarDecl() (Node, error) {
	decl, err := p.parseVarDeclCore()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeLexeme(Symbol, ";"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseVarDeclCore parses everything up to (but not including) the
// terminating ';' — reused by for-loop init, which has no semicolon of
// its own to consume.
func (p *Parser) parseVarDeclCore() (Node, error) {
	var accessModifier string
	if p.current().Kind == AccessModifier {
		accessModifier = p.advance().Lexeme
	}
	var modifiers []string
	for p.current().Kind == Modifier {
		modifiers = append(modifiers, p.advance().Lexeme)
	}
	isConst := false
	if p.current().Is(Keyword, "const") {
		isConst = true
		p.advance()
	}

	var typ Node
	needsType := false
	switch p.current().Kind {
	case TypeKeyword, TemplateTypeKeyword:
		needsType = true
	case Identifier:
		if _, ok := p.syms.lookup(p.current().Lexeme); ok && p.peek(1).Kind == Identifier {
			needsType = true
		}
	}
	if needsType {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = t
	}

	var idents []DeclIdentifier
	for {
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		id := DeclIdentifier{Name: name.Lexeme}

		commentBefore := ""
		if p.current().Kind == Comment && p.peek(1).Kind == AssignmentOperator && p.peek(1).Lexeme == "=" {
			commentBefore = p.advance().Lexeme
		}
		if p.current().Kind == AssignmentOperator && p.current().Lexeme == "=" {
			p.advance()
			commentAfter := ""
			if p.current().Kind == Comment {
				commentAfter = p.advance().Lexeme
			}
			init, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			id.Initializer = init
			id.CommentBefore = commentBefore
			id.CommentAfter = commentAfter
		}
		idents = append(idents, id)

		if p.current().Is(Symbol, ",") {
			p.advance()
			continue
		}
		break
	}

	return &VarDecl{
		AccessModifier: accessModifier,
		Modifiers:      modifiers,
		IsConst:        isConst,
		Type:           typ,
		Identifiers:    idents,
	}, nil
}

// ----------------------------------------------------------------------------
// Parameter lists (shared by function declarations and #event directives)

func (p *Parser) parseParamList() ([]Param, error) {
	if _, err := p.consumeLexeme(Symbol, "("); err != nil {
		return nil, err
	}
	var params []Param
	for !p.current().Is(Symbol, ")") {
		isConst := false
		if p.current().Is(Keyword, "const") {
			isConst = true
			p.advance()
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		isPointer := false
		if p.current().Is(Symbol, "&") {
			isPointer = true
			p.advance()
		}
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		var def Node
		if p.current().Kind == AssignmentOperator && p.current().Lexeme == "=" {
			p.advance()
			d, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			def = d
		}
		params = append(params, Param{Type: typ, Name: name.Lexeme, Default: def, IsPointer: isPointer, IsConst: isConst})
		if p.current().Is(Symbol, ",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.consumeLexeme(Symbol, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

// ----------------------------------------------------------------------------
// Function declarations (spec.md §4.2 predicate 2)

func (p *Parser) parseFuncDecl() (Node, error) {
	var accessModifier, modifier string
	if p.current().Kind == AccessModifier {
		accessModifier = p.advance().Lexeme
	}
	if p.current().Kind == Modifier {
		modifier = p.advance().Lexeme
	}

	var returnType Node
	isMain := false
	var name string

	if p.current().Kind == MainKeyword {
		isMain = true
		p.advance()
	} else {
		m := p.mark()
		if t, err := p.parseType(); err == nil {
			if p.current().Kind == Identifier || p.current().Kind == MainKeyword {
				returnType = t
			} else {
				p.reset(m) // the "type" we parsed was actually the constructor name
			}
		} else {
			p.reset(m)
		}
		if p.current().Kind == MainKeyword {
			isMain = true
			p.advance()
		} else {
			idTok, err := p.consume(Identifier)
			if err != nil {
				return nil, err
			}
			name = idTok.Lexeme
		}
	}

	isConstructor := false
	if returnType == nil && !isMain {
		if tag, ok := p.syms.lookup(name); ok && tag == ClassType {
			isConstructor = true
		}
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		AccessModifier: accessModifier,
		Modifier:       modifier,
		ReturnType:     returnType,
		Name:           name,
		IsMain:         isMain,
		IsConstructor:  isConstructor,
		Params:         params,
		Body:           body,
	}, nil
}

// ----------------------------------------------------------------------------
// Declarations that register user types (spec.md §4.2.6)

func (p *Parser) parseEnum() (Node, error) {
	p.advance() // "enum"
	nameTok, err := p.consume(Identifier)
	if err != nil {
		return nil, err
	}
	if !p.syms.register(nameTok.Lexeme, EnumType) {
		return nil, newParseError(nameTok, "enum %q redefined", nameTok.Lexeme)
	}
	if _, err := p.consumeLexeme(Symbol, "{"); err != nil {
		return nil, err
	}
	var values []EnumValue
	for !p.current().Is(Symbol, "}") {
		vname, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		var value *int
		if p.current().Kind == AssignmentOperator && p.current().Lexeme == "=" {
			p.advance()
			// consume(Number) takes any number token, but only a plain decimal
			// integer converts: hex/binary/octal, float, or underscore-separated
			// values are rejected here as an "invalid enum value" ParseError. A
			// unary-minus value fails earlier, in consume, since '-' is not a
			// Number token; spec.md's enum examples are all positive decimals.
			numTok, err := p.consume(Number)
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.Atoi(numTok.Lexeme)
			if convErr != nil {
				return nil, newParseError(numTok, "invalid enum value %q", numTok.Lexeme)
			}
			value = &n
		}
		values = append(values, EnumValue{Name: vname.Lexeme, Value: value})
		if p.current().Is(Symbol, ",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.consumeLexeme(Symbol, "}"); err != nil {
		return nil, err
	}
	if p.current().Is(Symbol, ";") {
		p.advance()
	}
	return &EnumDecl{Name: nameTok.Lexeme, Values: values}, nil
}

// parseStructOrClass parses both struct and class declarations, which
// share a shape. Classes register their name before the body is parsed so
// self-referential method bodies resolve; structs register after, since
// nothing inside a struct body can reference the struct type itself.
func (p *Parser) parseStructOrClass(tag TypeTag) (Node, error) {
	p.advance() // "struct" or "class"
	nameTok, err := p.consume(Identifier)
	if err != nil {
		return nil, err
	}
	if tag == ClassType {
		p.syms.register(nameTok.Lexeme, ClassType)
	}

	var inheritance Node
	if p.current().Is(Symbol, ":") {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		inheritance = t
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if tag == StructType {
		p.syms.register(nameTok.Lexeme, StructType)
	}
	if p.current().Is(Symbol, ";") {
		p.advance()
	}

	if tag == StructType {
		return &StructDecl{Name: nameTok.Lexeme, Inheritance: inheritance, Body: body}, nil
	}
	return &ClassDecl{Name: nameTok.Lexeme, Inheritance: inheritance, Body: body}, nil
}
