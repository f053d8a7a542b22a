package ctl

// ----------------------------------------------------------------------------
// Parser
//
// Hand-written recursive descent over the token stream from lexer.go,
// grounded on the original linter's services/parser_.py: a cursor with
// whitespace-transparent lookahead, a handful of lookahead predicates that
// disambiguate the identifier-led statement forms, and a symbol table that
// tracks user-defined enum/struct/class names as they are declared.

type Parser struct {
	tokens []Token
	pos    int
	syms   *symbolTableRegistry
	// pendingAngleClose absorbs the second '>' of a '>>' token split across
	// two nested template-type closes (vector<vector<int>>): the first
	// consumeAngleClose call consumes the whole '>>' token and sets this;
	// the next call clears it instead of requiring another token.
	pendingAngleClose bool
}

// Parse runs the full pipeline stage: token stream in, Program out.
func Parse(tokens []Token) (*Program, error) {
	p := &Parser{tokens: tokens, syms: newSymbolTableRegistry()}
	return p.parseProgram()
}

func isTransparent(tok Token) bool {
	return tok.Kind == Whitespace || tok.Kind == Newline
}

// skip returns the index of the first non-transparent token at or after idx.
func (p *Parser) skip(idx int) int {
	for idx < len(p.tokens)-1 && isTransparent(p.tokens[idx]) {
		idx++
	}
	return idx
}

// current returns the next semantically meaningful token without consuming
// leading whitespace/newlines from the cursor.
func (p *Parser) current() Token {
	return p.tokens[p.skip(p.pos)]
}

// peek returns the n-th non-whitespace token after the cursor (peek(0) ==
// current()) without moving the cursor.
func (p *Parser) peek(n int) Token {
	idx := p.skip(p.pos)
	for i := 0; i < n; i++ {
		idx = p.skip(idx + 1)
	}
	return p.tokens[idx]
}

// advance consumes the current token (and any whitespace preceding it) and
// returns it.
func (p *Parser) advance() Token {
	idx := p.skip(p.pos)
	tok := p.tokens[idx]
	p.pos = idx + 1
	return tok
}

func (p *Parser) atEOF() bool { return p.current().Kind == EOF }

// consume requires the current token to have the given kind, else returns a
// *ParseError.
func (p *Parser) consume(kind Kind) (Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return Token{}, newParseError(tok, "expected token of kind %s", kind)
	}
	return p.advance(), nil
}

// consumeLexeme requires both kind and lexeme to match.
func (p *Parser) consumeLexeme(kind Kind, lexeme string) (Token, error) {
	tok := p.current()
	if tok.Kind != kind || tok.Lexeme != lexeme {
		return Token{}, newParseError(tok, "expected %s %q", kind, lexeme)
	}
	return p.advance(), nil
}

// consumeLeadingBlank consumes every transparent token starting at the
// cursor and reports whether a NEWLINE (blank-line marker) token was among
// them. Called once between statements so that at most one BlankLineStmt
// is emitted per gap, matching the lexer's own collapsing of runs of blank
// lines into a single NEWLINE token.
func (p *Parser) consumeLeadingBlank() bool {
	found := false
	idx := p.pos
	for idx < len(p.tokens)-1 && isTransparent(p.tokens[idx]) {
		if p.tokens[idx].Kind == Newline {
			found = true
		}
		idx++
	}
	p.pos = idx
	return found
}

// mark/reset implement backtracking for the lookahead predicates: save the
// cursor, try a speculative parse, and roll back on failure.
func (p *Parser) mark() int         { return p.pos }
func (p *Parser) reset(mark int)    { p.pos = mark }

// ----------------------------------------------------------------------------
// Program / block

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for {
		if p.consumeLeadingBlank() {
			prog.Statements = append(prog.Statements, &BlankLineStmt{})
		}
		if p.atEOF() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	if _, err := p.consumeLexeme(Symbol, "{"); err != nil {
		return nil, err
	}
	block := &Block{}
	for {
		if p.consumeLeadingBlank() {
			block.Statements = append(block.Statements, &BlankLineStmt{})
		}
		if p.current().Is(Symbol, "}") {
			p.advance()
			break
		}
		if p.atEOF() {
			return nil, newParseError(p.current(), "unexpected end of file, expected }")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

// blockOrInline parses either a brace block or a single statement,
// returning exactly one of (*Block, Node) non-nil.
func (p *Parser) blockOrInline() (*Block, Node, error) {
	if p.current().Is(Symbol, "{") {
		b, err := p.parseBlock()
		return b, nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, nil, err
	}
	return nil, stmt, nil
}

// ----------------------------------------------------------------------------
// Statement dispatch (spec.md §4.2, first predicate that matches wins)

func (p *Parser) parseStatement() (Node, error) {
	tok := p.current()

	if tok.Kind == Divider {
		p.advance()
		return &DividerStmt{Lexeme: tok.Lexeme}, nil
	}
	if tok.Kind == Comment {
		p.advance()
		return &CommentStmt{Text: tok.Lexeme}, nil
	}
	if tok.Kind == MultiLineComment {
		p.advance()
		return &MultiLineCommentStmt{Lines: splitLines(tok.Lexeme)}, nil
	}
	if tok.Is(Symbol, "{") {
		return p.parseBlock()
	}
	if tok.Is(Symbol, "#") {
		return p.parseDirective()
	}
	if tok.Kind == If {
		return p.parseIf()
	}
	if tok.Kind == Keyword {
		switch tok.Lexeme {
		case "return":
			return p.parseReturn()
		case "break":
			p.advance()
			if _, err := p.consumeLexeme(Symbol, ";"); err != nil {
				return nil, err
			}
			return &BreakStmt{}, nil
		case "continue":
			p.advance()
			if _, err := p.consumeLexeme(Symbol, ";"); err != nil {
				return nil, err
			}
			return &ContinueStmt{}, nil
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "for":
			return p.parseFor()
		case "enum":
			return p.parseEnum()
		case "switch":
			return p.parseSwitch()
		case "struct":
			return p.parseStructOrClass(StructType)
		case "class":
			return p.parseStructOrClass(ClassType)
		case "try":
			return p.parseTry()
		}
	}

	if p.looksLikeAssignment() {
		return p.parseAssignmentOrIncDec()
	}
	if p.looksLikeFunctionDecl() {
		return p.parseFuncDecl()
	}
	if p.looksLikeVarDecl() {
		return p.parseVarDecl()
	}
	if p.looksLikeCallStatement() {
		return p.parseCallStatement()
	}

	return nil, newParseError(tok, "unexpected token, no statement form matched")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func (p *Parser) parseDirective() (Node, error) {
	if _, err := p.consumeLexeme(Symbol, "#"); err != nil {
		return nil, err
	}
	kw := p.current()
	switch kw.Lexeme {
	case "uses":
		p.advance()
		lit, err := p.consume(StringLiteral)
		if err != nil {
			return nil, err
		}
		return &LibraryUseStmt{Name: trimQuotes(lit.Lexeme)}, nil
	case "property":
		p.advance()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		return &PropertyStmt{Type: typ, Name: name.Lexeme}, nil
	case "event":
		p.advance()
		name, err := p.consume(Identifier)
		if err != nil {
			return nil, err
		}
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		return &EventStmt{Name: name.Lexeme, Params: params}, nil
	default:
		return nil, newParseError(kw, "unknown directive #%s", kw.Lexeme)
	}
}

func trimQuotes(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
