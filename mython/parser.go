package mython

import "fmt"

// Parser performs recursive-descent parsing of a token stream produced by
// the Lexer into a Node tree, following the precedence-climbing grammar:
// or -> and -> not -> comparison -> additive -> multiplicative -> unary ->
// call/field -> primary. Class statements are materialized into *Class
// values as they are parsed, with parent names resolved against a
// parser-local table so a class can reference a parent declared earlier in
// the same program.
type Parser struct {
	lex     *Lexer
	classes map[string]*Class
}

// NewParser wraps a Lexer's token stream for parsing.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex, classes: make(map[string]*Class)}
}

// ParseProgram parses the entire token stream into a single Compound node
// representing the top-level statement list.
func (p *Parser) ParseProgram() (Node, error) {
	var statements []Node
	for !p.cur().Is(tokenEof) {
		for p.cur().Is(tokenNewline) {
			p.advance()
		}
		if p.cur().Is(tokenEof) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return &Compound{Statements: statements}, nil
}

func (p *Parser) cur() Token  { return p.lex.Current() }
func (p *Parser) advance() Token { return p.lex.Advance() }

func (p *Parser) expect(tt TokenType) (Token, error) {
	t := p.cur()
	if !t.Is(tt) {
		return t, &ParseError{Pos: t.Pos, Message: fmt.Sprintf("expected %s, got %s", tt, t.Type)}
	}
	p.advance()
	return t, nil
}

// isChar reports whether the current token is the single-char-punctuation
// token carrying the given literal (e.g. "(", ".", "=").
func (p *Parser) isChar(lit string) bool {
	t := p.cur()
	return t.Type == tokenChar && t.Literal == lit
}

// expectChar consumes the current token if it is the punctuation character
// lit, or raises a ParseError otherwise.
func (p *Parser) expectChar(lit string) (Token, error) {
	t := p.cur()
	if !p.isChar(lit) {
		return t, &ParseError{Pos: t.Pos, Message: fmt.Sprintf("expected '%s', got %s", lit, t.Type)}
	}
	p.advance()
	return t, nil
}

func (p *Parser) parseStatement() (Node, error) {
	switch p.cur().Type {
	case tokenClass:
		return p.parseClassDef()
	case tokenIf:
		return p.parseIfElse()
	case tokenReturn:
		return p.parseReturn()
	case tokenPrint:
		return p.parsePrint()
	default:
		return p.parseAssignmentOrExpr()
	}
}

func (p *Parser) parseSuite() (Node, error) {
	if _, err := p.expectChar(":"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenIndent); err != nil {
		return nil, err
	}
	var statements []Node
	for !p.cur().Is(tokenDedent) && !p.cur().Is(tokenEof) {
		for p.cur().Is(tokenNewline) {
			p.advance()
		}
		if p.cur().Is(tokenDedent) || p.cur().Is(tokenEof) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.expect(tokenDedent); err != nil {
		return nil, err
	}
	return &Compound{Statements: statements}, nil
}

func (p *Parser) parseClassDef() (Node, error) {
	p.advance() // 'class'
	nameTok, err := p.expect(tokenId)
	if err != nil {
		return nil, err
	}
	name := nameTok.Literal

	var parent *Class
	if p.isChar("(") {
		p.advance()
		parentTok, err := p.expect(tokenId)
		if err != nil {
			return nil, err
		}
		parentClass, ok := p.classes[parentTok.Literal]
		if !ok {
			return nil, &ParseError{Pos: parentTok.Pos, Message: "unknown parent class '" + parentTok.Literal + "'"}
		}
		parent = parentClass
		if _, err := p.expectChar(")"); err != nil {
			return nil, err
		}
	}

	cls := &Class{Name: name, Parent: parent}
	p.classes[name] = cls

	if _, err := p.expectChar(":"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenIndent); err != nil {
		return nil, err
	}
	for !p.cur().Is(tokenDedent) && !p.cur().Is(tokenEof) {
		for p.cur().Is(tokenNewline) {
			p.advance()
		}
		if p.cur().Is(tokenDedent) || p.cur().Is(tokenEof) {
			break
		}
		method, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		cls.Methods = append(cls.Methods, method)
	}
	if _, err := p.expect(tokenDedent); err != nil {
		return nil, err
	}

	return &ClassDefinition{Name: name, Class: cls}, nil
}

func (p *Parser) parseMethodDef() (Method, error) {
	if _, err := p.expect(tokenDef); err != nil {
		return Method{}, err
	}
	nameTok, err := p.expect(tokenId)
	if err != nil {
		return Method{}, err
	}
	if _, err := p.expectChar("("); err != nil {
		return Method{}, err
	}
	var params []string
	for !p.isChar(")") {
		pTok, err := p.expect(tokenId)
		if err != nil {
			return Method{}, err
		}
		params = append(params, pTok.Literal)
		if p.isChar(",") {
			p.advance()
		}
	}
	if _, err := p.expectChar(")"); err != nil {
		return Method{}, err
	}
	// Mython method declarations name only the formal parameters, never the
	// receiver (e.g. "def do_add(counter):"); ClassInstance.Call binds "self"
	// on top of these, so every declared parameter here counts toward arity.
	body, err := p.parseSuite()
	if err != nil {
		return Method{}, err
	}
	return Method{Name: nameTok.Literal, Params: params, Body: &MethodBody{Body: body}}, nil
}

func (p *Parser) parseIfElse() (Node, error) {
	p.advance() // 'if'
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	thenBody, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var elseBody Node
	for p.cur().Is(tokenNewline) {
		p.advance()
	}
	if p.cur().Is(tokenElse) {
		p.advance()
		elseBody, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return &IfElse{Condition: cond, Then: thenBody, Else: elseBody}, nil
}

func (p *Parser) parseReturn() (Node, error) {
	p.advance() // 'return'
	if p.cur().Is(tokenNewline) || p.cur().Is(tokenEof) {
		return &Return{Value: &NoneLiteral{}}, nil
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &Return{Value: expr}, nil
}

func (p *Parser) parsePrint() (Node, error) {
	p.advance() // 'print'
	var args []Node
	if !p.cur().Is(tokenNewline) && !p.cur().Is(tokenEof) {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.isChar(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &Print{Args: args}, nil
}

func (p *Parser) expectStatementEnd() error {
	if p.cur().Is(tokenNewline) {
		p.advance()
		return nil
	}
	if p.cur().Is(tokenEof) || p.cur().Is(tokenDedent) {
		return nil
	}
	return &ParseError{Pos: p.cur().Pos, Message: "expected end of statement, got " + string(p.cur().Type)}
}

// parseAssignmentOrExpr parses an expression statement, promoting it to an
// Assignment or FieldAssignment when the expression is followed by '=' and
// the left-hand side is an identifier or field-access form — the same
// lookahead shape as the original implementation's VariableValue-or-lvalue
// distinction.
func (p *Parser) parseAssignmentOrExpr() (Node, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.isChar("=") {
		p.advance()
		rhs, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		switch lhs := expr.(type) {
		case *VariableValue:
			return &Assignment{Name: lhs.Name, Value: rhs}, nil
		case *FieldAccess:
			return &FieldAssignment{Pos: lhs.Pos, Object: lhs.Object, Field: lhs.Field, Value: rhs}, nil
		default:
			return nil, &ParseError{Pos: p.cur().Pos, Message: "invalid assignment target"}
		}
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Is(tokenOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Is(tokenAnd) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Node, error) {
	if p.cur().Is(tokenNot) {
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[TokenType]BinaryOp{
	tokenEq:          OpEq,
	tokenNotEq:       OpNotEq,
	tokenLessOrEq:    OpLessEq,
	tokenGreaterOrEq: OpGreaterEq,
}

func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		if op, ok := comparisonOps[tok.Type]; ok {
			p.advance()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Pos: tok.Pos, Op: op, Left: left, Right: right}
			continue
		}
		if p.isChar("<") || p.isChar(">") {
			p.advance()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			op := OpLess
			if tok.Literal == ">" {
				op = OpGreater
			}
			left = &BinaryExpr{Pos: tok.Pos, Op: op, Left: left, Right: right}
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isChar("+") || p.isChar("-") {
		tok := p.cur()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if tok.Literal == "-" {
			op = OpSub
		}
		left = &BinaryExpr{Pos: tok.Pos, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isChar("*") || p.isChar("/") {
		tok := p.cur()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := OpMul
		if tok.Literal == "/" {
			op = OpDiv
		}
		left = &BinaryExpr{Pos: tok.Pos, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.isChar("-") {
		pos := p.cur().Pos
		p.advance()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Pos: pos, Op: OpSub, Left: &NumberLiteral{Value: 0}, Right: arg}, nil
	}
	return p.parseCallOrField()
}

func (p *Parser) parseCallOrField() (Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		if p.isChar(".") {
			p.advance()
			nameTok, err := p.expect(tokenId)
			if err != nil {
				return nil, err
			}
			if p.isChar("(") {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &MethodCall{Object: expr, Method: nameTok.Literal, Args: args}
				continue
			}
			expr = &FieldAccess{Pos: nameTok.Pos, Object: expr, Field: nameTok.Literal}
			continue
		}
		break
	}
	return expr, nil
}

func (p *Parser) parseArgList() ([]Node, error) {
	if _, err := p.expectChar("("); err != nil {
		return nil, err
	}
	var args []Node
	for !p.isChar(")") {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.isChar(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectChar(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch {
	case tok.Is(tokenNumber):
		p.advance()
		return &NumberLiteral{Value: int32(tok.Num)}, nil
	case tok.Is(tokenString):
		p.advance()
		return &StringLiteral{Value: tok.Literal}, nil
	case tok.Is(tokenTrue):
		p.advance()
		return &BoolLiteral{Value: true}, nil
	case tok.Is(tokenFalse):
		p.advance()
		return &BoolLiteral{Value: false}, nil
	case tok.Is(tokenNone):
		p.advance()
		return &NoneLiteral{}, nil
	case p.isChar("("):
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectChar(")"); err != nil {
			return nil, err
		}
		return expr, nil
	case tok.Is(tokenId):
		if _, isClass := p.classes[tok.Literal]; isClass {
			p.advance()
			if p.isChar("(") {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				return &NewInstance{Pos: tok.Pos, ClassExpr: &ClassRef{Pos: tok.Pos, Name: tok.Literal}, Args: args}, nil
			}
			return &ClassRef{Pos: tok.Pos, Name: tok.Literal}, nil
		}
		if tok.Literal == "str" {
			p.advance()
			if p.isChar("(") {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				if len(args) == 1 {
					return &Stringify{Arg: args[0]}, nil
				}
				return nil, &ParseError{Pos: tok.Pos, Message: "str() takes exactly one argument"}
			}
			return &VariableValue{Pos: tok.Pos, Name: tok.Literal}, nil
		}
		p.advance()
		return &VariableValue{Pos: tok.Pos, Name: tok.Literal}, nil
	default:
		return nil, &ParseError{Pos: tok.Pos, Message: "unexpected token " + string(tok.Type)}
	}
}
