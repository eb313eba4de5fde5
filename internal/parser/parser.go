// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a token stream into an *ast.Program.
package parser

import (
	"fmt"

	"github.com/thistlelang/thistle/internal/ast"
	"github.com/thistlelang/thistle/internal/token"
)

// SyntaxError is a parse-time error tied to the offending token.
type SyntaxError struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[Line: %d] at '%s' %s", e.Line, e.Lexeme, e.Message)
}

// panicError unwinds the current statement/declaration on a parse error.
// This is the same recursive-descent error-recovery idiom the teacher's
// parser uses (record the error, then synchronize to a safe token),
// simplified: Thistle synchronizes at statement boundaries only, since its
// grammar has none of DWScript's nested block-context kinds to track.
type panicError struct{ err *SyntaxError }

// Parser consumes a token slice produced by the lexer.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*SyntaxError
	nextID  int
}

// New creates a Parser directly over an already-scanned token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []*SyntaxError {
	return p.errors
}

// ParseProgram parses the full token stream into a Program. Parsing never
// stops at the first error: each failing declaration is skipped via
// synchronize, and the whole program is parsed so that every syntax error
// in the source is reported in one run.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

func (p *Parser) nextExprID() int {
	p.nextID++
	return p.nextID
}

// --- token stream primitives ---

func (p *Parser) peek() token.Token     { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool         { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(panicError{p.errorAt(p.peek(), message)})
}

func (p *Parser) errorAt(tok token.Token, message string) *SyntaxError {
	err := &SyntaxError{Line: tok.Line, Lexeme: tok.Lexeme, Message: message}
	p.errors = append(p.errors, err)
	return err
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

// synchronize discards tokens until a likely statement boundary, so a
// single syntax error does not cascade into a wall of bogus follow-on
// errors.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- declarations ---

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(panicError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENT, "expected class name")
	p.consume(token.LBRACE, "expected '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RBRACE, "expected '}' after class body")

	return &ast.ClassStmt{Name: name, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENT, "expected "+kind+" name")
	p.consume(token.LPAREN, "expected '(' after "+kind+" name")

	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			params = append(params, p.consume(token.IDENT, "expected parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")
	p.consume(token.LBRACE, "expected '{' before "+kind+" body")
	body := p.block()

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENT, "expected variable name")
	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LBRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		statements = append(statements, p.declaration())
	}
	p.consume(token.RBRACE, "expected '}' after block")
	return statements
}

// forStatement desugars the C-style for loop into an equivalent while loop
// wrapped in its own block, so neither the resolver nor the evaluator need
// a distinct for-loop case.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LPAREN, "expected '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	conditionTok := p.consume(token.SEMICOLON, "expected ';' after loop condition")

	var increment ast.Expr
	if !p.check(token.RPAREN) {
		increment = p.expression()
	}
	p.consume(token.RPAREN, "expected ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExprStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Tok: conditionTok, Id: p.nextExprID(), Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LPAREN, "expected '(' after 'if'")
	condition := p.expression()
	p.consume(token.RPAREN, "expected ')' after if condition")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LPAREN, "expected '(' after 'while'")
	condition := p.expression()
	p.consume(token.RPAREN, "expected ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) expressionStatement() ast.Stmt {
	// A bare `print EXPR` with no call parens is the ambiguous legacy
	// statement form; Thistle resolves the ambiguity in favor of treating
	// print/println/input purely as native function calls (SPEC_FULL.md
	// §4.2), so this rejects the keyword-looking form explicitly instead of
	// silently misparsing it.
	if p.check(token.IDENT) {
		lexeme := p.peek().Lexeme
		if lexeme == "print" || lexeme == "println" {
			next := p.peekNext().Kind
			if next != token.LPAREN && next != token.EQUAL && next != token.SEMICOLON && next != token.DOT {
				panic(panicError{p.errorAt(p.peek(), "use "+lexeme+"(...) as a function call")})
			}
		}
	}

	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExprStmt{Expression: expr}
}

// --- expressions (precedence climbing, lowest to highest) ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Id: p.nextExprID(), Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Id: p.nextExprID(), Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "invalid assignment target")
			return expr
		}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.check(token.OR) {
		op := p.advance()
		right := p.and()
		expr = &ast.Logical{Id: p.nextExprID(), Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.check(token.AND) {
		op := p.advance()
		right := p.equality()
		expr = &ast.Logical{Id: p.nextExprID(), Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Id: p.nextExprID(), Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Id: p.nextExprID(), Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Id: p.nextExprID(), Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Id: p.nextExprID(), Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Id: p.nextExprID(), Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "expected property name after '.'")
			expr = &ast.Get{Id: p.nextExprID(), Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "expected ')' after arguments")
	return &ast.Call{Id: p.nextExprID(), Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Tok: p.previous(), Id: p.nextExprID(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Tok: p.previous(), Id: p.nextExprID(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Tok: p.previous(), Id: p.nextExprID(), Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Tok: p.previous(), Id: p.nextExprID(), Value: p.previous().Literal}
	case p.match(token.THIS):
		return &ast.This{Id: p.nextExprID(), Keyword: p.previous()}
	case p.match(token.IDENT):
		return &ast.Variable{Id: p.nextExprID(), Name: p.previous()}
	case p.match(token.LPAREN):
		tok := p.previous()
		expr := p.expression()
		p.consume(token.RPAREN, "expected ')' after expression")
		return &ast.Grouping{Tok: tok, Id: p.nextExprID(), Expression: expr}
	case p.match(token.SUPER):
		panic(panicError{p.errorAt(p.previous(), "inheritance is not supported; 'super' is reserved for future use")})
	}
	panic(panicError{p.errorAt(p.peek(), "expected expression")})
}
