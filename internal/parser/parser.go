// Package parser implements spec.md §4.3: a predictive recursive-
// descent parser with inline name and type checking. Two passes run
// over the token stream — prescan (function signatures only) then the
// real parse (full AST, symbol table, type checking).
package parser

import (
	"github.com/wincc-lang/nwcc/internal/ast"
	"github.com/wincc-lang/nwcc/internal/token"
)

// Parser holds all mutable state for one compilation unit's parse.
type Parser struct {
	toks []token.Token
	pos  int

	funcs map[string]FuncSig
	syms  map[string]ast.Type

	curFuncName string
	curRetType  ast.Type
}

// New creates a Parser over an already-adapted token stream.
func New(toks []token.Token) *Parser {
	funcs := builtins()
	return &Parser{toks: toks, funcs: funcs, syms: map[string]ast.Type{}}
}

// Parse runs the prescan then the full recursive-descent parse,
// returning the first syntax or semantic error encountered (spec.md
// §4.3 "Both are fatal: parsing stops at the first error").
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bail)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()

	prescan(p.toks, p.funcs)

	items := []ast.Node{}
	for !p.at(token.EOF) {
		items = append(items, p.topLevelItem())
	}
	return &ast.Program{Items: items}, nil
}

// --- token-stream helpers ---

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[idx]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) syntaxErrorf(t token.Token, msg string) {
	panic(bail{&SyntaxError{Pos: t.Pos, Kind: t.Kind, Lexeme: t.Lexeme, Message: msg}})
}

func (p *Parser) semanticErrorf(pos token.Position, msg string) {
	panic(bail{&SemanticError{Pos: pos, Message: msg}})
}

// expect consumes the current token if it matches k, else raises a
// syntax error citing the offending token (spec.md §7.2).
func (p *Parser) expect(k token.Kind, what string) token.Token {
	if !p.at(k) {
		p.syntaxErrorf(p.cur(), "expected "+what)
	}
	return p.advance()
}

// --- type production: type := 'int' | ID ---

func (p *Parser) isTypeStart() bool {
	return p.at(token.INT) || p.at(token.ID)
}

func (p *Parser) parseType() ast.Type {
	if p.at(token.INT) {
		p.advance()
		return ast.Int
	}
	t := p.expect(token.ID, "type name")
	switch t.Lexeme {
	case "bool":
		return ast.Bool
	case "float":
		return ast.Float
	case "string":
		return ast.String
	case "void":
		return ast.Void
	default:
		return ast.Type{Kind: ast.TUser, Name: t.Lexeme}
	}
}

// --- top level: program := (func_decl | stmt)* ---

func (p *Parser) isFuncDeclStart() bool {
	if p.at(token.INT) && p.peek(1).Kind == token.ID && p.peek(2).Kind == token.LPAREN {
		return true
	}
	if p.at(token.ID) && p.peek(1).Kind == token.ID && p.peek(2).Kind == token.LPAREN {
		return true
	}
	return false
}

func (p *Parser) topLevelItem() ast.Node {
	if p.isFuncDeclStart() {
		return p.funcDecl()
	}
	return p.stmt()
}

// func_decl := type ID '(' params? ')' block
func (p *Parser) funcDecl() *ast.FuncDecl {
	pos := p.cur().Pos
	retType := p.parseType()
	name := p.expect(token.ID, "function name").Lexeme

	p.expect(token.LPAREN, "'('")
	var params []ast.Param
	if !p.at(token.RPAREN) {
		params = append(params, p.param())
		for p.at(token.COMMA) {
			p.advance()
			params = append(params, p.param())
		}
	}
	p.expect(token.RPAREN, "')'")

	outerSyms := p.syms
	outerFunc, outerRet := p.curFuncName, p.curRetType
	p.syms = map[string]ast.Type{}
	p.curFuncName, p.curRetType = name, retType

	for _, param := range params {
		if _, dup := p.syms[param.Name]; dup {
			p.semanticErrorf(pos, "redeclaration of parameter '"+param.Name+"'")
		}
		p.syms[param.Name] = param.Type
	}

	body := p.block()

	p.syms = outerSyms
	p.curFuncName, p.curRetType = outerFunc, outerRet

	return &ast.FuncDecl{ReturnType: retType, Name: name, Params: params, Body: body, Pos: pos}
}

// param := type ID
func (p *Parser) param() ast.Param {
	t := p.parseType()
	name := p.expect(token.ID, "parameter name").Lexeme
	return ast.Param{Type: t, Name: name}
}

// block := '{' stmt* '}'
func (p *Parser) block() *ast.Block {
	p.expect(token.LBRACE, "'{'")
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.stmt())
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Block{Stmts: stmts}
}

// stmt := if_stmt | while_stmt | for_stmt | return_stmt | block
//       | decl | decl_with_type | assign | expr_stmt
func (p *Parser) stmt() ast.Stmt {
	switch {
	case p.at(token.IF):
		return p.ifStmt()
	case p.at(token.WHILE):
		return p.whileStmt()
	case p.at(token.FOR):
		return p.forStmt()
	case p.at(token.RETURN):
		return p.returnStmt()
	case p.at(token.LBRACE):
		return p.block()
	case p.at(token.INT):
		return p.declStmt()
	case p.at(token.ID):
		return p.idLedStmt(true)
	default:
		p.syntaxErrorf(p.cur(), "unexpected token starting a statement")
		panic("unreachable")
	}
}

// idLedStmt implements the spec.md §4.3 "Statement discrimination"
// rule: when the current token is ID, the next token decides between
// assignment, a named-type declaration, and an expression statement.
// consumeSemi controls whether the trailing ';' is consumed here
// (false is used by for_init, which owns its own ';').
func (p *Parser) idLedStmt(consumeSemi bool) ast.Stmt {
	switch p.peek(1).Kind {
	case token.ASSIGN:
		return p.assignStmt(consumeSemi)
	case token.ID:
		return p.declWithTypeStmt(consumeSemi)
	case token.LPAREN:
		return p.exprStmt()
	default:
		p.syntaxErrorf(p.peek(1), "expected '=', a variable name, or '(' after identifier")
		panic("unreachable")
	}
}

// decl := 'int' ID ('=' expr)? ';'
func (p *Parser) declStmt() ast.Stmt {
	return p.declCommon(ast.Int, true)
}

// decl_with_type := ID ID ('=' expr)? ';'
func (p *Parser) declWithTypeStmt(consumeSemi bool) ast.Stmt {
	declType := p.parseType()
	return p.declCommon(declType, consumeSemi)
}

func (p *Parser) declCommon(declType ast.Type, consumeSemi bool) *ast.Decl {
	pos := p.cur().Pos
	if declType.Kind == ast.TInt {
		p.advance() // consume 'int' (declWithType already consumed its type token)
	}
	name := p.expect(token.ID, "variable name").Lexeme

	if _, dup := p.syms[name]; dup {
		p.semanticErrorf(pos, "redeclaration of '"+name+"'")
	}

	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.expr()
		if !assignable(declType, init.ResolvedType()) {
			p.semanticErrorf(pos, "cannot initialize '"+name+"' of type "+declType.String()+" with "+init.ResolvedType().String())
		}
	}

	p.syms[name] = declType

	if consumeSemi {
		p.expect(token.SEMI, "';'")
	}
	return &ast.Decl{Name: name, DeclaredType: declType, Init: init, Pos: pos}
}

// assign := ID '=' expr ';'
func (p *Parser) assignStmt(consumeSemi bool) *ast.Assign {
	pos := p.cur().Pos
	name := p.advance().Lexeme
	declType, ok := p.syms[name]
	if !ok {
		p.semanticErrorf(pos, "undeclared variable '"+name+"'")
	}
	p.expect(token.ASSIGN, "'='")
	value := p.expr()
	if !assignable(declType, value.ResolvedType()) {
		p.semanticErrorf(pos, "cannot assign "+value.ResolvedType().String()+" to '"+name+"' of type "+declType.String())
	}
	if consumeSemi {
		p.expect(token.SEMI, "';'")
	}
	return &ast.Assign{Name: name, Value: value, Pos: pos}
}

// return_stmt := 'return' expr? ';'
func (p *Parser) returnStmt() *ast.Return {
	pos := p.expect(token.RETURN, "'return'").Pos
	var value ast.Expr
	if !p.at(token.SEMI) {
		value = p.expr()
	}
	p.expect(token.SEMI, "';'")

	if value == nil {
		if p.curRetType.Kind != ast.TVoid {
			p.semanticErrorf(pos, "function '"+p.curFuncName+"' must return a value of type "+p.curRetType.String())
		}
	} else {
		if p.curRetType.Kind == ast.TVoid {
			p.semanticErrorf(pos, "function '"+p.curFuncName+"' declared void cannot return a value")
		} else if !assignable(p.curRetType, value.ResolvedType()) {
			p.semanticErrorf(pos, "function '"+p.curFuncName+"' returns "+value.ResolvedType().String()+", expected "+p.curRetType.String())
		}
	}
	return &ast.Return{Value: value, Pos: pos}
}

// if_stmt := 'if' '(' expr ')' block ('else' block)?
func (p *Parser) ifStmt() *ast.IfStmt {
	pos := p.expect(token.IF, "'if'").Pos
	p.expect(token.LPAREN, "'('")
	cond := p.expr()
	p.requireConditionType(cond)
	p.expect(token.RPAREN, "')'")
	then := p.block()
	var elseBlk *ast.Block
	if p.at(token.ELSE) {
		p.advance()
		elseBlk = p.block()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseBlk, Pos: pos}
}

// while_stmt := 'while' '(' expr ')' block
func (p *Parser) whileStmt() *ast.WhileStmt {
	pos := p.expect(token.WHILE, "'while'").Pos
	p.expect(token.LPAREN, "'('")
	cond := p.expr()
	p.requireConditionType(cond)
	p.expect(token.RPAREN, "')'")
	body := p.block()
	return &ast.WhileStmt{Cond: cond, Body: body, Pos: pos}
}

// for_stmt := 'for' '(' for_init ';' expr ';' assign_no_semi ')' block
func (p *Parser) forStmt() *ast.ForStmt {
	pos := p.expect(token.FOR, "'for'").Pos
	p.expect(token.LPAREN, "'('")
	init := p.forInit()
	p.expect(token.SEMI, "';'")
	cond := p.expr()
	p.requireConditionType(cond)
	p.expect(token.SEMI, "';'")
	step := p.assignStmt(false)
	p.expect(token.RPAREN, "')'")
	body := p.block()
	return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: body, Pos: pos}
}

// for_init := decl_no_semi | decl_with_type_no_semi | assign_no_semi
func (p *Parser) forInit() ast.Stmt {
	switch {
	case p.at(token.INT):
		return p.declCommon(ast.Int, false)
	case p.at(token.ID) && p.peek(1).Kind == token.ID:
		return p.declWithTypeStmt(false)
	case p.at(token.ID) && p.peek(1).Kind == token.ASSIGN:
		return p.assignStmt(false)
	default:
		p.syntaxErrorf(p.cur(), "expected a declaration or assignment in for-init")
		panic("unreachable")
	}
}

// expr_stmt := func_call ';'
func (p *Parser) exprStmt() *ast.ExprStmt {
	pos := p.cur().Pos
	call := p.funcCall()
	p.expect(token.SEMI, "';'")
	return &ast.ExprStmt{Call: call, Pos: pos}
}

func (p *Parser) requireConditionType(e ast.Expr) {
	t := e.ResolvedType()
	if t.Kind != ast.TBool && t.Kind != ast.TInt && t.Kind != ast.TFloat {
		p.semanticErrorf(currentExprPos(e), "condition must be bool, int, or float, got "+t.String())
	}
}
