package parser

import (
	"github.com/wincc-lang/nwcc/internal/ast"
	"github.com/wincc-lang/nwcc/internal/token"
)

// assignable reports whether a value of type src may be stored into a
// target of type dst: either the types match exactly, or the narrower
// int widens to float (spec.md §4.3 "Assignment/initialization").
func assignable(dst, src ast.Type) bool {
	if dst.Equal(src) {
		return true
	}
	return dst.Kind == ast.TFloat && src.Kind == ast.TInt
}

// arithmeticResult computes the result type of + - * / %, given both
// operands are numeric (spec.md §4.3 "Arithmetic").
func arithmeticResult(l, r ast.Type) ast.Type {
	if l.Kind == ast.TFloat || r.Kind == ast.TFloat {
		return ast.Float
	}
	return ast.Int
}

func currentExprPos(e ast.Expr) token.Position {
	switch n := e.(type) {
	case *ast.Num:
		return n.Pos
	case *ast.String:
		return n.Pos
	case *ast.Var:
		return n.Pos
	case *ast.UnaryOp:
		return n.Pos
	case *ast.BinOp:
		return n.Pos
	case *ast.FuncCall:
		return n.Pos
	default:
		return token.Position{}
	}
}

// expr := logical_or
func (p *Parser) expr() ast.Expr { return p.logicalOr() }

// logical_or := logical_and ('||' logical_and)*
func (p *Parser) logicalOr() ast.Expr {
	left := p.logicalAnd()
	for p.at(token.OR) {
		opPos := p.advance().Pos
		right := p.logicalAnd()
		left = p.logicalBin(left, token.OR, right, opPos)
	}
	return left
}

// logical_and := equality ('&&' equality)*
func (p *Parser) logicalAnd() ast.Expr {
	left := p.equality()
	for p.at(token.AND) {
		opPos := p.advance().Pos
		right := p.equality()
		left = p.logicalBin(left, token.AND, right, opPos)
	}
	return left
}

func (p *Parser) logicalBin(left ast.Expr, op token.Kind, right ast.Expr, pos token.Position) ast.Expr {
	if left.ResolvedType().Kind != ast.TBool || right.ResolvedType().Kind != ast.TBool {
		p.semanticErrorf(pos, "logical operator requires bool operands")
	}
	return &ast.BinOp{Left: left, Op: op, Right: right, Type: ast.Bool, Pos: pos}
}

// equality := relational (('=='|'!=') relational)*
func (p *Parser) equality() ast.Expr {
	left := p.relational()
	for p.at(token.EQ) || p.at(token.NEQ) {
		op := p.advance()
		right := p.relational()
		left = p.comparisonBin(left, op.Kind, right, op.Pos)
	}
	return left
}

// relational := additive (('<'|'>'|'<='|'>=') additive)*
func (p *Parser) relational() ast.Expr {
	left := p.additive()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LE) || p.at(token.GE) {
		op := p.advance()
		right := p.additive()
		left = p.comparisonBin(left, op.Kind, right, op.Pos)
	}
	return left
}

func (p *Parser) comparisonBin(left ast.Expr, op token.Kind, right ast.Expr, pos token.Position) ast.Expr {
	lt, rt := left.ResolvedType(), right.ResolvedType()
	bothNumeric := lt.IsNumeric() && rt.IsNumeric()
	bothString := lt.Kind == ast.TString && rt.Kind == ast.TString
	if !bothNumeric && !bothString {
		p.semanticErrorf(pos, "comparison requires two numeric or two string operands")
	}
	return &ast.BinOp{Left: left, Op: op, Right: right, Type: ast.Bool, Pos: pos}
}

// additive := term (('+'|'-') term)*
func (p *Parser) additive() ast.Expr {
	left := p.term()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right := p.term()
		left = p.arithmeticBin(left, op.Kind, right, op.Pos)
	}
	return left
}

// term := factor (('*'|'/'|'%') factor)*
func (p *Parser) term() ast.Expr {
	left := p.factor()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERC) {
		op := p.advance()
		right := p.factor()
		left = p.arithmeticBin(left, op.Kind, right, op.Pos)
	}
	return left
}

func (p *Parser) arithmeticBin(left ast.Expr, op token.Kind, right ast.Expr, pos token.Position) ast.Expr {
	lt, rt := left.ResolvedType(), right.ResolvedType()
	if op == token.PLUS && lt.Kind == ast.TString && rt.Kind == ast.TString {
		return &ast.BinOp{Left: left, Op: op, Right: right, Type: ast.String, Pos: pos}
	}
	if !lt.IsNumeric() || !rt.IsNumeric() {
		p.semanticErrorf(pos, "arithmetic operator requires two numeric operands (or string + string for '+')")
	}
	return &ast.BinOp{Left: left, Op: op, Right: right, Type: arithmeticResult(lt, rt), Pos: pos}
}

// factor := ('+'|'-'|'!') factor | NUM | STRING
//         | ID ('(' args? ')')? | '(' expr ')'
func (p *Parser) factor() ast.Expr {
	switch {
	case p.at(token.PLUS) || p.at(token.MINUS):
		op := p.advance()
		operand := p.factor()
		if !operand.ResolvedType().IsNumeric() {
			p.semanticErrorf(op.Pos, "unary "+op.Lexeme+" requires a numeric operand")
		}
		return &ast.UnaryOp{Op: op.Kind, Operand: operand, Type: operand.ResolvedType(), Pos: op.Pos}

	case p.at(token.NOT):
		// Open Question 2 (spec.md §9 / SPEC_FULL.md §1): factor is
		// extended to admit prefix '!', matching the ASM generator's
		// UnaryOp(!) lowering.
		op := p.advance()
		operand := p.factor()
		if operand.ResolvedType().Kind != ast.TBool {
			p.semanticErrorf(op.Pos, "unary ! requires a bool operand")
		}
		return &ast.UnaryOp{Op: op.Kind, Operand: operand, Type: ast.Bool, Pos: op.Pos}

	case p.at(token.NUM):
		t := p.advance()
		if f, ok := t.Literal.(float64); ok {
			return &ast.Num{IsFloat: true, FloatVal: f, Type: ast.Float, Pos: t.Pos}
		}
		if i, ok := t.Literal.(int64); ok {
			return &ast.Num{IsFloat: false, IntVal: i, Type: ast.Int, Pos: t.Pos}
		}
		p.syntaxErrorf(t, "malformed numeric literal")
		panic("unreachable")

	case p.at(token.STRING):
		t := p.advance()
		return &ast.String{Value: t.Literal.(string), Type: ast.String, Pos: t.Pos}

	case p.at(token.ID):
		if p.peek(1).Kind == token.LPAREN {
			return p.funcCall()
		}
		t := p.advance()
		declType, ok := p.syms[t.Lexeme]
		if !ok {
			p.semanticErrorf(t.Pos, "undeclared variable '"+t.Lexeme+"'")
		}
		return &ast.Var{Name: t.Lexeme, Type: declType, Pos: t.Pos}

	case p.at(token.LPAREN):
		p.advance()
		e := p.expr()
		p.expect(token.RPAREN, "')'")
		return e

	default:
		p.syntaxErrorf(p.cur(), "expected an expression")
		panic("unreachable")
	}
}

// funcCall := ID '(' args? ')', with spec.md §4.3 "Calls" validation.
func (p *Parser) funcCall() *ast.FuncCall {
	nameTok := p.expect(token.ID, "function name")
	pos := nameTok.Pos
	p.expect(token.LPAREN, "'('")

	var args []ast.Expr
	if !p.at(token.RPAREN) {
		args = append(args, p.expr())
		for p.at(token.COMMA) {
			p.advance()
			args = append(args, p.expr())
		}
	}
	p.expect(token.RPAREN, "')'")

	sig, ok := p.funcs[nameTok.Lexeme]
	if !ok {
		p.semanticErrorf(pos, "call to undeclared function '"+nameTok.Lexeme+"'")
	}

	switch nameTok.Lexeme {
	case "printf":
		if len(args) < 1 {
			p.semanticErrorf(pos, "printf requires at least 1 argument")
		}
		for _, a := range args[1:] {
			if _, isVar := a.(*ast.Var); !isVar {
				p.semanticErrorf(currentExprPos(a), "printf arguments after the format string must be variable references")
			}
		}
	case "scanf":
		if len(args) < 1 {
			p.semanticErrorf(pos, "scanf requires at least 1 argument")
		}
		for _, a := range args {
			if _, isVar := a.(*ast.Var); !isVar {
				p.semanticErrorf(currentExprPos(a), "scanf arguments must be variable references")
			}
		}
	default:
		if !sig.Variadic {
			if len(args) != len(sig.Params) {
				p.semanticErrorf(pos, "wrong number of arguments calling '"+nameTok.Lexeme+"'")
			}
			for i, a := range args {
				if !assignable(sig.Params[i], a.ResolvedType()) {
					p.semanticErrorf(currentExprPos(a), "argument type mismatch calling '"+nameTok.Lexeme+"'")
				}
			}
		}
	}

	return &ast.FuncCall{Name: nameTok.Lexeme, Args: args, Type: sig.ReturnType, Pos: pos}
}
