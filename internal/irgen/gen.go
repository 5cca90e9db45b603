package irgen

import (
	"fmt"
	"strconv"

	"github.com/wincc-lang/nwcc/internal/ast"
	"github.com/wincc-lang/nwcc/internal/token"
)

// Program is the IR generator's immutable output artifact.
type Program struct {
	Instrs  []Instr
	Strings *StringTable
}

// Generator lowers an AST into IR by a post-order walk (spec.md §4.4).
// Temporaries and labels are allocated from monotonic per-program
// counters and never reused.
type Generator struct {
	tempCounter  int
	labelCounter int
	strings      *StringTable
	instrs       []Instr
}

func New() *Generator {
	return &Generator{strings: NewStringTable()}
}

// Generate lowers a fully type-checked program. The AST is assumed
// well-typed (the parser never returns one that isn't), so this stage
// cannot itself fail.
func Generate(prog *ast.Program) *Program {
	g := New()
	for _, item := range prog.Items {
		switch n := item.(type) {
		case *ast.FuncDecl:
			g.genFunc(n)
		case ast.Stmt:
			g.genStmt(n)
		default:
			panic(fmt.Sprintf("irgen: unhandled top-level node %T", item))
		}
	}
	return &Program{Instrs: g.instrs, Strings: g.strings}
}

func (g *Generator) emit(i Instr) { g.instrs = append(g.instrs, i) }

func (g *Generator) newTemp() string {
	t := fmt.Sprintf("t%d", g.tempCounter)
	g.tempCounter++
	return t
}

func (g *Generator) newLabel() string {
	l := fmt.Sprintf("L%d", g.labelCounter)
	g.labelCounter++
	return l
}

func (g *Generator) genFunc(fd *ast.FuncDecl) {
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.Name
	}
	g.emit(FuncBegin{Name: fd.Name, Params: params})
	g.genBlock(fd.Body)
	g.emit(FuncEnd{Name: fd.Name})
}

func (g *Generator) genBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Decl:
		if n.Init != nil {
			operand := g.genExpr(n.Init)
			g.emit(Assign{Dest: n.Name, Src: operand})
		}

	case *ast.Assign:
		operand := g.genExpr(n.Value)
		g.emit(Assign{Dest: n.Name, Src: operand})

	case *ast.Return:
		if n.Value != nil {
			operand := g.genExpr(n.Value)
			g.emit(Return{Value: operand, HasValue: true})
		} else {
			g.emit(Return{})
		}

	case *ast.IfStmt:
		g.genIf(n)

	case *ast.WhileStmt:
		g.genWhile(n)

	case *ast.ForStmt:
		g.genFor(n)

	case *ast.ExprStmt:
		g.genExpr(n.Call)

	case *ast.Block:
		g.genBlock(n)

	default:
		panic(fmt.Sprintf("irgen: unhandled statement %T", s))
	}
}

func (g *Generator) genIf(n *ast.IfStmt) {
	cond := g.genExpr(n.Cond)
	lThen := g.newLabel()
	lEnd := g.newLabel()

	if n.Else != nil {
		lElse := g.newLabel()
		g.emit(IfFalseGoto{Cond: cond, Label: lElse})
		g.emit(Label{Name: lThen})
		g.genBlock(n.Then)
		g.emit(Goto{Label: lEnd})
		g.emit(Label{Name: lElse})
		g.genBlock(n.Else)
		g.emit(Label{Name: lEnd})
		return
	}

	g.emit(IfFalseGoto{Cond: cond, Label: lEnd})
	g.emit(Label{Name: lThen})
	g.genBlock(n.Then)
	g.emit(Label{Name: lEnd})
}

func (g *Generator) genWhile(n *ast.WhileStmt) {
	lStart := g.newLabel()
	lBody := g.newLabel()
	lEnd := g.newLabel()

	g.emit(Label{Name: lStart})
	cond := g.genExpr(n.Cond)
	g.emit(IfFalseGoto{Cond: cond, Label: lEnd})
	g.emit(Label{Name: lBody})
	g.genBlock(n.Body)
	g.emit(Goto{Label: lStart})
	g.emit(Label{Name: lEnd})
}

func (g *Generator) genFor(n *ast.ForStmt) {
	g.genStmt(n.Init)

	lStart := g.newLabel()
	lBody := g.newLabel()
	lEnd := g.newLabel()

	g.emit(Label{Name: lStart})
	cond := g.genExpr(n.Cond)
	g.emit(IfFalseGoto{Cond: cond, Label: lEnd})
	g.emit(Label{Name: lBody})
	g.genBlock(n.Body)
	g.genStmt(n.Step)
	g.emit(Goto{Label: lStart})
	g.emit(Label{Name: lEnd})
}

func (g *Generator) genExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Num:
		if n.IsFloat {
			return strconv.FormatFloat(n.FloatVal, 'g', -1, 64)
		}
		return strconv.FormatInt(n.IntVal, 10)

	case *ast.String:
		return g.strings.Intern(n.Value)

	case *ast.Var:
		return n.Name

	case *ast.UnaryOp:
		operand := g.genExpr(n.Operand)
		dest := g.newTemp()
		g.emit(UnaryOp{Dest: dest, Op: opText(n.Op), Operand: operand})
		return dest

	case *ast.BinOp:
		lhs := g.genExpr(n.Left)
		rhs := g.genExpr(n.Right)
		dest := g.newTemp()
		g.emit(BinOp{Dest: dest, Lhs: lhs, Op: opText(n.Op), Rhs: rhs})
		return dest

	case *ast.FuncCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = g.genExpr(a)
			g.emit(Param{Value: args[i]})
		}
		// A temporary is allocated even when the result is unused
		// (spec.md §4.4): at most one wasted slot per call.
		dest := g.newTemp()
		g.emit(Call{Dest: dest, Func: n.Name, Args: args})
		return dest

	default:
		panic(fmt.Sprintf("irgen: unhandled expression %T", e))
	}
}

func opText(k token.Kind) string {
	switch k {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERC:
		return "%"
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LE:
		return "<="
	case token.GE:
		return ">="
	case token.EQ:
		return "=="
	case token.NEQ:
		return "!="
	case token.NOT:
		return "!"
	case token.AND:
		return "&&"
	case token.OR:
		return "||"
	default:
		panic(fmt.Sprintf("irgen: unmapped operator token %s", k))
	}
}
