// Package ast defines the compiler's abstract syntax tree as a closed
// set of node types (spec.md §3). Per spec.md §9's design note, later
// stages dispatch on these with a type switch rather than a runtime
// visitor. Go does not check type switches for exhaustiveness: a node
// kind a stage's switch does not handle reaches its default case.
package ast

import "github.com/wincc-lang/nwcc/internal/token"

// TypeKind is the closed set of source-level types (spec.md §3).
type TypeKind int

const (
	TInvalid TypeKind = iota
	TInt
	TFloat
	TBool
	TString
	TVoid
	TUser // a named type the checker doesn't otherwise resolve
)

// Type is a resolved source type. Name carries the declared spelling
// for TUser (and for diagnostics).
type Type struct {
	Kind TypeKind
	Name string
}

func (t Type) String() string {
	switch t.Kind {
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TBool:
		return "bool"
	case TString:
		return "string"
	case TVoid:
		return "void"
	case TUser:
		return t.Name
	default:
		return "<invalid>"
	}
}

func (t Type) IsNumeric() bool { return t.Kind == TInt || t.Kind == TFloat }
func (t Type) Equal(o Type) bool {
	if t.Kind == TUser || o.Kind == TUser {
		return t.Kind == o.Kind && t.Name == o.Name
	}
	return t.Kind == o.Kind
}

var (
	Int    = Type{Kind: TInt, Name: "int"}
	Float  = Type{Kind: TFloat, Name: "float"}
	Bool   = Type{Kind: TBool, Name: "bool"}
	String = Type{Kind: TString, Name: "string"}
	Void   = Type{Kind: TVoid, Name: "void"}
)

// Node is the sealed marker every AST node implements.
type Node interface{ astNode() }

// Stmt is the sealed marker every statement implements. The only
// expression admitted as a statement is a function call, via ExprStmt
// (spec.md's grammar admits only func_call there).
type Stmt interface {
	Node
	astStmt()
}

// Expr is the sealed marker every expression implements, carrying its
// checker-resolved type.
type Expr interface {
	Node
	astExpr()
	ResolvedType() Type
}

// Program is the AST root: an ordered sequence of top-level items,
// each either a function declaration or a bare top-level statement
// (spec.md's grammar: program := (func_decl | stmt)*).
type Program struct {
	Items []Node
}

func (*Program) astNode() {}

// Param is one function parameter.
type Param struct {
	Type Type
	Name string
}

// FuncDecl is a function definition.
type FuncDecl struct {
	ReturnType Type
	Name       string
	Params     []Param
	Body       *Block
	Pos        token.Position
}

func (*FuncDecl) astNode() {}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Stmt
}

func (*Block) astNode() {}
func (*Block) astStmt() {}

// Decl is `type name (= expr)? ;` — a local variable declaration,
// optionally with an initializer.
type Decl struct {
	Name         string
	DeclaredType Type
	Init         Expr // nil if no initializer
	Pos          token.Position
}

func (*Decl) astNode() {}
func (*Decl) astStmt() {}

// Assign is `name = expr ;`.
type Assign struct {
	Name  string
	Value Expr
	Pos   token.Position
}

func (*Assign) astNode() {}
func (*Assign) astStmt() {}

// Return is `return expr? ;`.
type Return struct {
	Value Expr // nil for a bare `return;`
	Pos   token.Position
}

func (*Return) astNode() {}
func (*Return) astStmt() {}

// IfStmt is `if (cond) block (else block)?`.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else *Block // nil if no else clause
	Pos  token.Position
}

func (*IfStmt) astNode() {}
func (*IfStmt) astStmt() {}

// WhileStmt is `while (cond) block`.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Pos  token.Position
}

func (*WhileStmt) astNode() {}
func (*WhileStmt) astStmt() {}

// ForStmt is `for (init; cond; step) block`. Init is a Decl or Assign;
// Step is an Assign (per spec.md's grammar, assign_no_semi).
type ForStmt struct {
	Init Stmt
	Cond Expr
	Step *Assign
	Body *Block
	Pos  token.Position
}

func (*ForStmt) astNode() {}
func (*ForStmt) astStmt() {}

// ExprStmt is `func_call ;` — the grammar admits only calls here.
type ExprStmt struct {
	Call *FuncCall
	Pos  token.Position
}

func (*ExprStmt) astNode() {}
func (*ExprStmt) astStmt() {}

// --- Expressions ---

// Num is an integer or floating-point literal.
type Num struct {
	IsFloat  bool
	IntVal   int64
	FloatVal float64
	Type     Type
	Pos      token.Position
}

func (*Num) astNode()            {}
func (*Num) astExpr()            {}
func (n *Num) ResolvedType() Type { return n.Type }

// String is a string literal. Value is the text between the quotes,
// with escape sequences kept verbatim.
type String struct {
	Value string
	Type  Type
	Pos   token.Position
}

func (*String) astNode()            {}
func (*String) astExpr()            {}
func (n *String) ResolvedType() Type { return n.Type }

// Var is a reference to a previously declared name.
type Var struct {
	Name string
	Type Type
	Pos  token.Position
}

func (*Var) astNode()            {}
func (*Var) astExpr()            {}
func (n *Var) ResolvedType() Type { return n.Type }

// UnaryOp is a prefix `+`, `-`, or `!` expression.
type UnaryOp struct {
	Op      token.Kind
	Operand Expr
	Type    Type
	Pos     token.Position
}

func (*UnaryOp) astNode()            {}
func (*UnaryOp) astExpr()            {}
func (n *UnaryOp) ResolvedType() Type { return n.Type }

// BinOp is a left-associative binary expression.
type BinOp struct {
	Left  Expr
	Op    token.Kind
	Right Expr
	Type  Type
	Pos   token.Position
}

func (*BinOp) astNode()            {}
func (*BinOp) astExpr()            {}
func (n *BinOp) ResolvedType() Type { return n.Type }

// FuncCall is a call to a declared function or a built-in.
type FuncCall struct {
	Name string
	Args []Expr
	Type Type
	Pos  token.Position
}

func (*FuncCall) astNode()            {}
func (*FuncCall) astExpr()            {}
func (n *FuncCall) ResolvedType() Type { return n.Type }

var (
	_ Stmt = (*Block)(nil)
	_ Stmt = (*Decl)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)

	_ Expr = (*Num)(nil)
	_ Expr = (*String)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*BinOp)(nil)
	_ Expr = (*FuncCall)(nil)
)
