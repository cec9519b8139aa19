package cxxast

import "github.com/kythe-go/cxxindex/internal/srcman"

// Expr is the base interface for the handful of expression kinds the
// traversal driver inspects (spec §4.7: CallExpr, DeclRefExpr). The
// core does not evaluate expressions; it only reads their shape.
type Expr interface {
	Node
}

type exprBase struct {
	Span srcman.Range
}

func (e *exprBase) Pos() srcman.Location { return e.Span.Begin }
func (e *exprBase) End() srcman.Location { return e.Span.End }

// CallExpr represents a call `callee(args…)`. Span covers the whole
// call including the closing parenthesis, as spec §4.7 requires for
// the emitted call-edge range.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) String() string { return "call" }

// DeclRefExpr names one use of a previously declared entity.
type DeclRefExpr struct {
	exprBase
	Referenced       NamedDecl
	IsNonTypeTemplateParam bool // bail on non-type template parameters per spec §4.7
}

func (e *DeclRefExpr) String() string { return "ref:" + e.Referenced.Name() }
