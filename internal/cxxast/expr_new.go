package cxxast

import "github.com/kythe-go/cxxindex/internal/srcman"

// These constructors build the concrete Expr variants from outside the
// package, for the same reason typeloc_new.go exists: exprBase's Span
// field is unexported, so without them only this package's own decoder
// could produce a CallExpr/DeclRefExpr at all.

func NewCallExpr(span srcman.Range, callee Expr, args []Expr) *CallExpr {
	return &CallExpr{exprBase: exprBase{Span: span}, Callee: callee, Args: args}
}

func NewDeclRefExpr(span srcman.Range, referenced NamedDecl, isNonTypeTemplateParam bool) *DeclRefExpr {
	return &DeclRefExpr{exprBase: exprBase{Span: span}, Referenced: referenced, IsNonTypeTemplateParam: isNonTypeTemplateParam}
}
