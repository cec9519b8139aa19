// Package main implements a code generator that creates visitor pattern
// walk functions for the cross-reference AST node set. This eliminates
// hand-maintained boilerplate in the traversal driver while keeping
// zero runtime overhead compared to a hand-written walker.
//
// Usage:
//
//	go run cmd/gen-xrefvisitor/main.go
//
// The tool parses all declaration node definitions in internal/cxxast/*.go
// and generates internal/cxxast/walk_generated.go with a type-safe Walk
// dispatch function.
package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NodeInfo holds information about a Decl node type discovered in
// internal/cxxast: its name, the Visitor method that should receive
// it, and the fields that hold child declarations to recurse into.
type NodeInfo struct {
	Name        string
	VisitMethod string
	ChildFields []string // names of []Decl-like slice fields to recurse into
}

// declBaseEmbedders are struct field type names that mark a struct as
// a Decl node (it embeds one of these directly or transitively).
var declBaseEmbedders = map[string]bool{
	"DeclBase":   true,
	"RecordDecl": true, // ClassTemplateSpecializationDecl embeds RecordDecl
	"VarDecl":    true, // VarTemplatePartialSpecializationDecl embeds VarDecl
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	astDir := "internal/cxxast"
	if len(os.Args) > 1 {
		astDir = os.Args[1]
	}

	nodes, err := parseDeclFiles(astDir)
	if err != nil {
		return fmt.Errorf("parsing cxxast files: %w", err)
	}

	code, err := generateWalkCode(nodes)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	formatted, err := format.Source(code)
	if err != nil {
		fmt.Println(string(code))
		return fmt.Errorf("formatting code: %w", err)
	}

	outputFile := filepath.Join(astDir, "walk_generated.go")
	if err := os.WriteFile(outputFile, formatted, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(formatted))
	fmt.Printf("Processed %d node types\n", len(nodes))
	return nil
}

// parseDeclFiles parses internal/cxxast/*.go (excluding generated and
// test files) and extracts every struct that embeds DeclBase (directly
// or via RecordDecl/VarDecl), along with the fields that hold children
// the traversal should recurse into.
func parseDeclFiles(dir string) ([]*NodeInfo, error) {
	fset := token.NewFileSet()

	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		name := fi.Name()
		return !strings.HasSuffix(name, "_test.go") && !strings.HasSuffix(name, "_generated.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*NodeInfo)

	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			ast.Inspect(file, func(n ast.Node) bool {
				typeSpec, ok := n.(*ast.TypeSpec)
				if !ok {
					return true
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					return true
				}
				if !embedsDeclBase(structType) {
					return true
				}
				name := typeSpec.Name.Name
				nodes[name] = &NodeInfo{
					Name:        name,
					VisitMethod: "Visit" + strings.TrimSuffix(name, "Decl"),
					ChildFields: extractChildFields(structType),
				}
				return true
			})
		}
	}

	var result []*NodeInfo
	for _, n := range nodes {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func embedsDeclBase(structType *ast.StructType) bool {
	for _, field := range structType.Fields.List {
		if len(field.Names) > 0 {
			continue
		}
		if ident, ok := field.Type.(*ast.Ident); ok && declBaseEmbedders[ident.Name] {
			return true
		}
	}
	return false
}

// extractChildFields finds []Decl-shaped slice fields worth recursing
// into (Decls, Fields, Constants — anything whose element type ends in
// "Decl"). Single-pointer fields are not collected.
func extractChildFields(structType *ast.StructType) []string {
	var fields []string
	for _, field := range structType.Fields.List {
		arr, ok := field.Type.(*ast.ArrayType)
		if !ok {
			continue
		}
		elemName := typeToString(arr.Elt)
		if strings.Contains(elemName, "Decl") {
			for _, name := range field.Names {
				fields = append(fields, name.Name)
			}
		}
	}
	return fields
}

func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.ArrayType:
		return "[]" + typeToString(t.Elt)
	default:
		return ""
	}
}

// generateWalkCode emits a Walk function with one type-switch case per
// discovered node, recursing into each node's child-declaration fields.
func generateWalkCode(nodes []*NodeInfo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`// Code generated by cmd/gen-xrefvisitor from internal/cxxast/decl.go; DO NOT EDIT.

package cxxast

// Visitor receives one callback per declaration kind as Walk descends
// the tree. A method returning false stops descent into that node's
// children; Walk never calls a nil Visitor method.
type Visitor interface {
`)
	for _, n := range nodes {
		fmt.Fprintf(&buf, "\t%s(*%s) bool\n", n.VisitMethod, n.Name)
	}
	buf.WriteString(`}

// Walk dispatches on the dynamic type of d and recurses into its
// children when the corresponding Visitor method returns true.
func Walk(v Visitor, d Decl) {
	if d == nil {
		return
	}
	switch n := d.(type) {
`)
	for _, n := range nodes {
		fmt.Fprintf(&buf, "\tcase *%s:\n", n.Name)
		if len(n.ChildFields) == 0 {
			fmt.Fprintf(&buf, "\t\tv.%s(n)\n", n.VisitMethod)
			continue
		}
		fmt.Fprintf(&buf, "\t\tif v.%s(n) {\n", n.VisitMethod)
		for _, field := range n.ChildFields {
			fmt.Fprintf(&buf, "\t\t\tfor _, child := range n.%s {\n", field)
			fmt.Fprintf(&buf, "\t\t\t\tWalk(v, child)\n")
			fmt.Fprintf(&buf, "\t\t\t}\n")
		}
		buf.WriteString("\t\t}\n")
	}
	buf.WriteString("\t}\n}\n")

	return buf.Bytes(), nil
}
