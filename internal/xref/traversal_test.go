package xref

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/diag"
	"github.com/kythe-go/cxxindex/internal/srcman"
	"github.com/kythe-go/cxxindex/internal/xref/sink"
)

// graph is the decoded shape of sink.JSON's MarshalJSON output, used so
// tests can search nodes/edges by field without depending on sink's
// unexported slices.
type graph struct {
	Nodes []sink.Node `json:"nodes"`
	Edges []sink.Edge `json:"edges"`
}

func buildSource(t *testing.T, src string) (*srcman.Manager, srcman.FileID, srcman.Lexer) {
	t.Helper()
	sm := srcman.NewManager()
	fid := sm.AddFile("t.cc", []byte(src))
	return sm, fid, srcman.NewSimpleLexer(sm)
}

func fileLoc(fid srcman.FileID, off int32) srcman.Location {
	return srcman.Location{File: fid, Offset: off, Valid: true}
}

func fileSpan(fid srcman.FileID, begin, end int32) srcman.Range {
	return srcman.Range{Begin: fileLoc(fid, begin), End: fileLoc(fid, end)}
}

// indexFixture drives a Traversal over tu and returns the decoded
// graph emitted to a sink.JSON observer.
func indexFixture(t *testing.T, sm *srcman.Manager, lexer srcman.Lexer, tu *cxxast.TranslationUnitDecl) graph {
	t.Helper()
	out := sink.NewJSON(sm)
	tr := NewTraversal(out, sm, lexer, diag.NewPolicy(), nil)
	if err := tr.Index(tu); err != nil {
		t.Fatalf("Index: %v", err)
	}
	raw, err := out.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var g graph
	if err := json.Unmarshal(raw, &g); err != nil {
		t.Fatalf("unmarshal graph: %v", err)
	}
	return g
}

func findNode(g graph, id string) (sink.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return sink.Node{}, false
}

func findEdge(g graph, source, kind string) (sink.Edge, bool) {
	for _, e := range g.Edges {
		if e.Source == source && e.Kind == kind {
			return e, true
		}
	}
	return sink.Edge{}, false
}

func findEdgeTo(g graph, kind, target string) (sink.Edge, bool) {
	for _, e := range g.Edges {
		if e.Kind == kind && e.Target == target {
			return e, true
		}
	}
	return sink.Edge{}, false
}

// Scenario 1 (spec.md §8): `int x;` yields one variable node named
// "x#n", Definition completeness, and a type edge to the builtin int.
func TestTraversalScenario1_PlainVariable(t *testing.T) {
	sm, fid, lexer := buildSource(t, "int x;")
	tu := &cxxast.TranslationUnitDecl{}
	x := &cxxast.VarDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 0, 6), Parent: tu},
		Ident:    "x",
		NameLocV: fileLoc(fid, 4),
		Type:     cxxast.NewBuiltinTypeLoc(fileSpan(fid, 0, 3), cxxast.NewType("int"), 0, "int"),
		IsDefn:   true,
	}
	tu.Decls = []cxxast.Decl{x}

	g := indexFixture(t, sm, lexer, tu)

	id := BuildNodeIdForDecl(Build(tu), sm, x).Printable()
	node, ok := findNode(g, id)
	if !ok || node.Kind != "variable" || node.Detail != "definition" {
		t.Fatalf("variable node missing or wrong: %+v (ok=%v)", node, ok)
	}
	named, ok := findEdge(g, id, "/named")
	if !ok || !strings.HasSuffix(named.Target, "x#n") {
		t.Fatalf("expected /named edge ending in \"x#n\", got %+v (ok=%v)", named, ok)
	}
	typeEdge, ok := findEdge(g, id, "/type")
	if !ok || typeEdge.Target != "builtin:int" {
		t.Fatalf("expected /type edge to builtin:int, got %+v (ok=%v)", typeEdge, ok)
	}
}

// Scenario 2: `struct S; struct S {};` in one file: the definition
// completes the forward declaration, UniquelyCompletes, and the
// completion range is the definition's own name range.
func TestTraversalScenario2_StructCompletion(t *testing.T) {
	sm, fid, lexer := buildSource(t, "struct S; struct S {};")
	tu := &cxxast.TranslationUnitDecl{}
	fwd := &cxxast.RecordDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 0, 9), Parent: tu},
		Ident:    "S",
		NameLocV: fileLoc(fid, 7),
		RKind:    cxxast.RecordStruct,
		IsDefn:   false,
	}
	defn := &cxxast.RecordDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 10, 22), Parent: tu},
		Ident:    "S",
		NameLocV: fileLoc(fid, 17),
		RKind:    cxxast.RecordStruct,
		IsDefn:   true,
	}
	chain := []cxxast.Decl{fwd, defn}
	fwd.Redecl = chain
	defn.Redecl = chain
	tu.Decls = chain

	g := indexFixture(t, sm, lexer, tu)

	idx := Build(tu)
	defnId := BuildNodeIdForDecl(idx, sm, defn).Printable()
	fwdId := BuildNodeIdForDecl(idx, sm, fwd).Printable()

	recNode, ok := findNode(g, defnId)
	if !ok || recNode.Kind != "record" || recNode.Detail != "struct/definition" {
		t.Fatalf("record node missing or wrong: %+v (ok=%v)", recNode, ok)
	}
	// RecordCompletionRange's id argument (the forward declaration's
	// NodeId) becomes the edge's Source; the range plus an optional
	// "/unique" suffix is rendered into Target.
	completes, ok := findEdge(g, fwdId, "/completes")
	if !ok {
		t.Fatalf("expected a /completes edge from the forward declaration")
	}
	if !contains(completes.Target, "/unique") {
		t.Fatalf("expected UniquelyCompletes (same file), got target %q", completes.Target)
	}
}

// Scenario 3: `template<class T> class C { T m; }; C<int> c;` — an
// abstraction node with one abs-var parameter, a spec edge from the
// instantiation to tapp(C-template, int), and c's type edge to that
// tapp id.
func TestTraversalScenario3_ClassTemplateInstantiation(t *testing.T) {
	sm, fid, lexer := buildSource(t, "template<class T> class C { T m; }; C<int> c;")
	tu := &cxxast.TranslationUnitDecl{}

	classTemplate := &cxxast.ClassTemplateDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 0, 35), Parent: tu},
		Ident:    "C",
		NameLocV: fileLoc(fid, 24),
	}
	tParam := &cxxast.TemplateTypeParmDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 15, 16), Parent: classTemplate},
		Ident:    "T",
		NameLocV: fileLoc(fid, 15),
		Depth:    0,
		Index:    0,
	}
	classTemplate.Params = &cxxast.TemplateParameterList{Params: []cxxast.Decl{tParam}}

	recordC := &cxxast.RecordDecl{
		DeclBase:          cxxast.DeclBase{Span: fileSpan(fid, 17, 35), Parent: classTemplate},
		Ident:             "C",
		NameLocV:          fileLoc(fid, 24),
		RKind:             cxxast.RecordClass,
		IsDefn:            true,
		DescribedTemplate: classTemplate,
	}
	classTemplate.TemplatedRec = recordC

	field := &cxxast.VarDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 28, 31), Parent: recordC},
		Ident:    "m",
		NameLocV: fileLoc(fid, 30),
		Type:     cxxast.NewTemplateTypeParmTypeLoc(fileSpan(fid, 28, 29), cxxast.NewType("T"), 0, tParam, 0, 0),
	}
	recordC.Fields = []*cxxast.VarDecl{field}

	intType := cxxast.NewBuiltinTypeLoc(fileSpan(fid, 38, 41), cxxast.NewType("int"), 0, "int")
	specRecord := cxxast.RecordDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 36, 41), Parent: tu},
		Ident:    "C",
		NameLocV: fileLoc(fid, 36),
		RKind:    cxxast.RecordClass,
		IsDefn:   false,
	}
	spec := &cxxast.ClassTemplateSpecializationDecl{
		RecordDecl: specRecord,
		Template:   classTemplate,
		Args:       []cxxast.TemplateArgument{{Kind: cxxast.TArgType, Type: intType}},
		IsImplicit: true,
	}
	spec.RecordDecl.SpecializationOf = spec

	c := &cxxast.VarDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 43, 45), Parent: tu},
		Ident:    "c",
		NameLocV: fileLoc(fid, 43),
		Type:     cxxast.NewRecordTypeLoc(fileSpan(fid, 36, 41), cxxast.NewType("C<int>"), 0, &spec.RecordDecl),
		IsDefn:   true,
	}

	tu.Decls = []cxxast.Decl{classTemplate, spec, c}

	g := indexFixture(t, sm, lexer, tu)

	idx := Build(tu)
	outerId := BuildNodeIdForDecl(idx, sm, recordC)
	innerId := BuildNodeIdForDeclIndex(idx, sm, recordC, 0)

	if _, ok := findNode(g, outerId.Printable()); !ok {
		t.Fatalf("expected abs node %s", outerId.Printable())
	}
	if absNode, _ := findNode(g, outerId.Printable()); absNode.Kind != "abs" {
		t.Fatalf("expected outer record-template node to be kind abs, got %q", absNode.Kind)
	}
	paramEdge, ok := findEdge(g, outerId.Printable(), "/param")
	if !ok {
		t.Fatalf("expected one /param edge on the abstraction node")
	}
	absVar, ok := findNode(g, paramEdge.Target)
	if !ok || absVar.Kind != "absvar" {
		t.Fatalf("expected /param target to be an absvar node, got %+v (ok=%v)", absVar, ok)
	}
	if _, ok := findNode(g, innerId.Printable()); !ok {
		t.Fatalf("expected templated record body node %s", innerId.Printable())
	}

	specId := BuildNodeIdForDecl(idx, sm, &spec.RecordDecl)
	specEdge, ok := findEdge(g, specId.Printable(), "/specializes")
	if !ok {
		t.Fatalf("expected a /specializes edge from the instantiation")
	}
	if !contains(specEdge.Target, "tapp(") {
		t.Fatalf("expected /specializes target to be a tapp node, got %q", specEdge.Target)
	}

	cId := BuildNodeIdForDecl(idx, sm, c)
	cType, ok := findEdge(g, cId.Printable(), "/type")
	if !ok || cType.Target != specEdge.Target {
		t.Fatalf("expected c's /type edge to target the same tapp(%s), got %+v (ok=%v)", specEdge.Target, cType, ok)
	}
}

// Scenario 4: `typedef const int* CIP; CIP p;` — an alias node for CIP
// whose aliased id is tapp(ptr, tapp(const, int)), and p's type edge
// reaches that alias id.
func TestTraversalScenario4_TypedefAlias(t *testing.T) {
	sm, fid, lexer := buildSource(t, "typedef const int* CIP; CIP p;")
	tu := &cxxast.TranslationUnitDecl{}

	intTy := cxxast.NewBuiltinTypeLoc(fileSpan(fid, 14, 17), cxxast.NewType("int"), cxxast.CVRConst, "int")
	constInt := cxxast.NewQualifiedTypeLoc(fileSpan(fid, 8, 17), cxxast.NewType("int"), cxxast.CVRConst, intTy, cxxast.CVRConst)
	ptrType := cxxast.NewPointerTypeLoc(fileSpan(fid, 8, 18), cxxast.NewType("const int*"), 0, constInt)

	cip := &cxxast.TypedefNameDecl{
		DeclBase:   cxxast.DeclBase{Span: fileSpan(fid, 0, 23), Parent: tu},
		Ident:      "CIP",
		NameLocV:   fileLoc(fid, 19),
		Underlying: ptrType,
	}
	p := &cxxast.VarDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 24, 30), Parent: tu},
		Ident:    "p",
		NameLocV: fileLoc(fid, 28),
		Type:     cxxast.NewTypedefTypeLoc(fileSpan(fid, 24, 27), cxxast.NewType("const int*"), 0, cip),
		IsDefn:   true,
	}
	tu.Decls = []cxxast.Decl{cip, p}

	g := indexFixture(t, sm, lexer, tu)

	idx := Build(tu)
	cipId := BuildNodeIdForDecl(idx, sm, cip)
	aliasEdge, ok := findEdge(g, cipId.Printable(), "/aliases")
	if !ok {
		t.Fatalf("expected /aliases edge from CIP's own decl id")
	}
	if !contains(aliasEdge.Target, "tapp(builtin:ptr") {
		t.Fatalf("expected CIP's aliased target to be tapp(ptr, ...), got %q", aliasEdge.Target)
	}
	if !contains(aliasEdge.Target, "builtin:const") {
		t.Fatalf("expected a nested const tapp in CIP's aliased target, got %q", aliasEdge.Target)
	}

	pId := BuildNodeIdForDecl(idx, sm, p)
	var aliasTarget string
	for _, e := range g.Edges {
		if e.Source == pId.Printable() && e.Kind == "/type" && contains(e.Target, "alias:") {
			aliasTarget = e.Target
		}
	}
	if aliasTarget == "" {
		t.Fatalf("expected p's /type edges to include CIP's alias id")
	}
}

// Scenario 5: `void f(); void f() { f(); }` — one callable node for f
// emitted on the first declaration, a call edge from the definition to
// that callable spanning "f()", and a unique completion edge.
func TestTraversalScenario5_FunctionCallAndCompletion(t *testing.T) {
	sm, fid, lexer := buildSource(t, "void f(); void f() { f(); }")
	tu := &cxxast.TranslationUnitDecl{}

	fwd := &cxxast.FunctionDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 0, 9), Parent: tu},
		Ident:    "f",
		NameLocV: fileLoc(fid, 5),
		IsDefn:   false,
	}
	callee := cxxast.NewDeclRefExpr(fileSpan(fid, 21, 22), fwd, false)
	call := cxxast.NewCallExpr(fileSpan(fid, 21, 24), callee, nil)

	defn := &cxxast.FunctionDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 10, 27), Parent: tu},
		Ident:    "f",
		NameLocV: fileLoc(fid, 15),
		IsDefn:   true,
		Body:     []cxxast.Expr{call},
	}
	chain := []cxxast.Decl{fwd, defn}
	fwd.Redecl = chain
	defn.Redecl = chain
	tu.Decls = chain

	g := indexFixture(t, sm, lexer, tu)

	idx := Build(tu)
	fwdId := BuildNodeIdForDecl(idx, sm, fwd)
	defnId := BuildNodeIdForDecl(idx, sm, defn)
	callableId := BuildNodeIdForCallableDecl(idx, fwd)

	if _, ok := findNode(g, callableId.Printable()); !ok {
		t.Fatalf("expected one callable node %s", callableId.Printable())
	}
	if callableAs, ok := findEdge(g, fwdId.Printable(), "/callableAs"); !ok || callableAs.Target != callableId.Printable() {
		t.Fatalf("expected /callableAs edge from the first declaration, got %+v (ok=%v)", callableAs, ok)
	}
	if _, ok := findEdge(g, defnId.Printable(), "/callableAs"); ok {
		t.Fatalf("callable-as edge must be emitted only once, on the first declaration")
	}

	callEdge, ok := findEdgeTo(g, "/ref/call", callableId.Printable())
	if !ok || callEdge.Source != defnId.Printable() {
		t.Fatalf("expected call edge from the definition to the callable, got %+v (ok=%v)", callEdge, ok)
	}

	completes, ok := findEdge(g, fwdId.Printable(), "/completes")
	if !ok || !contains(completes.Target, "/unique") {
		t.Fatalf("expected a unique completion edge from the forward declaration, got %+v (ok=%v)", completes, ok)
	}
}

// Scenario 6: `class A { ~A(); }; A::~A() {}` — the destructor's
// definition range spans "~A", the function node is a Definition, and
// a child-of edge reaches class A.
func TestTraversalScenario6_DestructorDefinition(t *testing.T) {
	sm, fid, lexer := buildSource(t, "class A { ~A(); };\nA::~A() {}\n")
	tu := &cxxast.TranslationUnitDecl{}

	classA := &cxxast.RecordDecl{
		DeclBase: cxxast.DeclBase{Span: fileSpan(fid, 0, 18), Parent: tu},
		Ident:    "A",
		NameLocV: fileLoc(fid, 6),
		RKind:    cxxast.RecordClass,
		IsDefn:   true,
	}
	proto := &cxxast.FunctionDecl{
		DeclBase:     cxxast.DeclBase{Span: fileSpan(fid, 10, 15), Parent: classA},
		Ident:        "~A",
		NameLocV:     fileLoc(fid, 10),
		IsDefn:       false,
		OwningRecord: classA,
	}
	defn := &cxxast.FunctionDecl{
		DeclBase:     cxxast.DeclBase{Span: fileSpan(fid, 19, 30), Parent: tu},
		Ident:        "~A",
		NameLocV:     fileLoc(fid, 22),
		IsDefn:       true,
		OwningRecord: classA,
	}
	chain := []cxxast.Decl{proto, defn}
	proto.Redecl = chain
	defn.Redecl = chain
	tu.Decls = []cxxast.Decl{classA, proto, defn}

	g := indexFixture(t, sm, lexer, tu)

	idx := Build(tu)
	protoId := BuildNodeIdForDecl(idx, sm, proto)
	defnId := BuildNodeIdForDecl(idx, sm, defn)
	classId := BuildNodeIdForDecl(idx, sm, classA)

	defnNode, ok := findNode(g, defnId.Printable())
	if !ok || defnNode.Kind != "function" || defnNode.Detail != "definition" {
		t.Fatalf("expected the destructor definition to be a Definition function node, got %+v (ok=%v)", defnNode, ok)
	}

	defnRange, ok := findEdge(g, defnId.Printable(), "/defines/binding")
	if !ok {
		t.Fatalf("expected a definition-range edge for the destructor's definition")
	}
	spanText := sourceSlice(sm, fid, defnRange.Target)
	if spanText != "~A" {
		t.Fatalf("expected the destructor's definition range to spell \"~A\", got %q (from %q)", spanText, defnRange.Target)
	}

	if _, ok := findEdgeTo(g, "/childof", classId.Printable()); !ok {
		t.Fatalf("expected a /childof edge reaching class A from %s or %s", protoId.Printable(), defnId.Printable())
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// sourceSlice parses a "begin-end" range-string as the JSON sink
// formats it (srcman.Location.Printable values joined by "-") and
// returns the source text it spans, for asserting on destructor/name
// spans without re-deriving offsets by hand.
func sourceSlice(sm *srcman.Manager, fid srcman.FileID, rangeStr string) string {
	parts := strings.SplitN(rangeStr, "-", 2)
	if len(parts) != 2 {
		return ""
	}
	offsetOf := func(loc string) (int32, bool) {
		at := strings.IndexByte(loc, '@')
		if at < 0 {
			return 0, false
		}
		n, err := strconv.Atoi(loc[at+1:])
		if err != nil {
			return 0, false
		}
		return int32(n), true
	}
	beginOff, ok1 := offsetOf(parts[0])
	endOff, ok2 := offsetOf(parts[1])
	if !ok1 || !ok2 {
		return ""
	}
	var b []byte
	for o := beginOff; o < endOff; o++ {
		b = append(b, sm.CharAt(fileLoc(fid, o)))
	}
	return string(b)
}
