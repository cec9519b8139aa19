package xref

import "github.com/kythe-go/cxxindex/internal/cxxast"

// parentEntry is one recorded (parent, child-ordinal) observation.
type parentEntry struct {
	parent  cxxast.Decl
	ordinal int
}

// ParentIndex is the lazy, pre-order-built map from an AST node to its
// parent(s) with child ordinal (spec §4.3, C3). When a node is visited
// through more than one parent (a template visited via its
// instantiations), the index keeps a vector and BuildNameId/BuildNodeId
// consult the first entry by convention, making repeated traversals
// deterministic.
type ParentIndex struct {
	entries map[cxxast.Decl][]parentEntry
	counter map[cxxast.Decl]int // next ordinal to assign under a given parent
}

// NewParentIndex returns an empty index; Build populates it by walking
// a translation unit once.
func NewParentIndex() *ParentIndex {
	return &ParentIndex{
		entries: make(map[cxxast.Decl][]parentEntry),
		counter: make(map[cxxast.Decl]int),
	}
}

// Record registers one (child, parent) observation in traversal order.
// Ordinals are assigned in the order Record is called for a given
// parent, matching spec §4.3's "assigned in traversal order".
func (p *ParentIndex) Record(child, parent cxxast.Decl) {
	if child == nil {
		return
	}
	ord := p.counter[parent]
	p.counter[parent] = ord + 1
	p.entries[child] = append(p.entries[child], parentEntry{parent: parent, ordinal: ord})
}

// Parent returns the first-recorded parent and child ordinal for d. If
// the index has no entry (d was not reached during the one pre-order
// walk that built the index — e.g. a node built synthetically by the
// type lowerer), it falls back to d's own embedded lexical-parent link
// with ordinal 0, which keeps identity construction total over every
// Decl the traversal can reach.
func (p *ParentIndex) Parent(d cxxast.Decl) (parent cxxast.Decl, ordinal int, ok bool) {
	if es, found := p.entries[d]; found && len(es) > 0 {
		return es[0].parent, es[0].ordinal, true
	}
	if lp := d.LexicalParent(); lp != nil {
		return lp, 0, true
	}
	return nil, 0, false
}

// buildVisitor implements cxxast.Visitor, recording a (child, parent)
// observation for every node Walk descends into.
type buildVisitor struct {
	idx    *ParentIndex
	parent cxxast.Decl
}

func (b *buildVisitor) enter(child cxxast.Decl) *buildVisitor {
	b.idx.Record(child, b.parent)
	return &buildVisitor{idx: b.idx, parent: child}
}

func (b *buildVisitor) VisitTranslationUnit(n *cxxast.TranslationUnitDecl) bool {
	return true
}
func (b *buildVisitor) VisitNamespace(n *cxxast.NamespaceDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitVar(n *cxxast.VarDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitFunction(n *cxxast.FunctionDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	for i, p := range n.Params {
		b.idx.entries[p] = append(b.idx.entries[p], parentEntry{parent: n, ordinal: i})
	}
	return true
}
func (b *buildVisitor) VisitRecord(n *cxxast.RecordDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitEnum(n *cxxast.EnumDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitEnumConstant(n *cxxast.EnumConstantDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitTypedefName(n *cxxast.TypedefNameDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitClassTemplate(n *cxxast.ClassTemplateDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}
func (b *buildVisitor) VisitFunctionTemplate(n *cxxast.FunctionTemplateDecl) bool {
	b.idx.Record(n, n.LexicalParent())
	return true
}

// Build performs the one pre-order walk of tu that populates a
// ParentIndex, as spec §4.3 describes.
func Build(tu *cxxast.TranslationUnitDecl) *ParentIndex {
	idx := NewParentIndex()
	cxxast.Walk(&buildVisitor{idx: idx, parent: tu}, tu)
	return idx
}
