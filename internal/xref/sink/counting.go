package sink

import "github.com/kythe-go/cxxindex/internal/xref"

// Counting wraps another GraphObserver and tallies how many times each
// Record* method fires, so tests can assert "exactly one definition
// range was emitted for this NodeId" without snapshotting the whole
// graph.
type Counting struct {
	xref.GraphObserver
	Calls map[string]int
}

// NewCounting wraps next (NullObserver{} if the test doesn't care what
// the underlying sink does with the calls).
func NewCounting(next xref.GraphObserver) *Counting {
	return &Counting{GraphObserver: next, Calls: make(map[string]int)}
}

func (c *Counting) tally(method string) { c.Calls[method]++ }

func (c *Counting) RecordNominalTypeNode(id xref.NodeId, name xref.NameId) {
	c.tally("RecordNominalTypeNode")
	c.GraphObserver.RecordNominalTypeNode(id, name)
}
func (c *Counting) RecordTypeAliasNode(id xref.NodeId, name xref.NameId, aliased xref.NodeId) {
	c.tally("RecordTypeAliasNode")
	c.GraphObserver.RecordTypeAliasNode(id, name, aliased)
}
func (c *Counting) RecordTappNode(tycon xref.NodeId, params []xref.NodeId) xref.NodeId {
	c.tally("RecordTappNode")
	return c.GraphObserver.RecordTappNode(tycon, params)
}
func (c *Counting) RecordRecordNode(id xref.NodeId, kind xref.RecordKind, completeness xref.Completeness) {
	c.tally("RecordRecordNode")
	c.GraphObserver.RecordRecordNode(id, kind, completeness)
}
func (c *Counting) RecordFunctionNode(id xref.NodeId, completeness xref.Completeness) {
	c.tally("RecordFunctionNode")
	c.GraphObserver.RecordFunctionNode(id, completeness)
}
func (c *Counting) RecordEnumNode(id xref.NodeId, completeness xref.Completeness, scoped xref.EnumScope) {
	c.tally("RecordEnumNode")
	c.GraphObserver.RecordEnumNode(id, completeness, scoped)
}
func (c *Counting) RecordVariableNode(name xref.NameId, id xref.NodeId, completeness xref.Completeness) {
	c.tally("RecordVariableNode")
	c.GraphObserver.RecordVariableNode(name, id, completeness)
}
func (c *Counting) RecordIntegerConstantNode(id xref.NodeId, value int64) {
	c.tally("RecordIntegerConstantNode")
	c.GraphObserver.RecordIntegerConstantNode(id, value)
}
func (c *Counting) RecordAbsNode(id xref.NodeId) {
	c.tally("RecordAbsNode")
	c.GraphObserver.RecordAbsNode(id)
}
func (c *Counting) RecordAbsVarNode(id xref.NodeId) {
	c.tally("RecordAbsVarNode")
	c.GraphObserver.RecordAbsVarNode(id)
}
func (c *Counting) RecordLookupNode(id xref.NodeId, name string) {
	c.tally("RecordLookupNode")
	c.GraphObserver.RecordLookupNode(id, name)
}
func (c *Counting) RecordCallableNode(id xref.NodeId) {
	c.tally("RecordCallableNode")
	c.GraphObserver.RecordCallableNode(id)
}
func (c *Counting) RecordNamedEdge(node xref.NodeId, name xref.NameId) {
	c.tally("RecordNamedEdge")
	c.GraphObserver.RecordNamedEdge(node, name)
}
func (c *Counting) RecordTypeEdge(term xref.NodeId, typ xref.NodeId) {
	c.tally("RecordTypeEdge")
	c.GraphObserver.RecordTypeEdge(term, typ)
}
func (c *Counting) RecordSpecEdge(term xref.NodeId, template xref.NodeId) {
	c.tally("RecordSpecEdge")
	c.GraphObserver.RecordSpecEdge(term, template)
}
func (c *Counting) RecordCallableAsEdge(callee xref.NodeId, callable xref.NodeId) {
	c.tally("RecordCallableAsEdge")
	c.GraphObserver.RecordCallableAsEdge(callee, callable)
}
func (c *Counting) RecordCallEdge(r xref.Range, caller xref.NodeId, callee xref.NodeId) {
	c.tally("RecordCallEdge")
	c.GraphObserver.RecordCallEdge(r, caller, callee)
}
func (c *Counting) RecordChildOfEdge(child xref.NodeId, parent xref.NodeId) {
	c.tally("RecordChildOfEdge")
	c.GraphObserver.RecordChildOfEdge(child, parent)
}
func (c *Counting) RecordParamEdge(parent xref.NodeId, ordinal int, param xref.NodeId) {
	c.tally("RecordParamEdge")
	c.GraphObserver.RecordParamEdge(parent, ordinal, param)
}
func (c *Counting) RecordDefinitionRange(r xref.Range, id xref.NodeId) {
	c.tally("RecordDefinitionRange")
	c.GraphObserver.RecordDefinitionRange(r, id)
}
func (c *Counting) RecordCompletionRange(r xref.Range, id xref.NodeId, specificity xref.Specificity) {
	c.tally("RecordCompletionRange")
	c.GraphObserver.RecordCompletionRange(r, id, specificity)
}
func (c *Counting) RecordDeclUseLocation(r xref.Range, id xref.NodeId) {
	c.tally("RecordDeclUseLocation")
	c.GraphObserver.RecordDeclUseLocation(r, id)
}
func (c *Counting) RecordTypeSpellingLocation(r xref.Range, id xref.NodeId) {
	c.tally("RecordTypeSpellingLocation")
	c.GraphObserver.RecordTypeSpellingLocation(r, id)
}
