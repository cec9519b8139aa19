// Package xref implements the semantic indexing core: node identity
// (C2), the parent index (C3), the range resolver (C4), the semantic
// hasher (C5), type lowering (C6), and the traversal driver (C7) with
// its three contexts (C8), driven against an Observer (C1).
package xref

import "github.com/kythe-go/cxxindex/internal/srcman"

// Completeness is a declaration's completion state.
type Completeness int

const (
	Incomplete Completeness = iota // forward declaration
	Complete                       // fully declared but not defined (e.g. `enum E : short;`)
	Definition
)

// EnumScope mirrors cxxast.EnumScope at the observer boundary, kept
// distinct so the observer package never imports cxxast.
type EnumScope int

const (
	Unscoped EnumScope = iota
	Scoped
)

// RecordKind is Struct, Class, or Union.
type RecordKind int

const (
	Struct RecordKind = iota
	Class
	Union
)

// Specificity relates a completion site to the declaration it
// completes: UniquelyCompletes when both are in the same source file.
type Specificity int

const (
	Completes Specificity = iota
	UniquelyCompletes
)

// GraphObserver is the system's sole output surface (spec §4.1). All
// identifiers passed to it are opaque strings; implementations must
// not parse them. Implementations must accept calls in any order and
// tolerate duplicate calls — downstream graph stores deduplicate.
type GraphObserver interface {
	// Identity allocation: pure, referentially transparent, and emit
	// nothing on their own.
	NodeIdForBuiltinType(spelling string) NodeId
	NodeIdForNominalTypeNode(name NameId) NodeId
	NodeIdForTypeAliasNode(name NameId, aliased NodeId) NodeId

	// Node recording.
	RecordNominalTypeNode(id NodeId, name NameId)
	RecordTypeAliasNode(id NodeId, name NameId, aliased NodeId)
	RecordTappNode(tycon NodeId, params []NodeId) NodeId
	RecordRecordNode(id NodeId, kind RecordKind, completeness Completeness)
	RecordFunctionNode(id NodeId, completeness Completeness)
	RecordEnumNode(id NodeId, completeness Completeness, scoped EnumScope)
	RecordVariableNode(name NameId, id NodeId, completeness Completeness)
	RecordIntegerConstantNode(id NodeId, value int64)
	RecordAbsNode(id NodeId)
	RecordAbsVarNode(id NodeId)
	RecordLookupNode(id NodeId, name string)
	RecordCallableNode(id NodeId)

	// Edge recording.
	RecordNamedEdge(node NodeId, name NameId)
	RecordTypeEdge(term NodeId, typ NodeId)
	RecordSpecEdge(term NodeId, template NodeId)
	RecordCallableAsEdge(callee NodeId, callable NodeId)
	RecordCallEdge(r Range, caller NodeId, callee NodeId)
	RecordChildOfEdge(child NodeId, parent NodeId)
	RecordParamEdge(parent NodeId, ordinal int, param NodeId)
	RecordDefinitionRange(r Range, id NodeId)
	RecordCompletionRange(r Range, id NodeId, specificity Specificity)
	RecordDeclUseLocation(r Range, id NodeId)
	RecordTypeSpellingLocation(r Range, id NodeId)
}

// NullObserver discards every call. It is useful for dry-run traversal
// (e.g. benchmarking the driver without sink overhead) and as a base
// type test doubles can embed and selectively override.
type NullObserver struct{}

var _ GraphObserver = NullObserver{}

func (NullObserver) NodeIdForBuiltinType(spelling string) NodeId      { return NodeId{Signature: spelling} }
func (NullObserver) NodeIdForNominalTypeNode(name NameId) NodeId      { return NodeId{Signature: name.Printable()} }
func (NullObserver) NodeIdForTypeAliasNode(name NameId, aliased NodeId) NodeId {
	return NodeId{Signature: name.Printable()}
}
func (NullObserver) RecordNominalTypeNode(NodeId, NameId)                    {}
func (NullObserver) RecordTypeAliasNode(NodeId, NameId, NodeId)              {}
func (NullObserver) RecordTappNode(tycon NodeId, params []NodeId) NodeId     { return tycon }
func (NullObserver) RecordRecordNode(NodeId, RecordKind, Completeness)       {}
func (NullObserver) RecordFunctionNode(NodeId, Completeness)                 {}
func (NullObserver) RecordEnumNode(NodeId, Completeness, EnumScope)          {}
func (NullObserver) RecordVariableNode(NameId, NodeId, Completeness)         {}
func (NullObserver) RecordIntegerConstantNode(NodeId, int64)                 {}
func (NullObserver) RecordAbsNode(NodeId)                                    {}
func (NullObserver) RecordAbsVarNode(NodeId)                                 {}
func (NullObserver) RecordLookupNode(NodeId, string)                        {}
func (NullObserver) RecordCallableNode(NodeId)                               {}
func (NullObserver) RecordNamedEdge(NodeId, NameId)                          {}
func (NullObserver) RecordTypeEdge(NodeId, NodeId)                           {}
func (NullObserver) RecordSpecEdge(NodeId, NodeId)                           {}
func (NullObserver) RecordCallableAsEdge(NodeId, NodeId)                     {}
func (NullObserver) RecordCallEdge(Range, NodeId, NodeId)                    {}
func (NullObserver) RecordChildOfEdge(NodeId, NodeId)                        {}
func (NullObserver) RecordParamEdge(NodeId, int, NodeId)                     {}
func (NullObserver) RecordDefinitionRange(Range, NodeId)                     {}
func (NullObserver) RecordCompletionRange(Range, NodeId, Specificity)        {}
func (NullObserver) RecordDeclUseLocation(Range, NodeId)                     {}
func (NullObserver) RecordTypeSpellingLocation(Range, NodeId)                {}

// Range is the tagged union spec §3 describes: Physical(span) or
// Wraith(span, context). Equality (via ==) compares the physical span
// always, and the context additionally when Wraith is set.
type Range struct {
	Span    srcman.Range
	Wraith  bool
	Context NodeId // meaningful only when Wraith
}

// Physical builds a non-Wraith range.
func Physical(span srcman.Range) Range { return Range{Span: span} }

// InContext builds a Wraith range qualified by ctx.
func InContext(span srcman.Range, ctx NodeId) Range {
	return Range{Span: span, Wraith: true, Context: ctx}
}
