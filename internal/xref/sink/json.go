// Package sink provides GraphObserver implementations: a JSON-
// recording sink for the CLI (SPEC_FULL.md §2) and a counting sink
// tests use to assert on emitted call shape without a full snapshot.
package sink

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/maruel/natural"

	"github.com/kythe-go/cxxindex/internal/srcman"
	"github.com/kythe-go/cxxindex/internal/xref"
)

// Node is one recorded graph node in JSON's output shape.
type Node struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Fact   string `json:"fact,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Edge is one recorded graph edge.
type Edge struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Detail string `json:"detail,omitempty"`
}

// JSON accumulates every recorded node and edge call in memory for
// later serialization (the CLI's `index` subcommand renders the
// result via encoding/json then tidwall/pretty).
type JSON struct {
	sm    *srcman.Manager
	nodes []Node
	edges []Edge
}

// NewJSON builds a sink that resolves ranges through sm for
// human-readable location strings.
func NewJSON(sm *srcman.Manager) *JSON {
	return &JSON{sm: sm}
}

var _ xref.GraphObserver = (*JSON)(nil)

func (j *JSON) addNode(n Node)            { j.nodes = append(j.nodes, n) }
func (j *JSON) addEdge(e Edge)            { j.edges = append(j.edges, e) }

func (j *JSON) NodeIdForBuiltinType(spelling string) xref.NodeId {
	return xref.NodeId{Signature: "builtin:" + spelling}
}
func (j *JSON) NodeIdForNominalTypeNode(name xref.NameId) xref.NodeId {
	return xref.NodeId{Signature: "nominal:" + name.Printable()}
}
func (j *JSON) NodeIdForTypeAliasNode(name xref.NameId, aliased xref.NodeId) xref.NodeId {
	return xref.NodeId{Signature: "alias:" + name.Printable()}
}

func (j *JSON) RecordNominalTypeNode(id xref.NodeId, name xref.NameId) {
	j.addNode(Node{ID: id.Printable(), Kind: "tnominal", Detail: name.Printable()})
}
func (j *JSON) RecordTypeAliasNode(id xref.NodeId, name xref.NameId, aliased xref.NodeId) {
	j.addNode(Node{ID: id.Printable(), Kind: "talias", Detail: name.Printable()})
	if aliased.Printable() != "" {
		j.addEdge(Edge{Source: id.Printable(), Kind: "/aliases", Target: aliased.Printable()})
	}
}
func (j *JSON) RecordTappNode(tycon xref.NodeId, params []xref.NodeId) xref.NodeId {
	sig := "tapp(" + tycon.Printable()
	for _, p := range params {
		sig += "," + p.Printable()
	}
	sig += ")"
	id := xref.NodeId{Signature: sig}
	j.addNode(Node{ID: id.Printable(), Kind: "tapp"})
	return id
}
func (j *JSON) RecordRecordNode(id xref.NodeId, kind xref.RecordKind, completeness xref.Completeness) {
	j.addNode(Node{ID: id.Printable(), Kind: "record", Detail: recordKindString(kind) + "/" + completenessString(completeness)})
}
func (j *JSON) RecordFunctionNode(id xref.NodeId, completeness xref.Completeness) {
	j.addNode(Node{ID: id.Printable(), Kind: "function", Detail: completenessString(completeness)})
}
func (j *JSON) RecordEnumNode(id xref.NodeId, completeness xref.Completeness, scoped xref.EnumScope) {
	detail := completenessString(completeness)
	if scoped == xref.Scoped {
		detail += "/scoped"
	}
	j.addNode(Node{ID: id.Printable(), Kind: "enum", Detail: detail})
}
func (j *JSON) RecordVariableNode(name xref.NameId, id xref.NodeId, completeness xref.Completeness) {
	j.addNode(Node{ID: id.Printable(), Kind: "variable", Detail: completenessString(completeness)})
}
func (j *JSON) RecordIntegerConstantNode(id xref.NodeId, value int64) {
	j.addNode(Node{ID: id.Printable(), Kind: "constant", Fact: "value"})
}
func (j *JSON) RecordAbsNode(id xref.NodeId) {
	j.addNode(Node{ID: id.Printable(), Kind: "abs"})
}
func (j *JSON) RecordAbsVarNode(id xref.NodeId) {
	j.addNode(Node{ID: id.Printable(), Kind: "absvar"})
}
func (j *JSON) RecordLookupNode(id xref.NodeId, name string) {
	j.addNode(Node{ID: id.Printable(), Kind: "lookup", Detail: name})
}
func (j *JSON) RecordCallableNode(id xref.NodeId) {
	j.addNode(Node{ID: id.Printable(), Kind: "callable"})
}

func (j *JSON) RecordNamedEdge(node xref.NodeId, name xref.NameId) {
	j.addEdge(Edge{Source: node.Printable(), Kind: "/named", Target: name.Printable()})
}
func (j *JSON) RecordTypeEdge(term xref.NodeId, typ xref.NodeId) {
	j.addEdge(Edge{Source: term.Printable(), Kind: "/type", Target: typ.Printable()})
}
func (j *JSON) RecordSpecEdge(term xref.NodeId, template xref.NodeId) {
	j.addEdge(Edge{Source: term.Printable(), Kind: "/specializes", Target: template.Printable()})
}
func (j *JSON) RecordCallableAsEdge(callee xref.NodeId, callable xref.NodeId) {
	j.addEdge(Edge{Source: callee.Printable(), Kind: "/callableAs", Target: callable.Printable()})
}
func (j *JSON) RecordCallEdge(r xref.Range, caller xref.NodeId, callee xref.NodeId) {
	j.addEdge(Edge{Source: caller.Printable(), Kind: "/ref/call", Target: callee.Printable(), Detail: j.rangeString(r)})
}
func (j *JSON) RecordChildOfEdge(child xref.NodeId, parent xref.NodeId) {
	j.addEdge(Edge{Source: child.Printable(), Kind: "/childof", Target: parent.Printable()})
}
func (j *JSON) RecordParamEdge(parent xref.NodeId, ordinal int, param xref.NodeId) {
	j.addEdge(Edge{Source: parent.Printable(), Kind: "/param", Target: param.Printable(), Detail: strconv.Itoa(ordinal)})
}
func (j *JSON) RecordDefinitionRange(r xref.Range, id xref.NodeId) {
	j.addEdge(Edge{Source: id.Printable(), Kind: "/defines/binding", Target: j.rangeString(r)})
}
func (j *JSON) RecordCompletionRange(r xref.Range, id xref.NodeId, specificity xref.Specificity) {
	detail := j.rangeString(r)
	if specificity == xref.UniquelyCompletes {
		detail += "/unique"
	}
	j.addEdge(Edge{Source: id.Printable(), Kind: "/completes", Target: detail})
}
func (j *JSON) RecordDeclUseLocation(r xref.Range, id xref.NodeId) {
	j.addEdge(Edge{Source: j.rangeString(r), Kind: "/ref", Target: id.Printable()})
}
func (j *JSON) RecordTypeSpellingLocation(r xref.Range, id xref.NodeId) {
	j.addEdge(Edge{Source: j.rangeString(r), Kind: "/ref/type", Target: id.Printable()})
}

func (j *JSON) rangeString(r xref.Range) string {
	s := r.Span.Begin.Printable(j.sm) + "-" + r.Span.End.Printable(j.sm)
	if r.Wraith {
		s += "@" + r.Context.Printable()
	}
	return s
}

func recordKindString(k xref.RecordKind) string {
	switch k {
	case xref.Class:
		return "class"
	case xref.Union:
		return "union"
	default:
		return "struct"
	}
}

func completenessString(c xref.Completeness) string {
	switch c {
	case xref.Definition:
		return "definition"
	case xref.Complete:
		return "complete"
	default:
		return "incomplete"
	}
}

// MarshalJSON renders the accumulated graph with nodes and edges
// sorted by natural order on their id/source, so output is
// byte-for-byte stable across runs (Invariant 1 at the presentation
// layer, per SPEC_FULL.md §2).
func (j *JSON) MarshalJSON() ([]byte, error) {
	nodes := append([]Node(nil), j.nodes...)
	edges := append([]Edge(nil), j.edges...)
	sort.Slice(nodes, func(i, k int) bool { return natural.Less(nodes[i].ID, nodes[k].ID) })
	sort.Slice(edges, func(i, k int) bool {
		if edges[i].Source != edges[k].Source {
			return natural.Less(edges[i].Source, edges[k].Source)
		}
		if edges[i].Kind != edges[k].Kind {
			return edges[i].Kind < edges[k].Kind
		}
		return natural.Less(edges[i].Target, edges[k].Target)
	})
	return json.Marshal(struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}{Nodes: nodes, Edges: edges})
}
