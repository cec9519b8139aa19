package xref

import (
	"fmt"

	"github.com/kythe-go/cxxindex/internal/cxxast"
)

// BuildNodeIdForDependentName lowers a dependent qualified name
// (`T::U` where T is dependent) to a synthetic lookup node, per spec
// §4.6. Its signature encodes the nested-name-specifier's begin/end
// source locations; for each prefix component in the NNS chain an
// ordinal param edge is recorded, lowered according to kind.
func BuildNodeIdForDependentName(obs GraphObserver, nns *cxxast.NestedNameSpecifier, identifier string, lowerer *TypeLowerer, rangeCtx *RangeContextStack, typeCtx *TypeContextStack) NodeId {
	sig := fmt.Sprintf("#nns@%s@%s", nnsBeginLoc(nns), nnsEndLoc(nns))
	id := obs.NodeIdForNominalTypeNode(NameId{Path: sig, EqClass: EqNone})
	obs.RecordLookupNode(id, identifier)

	ordinal := 0
	for cur := nns; cur != nil; cur = cur.Prefix {
		paramId, ok := lowerNNSComponent(obs, cur, lowerer, rangeCtx, typeCtx)
		if ok {
			obs.RecordParamEdge(id, ordinal, paramId)
			ordinal++
		}
	}
	return id
}

func nnsBeginLoc(nns *cxxast.NestedNameSpecifier) string {
	if nns == nil {
		return "invalid"
	}
	if nns.Type != nil {
		return nns.Type.Pos().String()
	}
	return "0"
}

func nnsEndLoc(nns *cxxast.NestedNameSpecifier) string {
	if nns == nil {
		return "invalid"
	}
	if nns.Type != nil {
		return nns.Type.End().String()
	}
	return "0"
}

// lowerNNSComponent lowers one link of the NNS chain according to its
// kind (spec §4.6): another dependent identifier recurses; a
// type-spec prefix calls Lower(typeloc); namespace/namespace-alias/
// global/type-spec-with-template are recorded only to the extent
// DESIGN.md's Open Question 2 decided.
func lowerNNSComponent(obs GraphObserver, nns *cxxast.NestedNameSpecifier, lowerer *TypeLowerer, rangeCtx *RangeContextStack, typeCtx *TypeContextStack) (NodeId, bool) {
	switch nns.Kind {
	case cxxast.NNSIdentifier:
		id := obs.NodeIdForNominalTypeNode(NameId{Path: nns.Identifier, EqClass: EqNone})
		obs.RecordLookupNode(id, nns.Identifier)
		return id, true
	case cxxast.NNSTypeSpec, cxxast.NNSTypeSpecWithTemplate:
		r := lowerer.Lower(nns.Type, rangeCtx, typeCtx, false)
		if !r.Present() {
			return NodeId{}, false
		}
		return r.Primary(), true
	case cxxast.NNSNamespace, cxxast.NNSNamespaceAlias:
		if nns.Namespace == nil {
			return NodeId{}, false
		}
		return BuildNodeIdForDecl(lowerer.idx, lowerer.sm, nns.Namespace), true
	case cxxast.NNSGlobal, cxxast.NNSSuper:
		// Global/__super prefixes contribute no further path token;
		// they terminate the chain (spec §4.6's "recorded only to the
		// extent supported").
		return NodeId{}, false
	default:
		return NodeId{}, false
	}
}
