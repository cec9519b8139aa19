package xref

import (
	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/diag"
	"github.com/kythe-go/cxxindex/internal/srcman"
)

// typeCacheKey is the TypeNode cache key (spec §3): a canonical type
// pointer plus its CVR-qualifier bits.
type typeCacheKey struct {
	canonical *cxxast.Type
	quals     cxxast.CVR
}

// TypeLowerer implements C6: a memoised, recursive lowering from AST
// type-loc nodes to graph type nodes.
type TypeLowerer struct {
	obs      GraphObserver
	idx      *ParentIndex
	sm       *srcman.Manager
	resolver *RangeResolver
	policy   *diag.Policy

	cache      map[typeCacheKey]MaybeFew
	typedefIds map[*cxxast.TypedefNameDecl]NodeId
}

// NewTypeLowerer builds a lowerer over the given collaborators. The
// cache and typedef-alias table are owned by one traversal and are
// discarded at its end (spec §3's lifecycle note).
func NewTypeLowerer(obs GraphObserver, idx *ParentIndex, sm *srcman.Manager, resolver *RangeResolver, policy *diag.Policy) *TypeLowerer {
	return &TypeLowerer{
		obs:        obs,
		idx:        idx,
		sm:         sm,
		resolver:   resolver,
		policy:     policy,
		cache:      make(map[typeCacheKey]MaybeFew),
		typedefIds: make(map[*cxxast.TypedefNameDecl]NodeId),
	}
}

// builtinTycon returns the opaque builtin-type-constructor id for name
// (ptr, lvr, rvr, carr, fn, fnvararg, knrfn, const, volatile, restrict).
func (l *TypeLowerer) builtinTycon(name string) NodeId {
	return l.obs.NodeIdForBuiltinType(name)
}

// Lower is BuildNodeIdForType (spec §4.5/C6): given a type-loc, return
// either a NodeId or none. It is memoised on (canonical-type-pointer,
// CVR bits); on a cache hit it still, if emitRange, emits a type-
// spelling-location edge for the current occurrence.
func (l *TypeLowerer) Lower(tl cxxast.TypeLoc, rangeCtx *RangeContextStack, typeCtx *TypeContextStack, emitRange bool) MaybeFew {
	if tl == nil {
		return None()
	}

	key := typeCacheKey{canonical: tl.Canonical(), quals: tl.Qualifiers()}
	if cached, hit := l.cache[key]; hit {
		if emitRange && cached.Present() {
			l.emitSpelling(tl, rangeCtx, cached.Primary())
		}
		return cached
	}

	result := l.lowerUncached(tl, rangeCtx, typeCtx, emitRange)
	if result.Present() {
		l.cache[key] = result
	}
	return result
}

func (l *TypeLowerer) emitSpelling(tl cxxast.TypeLoc, rangeCtx *RangeContextStack, id NodeId) {
	span := l.resolver.RangeForASTEntityFromSourceLocation(tl.Pos())
	l.obs.RecordTypeSpellingLocation(RangeInCurrentContext(rangeCtx, span), id)
}

func (l *TypeLowerer) lowerUncached(tl cxxast.TypeLoc, rangeCtx *RangeContextStack, typeCtx *TypeContextStack, emitRange bool) MaybeFew {
	switch v := tl.(type) {
	case *cxxast.QualifiedTypeLoc:
		inner := l.Lower(v.Inner, rangeCtx, typeCtx, emitRange)
		if !inner.Present() {
			return None()
		}
		id := inner.Primary()
		if v.LocalQuals&cxxast.CVRConst != 0 {
			id = l.obs.RecordTappNode(l.builtinTycon("const"), []NodeId{id})
		}
		if v.LocalQuals&cxxast.CVRRestrict != 0 {
			id = l.obs.RecordTappNode(l.builtinTycon("restrict"), []NodeId{id})
		}
		if v.LocalQuals&cxxast.CVRVolatile != 0 {
			id = l.obs.RecordTappNode(l.builtinTycon("volatile"), []NodeId{id})
		}
		if emitRange {
			l.emitSpelling(tl, rangeCtx, id)
		}
		return One(id)

	case *cxxast.BuiltinTypeLoc:
		id := l.obs.NodeIdForBuiltinType(v.Spelling)
		if emitRange {
			l.emitSpelling(tl, rangeCtx, id)
		}
		return One(id)

	case *cxxast.PointerTypeLoc:
		inner := l.Lower(v.Pointee, rangeCtx, typeCtx, emitRange)
		if !inner.Present() {
			return None()
		}
		id := l.obs.RecordTappNode(l.builtinTycon("ptr"), []NodeId{inner.Primary()})
		if emitRange {
			l.emitSpelling(tl, rangeCtx, id)
		}
		return One(id)

	case *cxxast.LValueReferenceTypeLoc:
		inner := l.Lower(v.Referent, rangeCtx, typeCtx, emitRange)
		if !inner.Present() {
			return None()
		}
		return One(l.obs.RecordTappNode(l.builtinTycon("lvr"), []NodeId{inner.Primary()}))

	case *cxxast.RValueReferenceTypeLoc:
		inner := l.Lower(v.Referent, rangeCtx, typeCtx, emitRange)
		if !inner.Present() {
			return None()
		}
		return One(l.obs.RecordTappNode(l.builtinTycon("rvr"), []NodeId{inner.Primary()}))

	case *cxxast.ConstantArrayTypeLoc:
		// Size expression deferred per spec §9's open question; see
		// DESIGN.md Open Question 1 for the identity-folding decision.
		elem := l.Lower(v.Element, rangeCtx, typeCtx, emitRange)
		if !elem.Present() {
			return None()
		}
		return One(l.obs.RecordTappNode(l.builtinTycon("carr"), []NodeId{elem.Primary()}))

	case *cxxast.FunctionProtoTypeLoc:
		result := l.Lower(v.Result, rangeCtx, typeCtx, emitRange)
		if !result.Present() {
			return None()
		}
		params := make([]NodeId, 0, len(v.Params)+1)
		params = append(params, result.Primary())
		for _, p := range v.Params {
			lp := l.Lower(p, rangeCtx, typeCtx, emitRange)
			if !lp.Present() {
				return None()
			}
			params = append(params, lp.Primary())
		}
		tycon := "fn"
		if v.Variadic {
			tycon = "fnvararg"
		}
		return One(l.obs.RecordTappNode(l.builtinTycon(tycon), params))

	case *cxxast.FunctionNoProtoTypeLoc:
		return One(l.builtinTycon("knrfn"))

	case *cxxast.ParenTypeLoc:
		// Transparent: forwards lowering and suppresses range emission
		// on the inner call to avoid double spelling edges.
		return l.Lower(v.Inner, rangeCtx, typeCtx, false)

	case *cxxast.TypedefTypeLoc:
		if id, ok := l.typedefIds[v.Decl]; ok {
			if emitRange {
				l.emitSpelling(tl, rangeCtx, id)
			}
			return One(id)
		}
		aliased := l.Lower(v.Decl.Underlying, rangeCtx, typeCtx, false)
		name := BuildNameIdForDecl(l.idx, v.Decl)
		var aliasId NodeId
		if aliased.Present() {
			aliasId = l.obs.NodeIdForTypeAliasNode(name, aliased.Primary())
			l.obs.RecordTypeAliasNode(aliasId, name, aliased.Primary())
		} else {
			aliasId = l.obs.NodeIdForTypeAliasNode(name, NodeId{})
			l.obs.RecordTypeAliasNode(aliasId, name, NodeId{})
		}
		l.typedefIds[v.Decl] = aliasId
		if emitRange {
			l.emitSpelling(tl, rangeCtx, aliasId)
		}
		if aliased.Present() {
			return Few(aliasId, aliased.Primary())
		}
		return One(aliasId)

	case *cxxast.RecordTypeLoc:
		return l.lowerRecord(v.Decl, tl, rangeCtx, emitRange)

	case *cxxast.EnumTypeLoc:
		return l.lowerEnum(v.Decl, tl, rangeCtx, emitRange)

	case *cxxast.ElaboratedTypeLoc:
		return l.Lower(v.Inner, rangeCtx, typeCtx, emitRange)

	case *cxxast.TemplateTypeParmTypeLoc:
		if v.Decl != nil {
			return One(BuildNodeIdForDecl(l.idx, l.sm, v.Decl))
		}
		if resolved, ok := typeCtx.Resolve(v.Depth, v.Index); ok {
			return One(BuildNodeIdForDecl(l.idx, l.sm, resolved))
		}
		l.policy.Unimplemented(diag.ComponentTypeLower, "TemplateTypeParm: unresolved depth/index", tl.Pos())
		return None()

	case *cxxast.SubstTemplateTypeParmTypeLoc:
		return l.Lower(v.Replacement, rangeCtx, typeCtx, false)

	case *cxxast.TemplateSpecializationTypeLoc:
		tnameId, ok := l.lowerTemplateName(v.Name)
		if !ok {
			return None()
		}
		args := make([]NodeId, 0, len(v.Args)+1)
		args = append(args, tnameId)
		for _, a := range v.Args {
			la, ok := l.lowerTemplateArgument(a, rangeCtx, typeCtx)
			if !ok {
				return None()
			}
			args = append(args, la)
		}
		return One(l.obs.RecordTappNode(tnameId, args))

	case *cxxast.InjectedClassNameTypeLoc:
		return l.lowerRecord(v.Decl, tl, rangeCtx, emitRange)

	case *cxxast.DependentNameTypeLoc:
		id := BuildNodeIdForDependentName(l.obs, v.NNS, v.Identifier, l, rangeCtx, typeCtx)
		return One(id)

	case *cxxast.UnsupportedTypeLoc:
		l.policy.Unimplemented(diag.ComponentTypeLower, v.SpellingKind, tl.Pos())
		return None()

	default:
		l.policy.Unimplemented(diag.ComponentTypeLower, "unknown TypeLoc", tl.Pos())
		return None()
	}
}

// lowerRecord implements the Record(D) case shared by RecordTypeLoc
// and InjectedClassNameTypeLoc (spec §4.5).
func (l *TypeLowerer) lowerRecord(d *cxxast.RecordDecl, tl cxxast.TypeLoc, rangeCtx *RangeContextStack, emitRange bool) MaybeFew {
	if spec, ok := isStaticSpecialization(d); ok {
		templateId, ok := l.templateOf(spec)
		if !ok {
			return None()
		}
		args := make([]NodeId, 0, len(spec.Args)+1)
		args = append(args, templateId)
		for _, a := range spec.Args {
			la, ok := l.lowerTemplateArgument(a, rangeCtx, &TypeContextStack{})
			if !ok {
				return None()
			}
			args = append(args, la)
		}
		id := l.obs.RecordTappNode(templateId, args)
		if emitRange {
			l.emitSpelling(tl, rangeCtx, id)
		}
		return One(id)
	}
	if d.IsDefn {
		id := BuildNodeIdForDecl(l.idx, l.sm, d)
		if emitRange {
			l.emitSpelling(tl, rangeCtx, id)
		}
		return One(id)
	}
	name := BuildNameIdForDecl(l.idx, d)
	id := l.obs.NodeIdForNominalTypeNode(name)
	l.obs.RecordNominalTypeNode(id, name)
	if emitRange {
		l.emitSpelling(tl, rangeCtx, id)
	}
	return One(id)
}

func (l *TypeLowerer) lowerEnum(d *cxxast.EnumDecl, tl cxxast.TypeLoc, rangeCtx *RangeContextStack, emitRange bool) MaybeFew {
	if d.IsDefn {
		id := BuildNodeIdForDecl(l.idx, l.sm, d)
		if emitRange {
			l.emitSpelling(tl, rangeCtx, id)
		}
		return One(id)
	}
	name := BuildNameIdForDecl(l.idx, d)
	id := l.obs.NodeIdForNominalTypeNode(name)
	l.obs.RecordNominalTypeNode(id, name)
	if emitRange {
		l.emitSpelling(tl, rangeCtx, id)
	}
	return One(id)
}

// isStaticSpecialization reports whether d is a class-template
// specialization whose template arguments are statically known.
func isStaticSpecialization(d *cxxast.RecordDecl) (*cxxast.ClassTemplateSpecializationDecl, bool) {
	// The decoder produces ClassTemplateSpecializationDecl as a
	// distinct Go type embedding RecordDecl; callers pass the embedded
	// RecordDecl pointer, so recover the outer value via the template
	// link recorded at decode time.
	if d.SpecializationOf == nil {
		return nil, false
	}
	if spec, ok := d.SpecializationOf.(*cxxast.ClassTemplateSpecializationDecl); ok {
		return spec, true
	}
	return nil, false
}

// templateOf returns the id for spec's underlying template: the direct
// decl id when the template has a visible definition in this TU, a
// nominal template node otherwise (spec §4.5).
func (l *TypeLowerer) templateOf(spec *cxxast.ClassTemplateSpecializationDecl) (NodeId, bool) {
	if spec.Template == nil {
		return NodeId{}, false
	}
	if spec.Template.TemplatedRec != nil && spec.Template.TemplatedRec.IsDefn {
		return BuildNodeIdForDecl(l.idx, l.sm, spec.Template), true
	}
	name := BuildNameIdForDecl(l.idx, spec.Template)
	id := l.obs.NodeIdForNominalTypeNode(name)
	l.obs.RecordNominalTypeNode(id, name)
	return id, true
}

// lowerTemplateName resolves a TemplateName to a NodeId: the
// templated decl's id when resolved, or a lookup node for a dependent
// template name.
func (l *TypeLowerer) lowerTemplateName(tn cxxast.TemplateName) (NodeId, bool) {
	if tn.Kind == cxxast.TNameDependent {
		id := l.obs.NodeIdForNominalTypeNode(NameId{Path: tn.Dependent, EqClass: EqNone})
		l.obs.RecordLookupNode(id, tn.Dependent)
		return id, true
	}
	if tn.Templated == nil {
		return NodeId{}, false
	}
	return BuildNodeIdForDecl(l.idx, l.sm, tn.Templated), true
}

// lowerTemplateArgument lowers one template argument to the NodeId
// used as a tapp operand (spec §4.2's BuildNodeIdForTemplateArgument).
func (l *TypeLowerer) lowerTemplateArgument(a cxxast.TemplateArgument, rangeCtx *RangeContextStack, typeCtx *TypeContextStack) (NodeId, bool) {
	switch a.Kind {
	case cxxast.TArgType:
		r := l.Lower(a.Type, rangeCtx, typeCtx, false)
		if !r.Present() {
			return NodeId{}, false
		}
		return r.Primary(), true
	case cxxast.TArgIntegral:
		id := l.obs.NodeIdForNominalTypeNode(NameId{Path: "int-const", EqClass: EqNone})
		l.obs.RecordIntegerConstantNode(id, a.Integer)
		return id, true
	case cxxast.TArgDeclaration:
		if d, ok := a.Decl.(cxxast.Decl); ok {
			return BuildNodeIdForDecl(l.idx, l.sm, d), true
		}
		return NodeId{}, false
	case cxxast.TArgTemplate:
		return l.lowerTemplateName(a.Name)
	case cxxast.TArgPack:
		if len(a.Pack) == 0 {
			return l.obs.NodeIdForBuiltinType("empty-pack"), true
		}
		first, ok := l.lowerTemplateArgument(a.Pack[0], rangeCtx, typeCtx)
		return first, ok
	default:
		return NodeId{}, false
	}
}
