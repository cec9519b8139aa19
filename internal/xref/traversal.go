package xref

import (
	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/diag"
	"github.com/kythe-go/cxxindex/internal/srcman"
)

// Traversal is the C7 driver: a single recursive visitor carrying the
// three C8 context stacks as explicit mutable state (spec §9: "carry
// the stacks in a Traversal value that the driver mutates", modeled on
// the teacher's PassContext push/pop idiom). Traversal is
// single-threaded per translation unit; callers parallelising across
// TUs must give each TU its own Traversal.
type Traversal struct {
	obs      GraphObserver
	sm       *srcman.Manager
	lexer    srcman.Lexer
	policy   *diag.Policy
	resolver *RangeResolver

	idx     *ParentIndex
	lowerer *TypeLowerer

	rangeCtx RangeContextStack
	typeCtx  TypeContextStack
	blame    BlameStack

	cancel <-chan struct{}

	// canonicalCallable tracks the first-seen FunctionDecl per callable
	// identity, so the callable node and its callable-as edge are
	// emitted exactly once (spec §4.7: "on the canonical (first)
	// declaration").
	canonicalCallable map[string]bool
}

// NewTraversal constructs a driver over the given collaborators and
// policy. cancel may be nil; a nil channel never signals cancellation.
func NewTraversal(obs GraphObserver, sm *srcman.Manager, lexer srcman.Lexer, policy *diag.Policy, cancel <-chan struct{}) *Traversal {
	return &Traversal{
		obs:               obs,
		sm:                sm,
		lexer:             lexer,
		policy:            policy,
		resolver:          NewRangeResolver(sm, lexer),
		cancel:            cancel,
		canonicalCallable: make(map[string]bool),
	}
}

func (t *Traversal) cancelled() bool {
	if t.cancel == nil {
		return false
	}
	select {
	case <-t.cancel:
		return true
	default:
		return false
	}
}

// Index drives one traversal of tu, emitting nodes and edges to the
// observer. A malformed-AST panic (*diag.Fault) is recovered here and
// returned as a normal error — the panic never crosses this boundary.
func (t *Traversal) Index(tu *cxxast.TranslationUnitDecl) (err error) {
	defer diag.Recover(&err)

	t.idx = Build(tu)
	t.lowerer = NewTypeLowerer(t.obs, t.idx, t.sm, t.resolver, t.policy)

	for _, d := range tu.Decls {
		if t.cancelled() {
			return nil
		}
		t.visitDecl(d)
	}
	return nil
}

// visitDecl dispatches to the per-kind entry hook spec §4.7 names.
func (t *Traversal) visitDecl(d cxxast.Decl) {
	switch v := d.(type) {
	case *cxxast.NamespaceDecl:
		for _, child := range v.Decls {
			if t.cancelled() {
				return
			}
			t.visitDecl(child)
		}
	case *cxxast.VarDecl:
		t.visitVar(v)
	case *cxxast.FunctionDecl:
		t.visitFunction(v)
	case *cxxast.RecordDecl:
		t.visitRecord(v)
	case *cxxast.ClassTemplateSpecializationDecl:
		t.visitRecord(&v.RecordDecl)
	case *cxxast.EnumDecl:
		t.visitEnum(v)
	case *cxxast.TypedefNameDecl:
		t.visitTypedefName(v)
	case *cxxast.ClassTemplateDecl:
		t.visitClassTemplate(v)
	case *cxxast.FunctionTemplateDecl:
		t.visitFunctionTemplate(v)
	default:
		// ParmVarDecl is handled by its enclosing function;
		// EnumConstantDecl by its enclosing enum.
	}
}

func (t *Traversal) completenessOf(isDefn bool) Completeness {
	if isDefn {
		return Definition
	}
	return Incomplete
}

// visitVar implements spec §4.7's VarDecl (non-parameter) rule.
func (t *Traversal) visitVar(d *cxxast.VarDecl) {
	id := BuildNodeIdForDecl(t.idx, t.sm, d)
	name := BuildNameIdForDecl(t.idx, d)
	t.obs.RecordVariableNode(name, id, t.completenessOf(d.IsDefinition()))
	t.obs.RecordNamedEdge(id, name)

	span := t.resolver.RangeForNameOfDeclaration(d)
	t.obs.RecordDefinitionRange(RangeInCurrentContext(&t.rangeCtx, span), id)

	t.ascribeType(id, d.Type)
}

func (t *Traversal) ascribeType(id NodeId, tl cxxast.TypeLoc) {
	typ := t.lowerer.Lower(tl, &t.rangeCtx, &t.typeCtx, true)
	if !typ.Present() {
		return
	}
	t.obs.RecordTypeEdge(id, typ.Primary())
	for _, alt := range typ.Alternates() {
		t.obs.RecordTypeEdge(id, alt)
	}
}

// visitEnum implements spec §4.7's EnumDecl rule.
func (t *Traversal) visitEnum(d *cxxast.EnumDecl) {
	id := BuildNodeIdForDecl(t.idx, t.sm, d)
	name := BuildNameIdForDecl(t.idx, d)
	t.obs.RecordNamedEdge(id, name)

	span := t.resolver.RangeForNameOfDeclaration(asNamedEnum(d))
	t.obs.RecordDefinitionRange(RangeInCurrentContext(&t.rangeCtx, span), id)

	if d.UnderlyingType != nil {
		t.ascribeType(id, d.UnderlyingType)
	}

	// Completion edges run from the defining occurrence's own name
	// range to each forward-declared redecl's id (spec §4.7 scenario
	// 2/5: "completion edge from the definition's range to the
	// forward-declaration's id"); only the definition emits them.
	if d.IsDefn {
		r := RangeInCurrentContext(&t.rangeCtx, span)
		for _, redecl := range d.Redecls() {
			if redecl == d {
				continue
			}
			t.obs.RecordCompletionRange(r, BuildNodeIdForDecl(t.idx, t.sm, redecl), t.completionSpecificity(d, redecl))
		}
	}

	scope := Unscoped
	if d.Scope == cxxast.EnumScoped {
		scope = Scoped
	}
	t.obs.RecordEnumNode(id, t.completenessOf(d.IsDefn), scope)

	for _, c := range d.Constants {
		t.visitEnumConstant(c, id)
	}
}

// asNamedEnum adapts an *EnumDecl to cxxast.NamedDecl for the range
// resolver, which only special-cases FunctionDecl names (destructors
// and overloaded operators).
func asNamedEnum(d *cxxast.EnumDecl) cxxast.NamedDecl { return d }

func (t *Traversal) completionSpecificity(target cxxast.Decl, completing cxxast.Decl) Specificity {
	if completing.Pos().File == target.Pos().File {
		return UniquelyCompletes
	}
	return Completes
}

func (t *Traversal) visitEnumConstant(d *cxxast.EnumConstantDecl, enumId NodeId) {
	id := BuildNodeIdForDecl(t.idx, t.sm, d)
	name := BuildNameIdForDecl(t.idx, d)
	t.obs.RecordNamedEdge(id, name)
	span := t.resolver.RangeForASTEntityFromSourceLocation(d.NameLoc())
	t.obs.RecordDefinitionRange(RangeInCurrentContext(&t.rangeCtx, span), id)
	t.obs.RecordIntegerConstantNode(id, d.Value)
	t.obs.RecordChildOfEdge(id, enumId)
}

// visitClassTemplate pushes the template's parameter list for the
// duration of its body traversal (spec §4.7's Templates rule).
func (t *Traversal) visitClassTemplate(d *cxxast.ClassTemplateDecl) {
	t.typeCtx.Push(d.Params)
	defer t.typeCtx.Pop()
	if d.TemplatedRec != nil {
		t.visitRecord(d.TemplatedRec)
	}
}

func (t *Traversal) visitFunctionTemplate(d *cxxast.FunctionTemplateDecl) {
	t.typeCtx.Push(d.Params)
	defer t.typeCtx.Pop()
	if d.TemplatedFunc != nil {
		t.visitFunction(d.TemplatedFunc)
	}
}

// visitRecord implements spec §4.7's RecordDecl/CXXRecordDecl rule.
func (t *Traversal) visitRecord(d *cxxast.RecordDecl) {
	outerId := BuildNodeIdForDecl(t.idx, t.sm, d)
	innerId := outerId
	if d.DescribedTemplate != nil {
		innerId = BuildNodeIdForDeclIndex(t.idx, t.sm, d, 0)
		t.recordTemplateAbstraction(d.DescribedTemplate, outerId, innerId)
	}

	if spec, ok := isStaticSpecialization(d); ok {
		if templateId, ok := t.lowerer.templateOf(spec); ok {
			args := make([]NodeId, 0, len(spec.Args)+1)
			args = append(args, templateId)
			for _, a := range spec.Args {
				if la, ok := t.lowerer.lowerTemplateArgument(a, &t.rangeCtx, &t.typeCtx); ok {
					args = append(args, la)
				}
			}
			tappId := t.obs.RecordTappNode(templateId, args)
			t.obs.RecordSpecEdge(outerId, tappId)
		}
		if spec.IsImplicit {
			t.rangeCtx.Push(outerId)
			defer t.rangeCtx.Pop()
		}
	}

	name := BuildNameIdForDecl(t.idx, d)
	t.obs.RecordNamedEdge(innerId, name)

	span := t.resolver.RangeForNameOfDeclaration(d)
	t.obs.RecordDefinitionRange(RangeInCurrentContext(&t.rangeCtx, span), innerId)

	if d.IsDefn {
		r := RangeInCurrentContext(&t.rangeCtx, span)
		for _, redecl := range d.Redecls() {
			if redecl == d {
				continue
			}
			t.obs.RecordCompletionRange(r, BuildNodeIdForDecl(t.idx, t.sm, redecl), t.completionSpecificity(d, redecl))
		}
	}

	kind := recordKindOf(d.RKind)
	t.obs.RecordRecordNode(innerId, kind, t.completenessOf(d.IsDefn))

	for _, f := range d.Fields {
		t.visitVar(f)
		t.obs.RecordChildOfEdge(BuildNodeIdForDecl(t.idx, t.sm, f), innerId)
	}
}

func recordKindOf(k cxxast.RecordKind) RecordKind {
	switch k {
	case cxxast.RecordClass:
		return Class
	case cxxast.RecordUnion:
		return Union
	default:
		return Struct
	}
}

// recordTemplateAbstraction emits the abstraction node and parameter
// edges for a templated record's ClassTemplateDecl, plus the
// child-of back-edge from the abstraction to the templated body
// (spec §4.7: "RecordTemplate emit[s] the abstraction node, parameter
// edges, and child-of back-edge").
func (t *Traversal) recordTemplateAbstraction(ct *cxxast.ClassTemplateDecl, outerId, innerId NodeId) {
	t.obs.RecordAbsNode(outerId)
	if ct.Params == nil {
		return
	}
	for i, p := range ct.Params.Params {
		paramId := t.templateParamId(p)
		t.obs.RecordAbsVarNode(paramId)
		t.obs.RecordParamEdge(outerId, i, paramId)
	}
	t.obs.RecordChildOfEdge(innerId, outerId)
}

func (t *Traversal) templateParamId(p cxxast.Decl) NodeId {
	return BuildNodeIdForDecl(t.idx, t.sm, p)
}

// visitTypedefName implements spec §4.7's TypedefNameDecl rule.
func (t *Traversal) visitTypedefName(d *cxxast.TypedefNameDecl) {
	if d.IsBuiltinAlias {
		return
	}
	id := BuildNodeIdForDecl(t.idx, t.sm, d)
	name := BuildNameIdForDecl(t.idx, d)
	aliased := t.lowerer.Lower(d.Underlying, &t.rangeCtx, &t.typeCtx, false)
	var aliasedId NodeId
	if aliased.Present() {
		aliasedId = aliased.Primary()
	}
	t.obs.RecordTypeAliasNode(id, name, aliasedId)
	t.obs.RecordNamedEdge(id, name)
	span := t.resolver.RangeForNameOfDeclaration(d)
	t.obs.RecordDefinitionRange(RangeInCurrentContext(&t.rangeCtx, span), id)
}

// visitFunction implements spec §4.7's FunctionDecl rule across its
// five flavours.
func (t *Traversal) visitFunction(d *cxxast.FunctionDecl) {
	outerId := BuildNodeIdForDecl(t.idx, t.sm, d)
	innerId := outerId
	if d.Flavor == cxxast.FlavorTemplateAbstraction && d.DescribedTemplate != nil {
		innerId = BuildNodeIdForDeclIndex(t.idx, t.sm, d, 0)
		t.obs.RecordAbsNode(outerId)
		if d.DescribedTemplate.Params != nil {
			for i, p := range d.DescribedTemplate.Params.Params {
				paramId := t.templateParamId(p)
				t.obs.RecordAbsVarNode(paramId)
				t.obs.RecordParamEdge(outerId, i, paramId)
			}
		}
		t.obs.RecordChildOfEdge(innerId, outerId)
	}

	if len(d.TemplateArgs) > 0 && d.SpecializationOf != nil {
		templateId := BuildNodeIdForDecl(t.idx, t.sm, d.SpecializationOf)
		args := make([]NodeId, 0, len(d.TemplateArgs)+1)
		args = append(args, templateId)
		for _, a := range d.TemplateArgs {
			if la, ok := t.lowerer.lowerTemplateArgument(a, &t.rangeCtx, &t.typeCtx); ok {
				args = append(args, la)
			}
		}
		tappId := t.obs.RecordTappNode(templateId, args)
		t.obs.RecordSpecEdge(outerId, tappId)
	}

	name := BuildNameIdForDecl(t.idx, d)
	t.obs.RecordNamedEdge(innerId, name)

	t.blame.Push(outerId)
	for _, p := range d.Params {
		t.visitParam(p, innerId)
	}

	t.ascribeType(innerId, d.Type)

	callableKey := BuildNodeIdForCallableDecl(t.idx, d).Signature
	if !t.canonicalCallable[callableKey] {
		t.canonicalCallable[callableKey] = true
		callableId := BuildNodeIdForCallableDecl(t.idx, d)
		t.obs.RecordCallableNode(callableId)
		t.obs.RecordCallableAsEdge(outerId, callableId)
		callableTypeId := t.obs.NodeIdForBuiltinType("callable-type")
		t.obs.RecordTypeEdge(callableId, callableTypeId)
		if d.OwningRecord != nil {
			recordId := BuildNodeIdForDecl(t.idx, t.sm, d.OwningRecord)
			t.obs.RecordChildOfEdge(outerId, recordId)
			if d.IsOperatorCall {
				t.obs.RecordCallableAsEdge(recordId, callableId)
			}
		}
	}

	t.obs.RecordFunctionNode(innerId, t.completenessOf(d.IsDefn))

	span := t.resolver.RangeForNameOfDeclaration(d)
	t.obs.RecordDefinitionRange(RangeInCurrentContext(&t.rangeCtx, span), innerId)

	if d.IsDefn {
		r := RangeInCurrentContext(&t.rangeCtx, span)
		for _, redecl := range d.Redecls() {
			if redecl == d {
				continue
			}
			t.obs.RecordCompletionRange(r, BuildNodeIdForDecl(t.idx, t.sm, redecl), t.completionSpecificity(d, redecl))
		}
	}

	for _, e := range d.Body {
		t.visitExpr(e)
	}

	t.blame.Pop()
}

// visitExpr recurses through the small set of expression kinds the
// driver inspects (spec §4.7: CallExpr, DeclRefExpr), attributing any
// call edge found to the innermost enclosing function on the blame
// stack.
func (t *Traversal) visitExpr(e cxxast.Expr) {
	switch v := e.(type) {
	case *cxxast.CallExpr:
		t.visitExpr(v.Callee)
		for _, a := range v.Args {
			t.visitExpr(a)
		}
		if fn, ok := calleeFunctionOf(v); ok {
			t.VisitCallExpr(v, fn)
		}
	case *cxxast.DeclRefExpr:
		t.VisitDeclRefExpr(v)
	}
}

// calleeFunctionOf resolves a CallExpr's callee to the FunctionDecl it
// names, when the callee is a direct reference (no indirect calls
// through function pointers in this core, per spec §4.7).
func calleeFunctionOf(call *cxxast.CallExpr) (*cxxast.FunctionDecl, bool) {
	ref, ok := call.Callee.(*cxxast.DeclRefExpr)
	if !ok {
		return nil, false
	}
	fn, ok := ref.Referenced.(*cxxast.FunctionDecl)
	return fn, ok
}

func (t *Traversal) visitParam(p *cxxast.ParmVarDecl, funcId NodeId) {
	id := BuildNodeIdForDecl(t.idx, t.sm, p)
	name := BuildNameIdForDecl(t.idx, p)
	t.obs.RecordVariableNode(name, id, t.completenessOf(p.IsDefinition()))
	t.obs.RecordParamEdge(funcId, paramOrdinal(p), id)
	t.ascribeType(id, p.Type)
}

func paramOrdinal(p *cxxast.ParmVarDecl) int {
	for i, sibling := range p.Owner.Params {
		if sibling == p {
			return i
		}
	}
	return 0
}

// VisitCallExpr implements spec §4.7's CallExpr rule.
func (t *Traversal) VisitCallExpr(call *cxxast.CallExpr, calleeFunc *cxxast.FunctionDecl) {
	if t.blame.Empty() || calleeFunc == nil {
		return
	}
	callableId := BuildNodeIdForCallableDecl(t.idx, calleeFunc)
	span := srcman.Range{Begin: call.Pos(), End: call.End()}
	t.obs.RecordCallEdge(RangeInCurrentContext(&t.rangeCtx, span), t.blame.Top(), callableId)
}

// VisitDeclRefExpr implements spec §4.7's DeclRefExpr rule.
func (t *Traversal) VisitDeclRefExpr(ref *cxxast.DeclRefExpr) {
	if ref.IsNonTypeTemplateParam {
		return
	}
	id := BuildNodeIdForDecl(t.idx, t.sm, ref.Referenced)
	span := t.resolver.RangeForASTEntityFromSourceLocation(ref.Pos())
	t.obs.RecordDeclUseLocation(RangeInCurrentContext(&t.rangeCtx, span), id)
}
