package xref

import (
	"strconv"
	"strings"

	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/srcman"
)

// EqClass is NameId's {None, Class, Union} tag; struct and class
// collapse to Class (spec §3).
type EqClass int

const (
	EqNone EqClass = iota
	EqClass_
	EqUnion
)

func (e EqClass) suffix() string {
	switch e {
	case EqClass_:
		return "c"
	case EqUnion:
		return "u"
	default:
		return "n"
	}
}

// NameId is the abstract lookup name for a declaration (spec §3): a
// colon-separated Path built from the translation-unit root down to
// the declaration, plus an EqClass tag.
type NameId struct {
	Path    string
	EqClass EqClass
}

// Printable renders a NameId as "<Path>#n|c|u".
func (n NameId) Printable() string {
	return n.Path + "#" + n.EqClass.suffix()
}

// NodeId is the opaque signature string used as graph identity (spec
// §3). Equal decls across translation units produce byte-equal
// NodeIds; distinct decls never collide.
type NodeId struct {
	Signature string
}

func (n NodeId) Printable() string { return n.Signature }

// operatorSentinel is the one path-token kind for overloaded operators
// (spec §3: "OO#<Name>" for overloaded operators, one sentinel per
// operator kind).
func operatorSentinel(opName string) string { return "OO#" + opName }

// pathToken computes the one path-segment contributed by d, per the
// rules in spec §3: identifier if named, "@" for an anonymous
// namespace, the operator sentinel for an overloaded operator, or the
// child ordinal otherwise.
func pathToken(idx *ParentIndex, d cxxast.Decl) string {
	if ns, ok := d.(*cxxast.NamespaceDecl); ok && ns.Ident == "" {
		return "@"
	}
	if fn, ok := d.(*cxxast.FunctionDecl); ok {
		if op, isOp := operatorSpelling(fn); isOp && !strings.HasPrefix(op, "conversion:") {
			return operatorSentinel(op)
		}
	}
	if nd, ok := d.(cxxast.NamedDecl); ok && nd.Name() != "" {
		return nd.Name()
	}
	_, ordinal, ok := idx.Parent(d)
	if !ok {
		ordinal = 0
	}
	return strconv.Itoa(ordinal)
}

// isTemplatedRecordBody reports whether d is the templated record owned
// by a ClassTemplateDecl; when ascending the parent chain such a
// record's own path token is used but the synthetic ClassTemplateDecl
// parent link is skipped, so the record's name isn't duplicated as
// "C:C" (spec §3).
func isTemplatedRecordBody(d cxxast.Decl) bool {
	r, ok := d.(*cxxast.RecordDecl)
	return ok && r.DescribedTemplate != nil
}

// ascend returns the next ancestor to visit when walking toward the
// TU root, skipping a ClassTemplateDecl that merely wraps the record
// whose path token was already emitted.
func ascend(idx *ParentIndex, d cxxast.Decl) cxxast.Decl {
	parent, _, ok := idx.Parent(d)
	if !ok {
		return nil
	}
	if ct, ok := parent.(*cxxast.ClassTemplateDecl); ok && isTemplatedRecordBody(d) {
		p2, _, ok2 := idx.Parent(ct)
		if ok2 {
			return p2
		}
		return nil
	}
	return parent
}

// declEqClass derives a NameId's EqClass from D's own kind: for tag
// decls it reflects struct/class/union (struct and class both collapse
// to EqClass_ = "c"); for a class template it delegates to the
// templated record.
func declEqClass(d cxxast.Decl) EqClass {
	switch v := d.(type) {
	case *cxxast.RecordDecl:
		if v.RKind == cxxast.RecordUnion {
			return EqUnion
		}
		return EqClass_
	case *cxxast.ClassTemplateDecl:
		if v.TemplatedRec != nil {
			return declEqClass(v.TemplatedRec)
		}
		return EqNone
	default:
		return EqNone
	}
}

// BuildNameIdForDecl walks from D upward through parents (C3),
// appending one path token per ancestor, and derives D's EqClass
// (spec §4.2).
func BuildNameIdForDecl(idx *ParentIndex, d cxxast.Decl) NameId {
	var tokens []string
	cur := d
	for cur != nil {
		if _, isTU := cur.(*cxxast.TranslationUnitDecl); isTU {
			break
		}
		tokens = append(tokens, pathToken(idx, cur))
		cur = ascend(idx, cur)
	}
	// tokens were collected root-most-last; reverse to root-first.
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return NameId{Path: strings.Join(tokens, ":"), EqClass: declEqClass(d)}
}

// implicitSpecialization reports whether d is an implicitly
// instantiated class-template specialization, and if so returns d
// itself (used as the single disambiguator that lets the ancestry walk
// stop early, per spec §3's "implicit specialisation short-cut").
// Function-template specializations are not recognized here.
func implicitSpecialization(d cxxast.Decl) (cxxast.Decl, bool) {
	switch v := d.(type) {
	case *cxxast.ClassTemplateSpecializationDecl:
		if v.IsImplicit {
			return d, true
		}
	}
	return nil, false
}

// templateArgsOf returns the template-argument list attached to d, if
// any, for specialization-disambiguator hashing.
func templateArgsOf(d cxxast.Decl) ([]cxxast.TemplateArgument, bool) {
	switch v := d.(type) {
	case *cxxast.ClassTemplateSpecializationDecl:
		return v.Args, true
	case *cxxast.FunctionDecl:
		if len(v.TemplateArgs) > 0 {
			return v.TemplateArgs, true
		}
	}
	return nil, false
}

// isTemplateDeclBarrier reports whether d is one of the template
// "declaration barrier" kinds that contribute one '#' disambiguator
// per enclosing level while ascending (spec §3).
func isTemplateDeclBarrier(d cxxast.Decl) bool {
	switch d.(type) {
	case *cxxast.ClassTemplateDecl, *cxxast.FunctionTemplateDecl:
		return true
	default:
		return false
	}
}

// definitionMarker returns the body/definition disambiguator appended
// after the ancestry walk (spec §3): a record or enum body hash, or
// "D" for a defining function/variable declaration. ok is false when d
// does not define anything (a forward declaration, a plain reference).
func definitionMarker(d cxxast.Decl) (marker string, ok bool) {
	switch v := d.(type) {
	case *cxxast.RecordDecl:
		if v.IsDefn {
			return "#" + HashToString(SemanticHashRecordBody(v)), true
		}
	case *cxxast.EnumDecl:
		if v.IsDefn {
			return "#" + HashToString(SemanticHashEnumBody(v)), true
		}
	case *cxxast.FunctionDecl:
		if v.IsDefn {
			return "#D", true
		}
	case *cxxast.VarDecl:
		if v.IsDefn {
			return "#D", true
		}
	}
	return "", false
}

// BuildNodeIdForDecl builds the full opaque signature for d (spec
// §3/§4.2): NameId printable form, then template disambiguators walked
// from D to the root, then a definition marker, then the source
// location.
func BuildNodeIdForDecl(idx *ParentIndex, sm *srcman.Manager, d cxxast.Decl) NodeId {
	var b strings.Builder
	b.WriteString(BuildNameIdForDecl(idx, d).Printable())

	cur := d
	for cur != nil {
		if isTemplateDeclBarrier(cur) {
			b.WriteString("#")
		}
		if specDecl, isImplicit := implicitSpecialization(cur); isImplicit {
			parentId := BuildNodeIdForDecl(idx, sm, mustParent(idx, specDecl))
			b.WriteString("#" + parentId.Signature)
			break // stop ascending: the parent-chain id already encodes the differentiating arguments
		}
		if args, has := templateArgsOf(cur); has {
			b.WriteString("#" + HashToString(SemanticHashTemplateArgumentList(args)))
		}
		cur = ascend(idx, cur)
	}

	if marker, ok := definitionMarker(d); ok {
		b.WriteString(marker)
	}

	b.WriteString("@" + d.Pos().Printable(sm))
	return NodeId{Signature: b.String()}
}

func mustParent(idx *ParentIndex, d cxxast.Decl) cxxast.Decl {
	p, _, ok := idx.Parent(d)
	if !ok {
		return nil
	}
	return p
}

// BuildNodeIdForDeclIndex is BuildNodeIdForDecl with a ".<index>"
// suffix, used when a single declaration underlies two graph nodes
// (spec §3: e.g. a templated declaration's body vs. the abstraction
// binding its parameters).
func BuildNodeIdForDeclIndex(idx *ParentIndex, sm *srcman.Manager, d cxxast.Decl, index int) NodeId {
	base := BuildNodeIdForDecl(idx, sm, d)
	return NodeId{Signature: base.Signature + "." + strconv.Itoa(index)}
}

// BuildNodeIdForCallableDecl derives the callable id separately from
// the ordinary decl id (spec §4.2): all declarations of the same
// function share one callable node regardless of where they appear.
func BuildNodeIdForCallableDecl(idx *ParentIndex, fn *cxxast.FunctionDecl) NodeId {
	name := BuildNameIdForDecl(idx, fn)
	return NodeId{Signature: name.Printable() + "#" + HashToString(SemanticHashFunctionType(fn)) + "#callable"}
}
