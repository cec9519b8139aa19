package cxxast

import "github.com/kythe-go/cxxindex/internal/srcman"

// CVR is the qualifier bitset (const/volatile/restrict) local to one
// Qualified wrapper, used both by Type and by the type-node cache key
// (spec §3: "canonical type key ... plus its CVR-qualifier bits").
type CVR uint8

const (
	CVRConst CVR = 1 << iota
	CVRVolatile
	CVRRestrict
)

// Type is the canonical (possibly shared) type representation. Pointer
// identity of *Type is the canonical-type-pointer half of the type
// cache key; two TypeLocs describing the same canonical type share the
// same *Type.
type Type struct {
	id string // opaque debugging tag; not used for identity
}

func (t *Type) String() string { return t.id }

// NewType constructs a Type with a debugging tag. Canonical-type
// sharing is the decoder's responsibility: it must hand out the same
// *Type value for two TypeLocs the frontend considers identical after
// canonicalization.
func NewType(tag string) *Type { return &Type{id: tag} }

// TypeLocKind enumerates the structural cases spec §4.5 switches over.
type TypeLocKind int

const (
	TLUnsupported TypeLocKind = iota
	TLQualified
	TLBuiltin
	TLPointer
	TLLValueReference
	TLRValueReference
	TLConstantArray
	TLFunctionProto
	TLFunctionNoProto
	TLParen
	TLTypedef
	TLRecord
	TLEnum
	TLElaborated
	TLTemplateTypeParm
	TLSubstTemplateTypeParm
	TLTemplateSpecialization
	TLInjectedClassName
	TLDependentName
)

// TypeLoc is one spelled occurrence of a type, at a specific source
// location, over a canonical Type. BuildNodeIdForType (C6) lowers a
// TypeLoc; the result is cached keyed on (Canonical(), Qualifiers()).
type TypeLoc interface {
	Node
	LocKind() TypeLocKind
	Canonical() *Type
	Qualifiers() CVR
}

// typeLocBase is embedded by every concrete TypeLoc.
type typeLocBase struct {
	Span srcman.Range
	Can  *Type
	Quals CVR
}

func (t *typeLocBase) Pos() srcman.Location { return t.Span.Begin }
func (t *typeLocBase) End() srcman.Location { return t.Span.End }
func (t *typeLocBase) Canonical() *Type     { return t.Can }
func (t *typeLocBase) Qualifiers() CVR      { return t.Quals }

type QualifiedTypeLoc struct {
	typeLocBase
	Inner      TypeLoc
	LocalQuals CVR // the qualifier bits added at this wrapper, as opposed to Quals (cumulative)
}

func (t *QualifiedTypeLoc) LocKind() TypeLocKind { return TLQualified }
func (t *QualifiedTypeLoc) String() string       { return "qualified" }

type BuiltinTypeLoc struct {
	typeLocBase
	Spelling string // "int", "bool", "void", …
}

func (t *BuiltinTypeLoc) LocKind() TypeLocKind { return TLBuiltin }
func (t *BuiltinTypeLoc) String() string       { return t.Spelling }

type PointerTypeLoc struct {
	typeLocBase
	Pointee TypeLoc
}

func (t *PointerTypeLoc) LocKind() TypeLocKind { return TLPointer }
func (t *PointerTypeLoc) String() string       { return t.Pointee.String() + "*" }

type LValueReferenceTypeLoc struct {
	typeLocBase
	Referent TypeLoc
}

func (t *LValueReferenceTypeLoc) LocKind() TypeLocKind { return TLLValueReference }
func (t *LValueReferenceTypeLoc) String() string       { return t.Referent.String() + "&" }

type RValueReferenceTypeLoc struct {
	typeLocBase
	Referent TypeLoc
}

func (t *RValueReferenceTypeLoc) LocKind() TypeLocKind { return TLRValueReference }
func (t *RValueReferenceTypeLoc) String() string       { return t.Referent.String() + "&&" }

// ConstantArrayTypeLoc: the size expression is deferred per spec §9's
// open question; Size carries the evaluated bound for the decided
// identity policy (DESIGN.md Open Question 1).
type ConstantArrayTypeLoc struct {
	typeLocBase
	Element TypeLoc
	Size    int64
}

func (t *ConstantArrayTypeLoc) LocKind() TypeLocKind { return TLConstantArray }
func (t *ConstantArrayTypeLoc) String() string       { return t.Element.String() + "[]" }

type FunctionProtoTypeLoc struct {
	typeLocBase
	Result   TypeLoc
	Params   []TypeLoc
	Variadic bool
}

func (t *FunctionProtoTypeLoc) LocKind() TypeLocKind { return TLFunctionProto }
func (t *FunctionProtoTypeLoc) String() string       { return "fn(...)" }

type FunctionNoProtoTypeLoc struct {
	typeLocBase
}

func (t *FunctionNoProtoTypeLoc) LocKind() TypeLocKind { return TLFunctionNoProto }
func (t *FunctionNoProtoTypeLoc) String() string       { return "knrfn" }

type ParenTypeLoc struct {
	typeLocBase
	Inner TypeLoc
}

func (t *ParenTypeLoc) LocKind() TypeLocKind { return TLParen }
func (t *ParenTypeLoc) String() string       { return "(" + t.Inner.String() + ")" }

type TypedefTypeLoc struct {
	typeLocBase
	Decl *TypedefNameDecl
}

func (t *TypedefTypeLoc) LocKind() TypeLocKind { return TLTypedef }
func (t *TypedefTypeLoc) String() string       { return t.Decl.Ident }

type RecordTypeLoc struct {
	typeLocBase
	Decl *RecordDecl
}

func (t *RecordTypeLoc) LocKind() TypeLocKind { return TLRecord }
func (t *RecordTypeLoc) String() string       { return t.Decl.Ident }

type EnumTypeLoc struct {
	typeLocBase
	Decl *EnumDecl
}

func (t *EnumTypeLoc) LocKind() TypeLocKind { return TLEnum }
func (t *EnumTypeLoc) String() string       { return t.Decl.Ident }

type ElaboratedTypeLoc struct {
	typeLocBase
	Inner TypeLoc
}

func (t *ElaboratedTypeLoc) LocKind() TypeLocKind { return TLElaborated }
func (t *ElaboratedTypeLoc) String() string       { return t.Inner.String() }

// TemplateTypeParmTypeLoc: Decl is non-nil when the parameter
// declaration is directly reachable; otherwise Depth/Index are used to
// resolve through the type-context stack (spec §4.5).
type TemplateTypeParmTypeLoc struct {
	typeLocBase
	Decl  *TemplateTypeParmDecl
	Depth int
	Index int
}

func (t *TemplateTypeParmTypeLoc) LocKind() TypeLocKind { return TLTemplateTypeParm }
func (t *TemplateTypeParmTypeLoc) String() string       { return "template-type-parm" }

type SubstTemplateTypeParmTypeLoc struct {
	typeLocBase
	Replacement TypeLoc
}

func (t *SubstTemplateTypeParmTypeLoc) LocKind() TypeLocKind { return TLSubstTemplateTypeParm }
func (t *SubstTemplateTypeParmTypeLoc) String() string       { return t.Replacement.String() }

type TemplateSpecializationTypeLoc struct {
	typeLocBase
	Name TemplateName
	Args []TemplateArgument
}

func (t *TemplateSpecializationTypeLoc) LocKind() TypeLocKind { return TLTemplateSpecialization }
func (t *TemplateSpecializationTypeLoc) String() string       { return "template-specialization" }

type InjectedClassNameTypeLoc struct {
	typeLocBase
	Decl *RecordDecl
}

func (t *InjectedClassNameTypeLoc) LocKind() TypeLocKind { return TLInjectedClassName }
func (t *InjectedClassNameTypeLoc) String() string       { return t.Decl.Ident }

type DependentNameTypeLoc struct {
	typeLocBase
	NNS        *NestedNameSpecifier
	Identifier string
}

func (t *DependentNameTypeLoc) LocKind() TypeLocKind { return TLDependentName }
func (t *DependentNameTypeLoc) String() string       { return "dependent-name:" + t.Identifier }

// UnsupportedTypeLoc represents the leaves spec §4.5 explicitly leaves
// unhandled (Complex, Vectors, MemberPointer, …). SpellingKind names
// the concrete AST kind for the unimplemented-construct counter.
type UnsupportedTypeLoc struct {
	typeLocBase
	SpellingKind string
}

func (t *UnsupportedTypeLoc) LocKind() TypeLocKind { return TLUnsupported }
func (t *UnsupportedTypeLoc) String() string       { return t.SpellingKind }
