package cxxast

import "github.com/kythe-go/cxxindex/internal/srcman"

// DeclKind discriminates the declaration node variants the traversal
// driver (C7) has per-kind entry hooks for.
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclTranslationUnit
	DeclNamespace
	DeclVar
	DeclParmVar
	DeclFunction
	DeclRecord
	DeclEnum
	DeclEnumConstant
	DeclTypedefName
	DeclClassTemplate
	DeclFunctionTemplate
	DeclClassTemplateSpecialization
	DeclClassTemplatePartialSpecialization
	DeclVarTemplatePartialSpecialization
	DeclTemplateTypeParm
	DeclNonTypeTemplateParm
	DeclTemplateTemplateParm
)

func (k DeclKind) String() string {
	switch k {
	case DeclTranslationUnit:
		return "TranslationUnit"
	case DeclNamespace:
		return "Namespace"
	case DeclVar:
		return "Var"
	case DeclParmVar:
		return "ParmVar"
	case DeclFunction:
		return "Function"
	case DeclRecord:
		return "Record"
	case DeclEnum:
		return "Enum"
	case DeclEnumConstant:
		return "EnumConstant"
	case DeclTypedefName:
		return "TypedefName"
	case DeclClassTemplate:
		return "ClassTemplate"
	case DeclFunctionTemplate:
		return "FunctionTemplate"
	case DeclClassTemplateSpecialization:
		return "ClassTemplateSpecialization"
	case DeclClassTemplatePartialSpecialization:
		return "ClassTemplatePartialSpecialization"
	case DeclVarTemplatePartialSpecialization:
		return "VarTemplatePartialSpecialization"
	case DeclTemplateTypeParm:
		return "TemplateTypeParm"
	case DeclNonTypeTemplateParm:
		return "NonTypeTemplateParm"
	case DeclTemplateTemplateParm:
		return "TemplateTemplateParm"
	default:
		return "Unknown"
	}
}

// Node is the base interface every AST entity (declaration, statement,
// type-loc, expression, or nested-name-specifier component) implements.
type Node interface {
	Pos() srcman.Location
	End() srcman.Location
	String() string
}

// Decl is the base declaration interface. Every declaration exposes
// enough of its surrounding structure (lexical parent, redeclaration
// chain) for the parent index (C3) and identity builder (C2) to walk
// without needing kind-specific accessors for that part.
type Decl interface {
	Node
	Kind() DeclKind
	LexicalParent() Decl
	// Redecls returns the recorded redeclaration chain of this entity,
	// or nil when no chain was recorded for it.
	Redecls() []Decl
	// Definition returns the declaration that defines this entity, or
	// nil if none is visible in this translation unit.
	Definition() Decl
}

// NamedDecl is a Decl that contributes a name token to NameId path
// construction.
type NamedDecl interface {
	Decl
	// Name returns the declaration's identifier, or "" for anonymous
	// entities (anonymous namespaces, unnamed unions).
	Name() string
	// NameLoc returns the location of the name token itself (as
	// opposed to the whole declaration's span).
	NameLoc() srcman.Location
}

// DeclBase holds the fields common to every concrete declaration type
// and is embedded by each of them, mirroring the teacher's embedding
// of token/position fields across its own AST node structs.
type DeclBase struct {
	Span    srcman.Range
	Parent  Decl
	Redecl  []Decl // set by whoever builds the node; the JSON decoder leaves it empty
	Defn    Decl   // nil if no definition is visible; the JSON decoder leaves it nil
}

func (d *DeclBase) Pos() srcman.Location   { return d.Span.Begin }
func (d *DeclBase) End() srcman.Location   { return d.Span.End }
func (d *DeclBase) LexicalParent() Decl    { return d.Parent }
func (d *DeclBase) Redecls() []Decl {
	if len(d.Redecl) == 0 {
		return nil
	}
	return d.Redecl
}
func (d *DeclBase) Definition() Decl { return d.Defn }

// TranslationUnitDecl is the traversal root.
type TranslationUnitDecl struct {
	DeclBase
	Decls []Decl
}

func (d *TranslationUnitDecl) Kind() DeclKind  { return DeclTranslationUnit }
func (d *TranslationUnitDecl) String() string  { return "<translation-unit>" }

// NamespaceDecl; Name == "" denotes an anonymous namespace, which
// contributes the "@" path token (spec §3).
type NamespaceDecl struct {
	DeclBase
	Ident string
	Decls []Decl
}

func (d *NamespaceDecl) Kind() DeclKind          { return DeclNamespace }
func (d *NamespaceDecl) Name() string            { return d.Ident }
func (d *NamespaceDecl) NameLoc() srcman.Location { return d.Span.Begin }
func (d *NamespaceDecl) String() string          { return "namespace " + d.Ident }

// VarDecl covers non-parameter variables. Parameters use ParmVarDecl.
type VarDecl struct {
	DeclBase
	Ident    string
	NameLocV srcman.Location
	Type     TypeLoc
	IsDefn   bool // true iff this occurrence has an initializer / storage
}

func (d *VarDecl) Kind() DeclKind           { return DeclVar }
func (d *VarDecl) Name() string             { return d.Ident }
func (d *VarDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *VarDecl) String() string           { return "var " + d.Ident }

// IsDefinition reports whether this VarDecl occurrence is a
// definition, following the Kythe original's rule directly (carried
// from IndexerASTHooks.cc per SPEC_FULL.md §4).
func (d *VarDecl) IsDefinition() bool { return d.IsDefn }

// ParmVarDecl is handled by its enclosing FunctionDecl (spec §4.7); it
// is never visited as a top-level declaration.
type ParmVarDecl struct {
	DeclBase
	Ident    string
	NameLocV srcman.Location
	Type     TypeLoc
	Owner    *FunctionDecl
}

func (d *ParmVarDecl) Kind() DeclKind           { return DeclParmVar }
func (d *ParmVarDecl) Name() string             { return d.Ident }
func (d *ParmVarDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *ParmVarDecl) String() string           { return "parm " + d.Ident }

// IsDefinition for a ParmVarDecl is true iff its owning function is a
// definition (SPEC_FULL.md §4's carried parameter special-case).
func (d *ParmVarDecl) IsDefinition() bool {
	return d.Owner != nil && d.Owner.IsDefn
}

// FunctionFlavor distinguishes the five FunctionDecl shapes spec §4.7
// names.
type FunctionFlavor int

const (
	FlavorPlain FunctionFlavor = iota
	FlavorTemplateAbstraction
	FlavorMemberSpecialization
	FlavorTemplateSpecialization
	FlavorDependentSpecialization
)

// FunctionDecl. Flavor/DescribedTemplate/SpecializationOf/TemplateArgs
// encode the five shapes the traversal driver (C7) distinguishes.
type FunctionDecl struct {
	DeclBase
	Ident             string
	NameLocV          srcman.Location
	Params            []*ParmVarDecl
	Type              TypeLoc // FunctionProto/FunctionNoProto
	IsDefn            bool
	Flavor            FunctionFlavor
	DescribedTemplate *FunctionTemplateDecl // non-nil when Flavor == FlavorTemplateAbstraction
	SpecializationOf  Decl                  // the templated decl, when Flavor implies a specialization
	TemplateArgs      []TemplateArgument
	IsOperatorCall    bool // true for operator()
	OwningRecord      Decl // non-nil for member functions
	// Body holds the definition's top-level expressions, walked by the
	// traversal driver for CallExpr/DeclRefExpr (spec §4.7); nil for a
	// declaration with no visible definition.
	Body []Expr
}

func (d *FunctionDecl) Kind() DeclKind           { return DeclFunction }
func (d *FunctionDecl) Name() string             { return d.Ident }
func (d *FunctionDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *FunctionDecl) String() string           { return "func " + d.Ident }
func (d *FunctionDecl) IsDefinition() bool       { return d.IsDefn }

// RecordKind is Struct, Class, or Union (spec §3: struct and class
// collapse to the same EqClass but RecordKind keeps them distinct for
// the observer's recordRecordNode call).
type RecordKind int

const (
	RecordStruct RecordKind = iota
	RecordClass
	RecordUnion
)

// RecordDecl covers plain records, CXXRecordDecl, and the templated
// record body of a ClassTemplateDecl.
type RecordDecl struct {
	DeclBase
	Ident             string
	NameLocV          srcman.Location
	RKind             RecordKind
	IsDefn            bool
	DescribedTemplate *ClassTemplateDecl // non-nil when this is the templated body of a class template
	SpecializationOf  Decl               // non-nil for class-template (partial) specializations
	TemplateArgs      []TemplateArgument
	Fields            []*VarDecl
}

func (d *RecordDecl) Kind() DeclKind           { return DeclRecord }
func (d *RecordDecl) Name() string             { return d.Ident }
func (d *RecordDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *RecordDecl) String() string           { return "record " + d.Ident }
func (d *RecordDecl) IsDefinition() bool       { return d.IsDefn }

// EnumScope is Scoped (enum class) or Unscoped (plain enum).
type EnumScope int

const (
	EnumUnscoped EnumScope = iota
	EnumScoped
)

type EnumDecl struct {
	DeclBase
	Ident          string
	NameLocV       srcman.Location
	Scope          EnumScope
	IsDefn         bool
	UnderlyingType TypeLoc // nil if not explicitly specified
	Constants      []*EnumConstantDecl
}

func (d *EnumDecl) Kind() DeclKind           { return DeclEnum }
func (d *EnumDecl) Name() string             { return d.Ident }
func (d *EnumDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *EnumDecl) String() string           { return "enum " + d.Ident }
func (d *EnumDecl) IsDefinition() bool       { return d.IsDefn }

type EnumConstantDecl struct {
	DeclBase
	Ident       string
	NameLocV    srcman.Location
	Value       int64
	OwningEnum  *EnumDecl
}

func (d *EnumConstantDecl) Kind() DeclKind           { return DeclEnumConstant }
func (d *EnumConstantDecl) Name() string             { return d.Ident }
func (d *EnumConstantDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *EnumConstantDecl) String() string           { return "enumerator " + d.Ident }

// TypedefNameDecl covers both `typedef` and `using Alias = T;` forms.
type TypedefNameDecl struct {
	DeclBase
	Ident         string
	NameLocV      srcman.Location
	Underlying    TypeLoc
	IsBuiltinAlias bool // true for the compiler-builtin varargs/__int128 aliases, which are skipped (spec §4.7)
}

func (d *TypedefNameDecl) Kind() DeclKind           { return DeclTypedefName }
func (d *TypedefNameDecl) Name() string             { return d.Ident }
func (d *TypedefNameDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *TypedefNameDecl) String() string           { return "typedef " + d.Ident }

// TemplateParameterList is the ordered parameter list pushed onto the
// type-context stack (C8) for the duration of a templated body's
// traversal.
type TemplateParameterList struct {
	Params []Decl // each a TemplateTypeParmDecl, NonTypeTemplateParmDecl, or TemplateTemplateParmDecl
}

type ClassTemplateDecl struct {
	DeclBase
	Ident        string
	NameLocV     srcman.Location
	Params       *TemplateParameterList
	TemplatedRec *RecordDecl
}

func (d *ClassTemplateDecl) Kind() DeclKind           { return DeclClassTemplate }
func (d *ClassTemplateDecl) Name() string             { return d.Ident }
func (d *ClassTemplateDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *ClassTemplateDecl) String() string           { return "template class " + d.Ident }

type FunctionTemplateDecl struct {
	DeclBase
	Ident         string
	NameLocV      srcman.Location
	Params        *TemplateParameterList
	TemplatedFunc *FunctionDecl
}

func (d *FunctionTemplateDecl) Kind() DeclKind           { return DeclFunctionTemplate }
func (d *FunctionTemplateDecl) Name() string             { return d.Ident }
func (d *FunctionTemplateDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *FunctionTemplateDecl) String() string           { return "template func " + d.Ident }

// ClassTemplateSpecializationDecl is an explicit or implicit full
// specialization; ClassTemplatePartialSpecializationDecl additionally
// carries its own parameter list.
type ClassTemplateSpecializationDecl struct {
	RecordDecl
	Template     *ClassTemplateDecl
	Args         []TemplateArgument
	IsImplicit   bool
}

type ClassTemplatePartialSpecializationDecl struct {
	ClassTemplateSpecializationDecl
	Params *TemplateParameterList
}

type VarTemplatePartialSpecializationDecl struct {
	VarDecl
	Template *Decl // the VarTemplateDecl (not separately modeled; represented generically)
	Args     []TemplateArgument
	Params   *TemplateParameterList
}

type TemplateTypeParmDecl struct {
	DeclBase
	Ident    string
	NameLocV srcman.Location
	Depth    int
	Index    int
}

func (d *TemplateTypeParmDecl) Kind() DeclKind           { return DeclTemplateTypeParm }
func (d *TemplateTypeParmDecl) Name() string             { return d.Ident }
func (d *TemplateTypeParmDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *TemplateTypeParmDecl) String() string           { return "template-type-parm " + d.Ident }

type NonTypeTemplateParmDecl struct {
	DeclBase
	Ident    string
	NameLocV srcman.Location
	Depth    int
	Index    int
	Type     TypeLoc
}

func (d *NonTypeTemplateParmDecl) Kind() DeclKind           { return DeclNonTypeTemplateParm }
func (d *NonTypeTemplateParmDecl) Name() string             { return d.Ident }
func (d *NonTypeTemplateParmDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *NonTypeTemplateParmDecl) String() string           { return "non-type-template-parm " + d.Ident }

type TemplateTemplateParmDecl struct {
	DeclBase
	Ident    string
	NameLocV srcman.Location
	Depth    int
	Index    int
	Params   *TemplateParameterList
}

func (d *TemplateTemplateParmDecl) Kind() DeclKind           { return DeclTemplateTemplateParm }
func (d *TemplateTemplateParmDecl) Name() string             { return d.Ident }
func (d *TemplateTemplateParmDecl) NameLoc() srcman.Location { return d.NameLocV }
func (d *TemplateTemplateParmDecl) String() string           { return "template-template-parm " + d.Ident }
