package cxxast

// TemplateArgKind discriminates the shapes a TemplateArgument can take.
type TemplateArgKind int

const (
	TArgType TemplateArgKind = iota
	TArgExpression
	TArgDeclaration
	TArgIntegral
	TArgTemplate
	TArgPack
)

// TemplateArgument mirrors clang's TemplateArgument: exactly one of
// the fields is meaningful, selected by Kind.
type TemplateArgument struct {
	Kind    TemplateArgKind
	Type    TypeLoc
	Decl    Decl
	Integer int64
	Name    TemplateName
	Pack    []TemplateArgument
}

// TemplateNameKind discriminates a resolved template name from a
// dependent one (the dependent case feeds BuildNodeIdForDependentName,
// spec §4.6).
type TemplateNameKind int

const (
	TNameResolved TemplateNameKind = iota
	TNameDependent
)

// TemplateName names the template being applied in a
// TemplateSpecializationType: either a concrete templated Decl
// (ClassTemplateDecl/FunctionTemplateDecl) or a dependent name.
type TemplateName struct {
	Kind       TemplateNameKind
	Templated  Decl   // non-nil when Kind == TNameResolved
	Dependent  string // the spelled name when Kind == TNameDependent
}
