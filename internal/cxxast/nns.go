package cxxast

// NNSKind discriminates one link in a NestedNameSpecifier chain
// (`T::U::V`), per spec §4.6: "namespace/namespace-alias/global/
// type-spec-with-template are recorded only to the extent supported."
type NNSKind int

const (
	NNSIdentifier NNSKind = iota // a dependent identifier prefix, e.g. the "T" in "T::U" where T is a template parameter
	NNSNamespace
	NNSNamespaceAlias
	NNSTypeSpec
	NNSTypeSpecWithTemplate
	NNSGlobal
	NNSSuper
)

// NestedNameSpecifier is one link in a qualified-name prefix chain.
// Prefix is nil at the chain's root (or at NNSGlobal, the leading "::").
type NestedNameSpecifier struct {
	Kind       NNSKind
	Prefix     *NestedNameSpecifier
	Identifier string         // set when Kind == NNSIdentifier
	Namespace  *NamespaceDecl // set when Kind == NNSNamespace or NNSNamespaceAlias (resolved target)
	AliasName  string         // set when Kind == NNSNamespaceAlias (the alias spelling, not the path segment — DESIGN.md Open Question 2)
	Type       TypeLoc        // set when Kind == NNSTypeSpec or NNSTypeSpecWithTemplate
}
