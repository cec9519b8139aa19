package cxxast

import "github.com/kythe-go/cxxindex/internal/srcman"

// These constructors build the concrete TypeLoc variants from outside
// the package. Without them only this package's own decoder could
// produce a TypeLoc at all, which would make the cxxast tree opaque to
// any other AST provider wanting to hand this indexer a tree directly
// (e.g. a test fixture, or a future non-JSON frontend).

func newTypeLocBase(span srcman.Range, can *Type, quals CVR) typeLocBase {
	return typeLocBase{Span: span, Can: can, Quals: quals}
}

func NewQualifiedTypeLoc(span srcman.Range, can *Type, quals CVR, inner TypeLoc, localQuals CVR) *QualifiedTypeLoc {
	return &QualifiedTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Inner: inner, LocalQuals: localQuals}
}

func NewBuiltinTypeLoc(span srcman.Range, can *Type, quals CVR, spelling string) *BuiltinTypeLoc {
	return &BuiltinTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Spelling: spelling}
}

func NewPointerTypeLoc(span srcman.Range, can *Type, quals CVR, pointee TypeLoc) *PointerTypeLoc {
	return &PointerTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Pointee: pointee}
}

func NewLValueReferenceTypeLoc(span srcman.Range, can *Type, quals CVR, referent TypeLoc) *LValueReferenceTypeLoc {
	return &LValueReferenceTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Referent: referent}
}

func NewRValueReferenceTypeLoc(span srcman.Range, can *Type, quals CVR, referent TypeLoc) *RValueReferenceTypeLoc {
	return &RValueReferenceTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Referent: referent}
}

func NewConstantArrayTypeLoc(span srcman.Range, can *Type, quals CVR, element TypeLoc, size int64) *ConstantArrayTypeLoc {
	return &ConstantArrayTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Element: element, Size: size}
}

func NewFunctionProtoTypeLoc(span srcman.Range, can *Type, quals CVR, result TypeLoc, params []TypeLoc, variadic bool) *FunctionProtoTypeLoc {
	return &FunctionProtoTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Result: result, Params: params, Variadic: variadic}
}

func NewFunctionNoProtoTypeLoc(span srcman.Range, can *Type, quals CVR) *FunctionNoProtoTypeLoc {
	return &FunctionNoProtoTypeLoc{typeLocBase: newTypeLocBase(span, can, quals)}
}

func NewParenTypeLoc(span srcman.Range, can *Type, quals CVR, inner TypeLoc) *ParenTypeLoc {
	return &ParenTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Inner: inner}
}

func NewTypedefTypeLoc(span srcman.Range, can *Type, quals CVR, decl *TypedefNameDecl) *TypedefTypeLoc {
	return &TypedefTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Decl: decl}
}

func NewRecordTypeLoc(span srcman.Range, can *Type, quals CVR, decl *RecordDecl) *RecordTypeLoc {
	return &RecordTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Decl: decl}
}

func NewEnumTypeLoc(span srcman.Range, can *Type, quals CVR, decl *EnumDecl) *EnumTypeLoc {
	return &EnumTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Decl: decl}
}

func NewElaboratedTypeLoc(span srcman.Range, can *Type, quals CVR, inner TypeLoc) *ElaboratedTypeLoc {
	return &ElaboratedTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Inner: inner}
}

func NewTemplateTypeParmTypeLoc(span srcman.Range, can *Type, quals CVR, decl *TemplateTypeParmDecl, depth, index int) *TemplateTypeParmTypeLoc {
	return &TemplateTypeParmTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Decl: decl, Depth: depth, Index: index}
}

func NewSubstTemplateTypeParmTypeLoc(span srcman.Range, can *Type, quals CVR, replacement TypeLoc) *SubstTemplateTypeParmTypeLoc {
	return &SubstTemplateTypeParmTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Replacement: replacement}
}

func NewTemplateSpecializationTypeLoc(span srcman.Range, can *Type, quals CVR, name TemplateName, args []TemplateArgument) *TemplateSpecializationTypeLoc {
	return &TemplateSpecializationTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Name: name, Args: args}
}

func NewInjectedClassNameTypeLoc(span srcman.Range, can *Type, quals CVR, decl *RecordDecl) *InjectedClassNameTypeLoc {
	return &InjectedClassNameTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), Decl: decl}
}

func NewDependentNameTypeLoc(span srcman.Range, can *Type, quals CVR, nns *NestedNameSpecifier, identifier string) *DependentNameTypeLoc {
	return &DependentNameTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), NNS: nns, Identifier: identifier}
}

func NewUnsupportedTypeLoc(span srcman.Range, can *Type, quals CVR, spellingKind string) *UnsupportedTypeLoc {
	return &UnsupportedTypeLoc{typeLocBase: newTypeLocBase(span, can, quals), SpellingKind: spellingKind}
}
