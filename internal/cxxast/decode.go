package cxxast

import (
	"fmt"

	"github.com/kythe-go/cxxindex/internal/srcman"
	"github.com/tidwall/gjson"
)

// Decoder builds an in-memory cxxast tree from a JSON AST dump. It
// walks the untyped JSON with gjson rather than committing to a rigid
// encoding/json struct tree, matching the AST's role in this system as
// an opaquely "queryable frozen tree" (spec §6) rather than a fixed Go
// schema — a real frontend's dump format is expected to evolve faster
// than this indexer's struct definitions.
type Decoder struct {
	sm      *srcman.Manager
	typeTab map[string]*Type // canonical-type key -> shared Type, so alias chains collapse the way the frontend already canonicalized them
	declTab map[string]Decl  // "refersTo" key -> already-decoded Decl, for resolving DeclRefExpr/CallExpr callees
}

// NewDecoder returns a Decoder writing locations against sm.
func NewDecoder(sm *srcman.Manager) *Decoder {
	return &Decoder{sm: sm, typeTab: make(map[string]*Type), declTab: make(map[string]Decl)}
}

// Decode parses one JSON AST dump (the serialized form of a
// fully-resolved translation unit) into a TranslationUnitDecl.
func (d *Decoder) Decode(data []byte) (*TranslationUnitDecl, error) {
	root := gjson.ParseBytes(data)
	if !root.Get("kind").Exists() || root.Get("kind").String() != "TranslationUnit" {
		return nil, fmt.Errorf("cxxast: decode: root node is not a TranslationUnit")
	}
	tu := &TranslationUnitDecl{DeclBase: DeclBase{Span: d.span(root)}}
	for _, child := range root.Get("decls").Array() {
		if decl := d.decodeDecl(child, tu); decl != nil {
			tu.Decls = append(tu.Decls, decl)
		}
	}
	return tu, nil
}

func (d *Decoder) span(v gjson.Result) srcman.Range {
	begin := v.Get("range.begin")
	end := v.Get("range.end")
	mk := func(l gjson.Result) srcman.Location {
		if !l.Exists() {
			return srcman.Invalid
		}
		return srcman.Location{
			File:   srcman.FileID(l.Get("file").Int()),
			Offset: int32(l.Get("offset").Int()),
			Valid:  true,
		}
	}
	return srcman.Range{Begin: mk(begin), End: mk(end)}
}

func (d *Decoder) decodeDecl(v gjson.Result, parent Decl) Decl {
	switch v.Get("kind").String() {
	case "Namespace":
		n := &NamespaceDecl{
			DeclBase: DeclBase{Span: d.span(v), Parent: parent},
			Ident:    v.Get("name").String(),
		}
		for _, child := range v.Get("decls").Array() {
			if c := d.decodeDecl(child, n); c != nil {
				n.Decls = append(n.Decls, c)
			}
		}
		return n
	case "Var":
		vd := &VarDecl{
			DeclBase: DeclBase{Span: d.span(v), Parent: parent},
			Ident:    v.Get("name").String(),
			NameLocV: d.span(v).Begin,
			Type:     d.decodeTypeLoc(v.Get("type")),
			IsDefn:   v.Get("isDefinition").Bool(),
		}
		if id := v.Get("id").String(); id != "" {
			d.declTab[id] = vd
		}
		return vd
	case "Function":
		fn := &FunctionDecl{
			DeclBase: DeclBase{Span: d.span(v), Parent: parent},
			Ident:    v.Get("name").String(),
			NameLocV: d.span(v).Begin,
			Type:     d.decodeTypeLoc(v.Get("type")),
			IsDefn:   v.Get("isDefinition").Bool(),
		}
		for _, p := range v.Get("params").Array() {
			fn.Params = append(fn.Params, &ParmVarDecl{
				DeclBase: DeclBase{Span: d.span(p), Parent: fn},
				Ident:    p.Get("name").String(),
				NameLocV: d.span(p).Begin,
				Type:     d.decodeTypeLoc(p.Get("type")),
				Owner:    fn,
			})
		}
		if id := v.Get("id").String(); id != "" {
			d.declTab[id] = fn
		}
		for _, e := range v.Get("body").Array() {
			if expr := d.decodeExpr(e); expr != nil {
				fn.Body = append(fn.Body, expr)
			}
		}
		return fn
	case "Record":
		rec := &RecordDecl{
			DeclBase: DeclBase{Span: d.span(v), Parent: parent},
			Ident:    v.Get("name").String(),
			NameLocV: d.span(v).Begin,
			RKind:    decodeRecordKind(v.Get("recordKind").String()),
			IsDefn:   v.Get("isDefinition").Bool(),
		}
		for _, f := range v.Get("fields").Array() {
			rec.Fields = append(rec.Fields, &VarDecl{
				DeclBase: DeclBase{Span: d.span(f), Parent: rec},
				Ident:    f.Get("name").String(),
				NameLocV: d.span(f).Begin,
				Type:     d.decodeTypeLoc(f.Get("type")),
			})
		}
		return rec
	case "Enum":
		en := &EnumDecl{
			DeclBase: DeclBase{Span: d.span(v), Parent: parent},
			Ident:    v.Get("name").String(),
			NameLocV: d.span(v).Begin,
			Scope:    decodeEnumScope(v.Get("scoped").Bool()),
			IsDefn:   v.Get("isDefinition").Bool(),
		}
		if ut := v.Get("underlyingType"); ut.Exists() {
			en.UnderlyingType = d.decodeTypeLoc(ut)
		}
		for _, c := range v.Get("constants").Array() {
			en.Constants = append(en.Constants, &EnumConstantDecl{
				DeclBase:   DeclBase{Span: d.span(c), Parent: en},
				Ident:      c.Get("name").String(),
				NameLocV:   d.span(c).Begin,
				Value:      c.Get("value").Int(),
				OwningEnum: en,
			})
		}
		return en
	case "TypedefName":
		return &TypedefNameDecl{
			DeclBase:       DeclBase{Span: d.span(v), Parent: parent},
			Ident:          v.Get("name").String(),
			NameLocV:       d.span(v).Begin,
			Underlying:     d.decodeTypeLoc(v.Get("underlying")),
			IsBuiltinAlias: v.Get("isBuiltinAlias").Bool(),
		}
	default:
		return nil
	}
}

func decodeRecordKind(s string) RecordKind {
	switch s {
	case "class":
		return RecordClass
	case "union":
		return RecordUnion
	default:
		return RecordStruct
	}
}

func decodeEnumScope(scoped bool) EnumScope {
	if scoped {
		return EnumScoped
	}
	return EnumUnscoped
}

// decodeTypeLoc decodes the small set of TypeLoc cases test fixtures
// exercise directly. The canonical-type cache (d.typeTab) ensures two
// occurrences of the same canonical type share one *Type, matching the
// AST provider's own canonicalization (spec §3: "the canonical type
// pointer is used so alias chains collapse only where the AST has
// canonicalised them").
func (d *Decoder) decodeTypeLoc(v gjson.Result) TypeLoc {
	if !v.Exists() {
		return nil
	}
	base := typeLocBase{Span: d.span(v), Can: d.canonical(v), Quals: decodeCVR(v)}
	switch v.Get("kind").String() {
	case "Builtin":
		return &BuiltinTypeLoc{typeLocBase: base, Spelling: v.Get("spelling").String()}
	case "Pointer":
		return &PointerTypeLoc{typeLocBase: base, Pointee: d.decodeTypeLoc(v.Get("pointee"))}
	case "LValueReference":
		return &LValueReferenceTypeLoc{typeLocBase: base, Referent: d.decodeTypeLoc(v.Get("referent"))}
	case "RValueReference":
		return &RValueReferenceTypeLoc{typeLocBase: base, Referent: d.decodeTypeLoc(v.Get("referent"))}
	case "ConstantArray":
		return &ConstantArrayTypeLoc{typeLocBase: base, Element: d.decodeTypeLoc(v.Get("element")), Size: v.Get("size").Int()}
	case "Paren":
		return &ParenTypeLoc{typeLocBase: base, Inner: d.decodeTypeLoc(v.Get("inner"))}
	case "Elaborated":
		return &ElaboratedTypeLoc{typeLocBase: base, Inner: d.decodeTypeLoc(v.Get("inner"))}
	default:
		return &UnsupportedTypeLoc{typeLocBase: base, SpellingKind: v.Get("kind").String()}
	}
}

// decodeExpr decodes the small set of expression kinds the traversal
// driver inspects directly (spec §4.7: CallExpr, DeclRefExpr).
// DeclRefExpr resolves its "refersTo" key against d.declTab, populated
// as each Function/Var declaration is decoded; a reference to a
// not-yet-seen or unknown id is dropped rather than failing decode,
// matching this decoder's tolerant stance toward constructs its small
// fixture grammar does not model.
func (d *Decoder) decodeExpr(v gjson.Result) Expr {
	switch v.Get("kind").String() {
	case "Call":
		call := &CallExpr{exprBase: exprBase{Span: d.span(v)}}
		call.Callee = d.decodeExpr(v.Get("callee"))
		for _, a := range v.Get("args").Array() {
			if arg := d.decodeExpr(a); arg != nil {
				call.Args = append(call.Args, arg)
			}
		}
		return call
	case "DeclRef":
		referenced, ok := d.declTab[v.Get("refersTo").String()].(NamedDecl)
		if !ok {
			return nil
		}
		return &DeclRefExpr{
			exprBase:               exprBase{Span: d.span(v)},
			Referenced:             referenced,
			IsNonTypeTemplateParam: v.Get("isNonTypeTemplateParam").Bool(),
		}
	default:
		return nil
	}
}

func (d *Decoder) canonical(v gjson.Result) *Type {
	key := v.Get("canonicalKey").String()
	if key == "" {
		key = v.Get("kind").String()
	}
	if t, ok := d.typeTab[key]; ok {
		return t
	}
	t := NewType(key)
	d.typeTab[key] = t
	return t
}

func decodeCVR(v gjson.Result) CVR {
	var c CVR
	if v.Get("const").Bool() {
		c |= CVRConst
	}
	if v.Get("volatile").Bool() {
		c |= CVRVolatile
	}
	if v.Get("restrict").Bool() {
		c |= CVRRestrict
	}
	return c
}
