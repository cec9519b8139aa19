package xref

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/kythe-go/cxxindex/internal/cxxast"
)

// hashAlphabet is the identifier-safe base-64 alphabet spec §4.2
// specifies for rendering content hashes: lower-case, digits,
// underscore, dollar, upper-case — carried verbatim from
// IndexerASTHooks.cc's HashToString.
const hashAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789_$ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// HashToString renders h into hashAlphabet, six bits at a time, with
// no padding. It is used to render every content hash (type spellings,
// record/enum bodies, template-argument lists) into a NodeId-safe
// string fragment.
func HashToString(h uint64) string {
	if h == 0 {
		return string(hashAlphabet[0])
	}
	var buf [11]byte // ceil(64/6) = 11 six-bit groups
	i := len(buf)
	for h > 0 {
		i--
		buf[i] = hashAlphabet[h&0x3f]
		h >>= 6
	}
	return string(buf[i:])
}

func fnv64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// SemanticHashQualType string-hashes the canonical spelling of a
// QualType (spec §4.2: "String-hash the canonical type string for
// QualType"). Two TypeLocs sharing a canonical *cxxast.Type hash
// identically regardless of how each was spelled.
func SemanticHashQualType(t cxxast.TypeLoc) uint64 {
	if t == nil {
		return 0
	}
	spelling := t.Canonical().String()
	return fnv64(fmt.Sprintf("%s#%d", spelling, t.Qualifiers()))
}

// SemanticHashRecordBody XOR-combines member-name hashes, so member
// order never changes a record's content hash (spec §9: "order of
// members in the AST is not part of the ODR identity").
func SemanticHashRecordBody(r *cxxast.RecordDecl) uint64 {
	var acc uint64
	for _, f := range r.Fields {
		acc ^= fnv64(f.Ident) ^ SemanticHashQualType(f.Type)
	}
	return acc
}

// SemanticHashEnumBody XOR-combines enumerator-name hashes.
func SemanticHashEnumBody(e *cxxast.EnumDecl) uint64 {
	var acc uint64
	for _, c := range e.Constants {
		acc ^= fnv64(c.Ident) ^ uint64(c.Value)
	}
	return acc
}

// SemanticHashTemplateArgumentList XOR-combines per-argument hashes.
func SemanticHashTemplateArgumentList(args []cxxast.TemplateArgument) uint64 {
	var acc uint64
	for _, a := range args {
		acc ^= SemanticHashTemplateArgument(a)
	}
	return acc
}

// SemanticHashTemplateArgument hashes one template argument according
// to its kind.
func SemanticHashTemplateArgument(a cxxast.TemplateArgument) uint64 {
	switch a.Kind {
	case cxxast.TArgType:
		return SemanticHashQualType(a.Type) ^ fnv64("type")
	case cxxast.TArgIntegral:
		return fnv64("int:"+strconv.FormatInt(a.Integer, 10))
	case cxxast.TArgDeclaration:
		if nd, ok := a.Decl.(cxxast.NamedDecl); ok {
			return fnv64("decl:" + nd.Name())
		}
		return fnv64("decl:<anon>")
	case cxxast.TArgTemplate:
		if a.Name.Kind == cxxast.TNameDependent {
			return fnv64("tmpl-dep:" + a.Name.Dependent)
		}
		if nd, ok := a.Name.Templated.(cxxast.NamedDecl); ok {
			return fnv64("tmpl:" + nd.Name())
		}
		return fnv64("tmpl:<anon>")
	case cxxast.TArgPack:
		var acc uint64
		for _, sub := range a.Pack {
			acc ^= SemanticHashTemplateArgument(sub)
		}
		return acc ^ fnv64("pack")
	case cxxast.TArgExpression:
		return fnv64("expr")
	default:
		return 0
	}
}

// SemanticHashFunctionType hashes a function's signature (result type
// plus parameter types) for use in callable-id construction (spec
// §4.2: "NameId(D) # hash(function-type) # callable").
func SemanticHashFunctionType(fn *cxxast.FunctionDecl) uint64 {
	proto, ok := fn.Type.(*cxxast.FunctionProtoTypeLoc)
	if !ok {
		return fnv64("knrfn")
	}
	acc := SemanticHashQualType(proto.Result)
	for i, p := range proto.Params {
		acc ^= SemanticHashQualType(p) ^ uint64(i+1)<<32
	}
	if proto.Variadic {
		acc ^= fnv64("variadic")
	}
	return acc
}
