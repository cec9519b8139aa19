package xref

import (
	"strings"

	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/srcman"
)

// RangeResolver computes semantically meaningful source spans from raw
// token locations (spec §4.4, C4): operator names, destructors, and
// macro-expansion sites, consulting the source manager and lexer
// collaborators.
type RangeResolver struct {
	sm    *srcman.Manager
	lexer srcman.Lexer
}

// NewRangeResolver builds a resolver over sm/lexer, the read-only
// collaborators named in spec §6.
func NewRangeResolver(sm *srcman.Manager, lexer srcman.Lexer) *RangeResolver {
	return &RangeResolver{sm: sm, lexer: lexer}
}

// RangeForASTEntityFromSourceLocation computes the span of the token
// at loc (spec §4.4). File locations yield [start, end-of-token); a
// macro location is resolved per the argument/expansion branching the
// spec describes.
func (r *RangeResolver) RangeForASTEntityFromSourceLocation(loc srcman.Location) srcman.Range {
	if !loc.Valid {
		return srcman.Range{Begin: loc, End: loc}
	}
	if loc.IsFileLocation(r.sm) {
		return srcman.Range{Begin: loc, End: r.lexer.EndOfToken(loc)}
	}
	// Macro location: climb the macro-argument-expansion chain (spec
	// §4.4's "top-level non-macro macro argument" detection).
	terminal, allArgumentSteps := r.sm.ClimbMacroArgumentChain(loc)
	if allArgumentSteps && terminal.IsFileLocation(r.sm) {
		return srcman.Range{Begin: terminal, End: r.lexer.EndOfToken(terminal)}
	}
	// Otherwise: a zero-width point at the macro's file location; no
	// source link can be meaningfully emitted.
	return srcman.Range{Begin: loc, End: loc}
}

// RangeForOperatorName computes the span of an overloaded-operator
// name starting at the `operator` keyword (spec §4.4 and SPEC_FULL.md
// §4): `operator()`/`operator[]` extend through the matching closing
// bracket; identifier-like operators (`operator new`) and conversion
// operators leave the span at the keyword only; everything else is a
// single punctuation token.
func (r *RangeResolver) RangeForOperatorName(kwLoc srcman.Location, opSpelling string) srcman.Range {
	kwEnd := r.lexer.EndOfToken(kwLoc)
	switch opSpelling {
	case "()", "[]":
		// Span from the keyword through the matching closing bracket:
		// skip whitespace, consume the opening bracket token, then its
		// closing counterpart.
		open := srcman.SkipWhitespace(r.sm, kwEnd)
		openTok, ok := r.lexer.RawTokenAt(open)
		if !ok {
			return srcman.Range{Begin: kwLoc, End: kwEnd}
		}
		closeLoc := srcman.SkipWhitespace(r.sm, openTok.Span.End)
		closeTok, ok := r.lexer.RawTokenAt(closeLoc)
		if !ok {
			return srcman.Range{Begin: kwLoc, End: openTok.Span.End}
		}
		return srcman.Range{Begin: kwLoc, End: closeTok.Span.End}
	case "new", "delete", "new[]", "delete[]":
		// Identifier-like operator: leave the span at the keyword only.
		return srcman.Range{Begin: kwLoc, End: kwEnd}
	default:
		if strings.HasPrefix(opSpelling, "conversion:") {
			// Conversion operator: leave span at the keyword only.
			return srcman.Range{Begin: kwLoc, End: kwEnd}
		}
		// Single-token punctuation operator (+, -, ==, <=>, …): extends
		// through that one operator token.
		opLoc := srcman.SkipWhitespace(r.sm, kwEnd)
		if tok, ok := r.lexer.RawTokenAt(opLoc); ok {
			return srcman.Range{Begin: kwLoc, End: r.lexer.EndOfToken(tok.Span.Begin)}
		}
		return srcman.Range{Begin: kwLoc, End: kwEnd}
	}
}

// RangeForNameOfDeclaration computes the definition-range span for a
// NamedDecl's own name, handling the destructor special case (spec
// §4.4/Invariant 7: `~T` or the alternate spelling `compl T` extends
// through the class-name token when that token matches the destructor's
// own name with the `~` removed) and the overloaded-operator case (spec
// §4.4/Invariant 8, via RangeForOperatorName). Every returned span is
// widened if it came out empty (spec §7).
func (r *RangeResolver) RangeForNameOfDeclaration(d cxxast.NamedDecl) srcman.Range {
	nameLoc := d.NameLoc()
	base := r.RangeForASTEntityFromSourceLocation(nameLoc)

	fn, ok := d.(*cxxast.FunctionDecl)
	if !ok {
		return r.widenIfEmpty(base)
	}
	if isDestructorName(fn.Ident) {
		return r.widenIfEmpty(r.destructorRange(fn, nameLoc, base))
	}
	if opSpelling, ok := operatorSpelling(fn); ok {
		return r.widenIfEmpty(r.RangeForOperatorName(nameLoc, opSpelling))
	}
	return r.widenIfEmpty(base)
}

func (r *RangeResolver) destructorRange(fn *cxxast.FunctionDecl, nameLoc srcman.Location, base srcman.Range) srcman.Range {
	tildeTok, ok := r.lexer.RawTokenAt(nameLoc)
	if !ok || (tildeTok.Kind != srcman.TokTilde && tildeTok.Kind != srcman.TokKwCompl) {
		return base
	}
	classLoc := srcman.SkipWhitespace(r.sm, r.lexer.EndOfToken(nameLoc))
	classTok, ok := r.lexer.RawTokenAt(classLoc)
	if !ok {
		return base
	}
	expected := strings.TrimPrefix(fn.Ident, "~")
	if classTok.Spelling != expected {
		return base
	}
	return srcman.Range{Begin: nameLoc, End: r.lexer.EndOfToken(classLoc)}
}

func isDestructorName(name string) bool {
	return strings.HasPrefix(name, "~")
}

// operatorSpelling reports the opSpelling RangeForOperatorName expects
// for fn, and whether fn names an overloaded operator at all. The
// call-operator case is driven off IsOperatorCall directly; every
// other operator kind is recognized from its clang-style spelling
// ("operator[]", "operator new", "operator bool", "operator+", ...).
func operatorSpelling(fn *cxxast.FunctionDecl) (string, bool) {
	if fn.IsOperatorCall {
		return "()", true
	}
	const prefix = "operator"
	if !strings.HasPrefix(fn.Ident, prefix) {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(fn.Ident, prefix))
	if rest == "" {
		return "", false
	}
	switch rest {
	case "[]", "new", "delete", "new[]", "delete[]":
		return rest, true
	}
	if isOperatorSymbolSpelling(rest) {
		return rest, true
	}
	// Anything else following "operator " names a conversion-operator
	// target type ("operator bool", "operator SomeClass").
	return "conversion:" + rest, true
}

// isOperatorSymbolSpelling reports whether s is made up entirely of
// the punctuation characters usable in an operator token (+, ==, <=>,
// and similar), as opposed to a conversion-operator's type name.
func isOperatorSymbolSpelling(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("+-*/%=!<>&|^~,", c) {
			return false
		}
	}
	return true
}

// RangeInCurrentContext wraps span as Physical if ctxStack is empty,
// or as Wraith(span, top) otherwise (spec §4.4).
func RangeInCurrentContext(ctxStack *RangeContextStack, span srcman.Range) Range {
	if ctxStack.Empty() {
		return Physical(span)
	}
	return InContext(span, ctxStack.Top())
}

// widenIfEmpty is spec §7's "Source-range construction that produces
// an empty span is automatically widened to the token at that
// location before emission."
func (r *RangeResolver) widenIfEmpty(span srcman.Range) srcman.Range {
	if !span.Empty() {
		return span
	}
	return srcman.Range{Begin: span.Begin, End: r.lexer.EndOfToken(span.Begin)}
}
