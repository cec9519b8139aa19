package sink

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tidwall/pretty"

	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/diag"
	"github.com/kythe-go/cxxindex/internal/srcman"
	"github.com/kythe-go/cxxindex/internal/xref"
)

// TestJSON_Snapshot pins the whole pretty-printed graph JSON's on-disk
// shape the way the teacher's TestDWScriptFixtures pinned interpreter
// output: one small, representative translation unit indexed
// end-to-end, diffed against the snapshot go-snaps records on its first
// run (none is checked into the repository), so a change to any
// node/edge's field names, kind strings, or sort order shows up as a
// snapshot diff instead of silently drifting.
func TestJSON_Snapshot(t *testing.T) {
	sm := srcman.NewManager()
	fid := sm.AddFile("t.cc", []byte("struct S; struct S {}; S s;"))
	lexer := srcman.NewSimpleLexer(sm)

	tu := &cxxast.TranslationUnitDecl{}
	loc := func(off int32) srcman.Location { return srcman.Location{File: fid, Offset: off, Valid: true} }
	span := func(begin, end int32) srcman.Range { return srcman.Range{Begin: loc(begin), End: loc(end)} }

	fwd := &cxxast.RecordDecl{
		DeclBase: cxxast.DeclBase{Span: span(0, 9), Parent: tu},
		Ident:    "S",
		NameLocV: loc(7),
		RKind:    cxxast.RecordStruct,
	}
	defn := &cxxast.RecordDecl{
		DeclBase: cxxast.DeclBase{Span: span(10, 22), Parent: tu},
		Ident:    "S",
		NameLocV: loc(17),
		RKind:    cxxast.RecordStruct,
		IsDefn:   true,
	}
	chain := []cxxast.Decl{fwd, defn}
	fwd.Redecl = chain
	defn.Redecl = chain
	s := &cxxast.VarDecl{
		DeclBase: cxxast.DeclBase{Span: span(23, 27), Parent: tu},
		Ident:    "s",
		NameLocV: loc(25),
		Type:     cxxast.NewRecordTypeLoc(span(23, 24), cxxast.NewType("S"), 0, defn),
		IsDefn:   true,
	}
	tu.Decls = []cxxast.Decl{fwd, defn, s}

	out := NewJSON(sm)
	tr := xref.NewTraversal(out, sm, lexer, diag.NewPolicy(), nil)
	if err := tr.Index(tu); err != nil {
		t.Fatalf("Index: %v", err)
	}
	raw, err := out.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	snaps.MatchSnapshot(t, string(pretty.Pretty(raw)))
}
