package cxxast

import (
	"testing"

	"github.com/tidwall/sjson"

	"github.com/kythe-go/cxxindex/internal/srcman"
)

const baseVarFixture = `{
	"kind": "TranslationUnit",
	"decls": [
		{
			"kind": "Var",
			"name": "x",
			"range": {"begin":{"file":0,"offset":4},"end":{"file":0,"offset":5}},
			"isDefinition": true,
			"type": {"kind":"Builtin","spelling":"int","canonicalKey":"int"}
		}
	]
}`

// TestDecoder_DecodePatchedFixtures patches one base translation-unit
// fixture with sjson to produce each variant, rather than hand-writing
// a near-duplicate JSON blob per case.
func TestDecoder_DecodePatchedFixtures(t *testing.T) {
	tests := []struct {
		name       string
		patch      func(t *testing.T, base string) string
		wantName   string
		wantSpell  string
		wantIsDefn bool
	}{
		{
			name:       "unmodified base",
			patch:      func(t *testing.T, base string) string { return base },
			wantName:   "x",
			wantSpell:  "int",
			wantIsDefn: true,
		},
		{
			name: "renamed variable with a different builtin type",
			patch: func(t *testing.T, base string) string {
				out, err := sjson.Set(base, "decls.0.name", "y")
				if err != nil {
					t.Fatalf("sjson.Set name: %v", err)
				}
				out, err = sjson.Set(out, "decls.0.type.spelling", "double")
				if err != nil {
					t.Fatalf("sjson.Set spelling: %v", err)
				}
				out, err = sjson.Set(out, "decls.0.type.canonicalKey", "double")
				if err != nil {
					t.Fatalf("sjson.Set canonicalKey: %v", err)
				}
				return out
			},
			wantName:   "y",
			wantSpell:  "double",
			wantIsDefn: true,
		},
		{
			name: "declaration only, not a definition",
			patch: func(t *testing.T, base string) string {
				out, err := sjson.Set(base, "decls.0.isDefinition", false)
				if err != nil {
					t.Fatalf("sjson.Set isDefinition: %v", err)
				}
				return out
			},
			wantName:   "x",
			wantSpell:  "int",
			wantIsDefn: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.patch(t, baseVarFixture)

			sm := srcman.NewManager()
			sm.AddFile("t.cc", []byte("int x;"))

			tu, err := NewDecoder(sm).Decode([]byte(data))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(tu.Decls) != 1 {
				t.Fatalf("expected 1 decl, got %d", len(tu.Decls))
			}
			v, ok := tu.Decls[0].(*VarDecl)
			if !ok {
				t.Fatalf("expected *VarDecl, got %T", tu.Decls[0])
			}
			if v.Ident != tt.wantName {
				t.Errorf("Ident = %q, want %q", v.Ident, tt.wantName)
			}
			if v.IsDefn != tt.wantIsDefn {
				t.Errorf("IsDefn = %v, want %v", v.IsDefn, tt.wantIsDefn)
			}
			bt, ok := v.Type.(*BuiltinTypeLoc)
			if !ok {
				t.Fatalf("expected *BuiltinTypeLoc, got %T", v.Type)
			}
			if bt.Spelling != tt.wantSpell {
				t.Errorf("Spelling = %q, want %q", bt.Spelling, tt.wantSpell)
			}
		})
	}
}
