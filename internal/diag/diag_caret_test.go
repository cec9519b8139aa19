package diag

import (
	"testing"

	"github.com/kythe-go/cxxindex/internal/srcman"
)

func TestRenderCaret(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want string
	}{
		{
			name: "ASCII column",
			line: "int x;",
			col:  4,
			want: "int x;\n    ^",
		},
		{
			name: "column clamped to line length",
			line: "int x;",
			col:  100,
			want: "int x;\n      ^",
		},
		{
			name: "negative column clamps to zero",
			line: "int x;",
			col:  -3,
			want: "int x;\n^",
		},
		{
			name: "full-width character before the column counts double",
			line: "Ａx;", // fullwidth 'A' + "x;"
			col:  len("Ａ"),
			want: "Ａx;\n  ^",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCaret(tt.line, tt.col)
			if got != tt.want {
				t.Errorf("RenderCaret(%q, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
			}
		})
	}
}

func TestFaultRender(t *testing.T) {
	sm := srcman.NewManager()
	fid := sm.AddFile("t.cc", []byte("int x;\nint y\n"))

	f := &Fault{
		Component: ComponentTraversal,
		Kind:      "missing semicolon",
		Loc:       srcman.Location{File: fid, Offset: 11, Valid: true},
	}
	got := f.Render(sm)
	want := f.Error() + "\nint y\n    ^"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestFaultRenderNoLocation(t *testing.T) {
	f := &Fault{Component: ComponentTraversal, Kind: "unreachable"}
	if got, want := f.Render(srcman.NewManager()), f.Error(); got != want {
		t.Errorf("Render() with invalid loc = %q, want %q", got, want)
	}
}
