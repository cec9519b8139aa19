// Package srcman provides the source-manager and lexer collaborator
// interfaces the indexing core consults for locations, spans, and raw
// tokens. The core never mutates anything reached through these types;
// they are read-only views over an externally owned source arena.
package srcman

import "fmt"

// FileID identifies one source file (or one macro-expansion buffer) in
// a translation unit's source manager.
type FileID int32

// InvalidFileID is returned for locations with no backing file, e.g. a
// synthesized or invalid location.
const InvalidFileID FileID = -1

// Location is an opaque position inside a translation unit: either a
// file location (byte offset into a real file) or a macro-expansion
// location (offset into a virtual macro-expansion buffer).
type Location struct {
	File   FileID
	Offset int32
	Valid  bool
}

// Invalid is the zero-value-equivalent location used for declarations
// and types with no meaningful source position.
var Invalid = Location{File: InvalidFileID, Valid: false}

// IsFileLocation reports whether l denotes a real file position, as
// opposed to a macro-expansion buffer position.
func (l Location) IsFileLocation(sm *Manager) bool {
	if !l.Valid {
		return false
	}
	return sm.isFileLocation(l)
}

// IsMacroLocation is the complement of IsFileLocation.
func (l Location) IsMacroLocation(sm *Manager) bool {
	return l.Valid && !l.IsFileLocation(sm)
}

// Range is a half-open byte span [Begin, End) within one translation
// unit, expressed as two Locations. A zero-width range has Begin == End.
type Range struct {
	Begin Location
	End   Location
}

// Empty reports whether the range has zero width.
func (r Range) Empty() bool {
	return r.Begin == r.End
}

// Printable renders a Location through its owning Manager as a stable
// string suffix used by NodeId construction (file-id + offset, or
// "invalid"). It never allocates beyond the formatted string.
func (l Location) Printable(sm *Manager) string {
	if !l.Valid {
		return "invalid"
	}
	return sm.printable(l)
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.File, l.Offset)
}
