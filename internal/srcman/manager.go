package srcman

import "fmt"

// FileInfo describes one registered source file: its path and
// in-memory byte contents, used for whitespace-skipping and raw token
// spelling.
type FileInfo struct {
	Path string
	Data []byte
}

// MacroExpansion records one step of a macro-argument-expansion chain:
// an expansion location and the spelling location it expands from.
// Climbing this chain from a macro Location reaches either a file
// location (the argument was not itself a macro) or another macro
// expansion.
type MacroExpansion struct {
	SpellingLoc Location
	ExpansionLoc Location
	IsArgument   bool // true iff this step is a macro-argument substitution
}

// Manager is the source-manager collaborator API named in spec §6: it
// answers file-id, character-data, and printable-location queries. The
// core treats it as a shared read-only reference; it is never mutated
// by the indexing traversal.
type Manager struct {
	files    []FileInfo
	macros   map[Location]MacroExpansion
	fileLocs map[Location]bool
}

// NewManager builds an empty Manager; files are registered with
// AddFile before use.
func NewManager() *Manager {
	return &Manager{
		macros:   make(map[Location]MacroExpansion),
		fileLocs: make(map[Location]bool),
	}
}

// AddFile registers a source file's contents and returns its FileID.
func (m *Manager) AddFile(path string, data []byte) FileID {
	m.files = append(m.files, FileInfo{Path: path, Data: data})
	return FileID(len(m.files) - 1)
}

// MarkFileLocation records that loc is a genuine file location (as
// opposed to a macro-expansion buffer position). Test fixtures and AST
// decoders call this as they register locations found in the AST dump.
func (m *Manager) MarkFileLocation(loc Location) {
	m.fileLocs[loc] = true
}

// MarkMacroExpansion records the expansion-chain step for a macro
// location so ClimbMacroArgumentChain can walk it later.
func (m *Manager) MarkMacroExpansion(loc Location, step MacroExpansion) {
	m.macros[loc] = step
}

func (m *Manager) isFileLocation(l Location) bool {
	if v, ok := m.fileLocs[l]; ok {
		return v
	}
	// Locations never explicitly marked as macro expansions default to
	// file locations: this is the common case for ordinary identifiers.
	_, isMacro := m.macros[l]
	return !isMacro
}

// ClimbMacroArgumentChain walks the macro-argument-expansion chain
// starting at loc. It returns the terminal location and whether every
// step climbed was an argument substitution (spec §4.4: "top-level
// non-macro macro argument" detection). If the terminal location is a
// file location and every step was an argument step, the caller's
// physical token is the right span to use.
func (m *Manager) ClimbMacroArgumentChain(loc Location) (terminal Location, allArgumentSteps bool) {
	allArgumentSteps = true
	cur := loc
	for {
		step, ok := m.macros[cur]
		if !ok {
			return cur, allArgumentSteps
		}
		if !step.IsArgument {
			allArgumentSteps = false
		}
		cur = step.SpellingLoc
	}
}

func (m *Manager) printable(l Location) string {
	return fmt.Sprintf("%d@%d", l.File, l.Offset)
}

// CharAt returns the byte at loc, or 0 if out of range. Used by the
// whitespace-skipping logic in the range resolver.
func (m *Manager) CharAt(loc Location) byte {
	if int(loc.File) < 0 || int(loc.File) >= len(m.files) {
		return 0
	}
	data := m.files[loc.File].Data
	if int(loc.Offset) < 0 || int(loc.Offset) >= len(data) {
		return 0
	}
	return data[loc.Offset]
}

// Advance returns loc shifted forward by n bytes within the same file.
func (m *Manager) Advance(loc Location, n int32) Location {
	loc.Offset += n
	return loc
}

// LineAt returns the full source line containing loc along with loc's
// zero-based byte offset within that line, for diagnostic caret
// rendering.
func (m *Manager) LineAt(loc Location) (line string, col int) {
	if int(loc.File) < 0 || int(loc.File) >= len(m.files) {
		return "", 0
	}
	data := m.files[loc.File].Data
	off := int(loc.Offset)
	if off < 0 || off > len(data) {
		off = len(data)
	}
	start := off
	for start > 0 && data[start-1] != '\n' {
		start--
	}
	end := off
	for end < len(data) && data[end] != '\n' {
		end++
	}
	return string(data[start:end]), off - start
}
