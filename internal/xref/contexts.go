package xref

import "github.com/kythe-go/cxxindex/internal/cxxast"

// RangeContextStack is the ordered stack of NodeIds of enclosing
// implicit template instantiations (spec §3, C8). Empty means ranges
// are emitted as Physical; non-empty means Wraith wrapping the top.
type RangeContextStack struct {
	stack []NodeId
}

func (s *RangeContextStack) Push(id NodeId) { s.stack = append(s.stack, id) }
func (s *RangeContextStack) Pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}
func (s *RangeContextStack) Empty() bool  { return len(s.stack) == 0 }
func (s *RangeContextStack) Top() NodeId  { return s.stack[len(s.stack)-1] }
func (s *RangeContextStack) Depth() int   { return len(s.stack) }

// TypeContextStack is the ordered stack of template-parameter lists
// (spec §3, C8); it resolves a TemplateTypeParm(depth, index) that
// lacks a direct declaration pointer.
type TypeContextStack struct {
	stack []*cxxast.TemplateParameterList
}

func (s *TypeContextStack) Push(p *cxxast.TemplateParameterList) { s.stack = append(s.stack, p) }
func (s *TypeContextStack) Pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Resolve looks up the declaration for TemplateTypeParm(depth, index)
// by depth-indexing into the stack: depth counts template-parameter
// lists from the outermost (stack[0]) inward.
func (s *TypeContextStack) Resolve(depth, index int) (cxxast.Decl, bool) {
	if depth < 0 || depth >= len(s.stack) {
		return nil, false
	}
	list := s.stack[depth]
	if list == nil || index < 0 || index >= len(list.Params) {
		return nil, false
	}
	return list.Params[index], true
}

// BlameStack is the ordered stack of NodeIds of enclosing function
// declarations (spec §3, C8); its top is the caller attributed to
// emitted call edges.
type BlameStack struct {
	stack []NodeId
}

func (s *BlameStack) Push(id NodeId) { s.stack = append(s.stack, id) }
func (s *BlameStack) Pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}
func (s *BlameStack) Empty() bool { return len(s.stack) == 0 }
func (s *BlameStack) Top() NodeId { return s.stack[len(s.stack)-1] }
