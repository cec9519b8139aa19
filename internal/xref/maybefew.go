package xref

// MaybeFew is the C6 lowering result: none, exactly one id, or "one
// plus alternates" expressing that a type may simultaneously be its
// alias form and its canonical form (spec §4.8). Only the primary
// participates in subsequent structural composition (e.g. as a tapp
// operand); alternates are emitted as additional edges by the caller.
type MaybeFew struct {
	present    bool
	primary    NodeId
	alternates []NodeId
}

// None is the empty MaybeFew, returned when lowering a type encounters
// an unsupported construct under the ignore-unimplemented policy.
func None() MaybeFew { return MaybeFew{} }

// One wraps a single NodeId with no alternates.
func One(id NodeId) MaybeFew { return MaybeFew{present: true, primary: id} }

// Few wraps a primary id plus alternate ids (e.g. a typedef's alias id
// alongside its aliased canonical id).
func Few(primary NodeId, alternates ...NodeId) MaybeFew {
	return MaybeFew{present: true, primary: primary, alternates: alternates}
}

// Present reports whether lowering produced any id at all.
func (m MaybeFew) Present() bool { return m.present }

// Primary returns the id used as a structural operand; callers must
// not call this when !Present().
func (m MaybeFew) Primary() NodeId { return m.primary }

// Alternates returns the non-primary ids, if any.
func (m MaybeFew) Alternates() []NodeId { return m.alternates }

// Map transforms the primary id (and only the primary) while
// preserving the alternates list, per spec §4.8's "composition
// operations (map, bind) preserve the alternates list."
func (m MaybeFew) Map(f func(NodeId) NodeId) MaybeFew {
	if !m.present {
		return m
	}
	return MaybeFew{present: true, primary: f(m.primary), alternates: m.alternates}
}
