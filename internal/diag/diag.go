// Package diag implements the two error kinds spec.md §7 names for the
// indexing core: fatal "malformed AST" assertions, which are never
// returned as errors and always panic, and policy-gated "unimplemented
// construct" outcomes, which return cleanly when the IgnoreUnimplemented
// flag is set. Adapted from the teacher's CompilerError/StackTrace
// diagnostic idiom in internal/errors.
package diag

import (
	"fmt"
	"sync"

	"github.com/kythe-go/cxxindex/internal/srcman"
)

// Component names which of the core's components (C1-C8) raised a
// fault or hit an unimplemented case, for inclusion in the fault
// message and the unimplemented-construct counter.
type Component string

const (
	ComponentIdentity   Component = "identity"
	ComponentParentIdx  Component = "parentindex"
	ComponentRange      Component = "range"
	ComponentSemHash    Component = "semhash"
	ComponentTypeLower  Component = "typelower"
	ComponentTraversal  Component = "traversal"
	ComponentDependent  Component = "dependentname"
)

// Fault is the fatal "malformed AST / invariant break" kind (spec §7):
// the AST is treated as an upstream contract, not user input, so a
// Fault is always a panic, never a normal error return.
type Fault struct {
	Component Component
	Kind      string
	Loc       srcman.Location
}

func (f *Fault) Error() string {
	if f.Loc.Valid {
		return fmt.Sprintf("%s: %s at %s", f.Component, f.Kind, f.Loc)
	}
	return fmt.Sprintf("%s: %s", f.Component, f.Kind)
}

// Raise panics with a *Fault. Call sites use this for invariant breaks
// that indicate a malformed AST — a missing required child, a decl
// kind that cannot occur where it was found, and similar upstream
// contract violations.
func Raise(component Component, kind string, loc srcman.Location) {
	panic(&Fault{Component: component, Kind: kind, Loc: loc})
}

// Recover turns a panicking *Fault into a regular error, leaving any
// other panic value to propagate. Callers defer diag.Recover(&err) at
// the top of the one entry point that must not panic across a package
// boundary (the traversal driver's Index method).
func Recover(errp *error) {
	if r := recover(); r != nil {
		if f, ok := r.(*Fault); ok {
			*errp = f
			return
		}
		panic(r)
	}
}

// Counter tallies unimplemented-construct occurrences by component and
// kind, so test suites and the CLI's --stats flag can report which
// cases were hit and how often without treating them as failures.
type Counter struct {
	mu     sync.Mutex
	counts map[Component]map[string]int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[Component]map[string]int)}
}

func (c *Counter) record(component Component, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.counts[component]
	if !ok {
		m = make(map[string]int)
		c.counts[component] = m
	}
	m[kind]++
}

// Snapshot returns a copy of the tally, suitable for printing or for
// asserting zero-regressions in tests.
func (c *Counter) Snapshot() map[Component]map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Component]map[string]int, len(c.counts))
	for comp, kinds := range c.counts {
		k2 := make(map[string]int, len(kinds))
		for k, v := range kinds {
			k2[k] = v
		}
		out[comp] = k2
	}
	return out
}

// Policy is the process-level policy the traversal driver and type
// lowerer consult for every unimplemented case (spec §7,
// IgnoreUnimplemented, default true).
type Policy struct {
	IgnoreUnimplemented bool
	Counter             *Counter
}

// NewPolicy returns the default policy: IgnoreUnimplemented set, with
// a fresh Counter.
func NewPolicy() *Policy {
	return &Policy{IgnoreUnimplemented: true, Counter: NewCounter()}
}

// Unimplemented handles an unimplemented AST/type case per the policy
// flag: if IgnoreUnimplemented is set, it records the occurrence and
// returns (the caller proceeds with a MaybeFew.None() or equivalent);
// otherwise it raises a fatal Fault.
func (p *Policy) Unimplemented(component Component, kind string, loc srcman.Location) {
	if p.Counter != nil {
		p.Counter.record(component, kind)
	}
	if p.IgnoreUnimplemented {
		return
	}
	Raise(component, "unimplemented: "+kind, loc)
}
