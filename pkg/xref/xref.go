// Package xref is the public entry point for indexing a translation
// unit into a cross-reference graph. It wraps internal/xref's
// traversal driver behind a functional-options constructor, following
// the shape of the teacher's engine wrapper (pkg/dwscript.New(opts
// ...Option)).
package xref

import (
	"fmt"

	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/diag"
	"github.com/kythe-go/cxxindex/internal/srcman"
	"github.com/kythe-go/cxxindex/internal/xref"
)

// Observer re-exports the internal GraphObserver contract so callers
// outside this module's internal/ tree can implement sinks.
type Observer = xref.GraphObserver

// NullObserver re-exports internal/xref's no-op observer.
type NullObserver = xref.NullObserver

// Indexer drives one or more translation units against a configured
// Observer and policy.
type Indexer struct {
	obs                 Observer
	sm                  *srcman.Manager
	lexer               srcman.Lexer
	ignoreUnimplemented bool
	cancel              <-chan struct{}
}

// Option configures an Indexer at construction time.
type Option func(*Indexer)

// WithObserver sets the graph sink every recorded node/edge is sent
// to. Without this option New installs NullObserver{}, which discards
// everything — useful for measuring traversal cost in isolation.
func WithObserver(obs Observer) Option {
	return func(idx *Indexer) { idx.obs = obs }
}

// WithIgnoreUnimplemented sets the policy flag spec.md §7 describes:
// true (the default) counts and skips unimplemented AST/type
// constructs; false raises a fatal error on the first one encountered.
func WithIgnoreUnimplemented(v bool) Option {
	return func(idx *Indexer) { idx.ignoreUnimplemented = v }
}

// WithCancel installs a cancellation channel the driver polls between
// sibling top-level declarations (spec §5's cooperative cancellation).
func WithCancel(cancel <-chan struct{}) Option {
	return func(idx *Indexer) { idx.cancel = cancel }
}

// New constructs an Indexer over the given source manager and lexer
// (the read-only collaborators spec §6 names), applying opts in
// order.
func New(sm *srcman.Manager, lexer srcman.Lexer, opts ...Option) *Indexer {
	idx := &Indexer{
		obs:                 xref.NullObserver{},
		sm:                  sm,
		lexer:               lexer,
		ignoreUnimplemented: true,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Result summarises one Index call: the policy's unimplemented-
// construct tally, for callers that want to surface it (the CLI's
// --stats flag, SPEC_FULL.md §4).
type Result struct {
	Unimplemented map[diag.Component]map[string]int
}

// Index runs the traversal driver over tu, emitting the graph to the
// configured Observer. It never panics: a malformed-AST fault is
// converted to a normal error by internal/diag.Recover inside the
// driver's own Index method.
func (idx *Indexer) Index(tu *cxxast.TranslationUnitDecl) (Result, error) {
	policy := diag.NewPolicy()
	policy.IgnoreUnimplemented = idx.ignoreUnimplemented

	t := xref.NewTraversal(idx.obs, idx.sm, idx.lexer, policy, idx.cancel)
	if err := t.Index(tu); err != nil {
		return Result{}, fmt.Errorf("xref: index: %w", err)
	}
	return Result{Unimplemented: policy.Counter.Snapshot()}, nil
}
