package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain re-executes this test binary as the "cxxindex" command
// whenever a script calls it, so each script drives the real CLI
// (cobra command tree, config loading, flag parsing) in its own
// subprocess instead of a hand-rolled fake.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"cxxindex": run,
	}))
}

// TestCLI runs every testdata/script/*.txtar script against the built
// cxxindex command, in the teacher's build-then-run CLI test style
// (cmd/dwscript's own test suite), retargeted from a hand-spawned
// subprocess to rogpeppe/go-internal/testscript.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
