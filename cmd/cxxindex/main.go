package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run is factored out of main so the testscript-driven CLI tests
// (cli_test.go) can register it as the "cxxindex" command through
// testscript.RunMain, which runs it by re-executing the test binary.
func run() int {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
