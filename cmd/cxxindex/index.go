package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/kythe-go/cxxindex/internal/config"
	"github.com/kythe-go/cxxindex/internal/cxxast"
	"github.com/kythe-go/cxxindex/internal/diag"
	"github.com/kythe-go/cxxindex/internal/srcman"
	"github.com/kythe-go/cxxindex/internal/xref/sink"
	"github.com/kythe-go/cxxindex/pkg/xref"
)

var showStats bool

var indexCmd = &cobra.Command{
	Use:   "index [ast.json]",
	Short: "Index a translation unit's JSON AST into a cross-reference graph",
	Long: `Read a JSON AST dump for one translation unit and emit its
cross-reference graph (nodes and edges) as pretty-printed JSON on
stdout.

The input document is the shape a C++ front-end would emit: a root
TranslationUnit node plus, alongside it, a "files" array of
{"path","content"} pairs giving the byte contents each location's
file index refers to.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&showStats, "stats", false, "print the unimplemented-construct counter to stderr")
}

func runIndex(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	sm := srcman.NewManager()
	for _, f := range gjson.GetBytes(data, "files").Array() {
		sm.AddFile(f.Get("path").String(), []byte(f.Get("content").String()))
	}

	tu, err := cxxast.NewDecoder(sm).Decode(data)
	if err != nil {
		return fmt.Errorf("decode AST: %w", err)
	}

	lexer := srcman.NewSimpleLexer(sm)
	out := sink.NewJSON(sm)
	idx := xref.New(sm, lexer,
		xref.WithObserver(out),
		xref.WithIgnoreUnimplemented(cfg.IgnoreUnimplementedOrDefault()),
	)

	result, err := idx.Index(tu)
	if err != nil {
		var fault *diag.Fault
		if errors.As(err, &fault) {
			fmt.Fprintln(os.Stderr, fault.Render(sm))
		}
		return fmt.Errorf("index: %w", err)
	}

	raw, err := out.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	os.Stdout.Write(pretty.Pretty(raw))

	if showStats || cfg.Stats {
		for component, kinds := range result.Unimplemented {
			for kind, count := range kinds {
				fmt.Fprintf(os.Stderr, "unimplemented: %s: %s: %d\n", component, kind, count)
			}
		}
	}
	return nil
}
