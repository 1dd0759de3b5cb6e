package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/o2lang/go-o2l/internal/builtins"
	"github.com/o2lang/go-o2l/internal/config"
	"github.com/o2lang/go-o2l/internal/interp"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/internal/modules"
	"github.com/spf13/cobra"
)

var testPattern string

var testCmd = &cobra.Command{
	Use:   "test [dir]",
	Short: "Run the project's O²L test files",
	Long: `Discover and run O²L test files under the given directory (default:
the current project root). Test files match **/*_test.obq; a test passes
when its Main.main() returns Int(0) or Bool(true).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTests,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVar(&testPattern, "pattern", "**/*_test.obq", "glob pattern for test files")
}

func runTests(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	roots, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), testPattern)
	if err != nil {
		return fmt.Errorf("invalid test pattern %q: %w", testPattern, err)
	}
	if len(matches) == 0 {
		fmt.Printf("no test files matching %q under %s\n", testPattern, dir)
		return nil
	}

	failed := 0
	for _, match := range matches {
		file := filepath.Join(dir, match)
		if runTestFile(file, roots) {
			fmt.Printf("ok   %s\n", match)
		} else {
			fmt.Printf("FAIL %s\n", match)
			failed++
		}
	}

	fmt.Printf("%d test file(s), %d failed\n", len(matches), failed)
	if failed > 0 {
		return fmt.Errorf("%d test file(s) failed", failed)
	}
	return nil
}

// runTestFile executes one test program; pass means Main.main() returned
// Int(0) or Bool(true).
func runTestFile(file string, roots config.Roots) bool {
	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", file, err)
		return false
	}

	program, perrs := parseSource(string(content))
	if len(perrs) > 0 {
		fmt.Fprintf(os.Stderr, "%s: %s\n", file, perrs[0].Error())
		return false
	}

	registry := builtins.NewRegistry()
	loader := modules.NewLoader(roots.System, roots.Project, registry)
	i := interp.New(file, interp.WithLoader(loader))

	result, err := i.Run(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", file, err)
		return false
	}

	switch v := result.(type) {
	case *runtime.IntegerValue:
		return v.Value == 0
	case *runtime.BooleanValue:
		return v.Value
	}
	return false
}
