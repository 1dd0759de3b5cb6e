package cmd

import (
	"fmt"
	"os"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/builtins"
	"github.com/o2lang/go-o2l/internal/config"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/internal/lexer"
	"github.com/o2lang/go-o2l/internal/modules"
	"github.com/o2lang/go-o2l/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr     string
	noNamespaces bool
)

var runCmd = &cobra.Command{
	Use:   "run [file] [-- program args]",
	Short: "Run an O²L program",
	Long: `Execute an O²L program from a file or inline source.

The program must declare a top-level 'Object Main' with a 'main()' method.
A non-zero Int result makes the command fail with exit status 1; the Int
value itself is not used as the process exit status.

Examples:
  # Run a program
  o2l run main.obq

  # Pass program arguments (bound as __program_args__)
  o2l run main.obq -- input.txt --fast

  # Evaluate inline source
  o2l run -e 'Object Main { method main(): Int { return 0 } }'`,
	Args: cobra.ArbitraryArgs,
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().BoolVar(&noNamespaces, "no-namespaces", false, "disable the namespace feature")
}

func runProgram(cmd *cobra.Command, args []string) error {
	input, filename, programArgs, err := readRunInput(cmd, args)
	if err != nil {
		return err
	}

	program, perrs := parseSource(input)
	if len(perrs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(toCompilerErrors(perrs, input, filename), useColor()))
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	roots, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "system root: %s\nproject root: %s\n", roots.System, roots.Project)
	}

	registry := builtins.NewRegistry(builtins.WithArgs(programArgs))
	loader := modules.NewLoader(roots.System, roots.Project, registry)

	i := interp.New(filename,
		interp.WithLoader(loader),
		interp.WithProgramArgs(programArgs),
	)

	result, err := i.Run(program)
	if err != nil {
		if rerr, ok := err.(*errors.RuntimeError); ok {
			fmt.Fprintln(os.Stderr, rerr.Format())
			return fmt.Errorf("program failed: %s", rerr.Kind)
		}
		return err
	}

	if exit, ok := result.(*runtime.IntegerValue); ok && exit.Value != 0 {
		return fmt.Errorf("program exited with status %d", exit.Value)
	}
	return nil
}

// readRunInput determines the source text, filename and program arguments
// from the command line. Everything after the first positional argument is
// handed to the program.
func readRunInput(_ *cobra.Command, args []string) (string, string, []string, error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", args, nil
	}
	if len(args) == 0 {
		return "", "", nil, fmt.Errorf("either provide a file path or use -e for inline source")
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(content), filename, args[1:], nil
}

// parseSource lexes and parses one source text.
func parseSource(input string) (*ast.Program, []*parser.Error) {
	opts := []parser.Option{parser.WithNamespaces(!noNamespaces)}
	p := parser.New(lexer.New(input), opts...)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

func toCompilerErrors(perrs []*parser.Error, source, file string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, 0, len(perrs))
	for _, perr := range perrs {
		out = append(out, errors.NewCompilerError(perr.Pos, perr.Message, source, file))
	}
	return out
}
