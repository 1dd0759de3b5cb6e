package cmd

import (
	"fmt"
	"os"

	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an O²L file and print the canonical AST rendering",
	Long: `Parse an O²L source file and print the canonical source rendering of
its AST. The rendering re-parses to the same tree, so this also serves as a
normalizer for O²L sources.`,
	Args: cobra.ExactArgs(1),
	RunE: parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	program, perrs := parseSource(string(content))
	if len(perrs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(toCompilerErrors(perrs, string(content), args[0]), useColor()))
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	fmt.Println(program.String())
	return nil
}
