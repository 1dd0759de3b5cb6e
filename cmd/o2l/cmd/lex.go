package cmd

import (
	"fmt"
	"os"

	"github.com/o2lang/go-o2l/internal/lexer"
	"github.com/o2lang/go-o2l/pkg/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an O²L file and print the token stream",
	Long: `Tokenize an O²L source file and print one token per line with its
type, literal and position. A debugging aid for lexer and grammar work.`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexFile(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	l := lexer.New(string(content), lexer.WithPreserveComments(true))
	for _, tok := range l.Tokenize() {
		if tok.Type == token.NEWLINE {
			continue
		}
		fmt.Printf("%-12s %-24q line %d, column %d\n",
			tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, lerr := range errs {
			fmt.Fprintln(os.Stderr, lerr.Error())
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
