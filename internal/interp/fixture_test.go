package interp

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/o2lang/go-o2l/internal/builtins"
	"github.com/o2lang/go-o2l/internal/lexer"
	"github.com/o2lang/go-o2l/internal/modules"
	"github.com/o2lang/go-o2l/internal/parser"
)

// TestProgramFixtures runs every .obq program under testdata/ and snapshots
// its observable behavior: everything printed through system.io plus the
// value returned by Main.main().
func TestProgramFixtures(t *testing.T) {
	pattern := filepath.Join("..", "..", "testdata", "*.obq")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no fixtures found under %s", pattern)
	}
	sort.Strings(files)

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			source, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}

			p := parser.New(lexer.New(string(source)))
			program := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parser errors: %v", errs)
			}

			var out bytes.Buffer
			registry := builtins.NewRegistry(builtins.WithStdout(&out))
			loader := modules.NewLoader("", "", registry)

			i := New(file, WithLoader(loader))
			result, err := i.Run(program)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			snapshot := fmt.Sprintf("--- output ---\n%s--- result ---\n%s: %s\n",
				out.String(), result.Type(), result.Inspect())
			snaps.MatchSnapshot(t, snapshot)
		})
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}
