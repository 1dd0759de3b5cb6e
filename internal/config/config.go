// Package config resolves the interpreter's filesystem roots: the system
// library root searched by import, and the project root searched by
// @import. Settings come from o2l.yaml at the project root, a .env file,
// and the O2L_HOME environment variable.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up at the project root.
const FileName = "o2l.yaml"

// Config is the parsed o2l.yaml.
type Config struct {
	// Lib is the system library root. Relative paths resolve against the
	// project root.
	Lib string `yaml:"lib"`

	// Src is the project source root searched by @import. Relative paths
	// resolve against the project root. Defaults to the project root
	// itself.
	Src string `yaml:"src"`
}

// Roots are the resolved search roots handed to the module loader.
type Roots struct {
	System  string
	Project string
}

// Load resolves the roots for a program run started in dir. Precedence for
// the system root: o2l.yaml lib, then $O2L_HOME/lib, then <exe-dir>/lib.
// A .env file at dir may supply O2L_HOME.
func Load(dir string) (Roots, error) {
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Roots{}, err
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load(filepath.Join(absDir, ".env"))

	roots := Roots{Project: absDir, System: defaultSystemRoot()}

	cfg, err := readFile(filepath.Join(absDir, FileName))
	if err != nil {
		return Roots{}, err
	}
	if cfg != nil {
		if cfg.Lib != "" {
			roots.System = resolveAgainst(absDir, cfg.Lib)
		}
		if cfg.Src != "" {
			roots.Project = resolveAgainst(absDir, cfg.Src)
		}
	}

	return roots, nil
}

// readFile parses o2l.yaml, returning nil when the file does not exist.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultSystemRoot() string {
	if home := os.Getenv("O2L_HOME"); home != "" {
		return filepath.Join(home, "lib")
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), "lib")
	}
	return "lib"
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
