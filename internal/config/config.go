package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileName is the project configuration file looked up by Find.
const FileName = "chomsky.toml"

type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Parse  ParseConfig  `toml:"parse"`
	Files  FilesConfig  `toml:"files"`
	Output OutputConfig `toml:"output"`
	Lint   LintConfig   `toml:"lint"`
}

type ScanConfig struct {
	LineSeparators bool `toml:"line_separators"`
	KeepComments   bool `toml:"keep_comments"`
}

type ParseConfig struct {
	LineSeparators bool `toml:"line_separators"`
}

type FilesConfig struct {
	SourceExt  []string `toml:"source_ext"`
	GrammarExt []string `toml:"grammar_ext"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type LintConfig struct {
	Enabled        bool `toml:"enabled"`
	CheckShadowing bool `toml:"check_shadowing"`
}

func Default() *Config {
	return &Config{
		Files: FilesConfig{
			SourceExt:  []string{".c"},
			GrammarExt: []string{".grammar"},
		},
		Output: OutputConfig{Format: "text"},
		Lint:   LintConfig{Enabled: true, CheckShadowing: true},
	}
}

// Load reads path on top of the defaults; keys absent from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Find walks from dir towards the filesystem root and returns the first
// chomsky.toml it meets.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		p := filepath.Join(dir, FileName)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "yaml":
	default:
		return errors.Errorf("output.format must be \"text\" or \"yaml\", got %q", c.Output.Format)
	}
	for _, ext := range append(append([]string{}, c.Files.SourceExt...), c.Files.GrammarExt...) {
		if !strings.HasPrefix(ext, ".") {
			return errors.Errorf("file extension %q must start with '.'", ext)
		}
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

type FileKind int

const (
	UnknownFile FileKind = iota
	SourceFile
	GrammarFile
)

func (k FileKind) String() string {
	switch k {
	case SourceFile:
		return "source"
	case GrammarFile:
		return "grammar"
	}
	return "unknown"
}

// KindOf decides by extension whether path holds program source or a grammar
// description.
func (f FilesConfig) KindOf(path string) FileKind {
	ext := filepath.Ext(path)
	for _, e := range f.GrammarExt {
		if strings.EqualFold(e, ext) {
			return GrammarFile
		}
	}
	for _, e := range f.SourceExt {
		if strings.EqualFold(e, ext) {
			return SourceFile
		}
	}
	return UnknownFile
}
