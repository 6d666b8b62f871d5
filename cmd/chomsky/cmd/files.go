package cmd

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"chomsky/internal/config"
	"chomsky/internal/watch"
)

// readInput reads a file, or standard input for "-".
func readInput(stdin io.Reader, arg string) (name, src string, err error) {
	if arg == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "read stdin")
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return "", "", errors.Wrapf(err, "read %s", arg)
	}
	return arg, string(b), nil
}

// collectFiles expands targets into the source and grammar files below
// them, sorted. Files named explicitly are kept whatever their extension.
func collectFiles(targets []string, files config.FilesConfig) ([]string, error) {
	var out []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", target)
		}
		if !info.IsDir() {
			out = append(out, target)
			continue
		}

		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != target && watch.SkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if files.KindOf(path) != config.UnknownFile {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", target)
		}
	}
	sort.Strings(out)
	return out, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
