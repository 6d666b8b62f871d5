// Package tools builds the chomsky binaries into a directory.
package tools

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// Binaries are the commands Install builds, by package directory name.
var Binaries = []string{"chomsky", "chomsky-lsp"}

type InstallOptions struct {
	BinDir string
	// Output receives the go tool's output. Defaults to os.Stderr.
	Output io.Writer
}

// Install runs go build for every binary and returns the installed paths.
func Install(opts InstallOptions) ([]string, error) {
	if opts.BinDir == "" {
		opts.BinDir = "bin"
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	if err := os.MkdirAll(opts.BinDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", opts.BinDir)
	}

	paths := make([]string, 0, len(Binaries))
	for _, name := range Binaries {
		out := BinaryPath(opts.BinDir, name)
		if err := goBuild("./cmd/"+name, out, opts.Output); err != nil {
			return paths, errors.Wrapf(err, "build %s", name)
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// BinaryPath is where Install puts a binary on this platform.
func BinaryPath(binDir, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name)
}

func goBuild(pkg, out string, w io.Writer) error {
	cmd := exec.Command("go", "build", "-o", out, pkg)
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}
