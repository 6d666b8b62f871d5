package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"chomsky/internal/analysis"
	"chomsky/internal/config"
)

const regularGrammar = "({NTZ,NTU,NTV},{0,1},{NTZ > NTU 0, NTZ > NTV 1, NTU > NTZ 1, NTU > 1, NTV > NTZ 0, NTV > 0},NTZ)"

// project writes files into a temporary directory with a default config
// and returns the directory.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := config.Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	files[config.FileName] = buf.String()
	for name, text := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--plain"))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestTokens(t *testing.T) {
	dir := project(t, map[string]string{})
	cfg := filepath.Join(dir, config.FileName)

	out, _, err := execute(t, "int a = 5;", "tokens", "--config", cfg, "-")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 || lines[0] != "   1:1    <Primitive, int>" || !strings.Contains(lines[3], `<IntegerLiteral, 5, "5">`) {
		t.Fatalf("got %q", out)
	}

	out, _, err = execute(t, "int a; // c", "tokens", "--config", cfg, "--comments", "-f", "yaml", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "kind: SingleLineComment") || !strings.Contains(out, "line: 1") {
		t.Fatalf("got %q", out)
	}

	_, errOut, err := execute(t, "00", "tokens", "--config", cfg, "-")
	if err != errFailed || !strings.Contains(errOut, "<stdin>:1:1: error S") {
		t.Fatalf("err = %v, stderr = %q", err, errOut)
	}
}

func TestClassify(t *testing.T) {
	dir := project(t, map[string]string{"rg.grammar": regularGrammar, "bad.grammar": "({S},{a},{S > b},S)"})
	cfg := filepath.Join(dir, config.FileName)

	out, _, err := execute(t, "", "classify", "--config", cfg, filepath.Join(dir, "rg.grammar"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "regular (Type-3, RG)\n") {
		t.Fatalf("got %q", out)
	}

	out, _, err = execute(t, regularGrammar, "classify", "--config", cfg, "--format", "yaml", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "classification: regular") || !strings.Contains(out, "abbrev: RG") {
		t.Fatalf("got %q", out)
	}

	_, errOut, err := execute(t, "", "classify", "--config", cfg, filepath.Join(dir, "bad.grammar"))
	if err != errFailed || !strings.Contains(errOut, "G006") {
		t.Fatalf("err = %v, stderr = %q", err, errOut)
	}

	if _, _, err := execute(t, "", "classify", "--config", cfg, filepath.Join(dir, "missing.grammar")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestParse(t *testing.T) {
	dir := project(t, map[string]string{})
	cfg := filepath.Join(dir, config.FileName)

	out, errOut, err := execute(t, "void main(){ int a = 5; }", "parse", "--config", cfg, "-")
	if err != nil {
		t.Fatal(err)
	}
	if out != "void main(){\n    int a = 5;\n}\n" || errOut != "" {
		t.Fatalf("stdout %q, stderr %q", out, errOut)
	}

	out, errOut, err = execute(t, "Foo a = 1;", "parse", "--config", cfg, "-")
	if err != nil || out != "Foo a = 1;\n" || !strings.Contains(errOut, "warning L001") {
		t.Fatalf("err %v, stdout %q, stderr %q", err, out, errOut)
	}
	_, errOut, _ = execute(t, "Foo a = 1;", "parse", "--config", cfg, "--no-lint", "-")
	if errOut != "" {
		t.Fatalf("lint ran with --no-lint: %q", errOut)
	}

	out, _, err = execute(t, "int a = 5\nint b = 6\n", "parse", "--config", cfg, "--line-separators", "-")
	if err != nil || out != "int a = 5;\nint b = 6;\n" {
		t.Fatalf("err %v, stdout %q", err, out)
	}

	_, errOut, err = execute(t, "int a = 5 int b = 6;", "parse", "--config", cfg, "-")
	if err != errFailed || !strings.Contains(errOut, "<stdin>:1:11: error P004") {
		t.Fatalf("err %v, stderr %q", err, errOut)
	}
}

func TestCheck(t *testing.T) {
	dir := project(t, map[string]string{
		"good.c":             "int a = 1;",
		"src/bad.c":          "int a;",
		"src/warn.c":         "Foo a = 1;",
		"g.grammar":          regularGrammar,
		"notes.txt":          "not analysed",
		".git/ignored.c":     "int",
		"node_modules/lib.c": "int",
	})
	cfg := filepath.Join(dir, config.FileName)

	out, errOut, err := execute(t, "", "check", "--config", cfg, dir)
	if err != errFailed {
		t.Fatalf("err = %v", err)
	}
	if out != "checked 4 files: 1 errors, 1 warnings\n" {
		t.Fatalf("stdout %q", out)
	}
	if !strings.Contains(errOut, filepath.Join(dir, "src", "bad.c")+":1:6: error P005") {
		t.Fatalf("stderr %q", errOut)
	}

	out, _, err = execute(t, "", "check", "--config", cfg, filepath.Join(dir, "good.c"), filepath.Join(dir, "g.grammar"))
	if err != nil || out != "checked 2 files: 0 errors, 0 warnings\n" {
		t.Fatalf("err %v, stdout %q", err, out)
	}
}

func TestConfigErrors(t *testing.T) {
	dir := project(t, map[string]string{"broken.toml": "[output]\nformat = \"xml\"\n"})
	if _, _, err := execute(t, "int a = 1;", "parse", "--config", filepath.Join(dir, "broken.toml"), "-"); err == nil {
		t.Fatal("expected config error")
	}
	if _, _, err := execute(t, "int a = 1;", "parse", "--config", filepath.Join(dir, config.FileName), "-f", "json", "-"); err == nil {
		t.Fatal("expected format error")
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, _, err := execute(t, "", "init")
	if err != nil {
		t.Fatal(err)
	}
	if out != "created chomsky.toml\ncreated main.c\ncreated example.grammar\n" {
		t.Fatalf("got %q", out)
	}
	if _, err := config.Load(filepath.Join(dir, config.FileName)); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}

	// The starter files must pass the check.
	if out, errOut, err := execute(t, "", "check"); err != nil || errOut != "" {
		t.Fatalf("check starter files: %v %q %q", err, out, errOut)
	}

	if _, _, err := execute(t, "", "init"); err == nil {
		t.Fatal("second init should refuse to overwrite")
	}
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "", "init", "--force")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "created chomsky.toml\n") {
		t.Fatalf("got %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil || !strings.HasPrefix(out, "chomsky v"+Version+"\n") {
		t.Fatalf("err %v, got %q", err, out)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	a := &app{cfg: config.Default(), opts: analysis.DefaultOptions(), plain: true}
	var out, errOut lockedBuffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, cmd, []string{dir}, ready) }()
	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	good := filepath.Join(dir, "good.c")
	bad := filepath.Join(dir, "bad.c")
	if err := os.WriteFile(good, []byte("int a = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("int a;"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s := out.String()
		if strings.Contains(s, good+": ok (source)") && strings.Contains(s, bad+": failed") {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	s := out.String()
	if !strings.Contains(s, good+": ok (source)") || !strings.Contains(s, bad+": failed") {
		t.Fatalf("stdout %q", s)
	}
	if !strings.Contains(errOut.String(), "error P005") {
		t.Fatalf("stderr %q", errOut.String())
	}
}
