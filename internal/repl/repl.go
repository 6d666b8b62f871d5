// Package repl is the interactive analyzer: each complete input is scanned,
// parsed or classified depending on the current mode.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"chomsky/internal/analysis"
	"chomsky/internal/render"
)

var log = commonlog.GetLogger("chomsky.repl")

const (
	prompt2 = "....> "
	input   = "<repl>"
)

type Mode int

const (
	ModeParse Mode = iota
	ModeTokens
	ModeGrammar
)

func (m Mode) String() string {
	switch m {
	case ModeTokens:
		return "tokens"
	case ModeGrammar:
		return "grammar"
	}
	return "parse"
}

func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{ModeParse, ModeTokens, ModeGrammar} {
		if m.String() == s {
			return m, true
		}
	}
	return ModeParse, false
}

type Config struct {
	Options analysis.Options
	Format  render.Format
	Mode    Mode
	// Styled colors diagnostics.
	Styled bool
	// HistoryPath is read on start and written on exit when set.
	HistoryPath string
}

// LineReader is the part of liner.State a session needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type Session struct {
	in   LineReader
	out  io.Writer
	cfg  Config
	mode Mode
}

func NewSession(in LineReader, out io.Writer, cfg Config) *Session {
	return &Session{in: in, out: out, cfg: cfg, mode: cfg.Mode}
}

func (s *Session) Mode() Mode { return s.mode }

// Start runs a terminal session with line editing until EOF or :quit.
func Start(out io.Writer, cfg Config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryPath != "" {
		if f, err := os.Open(cfg.HistoryPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.HistoryPath)
			if err != nil {
				log.Warningf("write history: %v", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Fprint(out, "chomsky REPL (Ctrl+D to exit, :help for commands)\n")
	return NewSession(ln, out, cfg).Loop()
}

// Loop reads inputs until EOF, an abort or :quit. Lines are accumulated
// while braces, parentheses, a string or a block comment are still open.
func (s *Session) Loop() error {
	var buf strings.Builder
	depthBraces := 0
	depthParens := 0
	inString := false
	escaped := false
	inBlockComment := false

	for {
		prompt := s.mode.String() + "> "
		if buf.Len() > 0 {
			prompt = prompt2
		}
		line, err := s.in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprint(s.out, "\n")
			return nil
		}
		if err != nil {
			return err
		}

		trim := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trim == "" {
				continue
			}
			if strings.HasPrefix(trim, ":") || trim == "exit" || trim == "quit" {
				if !s.command(trim) {
					return nil
				}
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		depthBraces, depthParens, inString, escaped, inBlockComment = updateBalance(line, depthBraces, depthParens, inString, escaped, inBlockComment)
		if depthBraces > 0 || depthParens > 0 || inString || inBlockComment {
			continue
		}

		src := buf.String()
		buf.Reset()
		s.in.AppendHistory(strings.TrimRight(src, "\n"))
		s.Eval(src)
	}
}

// command runs a ':' command and reports whether the session continues.
func (s *Session) command(cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q", "exit", "quit":
		return false
	case ":help":
		fmt.Fprint(s.out, "  :parse    parse declarations (default)\n"+
			"  :tokens   show the token stream\n"+
			"  :grammar  classify a grammar description\n"+
			"  :mode     show the current mode\n"+
			"  :quit     leave\n")
	case ":mode":
		fmt.Fprintf(s.out, "mode: %s\n", s.mode)
	default:
		m, ok := ParseMode(strings.TrimPrefix(fields[0], ":"))
		if !ok {
			fmt.Fprintf(s.out, "unknown command %s, try :help\n", fields[0])
			return true
		}
		s.mode = m
		log.Debugf("mode %s", m)
	}
	return true
}

// Eval analyses one complete input in the current mode.
func (s *Session) Eval(src string) {
	var err error
	switch s.mode {
	case ModeTokens:
		toks, ds := analysis.Tokens(src, s.cfg.Options)
		if len(ds) > 0 {
			err = render.Diagnostics(s.out, input, ds, s.cfg.Styled)
			break
		}
		err = render.Tokens(s.out, toks, s.cfg.Format)
	case ModeGrammar:
		res, ds := analysis.Grammar(src)
		if len(ds) > 0 {
			err = render.Diagnostics(s.out, input, ds, s.cfg.Styled)
			break
		}
		err = render.Grammar(s.out, res, s.cfg.Format)
	default:
		res, ds := analysis.Program(src, s.cfg.Options)
		if res != nil {
			if err = render.Program(s.out, res.Program, s.cfg.Format); err != nil {
				break
			}
		}
		err = render.Diagnostics(s.out, input, ds, s.cfg.Styled)
	}
	if err != nil {
		fmt.Fprintf(s.out, "output error: %v\n", err)
	}
}

func updateBalance(line string, braces, parens int, inString, escaped, inBlockComment bool) (int, int, bool, bool, bool) {
	for i := 0; i < len(line); i++ {
		ch := line[i]

		if inBlockComment {
			if ch == '*' && i+1 < len(line) && line[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}

		if inString {
			if escaped {
				escaped = false
				continue
			}
			if ch == '\\' {
				escaped = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			break
		}
		if ch == '/' && i+1 < len(line) && line[i+1] == '*' {
			inBlockComment = true
			i++
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		}
	}
	// A string never spans lines; the scanner reports it as unterminated.
	return braces, parens, false, false, inBlockComment
}
