// Package analysis runs the scanner, grammar classifier, parser and linter
// for the CLI, the REPL, the watcher and the language server.
package analysis

import (
	"github.com/tliron/commonlog"

	"chomsky/internal/ast"
	"chomsky/internal/config"
	"chomsky/internal/diag"
	"chomsky/internal/grammar"
	"chomsky/internal/lexer"
	"chomsky/internal/lint"
	"chomsky/internal/parser"
	"chomsky/internal/scope"
	"chomsky/internal/token"
)

var log = commonlog.GetLogger("chomsky.analysis")

type Options struct {
	// ScanLineSeparators makes Tokens emit line separator tokens.
	ScanLineSeparators bool
	KeepComments       bool
	// ParseLineSeparators lets a line break end a statement.
	ParseLineSeparators bool
	Lint                bool
	LintOptions         lint.Options
	Files               config.FilesConfig
}

func DefaultOptions() Options {
	return OptionsFrom(config.Default())
}

func OptionsFrom(cfg *config.Config) Options {
	return Options{
		ScanLineSeparators:  cfg.Scan.LineSeparators,
		KeepComments:        cfg.Scan.KeepComments,
		ParseLineSeparators: cfg.Parse.LineSeparators,
		Lint:                cfg.Lint.Enabled,
		LintOptions:         lint.Options{CheckShadowing: cfg.Lint.CheckShadowing},
		Files:               cfg.Files,
	}
}

// Tokens scans src. Comments are dropped unless KeepComments is set.
func Tokens(src string, opts Options) ([]token.Token, []diag.Diagnostic) {
	toks, err := lexer.Tokens(src, opts.ScanLineSeparators)
	if err != nil {
		log.Debugf("scan failed: %v", err)
		return nil, []diag.Diagnostic{diag.FromError(err)}
	}
	if !opts.KeepComments {
		toks = token.WithoutComments(toks)
	}
	log.Debugf("scanned %d tokens", len(toks))
	return toks, nil
}

type GrammarResult struct {
	Grammar        *grammar.Grammar
	Classification grammar.Classification
}

// Grammar reads and classifies a grammar description.
func Grammar(src string) (*GrammarResult, []diag.Diagnostic) {
	g, err := grammar.Analyse(src)
	if err != nil {
		log.Debugf("grammar analysis failed: %v", err)
		return nil, []diag.Diagnostic{diag.FromError(err)}
	}
	c, err := grammar.Classify(g)
	if err != nil {
		log.Debugf("grammar classification failed: %v", err)
		return &GrammarResult{Grammar: g}, []diag.Diagnostic{diag.FromError(err)}
	}
	log.Debugf("grammar with %d producers is %s", len(g.Producers), c)
	return &GrammarResult{Grammar: g, Classification: c}, nil
}

type ProgramResult struct {
	Tokens  []token.Token
	Program *ast.Statements
	Global  *scope.Scope
}

// Program scans and parses src, then lints the tree when enabled. The
// result is nil when scanning or parsing fails; lint findings come back as
// warnings next to a non-nil result.
func Program(src string, opts Options) (*ProgramResult, []diag.Diagnostic) {
	toks, err := lexer.Tokens(src, opts.ParseLineSeparators)
	if err != nil {
		log.Debugf("scan failed: %v", err)
		return nil, []diag.Diagnostic{diag.FromError(err)}
	}
	p := parser.New(toks, opts.ParseLineSeparators)
	prog, err := p.Parse()
	if err != nil {
		log.Debugf("parse failed: %v", err)
		return nil, []diag.Diagnostic{diag.FromError(err)}
	}
	res := &ProgramResult{Tokens: toks, Program: prog, Global: p.Global()}
	if !opts.Lint {
		return res, nil
	}
	warnings := lint.RunWithOptions(prog, opts.LintOptions)
	log.Debugf("parsed %d top-level statements, %d lint warnings", len(prog.List), len(warnings))
	return res, warnings
}

// Report is the outcome of analysing one file.
type Report struct {
	Path        string
	Kind        config.FileKind
	Grammar     *GrammarResult
	Program     *ProgramResult
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// File analyses src as the kind its extension names. Unknown extensions are
// parsed as program source.
func File(path, src string, opts Options) *Report {
	r := &Report{Path: path, Kind: opts.Files.KindOf(path)}
	switch r.Kind {
	case config.GrammarFile:
		r.Grammar, r.Diagnostics = Grammar(src)
	default:
		r.Program, r.Diagnostics = Program(src, opts)
	}
	log.Infof("%s: %s, %d diagnostics", path, r.Kind, len(r.Diagnostics))
	return r
}
