package main

import (
	"os"
	"sync"

	"chomsky/internal/analysis"
	"chomsky/internal/config"
	"chomsky/internal/lsp"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "chomsky-lsp"

var version = "0.1"

var (
	log     = commonlog.GetLogger("chomsky.lsp")
	store   = lsp.NewStore()
	handler protocol.Handler

	optsMu sync.RWMutex
	opts   = analysis.DefaultOptions()
)

var (
	verbosity int
	logFile   string
	stdio     bool
)

var rootCmd = &cobra.Command{
	Use:     lsName,
	Short:   "Language server for chomsky sources and grammar descriptions",
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries JSON-RPC, so logs go to a file or stderr.
		var path *string
		if logFile != "" {
			path = &logFile
		}
		commonlog.Configure(verbosity, path)
		return run()
	},
}

func init() {
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	// Some clients pass --stdio; it is the only transport.
	rootCmd.Flags().BoolVar(&stdio, "stdio", true, "serve over stdin/stdout")
	_ = rootCmd.Flags().MarkHidden("stdio")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	handler = protocol.Handler{
		Initialize:                     initialize,
		Initialized:                    initialized,
		Shutdown:                       shutdown,
		SetTrace:                       setTrace,
		TextDocumentDidOpen:            textDocumentDidOpen,
		TextDocumentDidChange:          textDocumentDidChange,
		TextDocumentDidSave:            textDocumentDidSave,
		TextDocumentDidClose:           textDocumentDidClose,
		TextDocumentCodeAction:         textDocumentCodeAction,
		TextDocumentSemanticTokensFull: textDocumentSemanticTokensFull,
		TextDocumentDocumentSymbol:     textDocumentDocumentSymbol,
		TextDocumentHover:              textDocumentHover,
	}

	s := server.NewServer(&handler, lsName, false)
	return s.RunStdio()
}

func currentOptions() analysis.Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

func initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	root := "."
	if params.RootURI != nil {
		root = lsp.UriToPath(*params.RootURI)
	} else if params.RootPath != nil {
		root = *params.RootPath
	}
	if root == "" {
		root = "."
	}
	loadOptions(root)

	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
			Save:      protocol.SaveOptions{IncludeText: &protocol.False},
		},
		CodeActionProvider: protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: lsp.Legend(),
			Full:   true,
			Range:  false,
		},
		DocumentSymbolProvider: true,
		HoverProvider:          true,
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

// loadOptions reads chomsky.toml from the workspace root or above. A
// broken file is logged and the defaults stay in place.
func loadOptions(root string) {
	path, ok := config.Find(root)
	if !ok {
		log.Infof("no %s above %s, using defaults", config.FileName, root)
		return
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	optsMu.Lock()
	opts = analysis.OptionsFrom(cfg)
	optsMu.Unlock()
	log.Infof("loaded %s", path)
}

func initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := store.Set(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	publishDiagnostics(ctx, doc)
	return nil
}

func textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text, ok := extractFullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		return nil
	}
	doc := store.Set(string(params.TextDocument.URI), text, params.TextDocument.Version)
	publishDiagnostics(ctx, doc)
	return nil
}

func textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if doc, ok := store.Get(string(params.TextDocument.URI)); ok {
		publishDiagnostics(ctx, doc)
	}
	return nil
}

func textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	store.Delete(uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	actions := lsp.CodeActions(doc, params.Context.Diagnostics)
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

func textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	sem := lsp.SemanticTokensForText(doc.Path, doc.Text, currentOptions())
	return &protocol.SemanticTokens{Data: lsp.EncodeSemanticTokens(sem)}, nil
}

func textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}
	return lsp.DocumentSymbols(doc, currentOptions()), nil
}

func textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return lsp.Hover(doc, params.Position, currentOptions()), nil
}

func publishDiagnostics(ctx *glsp.Context, doc lsp.Document) {
	diags := lsp.Diagnose(doc, currentOptions())
	log.Debugf("%s (v%d): %d diagnostics", doc.URI, doc.Version, len(diags))
	v := protocol.UInteger(doc.Version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(doc.URI),
		Version:     &v,
		Diagnostics: diags,
	})
}

func extractFullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		return typed.Text, true
	default:
		return "", false
	}
}
