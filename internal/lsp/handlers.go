package lsp

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/aabha-lang/aabhalint/internal/tooling"
)

// handleTextDocumentCompletion answers annotation kind and field name
// completions
func (s *Server) handleTextDocumentCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse completion params")
	}

	uri := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	completions, err := s.api.Completions(uri, pos)
	if err != nil {
		s.logger.Printf("Error getting completions: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get completions")
	}

	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		items = append(items, protocol.CompletionItem{
			Label:            c.Label,
			Kind:             convertCompletionKind(c.Kind),
			Detail:           c.Detail,
			InsertText:       c.InsertText,
			InsertTextFormat: protocol.InsertTextFormatPlainText,
		})
	}

	result := protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentHover answers hover requests over annotations
func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse hover params")
	}

	uri := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	hover, err := s.api.Hover(uri, pos)
	if err != nil {
		s.logger.Printf("Error getting hover: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get hover information")
	}

	if hover == nil {
		return reply(ctx, nil, nil)
	}

	rng := convertRange(hover.Range)
	result := protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hover.Contents,
		},
		Range: &rng,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentDocumentSymbol answers outline requests
func (s *Server) handleTextDocumentDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse document symbol params")
	}

	uri := string(params.TextDocument.URI)

	symbols, err := s.api.DocumentSymbols(uri)
	if err != nil {
		s.logger.Printf("Error getting document symbols: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get document symbols")
	}

	lspSymbols := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		rng := convertRange(sym.Range)
		lspSymbols = append(lspSymbols, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           convertSymbolKind(sym.Kind),
			Detail:         sym.Detail,
			Range:          rng,
			SelectionRange: rng,
		})
	}

	return reply(ctx, lspSymbols, nil)
}

// handleTextDocumentCodeAction offers quick fixes for fixable findings in
// the requested range
func (s *Server) handleTextDocumentCodeAction(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CodeActionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse code action params")
	}

	uri := string(params.TextDocument.URI)
	rng := tooling.Range{
		Start: tooling.Position{
			Line:      int(params.Range.Start.Line),
			Character: int(params.Range.Start.Character),
		},
		End: tooling.Position{
			Line:      int(params.Range.End.Line),
			Character: int(params.Range.End.Character),
		},
	}

	fixes, err := s.api.QuickFixes(uri, rng)
	if err != nil {
		s.logger.Printf("Error getting quick fixes: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get quick fixes")
	}

	actions := make([]protocol.CodeAction, 0, len(fixes))
	for _, fix := range fixes {
		diagnostic := protocol.Diagnostic{
			Range:    convertRange(fix.Diagnostic.Range),
			Severity: convertSeverity(fix.Diagnostic.Severity),
			Code:     fix.Diagnostic.Code,
			Source:   fix.Diagnostic.Source,
			Message:  fix.Diagnostic.Message,
		}
		edits := make([]protocol.TextEdit, 0, len(fix.Edits))
		for _, edit := range fix.Edits {
			edits = append(edits, protocol.TextEdit{
				Range:   convertRange(edit.Range),
				NewText: edit.NewText,
			})
		}
		actions = append(actions, protocol.CodeAction{
			Title:       fix.Title,
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{diagnostic},
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentURI][]protocol.TextEdit{
					params.TextDocument.URI: edits,
				},
			},
		})
	}

	return reply(ctx, actions, nil)
}

func convertCompletionKind(kind tooling.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case tooling.CompletionKindDecorator:
		return protocol.CompletionItemKindClass
	case tooling.CompletionKindField:
		return protocol.CompletionItemKindField
	default:
		return protocol.CompletionItemKindText
	}
}

func convertSymbolKind(kind tooling.SymbolKind) protocol.SymbolKind {
	switch kind {
	case tooling.SymbolKindClass:
		return protocol.SymbolKindClass
	case tooling.SymbolKindDecorator:
		return protocol.SymbolKindProperty
	default:
		return protocol.SymbolKindVariable
	}
}
