package tooling

import (
	"strings"
	"testing"
)

func TestQuickFixes(t *testing.T) {
	api := newTestAPI()
	uri := "file:///orders.aabha"
	api.OpenDocument(uri, "@Context({})\nclass Orders {}\n")

	fullRange := Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 1, Character: 0}}
	fixes, err := api.QuickFixes(uri, fullRange)
	if err != nil {
		t.Fatalf("QuickFixes error: %v", err)
	}
	if len(fixes) != 1 {
		t.Fatalf("expected 1 quick fix, got %d", len(fixes))
	}

	fix := fixes[0]
	if fix.RuleID != "context-description" {
		t.Errorf("RuleID = %s, want context-description", fix.RuleID)
	}
	if fix.Title != "Apply fix (context-description)" {
		t.Errorf("Title = %q", fix.Title)
	}
	if fix.Diagnostic.Code != "context-description" {
		t.Errorf("diagnostic code = %s", fix.Diagnostic.Code)
	}

	if len(fix.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(fix.Edits))
	}
	edit := fix.Edits[0]
	if !strings.HasPrefix(edit.NewText, "description: '") {
		t.Errorf("NewText = %q, want an inserted description field", edit.NewText)
	}
	// Insertion point is just before the argument's closing brace.
	want := Position{Line: 0, Character: 10}
	if edit.Range.Start != want || edit.Range.End != want {
		t.Errorf("edit range = %+v, want zero-width at %+v", edit.Range, want)
	}
}

func TestQuickFixes_RangeFilter(t *testing.T) {
	api := newTestAPI()
	uri := "file:///orders.aabha"
	api.OpenDocument(uri, "@Context({})\nclass Orders {}\n")

	// A range entirely past the finding returns nothing.
	below := Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 5}}
	fixes, err := api.QuickFixes(uri, below)
	if err != nil {
		t.Fatalf("QuickFixes error: %v", err)
	}
	if len(fixes) != 0 {
		t.Errorf("expected no fixes below the finding, got %d", len(fixes))
	}

	// A cursor touching the annotation matches.
	cursor := Range{Start: Position{Line: 0, Character: 4}, End: Position{Line: 0, Character: 4}}
	fixes, err = api.QuickFixes(uri, cursor)
	if err != nil {
		t.Fatalf("QuickFixes error: %v", err)
	}
	if len(fixes) != 1 {
		t.Errorf("expected 1 fix at the cursor, got %d", len(fixes))
	}
}

func TestQuickFixes_NoFixableFindings(t *testing.T) {
	api := newTestAPI()
	uri := "file:///orders.aabha"
	api.OpenDocument(uri, ordersSource)

	fixes, err := api.QuickFixes(uri, Range{Start: Position{}, End: Position{Line: 2}})
	if err != nil {
		t.Fatalf("QuickFixes error: %v", err)
	}
	if len(fixes) != 0 {
		t.Errorf("expected no fixes on a clean document, got %d", len(fixes))
	}
}

func TestQuickFixes_UnknownDocument(t *testing.T) {
	api := newTestAPI()

	if _, err := api.QuickFixes("file:///never-opened.aabha", Range{}); err == nil {
		t.Fatal("expected an error for an unopened document")
	}
}
