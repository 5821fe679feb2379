package format

import (
	"strings"
	"testing"
)

func TestDiff_NoChanges(t *testing.T) {
	d := Diff("same\ntext\n", "same\ntext\n")

	if d.Changed {
		t.Error("identical texts should not count as changed")
	}
	if got := d.Terminal(true); got != "no changes" {
		t.Errorf("Terminal = %q", got)
	}
	if got := d.Unified("file.aabha"); got != "" {
		t.Errorf("Unified = %q", got)
	}
	if got := d.Stats(); got != "no changes" {
		t.Errorf("Stats = %q", got)
	}
}

func TestDiff_ChangedLine(t *testing.T) {
	original := "@Context({ name: 'Orders', description: '' })\nclass Orders {}"
	fixed := "@Context({ name: 'Orders', description: 'TODO: describe this context.' })\nclass Orders {}"

	d := Diff(original, fixed)
	if !d.Changed {
		t.Fatal("texts differ")
	}

	out := d.Terminal(true)
	if !strings.Contains(out, "@@ line 1 @@") {
		t.Errorf("missing line marker:\n%s", out)
	}
	if !strings.Contains(out, "- @Context({ name: 'Orders', description: '' })") {
		t.Errorf("missing removed line:\n%s", out)
	}
	if !strings.Contains(out, "+ @Context({ name: 'Orders', description: 'TODO: describe this context.' })") {
		t.Errorf("missing added line:\n%s", out)
	}
	// The unchanged class line stays out of the diff
	if strings.Contains(out, "class Orders") {
		t.Errorf("unchanged line leaked into the diff:\n%s", out)
	}
}

func TestDiff_Unified(t *testing.T) {
	d := Diff("a\nb\n", "a\nc\n")

	out := d.Unified("src/model.aabha")
	want := []string{
		"--- a/src/model.aabha",
		"+++ b/src/model.aabha",
		"@@ -2 +2 @@",
		"-b",
		"+c",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q in:\n%s", line, out)
		}
	}
}

func TestDiff_AddedLines(t *testing.T) {
	// Fixes can grow a file; the extra trailing lines show as additions
	d := Diff("one", "one\ntwo")

	out := d.Terminal(true)
	if !strings.Contains(out, "@@ line 2 @@") || !strings.Contains(out, "+ two") {
		t.Errorf("trailing addition not rendered:\n%s", out)
	}

	if got := d.Stats(); got != "0 changed, 1 added line(s)" {
		t.Errorf("Stats = %q", got)
	}
}

func TestDiff_Stats(t *testing.T) {
	d := Diff("a\nb\nc", "a\nB\nc")
	if got := d.Stats(); got != "1 changed line(s)" {
		t.Errorf("Stats = %q", got)
	}
}
