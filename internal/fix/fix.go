// Package fix applies the text edits attached to fixable diagnostics.
//
// Edits are byte ranges into the original source. A diagnostic's edits are
// applied atomically: all of them or none. The applier selects a
// non-conflicting subset deterministically, then rewrites the buffer from
// the back so earlier offsets stay valid. It never re-parses: the output is
// plain bytes, and callers re-lint to confirm the defects are gone.
package fix

import (
	"fmt"
	"sort"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// Applied records one successfully applied edit.
type Applied struct {
	RuleID    string
	MessageID string
	Start     int
	End       int
}

// Skipped records a fix that was not applied, with the reason.
type Skipped struct {
	RuleID    string
	MessageID string
	Reason    string
}

// Result is the outcome of applying fixes to a single file.
type Result struct {
	Output  []byte
	Applied []Applied
	Skipped []Skipped
}

// Changed reports whether any edit was applied
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

type candidate struct {
	diag  lint.Diagnostic
	order int
}

// start returns the candidate's earliest edit offset
func (c *candidate) start() int {
	min := c.diag.Fix[0].Start
	for _, edit := range c.diag.Fix[1:] {
		if edit.Start < min {
			min = edit.Start
		}
	}
	return min
}

// Apply rewrites source with the fixes carried by diagnostics. Diagnostics
// without a fix are ignored. When two fixes touch overlapping ranges the
// one that sorts first wins and the rest are skipped, so a later lint pass
// can fix them against the updated file.
func Apply(source []byte, diagnostics []lint.Diagnostic) *Result {
	result := &Result{Output: source}

	candidates := gather(source, diagnostics, result)
	if len(candidates) == 0 {
		return result
	}
	sortCandidates(candidates)

	selected := dropConflicts(candidates, result)
	if len(selected) == 0 {
		return result
	}

	type spliced struct {
		edit      lint.TextEdit
		ruleID    string
		messageID string
	}
	edits := make([]spliced, 0, len(selected))
	for _, cand := range selected {
		for _, edit := range cand.diag.Fix {
			edits = append(edits, spliced{edit, cand.diag.RuleID, cand.diag.MessageID})
		}
	}
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].edit.Start != edits[j].edit.Start {
			return edits[i].edit.Start < edits[j].edit.Start
		}
		return edits[i].edit.End < edits[j].edit.End
	})

	// Apply back to front; offsets before each edit are untouched.
	output := append([]byte(nil), source...)
	for i := len(edits) - 1; i >= 0; i-- {
		edit := edits[i].edit
		suffix := append([]byte(nil), output[edit.End:]...)
		output = append(append(output[:edit.Start], []byte(edit.NewText)...), suffix...)

		result.Applied = append(result.Applied, Applied{
			RuleID:    edits[i].ruleID,
			MessageID: edits[i].messageID,
			Start:     edit.Start,
			End:       edit.End,
		})
	}

	// Applied was filled back to front; present it in file order.
	sort.SliceStable(result.Applied, func(i, j int) bool {
		return result.Applied[i].Start < result.Applied[j].Start
	})

	result.Output = output
	return result
}

// gather validates fix ranges. A diagnostic with any bad or self-conflicting
// edit is skipped whole; a partial fix would corrupt the file.
func gather(source []byte, diagnostics []lint.Diagnostic, result *Result) []candidate {
	candidates := make([]candidate, 0, len(diagnostics))

	for i, diag := range diagnostics {
		if !diag.HasFix() {
			continue
		}

		valid := true
		for _, edit := range diag.Fix {
			if edit.Start < 0 || edit.End < edit.Start || edit.End > len(source) {
				result.Skipped = append(result.Skipped, Skipped{
					RuleID:    diag.RuleID,
					MessageID: diag.MessageID,
					Reason:    fmt.Sprintf("edit range [%d,%d) is outside the file", edit.Start, edit.End),
				})
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		for a := 0; valid && a < len(diag.Fix); a++ {
			for b := a + 1; b < len(diag.Fix); b++ {
				if spansConflict(diag.Fix[a], diag.Fix[b]) {
					result.Skipped = append(result.Skipped, Skipped{
						RuleID:    diag.RuleID,
						MessageID: diag.MessageID,
						Reason:    "fix edits overlap each other",
					})
					valid = false
					break
				}
			}
		}
		if !valid {
			continue
		}

		candidates = append(candidates, candidate{diag: diag, order: i})
	}

	return candidates
}

// sortCandidates orders fixes by position, then report order, then rule
// and message ID, so selection is stable across runs. Report order comes
// before rule ID so that when several fixes contend for one offset the
// one reported first wins the pass.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		if a.start() != b.start() {
			return a.start() < b.start()
		}
		if a.order != b.order {
			return a.order < b.order
		}
		if a.diag.RuleID != b.diag.RuleID {
			return a.diag.RuleID < b.diag.RuleID
		}
		return a.diag.MessageID < b.diag.MessageID
	})
}

// dropConflicts keeps the first fix touching each region and skips the rest
func dropConflicts(candidates []candidate, result *Result) []candidate {
	selected := make([]candidate, 0, len(candidates))

	for _, cand := range candidates {
		conflicting := false
	scan:
		for _, kept := range selected {
			for _, keptEdit := range kept.diag.Fix {
				for _, edit := range cand.diag.Fix {
					if spansConflict(keptEdit, edit) {
						conflicting = true
						break scan
					}
				}
			}
		}

		if conflicting {
			result.Skipped = append(result.Skipped, Skipped{
				RuleID:    cand.diag.RuleID,
				MessageID: cand.diag.MessageID,
				Reason:    "overlaps an edit applied in this pass",
			})
			continue
		}
		selected = append(selected, cand)
	}

	return selected
}

// spansConflict treats edits as half-open [Start, End) ranges. Insertions
// at the same offset conflict: each was computed without knowing about the
// other, so composing their text blindly can corrupt the file. The loser
// is regenerated against the updated source on the next pass. An insertion
// inside a replaced range conflicts with the replacement.
func spansConflict(a, b lint.TextEdit) bool {
	if a.Start == a.End && b.Start == b.End {
		return a.Start == b.Start
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
