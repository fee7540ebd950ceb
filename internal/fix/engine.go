package fix

import (
	"errors"
	"fmt"
	"sort"

	"lumos/internal/diag"
	"lumos/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies only the first candidate in deterministic order.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every non-conflicting candidate.
	ApplyModeAll
	// ApplyModeID applies the single fix with the given identifier.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Message   string
	EditCount int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult aggregates applied fixes, skipped ones, and the rewritten text.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	NewText string
	Changed bool
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes attached to the diagnostics according to opts and
// applies them to the document text. All edit ranges refer to the original
// document; OldText guards are checked against it and overlapping candidates
// are skipped rather than applied out of order.
func Apply(doc *source.Document, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
		NewText: doc.Text(),
	}

	candidates, gatherSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, gatherSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, applySkips, newText := applyCandidates(doc, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, applySkips...)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	result.NewText = newText
	result.Changed = newText != doc.Text()
	return result, nil
}

// gatherCandidates flattens diagnostics into fix candidates, synthesizing a
// stable ID when a fix has none and skipping duplicates and empty fixes.
// The insertion order provides the final sort tie-break.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]bool)

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Range.Start.Line, d.Range.Start.Col, idx)
			}
			if seen[f.ID] {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders candidates deterministically: range start, range end,
// insertion order, diagnostic code, preference, fix ID, fix title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Range.Start != dj.Range.Start {
			return di.Range.Start.Before(dj.Range.Start)
		}
		if di.Range.End != dj.Range.End {
			return di.Range.End.Before(dj.Range.End)
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

func applyCandidates(doc *source.Document, selected []candidate) ([]AppliedFix, []SkippedFix, string) {
	text := doc.Text()
	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)
	var staged []diag.TextEdit

	for _, cand := range selected {
		reason := ""
		for _, edit := range cand.fix.Edits {
			if conflictsWithStaged(staged, edit) {
				reason = "conflicts with previously applied edits"
				break
			}
			start := doc.OffsetOf(edit.Range.Start)
			end := doc.OffsetOf(edit.Range.End)
			if end < start || end > len(text) {
				reason = "edit range out of bounds"
				break
			}
			if edit.OldText != "" && text[start:end] != edit.OldText {
				reason = "existing text does not match expected content"
				break
			}
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason})
			continue
		}
		staged = append(staged, cand.fix.Edits...)
		applied = append(applied, AppliedFix{
			ID:        cand.fix.ID,
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			EditCount: len(cand.fix.Edits),
		})
	}

	if len(staged) == 0 {
		return applied, skipped, text
	}

	// All staged ranges refer to the original document; applying from the
	// back keeps earlier offsets stable.
	sort.SliceStable(staged, func(i, j int) bool {
		if staged[i].Range.Start == staged[j].Range.Start {
			return staged[j].Range.End.Before(staged[i].Range.End)
		}
		return staged[j].Range.Start.Before(staged[i].Range.Start)
	})
	for _, edit := range staged {
		start := doc.OffsetOf(edit.Range.Start)
		end := doc.OffsetOf(edit.Range.End)
		text = text[:start] + edit.NewText + text[end:]
	}
	return applied, skipped, text
}

func conflictsWithStaged(staged []diag.TextEdit, edit diag.TextEdit) bool {
	for _, prev := range staged {
		if prev.Range.Overlaps(edit.Range) {
			return true
		}
	}
	return false
}
