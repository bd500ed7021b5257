package report

import (
	"sort"

	"legalens-backend/models"
)

// Reconciled is the deduplicated view of one clause category's raw matches:
// one representative match per distinct line plus the sorted distinct line
// numbers. Representative and LineNumbers always have the same length.
type Reconciled struct {
	Representative []models.ClauseMatch
	LineNumbers    []int
}

// Reconcile collapses matches to one per distinct line number. The first
// match in original list order wins for each line, so reordering or removing
// trailing duplicates never changes the result. An empty input yields empty
// (non-nil) slices; the caller renders that category as not found.
func Reconcile(matches []models.ClauseMatch) Reconciled {
	rec := Reconciled{
		Representative: make([]models.ClauseMatch, 0, len(matches)),
		LineNumbers:    make([]int, 0, len(matches)),
	}

	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		if seen[m.LineNumber] {
			continue
		}
		seen[m.LineNumber] = true
		rec.Representative = append(rec.Representative, m)
		rec.LineNumbers = append(rec.LineNumbers, m.LineNumber)
	}

	sort.Ints(rec.LineNumbers)
	return rec
}
