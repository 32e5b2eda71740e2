// internal/filter/filter.go
package filter

import (
	"github.com/solatis/fontfilter/internal/records"
)

/*
 * Record set filtering.
 *
 * Strict keeps, in order, every record the predicate accepts. For a List the
 * conditions are evaluated cheapest first (see cost.go); AND is commutative,
 * so only the amount of work changes, never the result.
 *
 * Soft is progressive greedy refinement:
 *   1. working := copy of the input (shared record references)
 *   2. for each condition, in list order, while working has >1 record:
 *        candidate := Strict(condition, working)
 *        non-empty -> working = candidate
 *        empty     -> condition skipped, working unchanged
 *   3. return working
 * Earlier conditions are stronger preferences, so reordering the list can
 * change the result.
 *
 * All sets come from the injected SetAllocator. On failure every set built
 * so far is released and no partial result escapes.
 */

// Step records what one soft-filter condition did.
type Step struct {
	Index     int    // position in the list
	Condition string // rendered condition
	Before    int    // working set size before the step
	After     int    // working set size after the step
	Applied   bool   // false when the condition would have emptied the set
}

// Strict returns a new set holding every record of set that pred accepts.
// A nil sets factory selects records.DefaultSets.
func Strict(pred Predicate, set *records.Set, sets *records.SetAllocator) (*records.Set, error) {
	if sets == nil {
		sets = records.DefaultSets()
	}
	if l, ok := pred.(*List); ok {
		pred = byCost(l)
	}

	filtered, err := sets.NewSet()
	if err != nil {
		return nil, err
	}
	for _, r := range set.Records() {
		if !pred.Test(r) {
			continue
		}
		if err := filtered.Append(r); err != nil {
			filtered.Release()
			return nil, err
		}
	}
	return filtered, nil
}

// Soft narrows set through the list's conditions, skipping any condition that
// would leave nothing, and stops once at most one record remains.
func Soft(list *List, set *records.Set, sets *records.SetAllocator) (*records.Set, error) {
	out, _, err := soft(list, set, sets, false)
	return out, err
}

// SoftTrace is Soft that also reports one Step per condition it evaluated.
// Conditions after the early stop produce no Step.
func SoftTrace(list *List, set *records.Set, sets *records.SetAllocator) (*records.Set, []Step, error) {
	return soft(list, set, sets, true)
}

func soft(list *List, set *records.Set, sets *records.SetAllocator, trace bool) (*records.Set, []Step, error) {
	if sets == nil {
		sets = records.DefaultSets()
	}

	working, err := sets.Copy(set)
	if err != nil {
		return nil, nil, err
	}

	var steps []Step
	for i, c := range list.items {
		if working.Len() <= 1 {
			break
		}

		candidate, err := Strict(c, working, sets)
		if err != nil {
			working.Release()
			return nil, nil, err
		}

		before := working.Len()
		applied := candidate.Len() > 0
		if applied {
			working.Release()
			working = candidate
		} else {
			candidate.Release()
		}

		if trace {
			steps = append(steps, Step{
				Index:     i,
				Condition: c.String(),
				Before:    before,
				After:     working.Len(),
				Applied:   applied,
			})
		}
	}

	return working, steps, nil
}
