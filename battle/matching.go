package battle

import (
	"sort"

	"dansarena/models"
)

// matchStudio resolves a common studio from both participants' ranked
// preference lists. Each list is sorted ascending by priority, then the
// initiator's list is scanned in order and the first studio that appears
// anywhere in the challenged party's list wins. The initiator's ranking is
// the tie-break authority: with initiator [A,B,C] and challenged [C,A] the
// result is A, not C. Returns ok=false when the lists are disjoint.
func matchStudio(initiator, challenged []models.StudioPreference) (studioID uint, ok bool) {
	if len(initiator) == 0 || len(challenged) == 0 {
		return 0, false
	}

	sorted := make([]models.StudioPreference, len(initiator))
	copy(sorted, initiator)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	chosen := make(map[uint]struct{}, len(challenged))
	for _, p := range challenged {
		chosen[p.StudioID] = struct{}{}
	}

	for _, p := range sorted {
		if _, found := chosen[p.StudioID]; found {
			return p.StudioID, true
		}
	}
	return 0, false
}
