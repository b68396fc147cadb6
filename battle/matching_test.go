package battle

import (
	"testing"

	"dansarena/models"

	"github.com/stretchr/testify/assert"
)

func prefs(userID uint, studioIDs ...uint) []models.StudioPreference {
	out := make([]models.StudioPreference, 0, len(studioIDs))
	for i, id := range studioIDs {
		out = append(out, models.StudioPreference{
			UserID:   userID,
			StudioID: id,
			Priority: i + 1,
		})
	}
	return out
}

func TestMatchStudioFavorsInitiatorOrder(t *testing.T) {
	// Initiator [A,B,C], challenged [C,A]: A wins because the initiator's
	// ranking is scanned first, even though C is the challenged side's top.
	const a, b, cc = 1, 2, 3
	studioID, ok := matchStudio(prefs(10, a, b, cc), prefs(20, cc, a))
	assert.True(t, ok)
	assert.Equal(t, uint(a), studioID)
}

func TestMatchStudioDisjointLists(t *testing.T) {
	_, ok := matchStudio(prefs(10, 1, 2), prefs(20, 3, 4))
	assert.False(t, ok)
}

func TestMatchStudioEmptySide(t *testing.T) {
	_, ok := matchStudio(prefs(10, 1, 2), nil)
	assert.False(t, ok)
	_, ok = matchStudio(nil, prefs(20, 1))
	assert.False(t, ok)
}

func TestMatchStudioIgnoresPriorityInsertionOrder(t *testing.T) {
	// Priorities decide the scan order, not slice order.
	initiator := []models.StudioPreference{
		{UserID: 10, StudioID: 5, Priority: 3},
		{UserID: 10, StudioID: 7, Priority: 1},
		{UserID: 10, StudioID: 6, Priority: 2},
	}
	challenged := prefs(20, 5, 6)
	studioID, ok := matchStudio(initiator, challenged)
	assert.True(t, ok)
	assert.Equal(t, uint(6), studioID) // 7 is not common, 6 outranks 5
}
