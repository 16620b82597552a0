package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotSelectorAddExtendsBoundaries(t *testing.T) {
	s := NewSlotSelector()

	assert.True(t, s.Add("10:00"))
	assert.True(t, s.Add("11:00")) // extend right
	assert.True(t, s.Add("09:00")) // extend left

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, s.Labels())
}

func TestSlotSelectorAddRejectsNonAdjacent(t *testing.T) {
	s := NewSlotSelector()

	assert.True(t, s.Add("10:00"))
	assert.False(t, s.Add("13:00")) // gap
	assert.False(t, s.Add("10:00")) // duplicate
	assert.False(t, s.Add("bogus"))

	assert.Equal(t, []string{"10:00"}, s.Labels())
}

func TestSlotSelectorDoesNotWrapMidnight(t *testing.T) {
	s := NewSlotSelector()

	assert.True(t, s.Add("23:00"))
	assert.False(t, s.Add("00:00"))

	s.Clear()
	assert.True(t, s.Add("00:00"))
	assert.False(t, s.Add("23:00"))
}

func TestSlotSelectorRemoveBoundary(t *testing.T) {
	s := NewSlotSelector()
	s.Add("10:00")
	s.Add("11:00")
	s.Add("12:00")

	s.Remove("10:00")
	assert.Equal(t, []string{"11:00", "12:00"}, s.Labels())

	s.Remove("12:00")
	assert.Equal(t, []string{"11:00"}, s.Labels())
}

func TestSlotSelectorRemoveInteriorResetsSelection(t *testing.T) {
	s := NewSlotSelector()
	s.Add("10:00")
	s.Add("11:00")
	s.Add("12:00")

	// Dropping the middle hour would split the run.
	s.Remove("11:00")

	assert.Empty(t, s.Labels())
}

func TestSlotSelectorRemoveUnknownLabelIgnored(t *testing.T) {
	s := NewSlotSelector()
	s.Add("10:00")

	s.Remove("15:00")
	s.Remove("bogus")

	assert.Equal(t, []string{"10:00"}, s.Labels())
}

func TestSlotSelectorClear(t *testing.T) {
	s := NewSlotSelector()
	s.Add("10:00")
	s.Add("11:00")

	s.Clear()

	assert.Empty(t, s.Labels())
	assert.True(t, s.Add("14:00")) // usable again after reset
}
