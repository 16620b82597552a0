package usecase

import (
	"venue-booking/internal/data/entity"
)

// SlotSelector mirrors the checkout UI's rule that a selection is always a
// contiguous run of hours. It is purely advisory: the reservation ledger
// re-validates every selection independently, so nothing here is trusted as
// authority.
type SlotSelector struct {
	hours []int // sorted, consecutive
}

func NewSlotSelector() *SlotSelector {
	return &SlotSelector{}
}

// Add accepts a label only when the selection is empty or the label is
// adjacent to the current minimum or maximum hour. Returns false when the
// label would break contiguity or is already selected. Adjacency does not
// wrap midnight: 23:00 and 00:00 are never one run, so a venue whose hours
// cross midnight takes two separate bookings.
func (s *SlotSelector) Add(label string) bool {
	hour, err := entity.SlotHour(label)
	if err != nil {
		return false
	}

	if len(s.hours) == 0 {
		s.hours = []int{hour}
		return true
	}

	switch hour {
	case s.hours[0] - 1:
		s.hours = append([]int{hour}, s.hours...)
		return true
	case s.hours[len(s.hours)-1] + 1:
		s.hours = append(s.hours, hour)
		return true
	default:
		return false
	}
}

// Remove drops a boundary label. Removing an interior label would split the
// run, so the whole selection resets to empty instead of attempting a
// partial repair. Unknown labels are ignored.
func (s *SlotSelector) Remove(label string) {
	hour, err := entity.SlotHour(label)
	if err != nil {
		return
	}

	switch {
	case len(s.hours) == 0:
	case hour == s.hours[0]:
		s.hours = s.hours[1:]
	case hour == s.hours[len(s.hours)-1]:
		s.hours = s.hours[:len(s.hours)-1]
	case hour > s.hours[0] && hour < s.hours[len(s.hours)-1]:
		s.hours = nil
	}
}

// Clear empties the selection.
func (s *SlotSelector) Clear() {
	s.hours = nil
}

// Labels returns the current selection in start-hour order.
func (s *SlotSelector) Labels() []string {
	labels := make([]string, len(s.hours))
	for i, hour := range s.hours {
		labels[i] = entity.FormatSlot(hour)
	}
	return labels
}
