package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// A slot label identifies a fixed one-hour interval by its start time,
// formatted "HH:00". Dates are kept as timezone-naive "YYYY-MM-DD" strings so
// client and server never disagree about which calendar day a slot is on.

const (
	SlotLabelFormat = "15:04"
	DateFormat      = "2006-01-02"

	// SlotListSeparator joins slot labels into the compatibility string
	// stored next to the array column.
	SlotListSeparator = ","
)

// SlotHour parses the starting hour out of a "HH:MM" label.
func SlotHour(label string) (int, error) {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 || parts[1] != "00" {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}

	return hour, nil
}

// FormatSlot renders an hour as a slot label.
func FormatSlot(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// HoursBetween lists every hourly label in [open, close). When close <= open
// the range wraps past midnight, e.g. 18:00-02:00 yields 18:00..23:00,
// 00:00, 01:00.
func HoursBetween(openTime, closeTime string) ([]string, error) {
	openHour, err := SlotHour(openTime)
	if err != nil {
		return nil, fmt.Errorf("opening time: %w", err)
	}

	closeHour, err := SlotHour(closeTime)
	if err != nil {
		return nil, fmt.Errorf("closing time: %w", err)
	}

	span := closeHour - openHour
	if span <= 0 {
		span += 24
	}

	labels := make([]string, span)
	for i := 0; i < span; i++ {
		labels[i] = FormatSlot((openHour + i) % 24)
	}

	return labels, nil
}

// SortSlots returns a copy sorted by start hour.
func SortSlots(slots []string) []string {
	sorted := make([]string, len(slots))
	copy(sorted, slots)

	sort.Slice(sorted, func(i, j int) bool {
		hi, _ := SlotHour(sorted[i])
		hj, _ := SlotHour(sorted[j])
		return hi < hj
	})

	return sorted
}

// ContiguousSlots reports whether the slot set forms a gap-free consecutive
// run when sorted by start hour. Single-slot sets are trivially contiguous;
// empty sets and duplicate labels are not valid.
func ContiguousSlots(slots []string) bool {
	if len(slots) == 0 {
		return false
	}

	hours := make([]int, len(slots))
	for i, label := range slots {
		hour, err := SlotHour(label)
		if err != nil {
			return false
		}
		hours[i] = hour
	}

	sort.Ints(hours)
	for i := 1; i < len(hours); i++ {
		if hours[i] != hours[i-1]+1 {
			return false
		}
	}

	return true
}

// SlotsOverlap reports whether the two slot sets share any label.
func SlotsOverlap(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, label := range a {
		seen[label] = struct{}{}
	}

	for _, label := range b {
		if _, ok := seen[label]; ok {
			return true
		}
	}

	return false
}

// JoinSlots builds the delimited compatibility string from a slot set.
func JoinSlots(slots []string) string {
	return strings.Join(slots, SlotListSeparator)
}
