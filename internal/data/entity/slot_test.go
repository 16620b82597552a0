package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotHour(t *testing.T) {
	tests := []struct {
		label   string
		hour    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 9, false},
		{"23:00", 23, false},
		{"24:00", 0, true},
		{"10:30", 0, true},
		{"10", 0, true},
		{"ten:00", 0, true},
		{"-1:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		hour, err := SlotHour(tt.label)
		if tt.wantErr {
			assert.Error(t, err, tt.label)
		} else {
			assert.NoError(t, err, tt.label)
			assert.Equal(t, tt.hour, hour, tt.label)
		}
	}
}

func TestFormatSlot(t *testing.T) {
	assert.Equal(t, "00:00", FormatSlot(0))
	assert.Equal(t, "09:00", FormatSlot(9))
	assert.Equal(t, "23:00", FormatSlot(23))
}

func TestHoursBetween(t *testing.T) {
	slots, err := HoursBetween("08:00", "12:00")
	assert.NoError(t, err)
	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00"}, slots)
}

func TestHoursBetweenWrapsMidnight(t *testing.T) {
	slots, err := HoursBetween("18:00", "02:00")
	assert.NoError(t, err)
	assert.Equal(t, []string{"18:00", "19:00", "20:00", "21:00", "22:00", "23:00", "00:00", "01:00"}, slots)
}

func TestHoursBetweenEqualBoundsIsFullDay(t *testing.T) {
	slots, err := HoursBetween("00:00", "00:00")
	assert.NoError(t, err)
	assert.Len(t, slots, 24)
	assert.Equal(t, "00:00", slots[0])
	assert.Equal(t, "23:00", slots[23])
}

func TestHoursBetweenInvalidBounds(t *testing.T) {
	_, err := HoursBetween("8am", "12:00")
	assert.Error(t, err)

	_, err = HoursBetween("08:00", "noon")
	assert.Error(t, err)
}

func TestSortSlotsDoesNotMutateInput(t *testing.T) {
	in := []string{"12:00", "10:00", "11:00"}

	sorted := SortSlots(in)

	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, sorted)
	assert.Equal(t, []string{"12:00", "10:00", "11:00"}, in)
}

func TestContiguousSlots(t *testing.T) {
	tests := []struct {
		name  string
		slots []string
		want  bool
	}{
		{"single slot", []string{"10:00"}, true},
		{"consecutive run", []string{"10:00", "11:00", "12:00"}, true},
		{"unsorted consecutive run", []string{"12:00", "10:00", "11:00"}, true},
		{"gap", []string{"10:00", "12:00"}, false},
		{"duplicate", []string{"10:00", "10:00"}, false},
		{"empty", nil, false},
		{"bad label", []string{"10:00", "eleven"}, false},
		{"midnight does not wrap", []string{"23:00", "00:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContiguousSlots(tt.slots))
		})
	}
}

func TestSlotsOverlap(t *testing.T) {
	assert.True(t, SlotsOverlap([]string{"10:00", "11:00"}, []string{"11:00", "12:00"}))
	assert.False(t, SlotsOverlap([]string{"10:00", "11:00"}, []string{"12:00", "13:00"}))
	assert.False(t, SlotsOverlap(nil, []string{"10:00"}))
}

func TestJoinSlots(t *testing.T) {
	assert.Equal(t, "10:00,11:00", JoinSlots([]string{"10:00", "11:00"}))
	assert.Equal(t, "", JoinSlots(nil))
}
