package analysis

import (
	"testing"

	"gameready/internal/store"
)

func TestRangeFor(t *testing.T) {
	match := &store.DayType{Name: "Match", TargetMin: 75, TargetMax: 90}

	tests := []struct {
		name     string
		dayType  *store.DayType
		midpoint int
		expected TargetRange
	}{
		{"day type band verbatim", match, 70, TargetRange{75, 90}},
		{"team default", nil, 70, TargetRange{65, 75}},
		{"clamped low", nil, 2, TargetRange{0, 7}},
		{"clamped high", nil, 98, TargetRange{93, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangeFor(tt.dayType, tt.midpoint); got != tt.expected {
				t.Errorf("RangeFor() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestTargetRangeClassify(t *testing.T) {
	r := TargetRange{Min: 60, Max: 80}

	tests := []struct {
		score    int
		expected RangeStatus
	}{
		{59, Below},
		{60, Within},
		{70, Within},
		{80, Within},
		{81, Above},
	}

	for _, tt := range tests {
		if got := r.Classify(tt.score); got != tt.expected {
			t.Errorf("Classify(%d) = %v, want %v", tt.score, got, tt.expected)
		}
	}

	if got := r.Midpoint(); got != 70 {
		t.Errorf("Midpoint() = %d, want 70", got)
	}
}
