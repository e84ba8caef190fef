package types

import "testing"

func TestDeadlineOffsetDays(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		expected int
	}{
		{"positive value kept", 15, 15},
		{"absent field falls back to default", 0, DEFAULT_DEADLINE_OFFSET_DAYS},
		{"negative value falls back to default", -3, DEFAULT_DEADLINE_OFFSET_DAYS},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := Project{FixedDeadlineDays: test.value}
			if got := p.DeadlineOffsetDays(); got != test.expected {
				t.Errorf("expected %d, got %d", test.expected, got)
			}
		})
	}
}
