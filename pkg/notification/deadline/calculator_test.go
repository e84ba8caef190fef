package deadline

import (
	"testing"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func TestFinalReportDate(t *testing.T) {
	t.Run("missing end date", func(t *testing.T) {
		_, ok := FinalReportDate(nil, types.DEADLINE_CALCULATION_BUSINESS_DAYS, 10)
		if ok {
			t.Error("expected no deadline for missing end date")
		}
	})

	t.Run("calendar days", func(t *testing.T) {
		got, ok := FinalReportDate(datePtr(2024, time.January, 5), types.DEADLINE_CALCULATION_CALENDAR_DAYS, 10)
		if !ok {
			t.Fatal("expected a deadline")
		}
		if want := date(2024, time.January, 15); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("business days skip weekends", func(t *testing.T) {
		// Friday + 10 business days crosses two weekends
		got, ok := FinalReportDate(datePtr(2024, time.January, 5), types.DEADLINE_CALCULATION_BUSINESS_DAYS, 10)
		if !ok {
			t.Fatal("expected a deadline")
		}
		if want := date(2024, time.January, 19); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("business days never land on a weekend", func(t *testing.T) {
		for offset := 1; offset < 15; offset++ {
			got, ok := FinalReportDate(datePtr(2024, time.March, 1), types.DEADLINE_CALCULATION_BUSINESS_DAYS, offset)
			if !ok {
				t.Fatal("expected a deadline")
			}
			if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
				t.Errorf("offset %d landed on a weekend: %v", offset, got)
			}
		}
	})

	t.Run("zero offset returns end date unchanged", func(t *testing.T) {
		got, ok := FinalReportDate(datePtr(2024, time.January, 6), types.DEADLINE_CALCULATION_BUSINESS_DAYS, 0)
		if !ok {
			t.Fatal("expected a deadline")
		}
		// A Saturday stays a Saturday when nothing is added
		if want := date(2024, time.January, 6); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestDeadlineDays(t *testing.T) {
	tests := []struct {
		name     string
		final    time.Time
		method   types.DeadlineCalculationMethod
		today    time.Time
		expected int
	}{
		{
			name:     "overdue is a negative calendar diff",
			final:    date(2024, time.January, 10),
			method:   types.DEADLINE_CALCULATION_BUSINESS_DAYS,
			today:    date(2024, time.January, 15),
			expected: -5,
		},
		{
			name:     "calendar days ahead",
			final:    date(2024, time.January, 20),
			method:   types.DEADLINE_CALCULATION_CALENDAR_DAYS,
			today:    date(2024, time.January, 10),
			expected: 10,
		},
		{
			name:     "due today",
			final:    date(2024, time.January, 10),
			method:   types.DEADLINE_CALCULATION_BUSINESS_DAYS,
			today:    date(2024, time.January, 10),
			expected: 0,
		},
		{
			name:     "due today calendar",
			final:    date(2024, time.January, 10),
			method:   types.DEADLINE_CALCULATION_CALENDAR_DAYS,
			today:    date(2024, time.January, 10),
			expected: 0,
		},
		{
			name: "business days exclude weekend",
			// Friday -> next Friday: Mon-Fri counted, minus the boundary adjustment
			final:    date(2024, time.January, 12),
			method:   types.DEADLINE_CALCULATION_BUSINESS_DAYS,
			today:    date(2024, time.January, 5),
			expected: 5,
		},
		{
			name: "weekend only span",
			// Saturday today, Monday deadline: only Monday counts
			final:    date(2024, time.January, 8),
			method:   types.DEADLINE_CALCULATION_BUSINESS_DAYS,
			today:    date(2024, time.January, 6),
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := DeadlineDays(test.final, test.method, test.today)
			if got != test.expected {
				t.Errorf("expected %d, got %d", test.expected, got)
			}
			// calling again with the same inputs must yield the same value
			if again := DeadlineDays(test.final, test.method, test.today); again != got {
				t.Errorf("expected idempotent result, got %d then %d", got, again)
			}
		})
	}
}

func TestProjectDeadlineDays(t *testing.T) {
	t.Run("no end date means no deadline", func(t *testing.T) {
		p := types.Project{DeadlineCalculationMethod: types.DEADLINE_CALCULATION_BUSINESS_DAYS}
		if _, ok := ProjectDeadlineDays(p, date(2024, time.January, 10)); ok {
			t.Error("expected no deadline")
		}
	})

	t.Run("unknown method falls back to business days", func(t *testing.T) {
		p := types.Project{
			EndDate:                   datePtr(2024, time.January, 5),
			DeadlineCalculationMethod: "SOMETHING_CORRUPT",
		}
		days, ok := ProjectDeadlineDays(p, date(2024, time.January, 5))
		if !ok {
			t.Fatal("expected a deadline")
		}
		// default offset of 10 business days from Friday 2024-01-05 -> 2024-01-19,
		// 10 business days remaining as of the end date itself
		if days != 10 {
			t.Errorf("expected 10, got %d", days)
		}
	})

	t.Run("end date in the past", func(t *testing.T) {
		p := types.Project{
			EndDate:                   datePtr(2023, time.December, 1),
			DeadlineCalculationMethod: types.DEADLINE_CALCULATION_CALENDAR_DAYS,
			FixedDeadlineDays:         10,
		}
		days, ok := ProjectDeadlineDays(p, date(2024, time.January, 15))
		if !ok {
			t.Fatal("expected a deadline")
		}
		if days != -35 {
			t.Errorf("expected -35, got %d", days)
		}
	})
}
