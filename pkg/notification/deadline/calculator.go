package deadline

import (
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

// FinalReportDate computes the due date of the final report from the project end date.
// The second return value is false when the project has no end date and therefore no deadline.
func FinalReportDate(endDate *time.Time, method types.DeadlineCalculationMethod, offsetDays int) (time.Time, bool) {
	if endDate == nil {
		return time.Time{}, false
	}
	end := startOfDay(*endDate)

	if method == types.DEADLINE_CALCULATION_CALENDAR_DAYS {
		return end.AddDate(0, 0, offsetDays), true
	}

	// Business days: the date always advances, the counter only
	// decreases when the day landed on is not a weekend.
	current := end
	remaining := offsetDays
	for remaining > 0 {
		current = current.AddDate(0, 0, 1)
		if !isWeekend(current) {
			remaining--
		}
	}
	return current, true
}

// DeadlineDays returns the signed number of days left until the final report date.
// Overdue deadlines yield a negative calendar-day difference regardless of method.
func DeadlineDays(finalReportDate time.Time, method types.DeadlineCalculationMethod, today time.Time) int {
	final := startOfDay(finalReportDate)
	now := startOfDay(today)

	if final.Before(now) {
		return daysBetween(now, final)
	}

	if method == types.DEADLINE_CALCULATION_CALENDAR_DAYS {
		return daysBetween(now, final)
	}

	// Count business days from today through the final report date inclusive,
	// then drop one to compensate for the inclusive boundary on both ends.
	count := 0
	for current := now; !current.After(final); current = current.AddDate(0, 0, 1) {
		if !isWeekend(current) {
			count++
		}
	}
	if count > 0 {
		return count - 1
	}
	return 0
}

// ProjectDeadlineDays combines both steps for a project. The second return value
// is false when the project has no deadline; such projects must not trigger
// any date-threshold condition.
func ProjectDeadlineDays(p types.Project, today time.Time) (int, bool) {
	method := types.ParseDeadlineCalculationMethod(string(p.DeadlineCalculationMethod))
	finalDate, ok := FinalReportDate(p.EndDate, method, p.DeadlineOffsetDays())
	if !ok {
		return 0, false
	}
	return DeadlineDays(finalDate, method, today), true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func daysBetween(from time.Time, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
