package types

import (
	"time"
)

const DEFAULT_DEADLINE_OFFSET_DAYS = 10

// DeadlineCalculationMethod controls how the final report due date is derived from the project end date.
type DeadlineCalculationMethod string

const (
	DEADLINE_CALCULATION_BUSINESS_DAYS DeadlineCalculationMethod = "BUSINESS_DAYS"
	DEADLINE_CALCULATION_CALENDAR_DAYS DeadlineCalculationMethod = "CALENDAR_DAYS"
)

// ParseDeadlineCalculationMethod maps a stored value onto a known method.
// Unknown or corrupt values fall back to BUSINESS_DAYS.
func ParseDeadlineCalculationMethod(value string) DeadlineCalculationMethod {
	switch DeadlineCalculationMethod(value) {
	case DEADLINE_CALCULATION_CALENDAR_DAYS:
		return DEADLINE_CALCULATION_CALENDAR_DAYS
	default:
		return DEADLINE_CALCULATION_BUSINESS_DAYS
	}
}

type Member struct {
	ID       string `bson:"id" json:"id"`
	FullName string `bson:"fullName" json:"fullName"`
	Role     string `bson:"role" json:"role"`
	DNI      string `bson:"dni" json:"dni"`
	Phone    string `bson:"phone" json:"phone"`
	Email    string `bson:"email" json:"email"`
}

type Project struct {
	ID                        string                    `bson:"_id" json:"id"`
	Name                      string                    `bson:"name" json:"name"`
	CoordinatorName           string                    `bson:"coordinatorName" json:"coordinatorName"`
	CoordinatorEmail          string                    `bson:"coordinatorEmail" json:"coordinatorEmail"`
	School                    string                    `bson:"school" json:"school"`
	ProjectType               string                    `bson:"projectType" json:"projectType"`
	ExecutionPlace            string                    `bson:"executionPlace" json:"executionPlace"`
	NotificationsEnabled      bool                      `bson:"notificationsEnabled" json:"notificationsEnabled"`
	DeadlineCalculationMethod DeadlineCalculationMethod `bson:"deadlineCalculationMethod" json:"deadlineCalculationMethod"`
	FixedDeadlineDays         int                       `bson:"fixedDeadlineDays" json:"fixedDeadlineDays"`
	StartDate                 *time.Time                `bson:"startDate" json:"startDate"`
	EndDate                   *time.Time                `bson:"endDate" json:"endDate"`
	Conditions                []Condition               `bson:"conditions" json:"conditions"`
	Members                   []Member                  `bson:"members" json:"members"`
	AttachedFileUris          []string                  `bson:"attachedFileUris" json:"attachedFileUris"`
	CreatedAt                 time.Time                 `bson:"createdAt" json:"createdAt"`
	UpdatedAt                 time.Time                 `bson:"updatedAt" json:"updatedAt"`
}

// DeadlineOffsetDays returns the configured offset between the project end date
// and the final report due date. An absent field decodes to zero, so zero and
// negative values both map to the default of 10 days; an explicit zero-day
// offset is not representable on a stored project.
func (p Project) DeadlineOffsetDays() int {
	if p.FixedDeadlineDays <= 0 {
		return DEFAULT_DEADLINE_OFFSET_DAYS
	}
	return p.FixedDeadlineDays
}
