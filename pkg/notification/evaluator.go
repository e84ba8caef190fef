package notification

import (
	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

// IsConditionSatisfied compares the computed deadline days against the
// condition threshold using the condition operator. The comparison is total:
// an operator value not known to this version behaves like EQUAL_TO.
func IsConditionSatisfied(condition types.Condition, deadlineDays int) bool {
	switch condition.Operator {
	case types.CONDITION_OPERATOR_LESS_THAN:
		return deadlineDays < condition.DeadlineDays
	case types.CONDITION_OPERATOR_GREATER_THAN:
		return deadlineDays > condition.DeadlineDays
	case types.CONDITION_OPERATOR_LESS_THAN_OR_EQUAL_TO:
		return deadlineDays <= condition.DeadlineDays
	case types.CONDITION_OPERATOR_GREATER_THAN_OR_EQUAL_TO:
		return deadlineDays >= condition.DeadlineDays
	default:
		return deadlineDays == condition.DeadlineDays
	}
}
