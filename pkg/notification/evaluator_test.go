package notification

import (
	"testing"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

func TestIsConditionSatisfied(t *testing.T) {
	tests := []struct {
		name         string
		operator     types.ConditionOperator
		threshold    int
		deadlineDays int
		expected     bool
	}{
		{"equal matches", types.CONDITION_OPERATOR_EQUAL_TO, 5, 5, true},
		{"equal mismatch", types.CONDITION_OPERATOR_EQUAL_TO, 5, 4, false},
		{"less than", types.CONDITION_OPERATOR_LESS_THAN, 5, 4, true},
		{"less than boundary", types.CONDITION_OPERATOR_LESS_THAN, 5, 5, false},
		{"greater than", types.CONDITION_OPERATOR_GREATER_THAN, 5, 6, true},
		{"greater than boundary", types.CONDITION_OPERATOR_GREATER_THAN, 5, 5, false},
		{"less or equal boundary", types.CONDITION_OPERATOR_LESS_THAN_OR_EQUAL_TO, 3, 3, true},
		{"less or equal above", types.CONDITION_OPERATOR_LESS_THAN_OR_EQUAL_TO, 3, 4, false},
		{"greater or equal boundary", types.CONDITION_OPERATOR_GREATER_THAN_OR_EQUAL_TO, 3, 3, true},
		{"greater or equal below", types.CONDITION_OPERATOR_GREATER_THAN_OR_EQUAL_TO, 3, 2, false},
		{"negative deadline days overdue", types.CONDITION_OPERATOR_LESS_THAN_OR_EQUAL_TO, 0, -3, true},
		{"unknown operator behaves like equal", "SOMETHING_ELSE", 5, 5, true},
		{"unknown operator mismatch", "SOMETHING_ELSE", 5, 6, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			condition := types.Condition{
				Operator:     test.operator,
				DeadlineDays: test.threshold,
			}
			if got := IsConditionSatisfied(condition, test.deadlineDays); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}
