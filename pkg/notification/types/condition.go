package types

// ConditionOperator compares the computed deadline days against the condition threshold.
type ConditionOperator string

const (
	CONDITION_OPERATOR_EQUAL_TO                 ConditionOperator = "EQUAL_TO"
	CONDITION_OPERATOR_LESS_THAN                ConditionOperator = "LESS_THAN"
	CONDITION_OPERATOR_GREATER_THAN             ConditionOperator = "GREATER_THAN"
	CONDITION_OPERATOR_LESS_THAN_OR_EQUAL_TO    ConditionOperator = "LESS_THAN_OR_EQUAL_TO"
	CONDITION_OPERATOR_GREATER_THAN_OR_EQUAL_TO ConditionOperator = "GREATER_THAN_OR_EQUAL_TO"
)

// ParseConditionOperator maps a stored value onto a known operator.
// Unknown values fall back to EQUAL_TO, which only fires on an exact match.
func ParseConditionOperator(value string) ConditionOperator {
	switch ConditionOperator(value) {
	case CONDITION_OPERATOR_LESS_THAN,
		CONDITION_OPERATOR_GREATER_THAN,
		CONDITION_OPERATOR_LESS_THAN_OR_EQUAL_TO,
		CONDITION_OPERATOR_GREATER_THAN_OR_EQUAL_TO:
		return ConditionOperator(value)
	default:
		return CONDITION_OPERATOR_EQUAL_TO
	}
}

// FrequencyType controls how often a satisfied condition may trigger an email.
type FrequencyType string

const (
	// fire at most once ever for a given condition
	FREQUENCY_ONCE FrequencyType = "ONCE"
	// fire on every evaluation cycle while the condition holds
	FREQUENCY_DAILY FrequencyType = "DAILY"
)

// ParseFrequencyType maps a stored value onto a known frequency.
// Unknown values fall back to ONCE so that corrupt data can never cause repeated sends.
func ParseFrequencyType(value string) FrequencyType {
	switch FrequencyType(value) {
	case FREQUENCY_DAILY:
		return FREQUENCY_DAILY
	default:
		return FREQUENCY_ONCE
	}
}

type Condition struct {
	ID             string            `bson:"id" json:"id"`
	Name           string            `bson:"name" json:"name"`
	Subject        string            `bson:"subject" json:"subject"`
	Body           string            `bson:"body" json:"body"`
	DeadlineDays   int               `bson:"deadlineDays" json:"deadlineDays"`
	Operator       ConditionOperator `bson:"operator" json:"operator"`
	Frequency      FrequencyType     `bson:"frequency" json:"frequency"`
	AttachmentUris []string          `bson:"attachmentUris" json:"attachmentUris"`
}
