package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SentEmail is one entry of the append-only send history.
// Every send attempt is recorded, successful or not; entries are never mutated.
type SentEmail struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID      string             `bson:"projectId" json:"projectId"`
	ConditionID    string             `bson:"conditionId" json:"conditionId"`
	RecipientEmail string             `bson:"recipientEmail" json:"recipientEmail"`
	Subject        string             `bson:"subject" json:"subject"`
	Body           string             `bson:"body" json:"body"`
	SentAt         time.Time          `bson:"sentAt" json:"sentAt"`
	WasSuccessful  bool               `bson:"wasSuccessful" json:"wasSuccessful"`
	ErrorMessage   string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
}
