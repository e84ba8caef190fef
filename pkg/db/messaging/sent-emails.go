package messaging

import (
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification"
	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToSentEmails appends one send attempt to the ledger. Ledger entries are
// never updated. A second successful entry for the same condition violates the
// unique index and is reported as notification.ErrAlreadyRecorded.
func (dbService *MessagingDBService) AddToSentEmails(instanceID string, record types.SentEmail) (types.SentEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if record.SentAt.IsZero() {
		record.SentAt = time.Now()
	}

	record.ID = primitive.NilObjectID
	res, err := dbService.collectionSentEmails(instanceID).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return record, notification.ErrAlreadyRecorded
		}
		return record, err
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return record, nil
}

// HasSuccessfulSendForCondition reports whether a successful send was ever
// recorded for the condition. Failed attempts do not count.
func (dbService *MessagingDBService) HasSuccessfulSendForCondition(instanceID string, conditionID string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"conditionId":   conditionID,
		"wasSuccessful": true,
	}
	count, err := dbService.collectionSentEmails(instanceID).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSentEmails returns ledger entries, newest first.
func (dbService *MessagingDBService) GetSentEmails(instanceID string, page int64, limit int64) ([]types.SentEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.M{"sentAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := dbService.collectionSentEmails(instanceID).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []types.SentEmail{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetSentEmailsForProject returns the ledger entries of one project, newest first.
func (dbService *MessagingDBService) GetSentEmailsForProject(instanceID string, projectID string) ([]types.SentEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"projectId": projectID}
	opts := options.Find().SetSort(bson.M{"sentAt": -1})

	cursor, err := dbService.collectionSentEmails(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []types.SentEmail{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
