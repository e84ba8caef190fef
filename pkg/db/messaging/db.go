package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_SENT_EMAILS = "sent-emails"
)

type MessagingDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewMessagingDBService(configs db.DBConfig) (*MessagingDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	messagingDBSc := &MessagingDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := messagingDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for messaging DB: ", slog.String("error", err.Error()))
		}
	}

	return messagingDBSc, nil
}

func (dbService *MessagingDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_messageDB"
}

func (dbService *MessagingDBService) collectionSentEmails(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SENT_EMAILS)
}

func (dbService *MessagingDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *MessagingDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for messaging DB")
	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		// Sent Emails:
		// at most one successful ledger entry per condition, this is the
		// serialization point that keeps ONCE conditions from double-firing
		// when the periodic job and an eager check overlap
		_, err := dbService.collectionSentEmails(instanceID).Indexes().CreateMany(
			ctx,
			[]mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "conditionId", Value: 1},
					},
					Options: options.Index().
						SetUnique(true).
						SetPartialFilterExpression(bson.M{"wasSuccessful": true}),
				},
				{
					Keys: bson.D{
						{Key: "sentAt", Value: -1},
					},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating index for sent emails: ", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
	}

	return nil
}
