package project

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
	COLLECTION_NAME_PROJECTS = "projects"
)

type ProjectDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewProjectDBService(configs db.DBConfig) (*ProjectDBService, error) {
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

	projectDBSc := &ProjectDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := projectDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for project DB: ", slog.String("error", err.Error()))
		}
	}

	return projectDBSc, nil
}

func (dbService *ProjectDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_projectDB"
}

func (dbService *ProjectDBService) collectionProjects(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_PROJECTS)
}

func (dbService *ProjectDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *ProjectDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for project DB")
	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		_, err := dbService.collectionProjects(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{
					{Key: "notificationsEnabled", Value: 1},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating index for projects: ", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
	}

	return nil
}
