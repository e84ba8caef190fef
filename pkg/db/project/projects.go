package project

import (
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveProject inserts or replaces a project document. The caller is
// responsible for assigning the project ID before saving.
func (dbService *ProjectDBService) SaveProject(instanceID string, project types.Project) (types.Project, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	project.UpdatedAt = time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = project.UpdatedAt
	}

	filter := bson.M{"_id": project.ID}
	upsert := true
	rd := options.After
	opts := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}
	elem := types.Project{}
	err := dbService.collectionProjects(instanceID).FindOneAndReplace(
		ctx, filter, project, &opts,
	).Decode(&elem)
	return elem, err
}

func (dbService *ProjectDBService) GetProjectByID(instanceID string, projectID string) (types.Project, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": projectID}
	var project types.Project
	err := dbService.collectionProjects(instanceID).FindOne(ctx, filter).Decode(&project)
	return project, err
}

func (dbService *ProjectDBService) GetProjects(instanceID string) ([]types.Project, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	opts := options.Find().SetSort(bson.M{"updatedAt": -1})

	cursor, err := dbService.collectionProjects(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []types.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetNotificationEnabledProjects returns the snapshot of projects the
// evaluation cycle runs over. Conditions are embedded in the project
// document, so each returned project is internally consistent.
func (dbService *ProjectDBService) GetNotificationEnabledProjects(instanceID string) ([]types.Project, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"notificationsEnabled": true}

	cursor, err := dbService.collectionProjects(instanceID).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []types.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// DeleteProject removes the project together with its embedded conditions and
// members. Send history is kept, it references the project by ID only.
func (dbService *ProjectDBService) DeleteProject(instanceID string, projectID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": projectID}
	_, err := dbService.collectionProjects(instanceID).DeleteOne(ctx, filter)
	return err
}
