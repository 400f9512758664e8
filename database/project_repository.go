package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio/api-server/models"
)

// ProjectRepository provides document-store access to the projects
// collection. It implements manager.ProjectStore.
type ProjectRepository struct {
	coll *mongo.Collection
}

// NewProjectRepository builds a repository over the given database handle.
func NewProjectRepository(db *MongoDB) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(CollectionProjects)}
}

// FindAll returns every project ordered by publicationDate descending.
func (r *ProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publicationDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// FindByID returns the project with the given hex identifier.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed identifier can never match a document.
		return nil, models.ErrProjectNotFound
	}

	var project models.Project
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}
	return &project, nil
}

// Insert stores a new project and returns the identifier assigned by the
// database.
func (r *ProjectRepository) Insert(ctx context.Context, project *models.Project) (string, error) {
	res, err := r.coll.InsertOne(ctx, project)
	if err != nil {
		return "", fmt.Errorf("failed to insert project: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// UpdateFields applies a field-level $set to the project document. Dot
// notation keys (details.images, ...) update nested fields without
// replacing the whole details record, so concurrent updates with disjoint
// field sets both land.
func (r *ProjectRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (matched, modified int64, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, 0, models.ErrProjectNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteByID removes the project document and returns the deleted count.
func (r *ProjectRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, models.ErrProjectNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

// RemoveMediaURL detaches one media URL from the project document: images
// and videos are pulled from their ordered lists, the document URL is
// cleared. Returns the matched count so the caller can detect not-found.
func (r *ProjectRepository) RemoveMediaURL(ctx context.Context, id string, kind models.MediaKind, url string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, models.ErrProjectNotFound
	}

	var update bson.M
	switch kind {
	case models.MediaKindImage:
		update = bson.M{"$pull": bson.M{"details.images": url}}
	case models.MediaKindVideo:
		update = bson.M{"$pull": bson.M{"details.videos": url}}
	case models.MediaKindDocument:
		update = bson.M{"$set": bson.M{"details.documentUrl": ""}}
	default:
		return 0, fmt.Errorf("unknown media kind %q", kind)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return 0, fmt.Errorf("failed to remove media from project %s: %w", id, err)
	}
	return res.MatchedCount, nil
}
