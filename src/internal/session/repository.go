package session

import (
	"context"
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/models"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists active_file_sessions, the sweeper's source of
// truth for which files still have an editor open.
type Repository interface {
	Upsert(ctx context.Context, fileID string) error
	FindStale(ctx context.Context, cutoff time.Time, limit int64) ([]string, error)
	Delete(ctx context.Context, fileID string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) Upsert(ctx context.Context, fileID string) error {
	filter := bson.M{"file_id": fileID}
	update := bson.M{
		"$set": bson.M{
			"file_id":    fileID,
			"created_at": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		logrus.WithError(err).WithField("file_id", fileID).Error("Failed to upsert active file session")
		return models.ErrDatabaseUpdate
	}

	return nil
}

func (r *repository) FindStale(ctx context.Context, cutoff time.Time, limit int64) ([]string, error) {
	filter := bson.M{"created_at": bson.M{"$lt": cutoff}}

	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.M{"created_at": 1}).
		SetProjection(bson.M{"file_id": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find stale file sessions")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var fileIDs []string
	for cursor.Next(ctx) {
		var record models.ActiveFileSession
		if err := cursor.Decode(&record); err != nil {
			logrus.WithError(err).Error("Failed to decode active file session")
			continue
		}
		fileIDs = append(fileIDs, record.FileID)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return fileIDs, nil
}

func (r *repository) Delete(ctx context.Context, fileID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"file_id": fileID})
	if err != nil {
		logrus.WithError(err).WithField("file_id", fileID).Error("Failed to delete active file session")
		return models.ErrDatabaseDelete
	}

	return nil
}
