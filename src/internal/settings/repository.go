package settings

import (
	"context"
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	FindByTeam(ctx context.Context, teamID string) (*TeamSettings, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) FindByTeam(ctx context.Context, teamID string) (*TeamSettings, error) {
	var result TeamSettings
	filter := bson.M{"team_id": teamID}

	err := r.collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("team_id", teamID).Error("Failed to get team settings")
		return nil, models.ErrDatabaseQuery
	}

	return &result, nil
}
