package credentials

import (
	"context"
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WorkspaceCredentials is the minimal installed-user record the editor
// flow needs to call the chat platform. Installation bookkeeping and
// credential rotation live with the installer collaborator.
type WorkspaceCredentials struct {
	TeamID      string `bson:"team_id"`
	UserID      string `bson:"user_id"`
	AccessToken string `bson:"access_token"`
}

type Repository interface {
	Find(ctx context.Context, teamID, userID string) (*WorkspaceCredentials, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewCredentialsRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) Find(ctx context.Context, teamID, userID string) (*WorkspaceCredentials, error) {
	var result WorkspaceCredentials
	filter := bson.M{"team_id": teamID, "user_id": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"team_id": teamID,
			"user_id": userID,
		}).Error("Failed to get workspace credentials")
		return nil, models.ErrDatabaseQuery
	}

	return &result, nil
}
