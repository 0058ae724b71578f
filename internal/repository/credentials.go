package repository

import (
	"context"

	"clientdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ICredentialsRepository stores the single administrator credential pair.
// Get returns nil when no pair has been seeded yet.
type ICredentialsRepository interface {
	Get(ctx context.Context) (*model.Credentials, error)
	Put(ctx context.Context, creds *model.Credentials) error
}

// CredentialsRepository implements credential persistence on MongoDB
type CredentialsRepository struct {
	collection *mongo.Collection
}

func NewCredentialsRepository(db *mongo.Database) ICredentialsRepository {
	return &CredentialsRepository{collection: db.Collection("credentials")}
}

func (r *CredentialsRepository) Get(ctx context.Context) (*model.Credentials, error) {
	var creds *model.Credentials
	err := r.collection.FindOne(ctx, bson.M{"_id": model.CredentialsDocID}).Decode(&creds)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return creds, nil
}

func (r *CredentialsRepository) Put(ctx context.Context, creds *model.Credentials) error {
	creds.ID = model.CredentialsDocID
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": model.CredentialsDocID}, creds, opts)
	return err
}
