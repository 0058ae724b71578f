package repository

import (
	"context"
	"time"

	"clientdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IClientRepository defines client persistence. Every mutation writes the
// whole client document back (files and annotations inlined), which is the
// snapshot durability rule of the original store at document granularity.
// Replace and Delete are no-ops for unknown ids.
type IClientRepository interface {
	FindAll(ctx context.Context) ([]*model.Client, error)
	FindByID(ctx context.Context, id string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Replace(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, clients []*model.Client) error
}

// ClientRepository implements client persistence on MongoDB
type ClientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Database) IClientRepository {
	return &ClientRepository{collection: db.Collection("clients")}
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]*model.Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fechaCreacion", Value: 1}})
	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	clients := []*model.Client{}
	if err := cur.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	var client *model.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, client)
	return err
}

func (r *ClientRepository) Replace(ctx context.Context, client *model.Client) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": client.ID}, client)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ClientRepository) ReplaceAll(ctx context.Context, clients []*model.Client) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(clients) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(clients))
	for _, c := range clients {
		docs = append(docs, c)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
