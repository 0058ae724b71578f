package repository

import (
	"context"

	"clientdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IMergedRepository defines merged-document persistence
type IMergedRepository interface {
	FindAll(ctx context.Context) ([]*model.MergedDocument, error)
	FindByID(ctx context.Context, id string) (*model.MergedDocument, error)
	Create(ctx context.Context, doc *model.MergedDocument) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	ReplaceAll(ctx context.Context, docs []*model.MergedDocument) error
}

// MergedRepository implements merged-document persistence on MongoDB
type MergedRepository struct {
	collection *mongo.Collection
}

func NewMergedRepository(db *mongo.Database) IMergedRepository {
	return &MergedRepository{collection: db.Collection("mergedPdfs")}
}

func (r *MergedRepository) FindAll(ctx context.Context) ([]*model.MergedDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fechaCreacion", Value: 1}})
	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []*model.MergedDocument{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MergedRepository) FindByID(ctx context.Context, id string) (*model.MergedDocument, error) {
	var doc *model.MergedDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

func (r *MergedRepository) Create(ctx context.Context, doc *model.MergedDocument) error {
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *MergedRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MergedRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

func (r *MergedRepository) ReplaceAll(ctx context.Context, docs []*model.MergedDocument) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	items := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		items = append(items, d)
	}
	_, err := r.collection.InsertMany(ctx, items)
	return err
}
