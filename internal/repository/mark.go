package repository

import (
	"context"

	"clientdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IMarkRepository defines control-mark catalog persistence
type IMarkRepository interface {
	FindAll(ctx context.Context) ([]*model.ControlMark, error)
	FindByID(ctx context.Context, id string) (*model.ControlMark, error)
	Create(ctx context.Context, mark *model.ControlMark) error
	Replace(ctx context.Context, mark *model.ControlMark) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, marks []*model.ControlMark) error
}

// MarkRepository implements control-mark persistence on MongoDB
type MarkRepository struct {
	collection *mongo.Collection
}

func NewMarkRepository(db *mongo.Database) IMarkRepository {
	return &MarkRepository{collection: db.Collection("controlMarks")}
}

func (r *MarkRepository) FindAll(ctx context.Context) ([]*model.ControlMark, error) {
	cur, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	marks := []*model.ControlMark{}
	if err := cur.All(ctx, &marks); err != nil {
		return nil, err
	}
	return marks, nil
}

func (r *MarkRepository) FindByID(ctx context.Context, id string) (*model.ControlMark, error) {
	var mark *model.ControlMark
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mark)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return mark, nil
}

func (r *MarkRepository) Create(ctx context.Context, mark *model.ControlMark) error {
	_, err := r.collection.InsertOne(ctx, mark)
	return err
}

func (r *MarkRepository) Replace(ctx context.Context, mark *model.ControlMark) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": mark.ID}, mark)
	return err
}

func (r *MarkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MarkRepository) ReplaceAll(ctx context.Context, marks []*model.ControlMark) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(marks) == 0 {
		return nil
	}
	items := make([]interface{}, 0, len(marks))
	for _, m := range marks {
		items = append(items, m)
	}
	_, err := r.collection.InsertMany(ctx, items)
	return err
}
