package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
)

type InstanceRepositoryInterface interface {
	Create(ctx context.Context, inst *model.ChatInstance) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.ChatInstance, error)
	ListAll(ctx context.Context) ([]*model.ChatInstance, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type InstanceRepository struct {
	Collection *mongo.Collection
}

func NewInstanceRepository(db *mongo.Database) *InstanceRepository {
	return &InstanceRepository{Collection: db.Collection("instances")}
}

func (r *InstanceRepository) Create(ctx context.Context, inst *model.ChatInstance) error {
	inst.CreatedAt = time.Now().UTC()
	res, err := r.Collection.InsertOne(ctx, inst)
	if err != nil {
		return err
	}
	inst.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *InstanceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.ChatInstance, error) {
	var inst model.ChatInstance
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.NewInstanceNotFound(id.Hex())
		}
		return nil, err
	}
	return &inst, nil
}

func (r *InstanceRepository) ListAll(ctx context.Context) ([]*model.ChatInstance, error) {
	cur, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	instances := []*model.ChatInstance{}
	if err := cur.All(ctx, &instances); err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *InstanceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return appErrors.NewInstanceNotFound(id.Hex())
	}
	return nil
}

var _ InstanceRepositoryInterface = (*InstanceRepository)(nil)
