package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
)

type RouteRepositoryInterface interface {
	Create(ctx context.Context, rt *model.Route) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Route, error)
	ListByPrincipal(ctx context.Context, principal string) ([]*model.Route, error)
	FindActive(ctx context.Context, platform, sourceID string) ([]*model.Route, error)
	Update(ctx context.Context, rt *model.Route) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	RecordSuccess(ctx context.Context, id primitive.ObjectID, at time.Time) error
	RecordFailure(ctx context.Context, id primitive.ObjectID, lastError string) error
}

type RouteRepository struct {
	Collection *mongo.Collection
}

func NewRouteRepository(db *mongo.Database) *RouteRepository {
	return &RouteRepository{Collection: db.Collection("routes")}
}

func (r *RouteRepository) Create(ctx context.Context, rt *model.Route) error {
	now := time.Now().UTC()
	rt.CreatedAt = now
	rt.UpdatedAt = now
	if rt.Status == "" {
		rt.Status = model.RouteStatusActive
	}
	res, err := r.Collection.InsertOne(ctx, rt)
	if err != nil {
		return err
	}
	rt.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *RouteRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Route, error) {
	var rt model.Route
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.NewRouteNotFound(id.Hex())
		}
		return nil, err
	}
	return &rt, nil
}

func (r *RouteRepository) ListByPrincipal(ctx context.Context, principal string) ([]*model.Route, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cur, err := r.Collection.Find(ctx, bson.M{"principal": principal}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	routes := []*model.Route{}
	if err := cur.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// FindActive returns the active routes listening on one platform channel.
// An empty result is not an error.
func (r *RouteRepository) FindActive(ctx context.Context, platform, sourceID string) ([]*model.Route, error) {
	filter := bson.M{
		"platform": platform,
		"sourceId": sourceID,
		"status":   model.RouteStatusActive,
	}
	cur, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	routes := []*model.Route{}
	if err := cur.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *RouteRepository) Update(ctx context.Context, rt *model.Route) error {
	rt.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":           rt.Name,
		"platform":       rt.Platform,
		"sourceId":       rt.SourceID,
		"openchatApiKey": rt.OpenChatAPIKey,
		"status":         rt.Status,
		"filters":        rt.Filters,
		"twitter":        rt.Twitter,
		"updatedAt":      rt.UpdatedAt,
	}}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": rt.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return appErrors.NewRouteNotFound(rt.ID.Hex())
	}
	return nil
}

func (r *RouteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return appErrors.NewRouteNotFound(id.Hex())
	}
	return nil
}

// RecordSuccess advances lastSync and resets the error bookkeeping.
func (r *RouteRepository) RecordSuccess(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"lastSync":   at,
			"errorCount": 0,
			"updatedAt":  time.Now().UTC(),
		},
		"$unset": bson.M{"lastError": ""},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// RecordFailure increments errorCount by exactly one and leaves lastSync alone.
func (r *RouteRepository) RecordFailure(ctx context.Context, id primitive.ObjectID, lastError string) error {
	update := bson.M{
		"$set": bson.M{
			"lastError": lastError,
			"updatedAt": time.Now().UTC(),
		},
		"$inc": bson.M{"errorCount": 1},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

var _ RouteRepositoryInterface = (*RouteRepository)(nil)
