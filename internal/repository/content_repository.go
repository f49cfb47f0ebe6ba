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

type ContentRepositoryInterface interface {
	Create(ctx context.Context, c *model.Content) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error)
	ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*model.Content, error)
	FindDue(ctx context.Context, now time.Time) ([]*model.Content, error)
	MarkPosted(ctx context.Context, id primitive.ObjectID, at time.Time, attempts int) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, at time.Time, attempts int, lastError string) error
	MarkOrphaned(ctx context.Context, id primitive.ObjectID, lastError string) error
	Update(ctx context.Context, c *model.Content) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ContentRepository struct {
	Collection *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{Collection: db.Collection("contents")}
}

func (r *ContentRepository) Create(ctx context.Context, c *model.Content) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.ContentStatusPending
	}
	res, err := r.Collection.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ContentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error) {
	var c model.Content
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.NewContentNotFound(id.Hex())
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepository) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*model.Content, error) {
	opts := options.Find().SetSort(bson.M{"scheduledTime": 1})
	cur, err := r.Collection.Find(ctx, bson.M{"campaignId": campaignID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	contents := []*model.Content{}
	if err := cur.All(ctx, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// FindDue returns pending items whose scheduledTime has elapsed. Posted and
// failed items never match, so posted stays terminal.
func (r *ContentRepository) FindDue(ctx context.Context, now time.Time) ([]*model.Content, error) {
	filter := bson.M{
		"status":        model.ContentStatusPending,
		"scheduledTime": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.M{"scheduledTime": 1})
	cur, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	contents := []*model.Content{}
	if err := cur.All(ctx, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *ContentRepository) MarkPosted(ctx context.Context, id primitive.ObjectID, at time.Time, attempts int) error {
	update := bson.M{"$set": bson.M{
		"status":      model.ContentStatusPosted,
		"lastAttempt": at,
		"attempts":    attempts,
		"updatedAt":   time.Now().UTC(),
	}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *ContentRepository) MarkFailed(ctx context.Context, id primitive.ObjectID, at time.Time, attempts int, lastError string) error {
	update := bson.M{"$set": bson.M{
		"status":      model.ContentStatusFailed,
		"lastAttempt": at,
		"attempts":    attempts,
		"lastError":   lastError,
		"updatedAt":   time.Now().UTC(),
	}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// MarkOrphaned fails an item whose campaign no longer exists. No delivery was
// attempted, so attempts and lastAttempt stay untouched.
func (r *ContentRepository) MarkOrphaned(ctx context.Context, id primitive.ObjectID, lastError string) error {
	update := bson.M{"$set": bson.M{
		"status":    model.ContentStatusFailed,
		"lastError": lastError,
		"updatedAt": time.Now().UTC(),
	}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *ContentRepository) Update(ctx context.Context, c *model.Content) error {
	c.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"content":       c.Content,
		"scheduledTime": c.ScheduledTime,
		"status":        c.Status,
		"updatedAt":     c.UpdatedAt,
	}}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return appErrors.NewContentNotFound(c.ID.Hex())
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return appErrors.NewContentNotFound(id.Hex())
	}
	return nil
}

var _ ContentRepositoryInterface = (*ContentRepository)(nil)
