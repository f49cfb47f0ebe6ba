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

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Campaign, error)
	ListByPrincipal(ctx context.Context, principal string) ([]*model.Campaign, error)
	Update(ctx context.Context, c *model.Campaign) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CampaignRepository struct {
	Collection *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{Collection: db.Collection("campaigns")}
}

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.CampaignStatusActive
	}
	res, err := r.Collection.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Campaign, error) {
	var c model.Campaign
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.NewCampaignNotFound(id.Hex())
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListByPrincipal(ctx context.Context, principal string) ([]*model.Campaign, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cur, err := r.Collection.Find(ctx, bson.M{"principal": principal}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	campaigns := []*model.Campaign{}
	if err := cur.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	c.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":      c.Name,
		"apiKey":    c.APIKey,
		"startDate": c.StartDate,
		"endDate":   c.EndDate,
		"status":    c.Status,
		"updatedAt": c.UpdatedAt,
	}}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return appErrors.NewCampaignNotFound(c.ID.Hex())
	}
	return nil
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return appErrors.NewCampaignNotFound(id.Hex())
	}
	return nil
}

// Delete removes the campaign only. Content items keep their campaignId and
// go failed ("Campaign not found") on their next due tick.
func (r *CampaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return appErrors.NewCampaignNotFound(id.Hex())
	}
	return nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
