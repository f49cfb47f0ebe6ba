package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
)

// --- Mock campaign repository ---

type mockCampaignRepo struct {
	campaigns map[primitive.ObjectID]*model.Campaign
	getErr    error
}

func newMockCampaignRepo(campaigns ...*model.Campaign) *mockCampaignRepo {
	m := &mockCampaignRepo{campaigns: map[primitive.ObjectID]*model.Campaign{}}
	for _, c := range campaigns {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		m.campaigns[c.ID] = c
	}
	return m
}

func (m *mockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Campaign, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id.Hex())
	}
	return c, nil
}

func (m *mockCampaignRepo) ListByPrincipal(ctx context.Context, principal string) ([]*model.Campaign, error) {
	out := []*model.Campaign{}
	for _, c := range m.campaigns {
		if c.Principal == principal {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCampaignRepo) Update(ctx context.Context, c *model.Campaign) error {
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockCampaignRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	m.campaigns[id].Status = status
	return nil
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.campaigns, id)
	return nil
}

// --- Mock route repository ---

type mockRouteRepo struct {
	routes map[primitive.ObjectID]*model.Route
}

func newMockRouteRepo(routes ...*model.Route) *mockRouteRepo {
	m := &mockRouteRepo{routes: map[primitive.ObjectID]*model.Route{}}
	for _, rt := range routes {
		if rt.ID.IsZero() {
			rt.ID = primitive.NewObjectID()
		}
		m.routes[rt.ID] = rt
	}
	return m
}

func (m *mockRouteRepo) Create(ctx context.Context, rt *model.Route) error {
	rt.ID = primitive.NewObjectID()
	m.routes[rt.ID] = rt
	return nil
}

func (m *mockRouteRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Route, error) {
	rt, ok := m.routes[id]
	if !ok {
		return nil, appErrors.NewRouteNotFound(id.Hex())
	}
	return rt, nil
}

func (m *mockRouteRepo) ListByPrincipal(ctx context.Context, principal string) ([]*model.Route, error) {
	out := []*model.Route{}
	for _, rt := range m.routes {
		if rt.Principal == principal {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m *mockRouteRepo) FindActive(ctx context.Context, platform, sourceID string) ([]*model.Route, error) {
	return nil, nil
}

func (m *mockRouteRepo) Update(ctx context.Context, rt *model.Route) error {
	m.routes[rt.ID] = rt
	return nil
}

func (m *mockRouteRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.routes, id)
	return nil
}

func (m *mockRouteRepo) RecordSuccess(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return nil
}

func (m *mockRouteRepo) RecordFailure(ctx context.Context, id primitive.ObjectID, lastError string) error {
	return nil
}

// --- Mock content repository ---

type mockContentRepo struct {
	contents  []*model.Content
	createErr error
}

func (m *mockContentRepo) Create(ctx context.Context, c *model.Content) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = primitive.NewObjectID()
	m.contents = append(m.contents, c)
	return nil
}

func (m *mockContentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error) {
	for _, c := range m.contents {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, appErrors.NewContentNotFound(id.Hex())
}

func (m *mockContentRepo) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*model.Content, error) {
	out := []*model.Content{}
	for _, c := range m.contents {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockContentRepo) FindDue(ctx context.Context, now time.Time) ([]*model.Content, error) {
	return nil, nil
}

func (m *mockContentRepo) MarkPosted(ctx context.Context, id primitive.ObjectID, at time.Time, attempts int) error {
	return nil
}

func (m *mockContentRepo) MarkFailed(ctx context.Context, id primitive.ObjectID, at time.Time, attempts int, lastError string) error {
	return nil
}

func (m *mockContentRepo) MarkOrphaned(ctx context.Context, id primitive.ObjectID, lastError string) error {
	return nil
}

func (m *mockContentRepo) Update(ctx context.Context, c *model.Content) error { return nil }

func (m *mockContentRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

// --- Mock generator ---

type mockGenerator struct {
	calls    int
	failOn   map[int]error // 1-based call index
	response string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if err, ok := m.failOn[m.calls]; ok {
		return "", err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "generated post", nil
}
