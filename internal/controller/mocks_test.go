package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
)

// newTestRouter mounts the handlers the way cmd/server does.
func newTestRouter(
	campaigns *CampaignController,
	routes *RouteController,
	contents *ContentController,
	aiCtrl *AIController,
	instances *InstanceController,
) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if campaigns != nil {
			r.Post("/campaigns", campaigns.CreateCampaign)
			r.Get("/campaigns", campaigns.ListCampaigns)
			r.Put("/campaigns/{id}", campaigns.UpdateCampaign)
			r.Patch("/campaigns/{id}/status", campaigns.ToggleStatus)
			r.Delete("/campaigns/{id}", campaigns.DeleteCampaign)
		}
		if routes != nil {
			r.Post("/routes", routes.CreateRoute)
			r.Get("/routes", routes.ListRoutes)
			r.Put("/routes/{id}", routes.UpdateRoute)
			r.Delete("/routes/{id}", routes.DeleteRoute)
		}
		if contents != nil {
			r.Post("/contents", contents.CreateContent)
			r.Get("/contents", contents.ListContents)
			r.Put("/contents/{id}", contents.UpdateContent)
			r.Delete("/contents/{id}", contents.DeleteContent)
		}
		if aiCtrl != nil {
			r.Post("/ai/generate", aiCtrl.GenerateContent)
			r.Post("/ai/bulk-generate", aiCtrl.BulkGenerate)
		}
		if instances != nil {
			r.Post("/instances", instances.SaveInstance)
			r.Get("/instances", instances.ListInstances)
			r.Get("/instances/{id}", instances.GetInstance)
			r.Delete("/instances/{id}", instances.DeleteInstance)
		}
	})
	return r
}

// --- Mock campaign repository ---

type mockCampaignRepo struct {
	campaigns map[primitive.ObjectID]*model.Campaign
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
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Campaign, error) {
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
	contents map[primitive.ObjectID]*model.Content
}

func newMockContentRepo(contents ...*model.Content) *mockContentRepo {
	m := &mockContentRepo{contents: map[primitive.ObjectID]*model.Content{}}
	for _, c := range contents {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		m.contents[c.ID] = c
	}
	return m
}

func (m *mockContentRepo) Create(ctx context.Context, c *model.Content) error {
	c.ID = primitive.NewObjectID()
	m.contents[c.ID] = c
	return nil
}

func (m *mockContentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error) {
	c, ok := m.contents[id]
	if !ok {
		return nil, appErrors.NewContentNotFound(id.Hex())
	}
	return c, nil
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

func (m *mockContentRepo) Update(ctx context.Context, c *model.Content) error {
	m.contents[c.ID] = c
	return nil
}

func (m *mockContentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.contents, id)
	return nil
}

// --- Mock instance repository ---

type mockInstanceRepo struct {
	instances map[primitive.ObjectID]*model.ChatInstance
}

func newMockInstanceRepo(instances ...*model.ChatInstance) *mockInstanceRepo {
	m := &mockInstanceRepo{instances: map[primitive.ObjectID]*model.ChatInstance{}}
	for _, inst := range instances {
		if inst.ID.IsZero() {
			inst.ID = primitive.NewObjectID()
		}
		m.instances[inst.ID] = inst
	}
	return m
}

func (m *mockInstanceRepo) Create(ctx context.Context, inst *model.ChatInstance) error {
	inst.ID = primitive.NewObjectID()
	m.instances[inst.ID] = inst
	return nil
}

func (m *mockInstanceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.ChatInstance, error) {
	inst, ok := m.instances[id]
	if !ok {
		return nil, appErrors.NewInstanceNotFound(id.Hex())
	}
	return inst, nil
}

func (m *mockInstanceRepo) ListAll(ctx context.Context) ([]*model.ChatInstance, error) {
	out := []*model.ChatInstance{}
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	return out, nil
}

func (m *mockInstanceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.instances, id)
	return nil
}

// --- Mock generator and publisher ---

type mockGenerator struct {
	response string
	err      error
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockPublisher struct {
	topics   []string
	payloads []any
	err      error
}

func (m *mockPublisher) Publish(topic string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.topics = append(m.topics, topic)
	m.payloads = append(m.payloads, payload)
	return nil
}
