package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/service"
)

func routeRouter(repo *mockRouteRepo) http.Handler {
	ctrl := &RouteController{RouteService: &service.RouteService{RouteRepo: repo}}
	return newTestRouter(nil, ctrl, nil, nil, nil)
}

func TestCreateRouteEndpoint(t *testing.T) {
	repo := newMockRouteRepo()
	router := routeRouter(repo)

	body := `{
		"principal": "p1",
		"name": "Announcements mirror",
		"platform": "telegram",
		"sourceId": "-100123",
		"openchatApiKey": "oc-key",
		"filters": {"includeText": true, "keywords": ["ai"]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/routes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created model.Route
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.Platform != model.PlatformTelegram || len(created.Filters.Keywords) != 1 {
		t.Errorf("unexpected route in response: %+v", created)
	}
}

func TestCreateRouteEndpointUnknownPlatform(t *testing.T) {
	router := routeRouter(newMockRouteRepo())

	body := `{"principal":"p1","name":"R","platform":"slack","sourceId":"s","openchatApiKey":"k"}`
	req := httptest.NewRequest(http.MethodPost, "/api/routes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateRouteEndpointWrongPrincipal(t *testing.T) {
	route := &model.Route{Principal: "p1", Name: "Mirror", Platform: model.PlatformTelegram, SourceID: "s", OpenChatAPIKey: "k"}
	repo := newMockRouteRepo(route)
	router := routeRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/routes/"+route.ID.Hex(), strings.NewReader(`{"principal":"p2","name":"Hijacked"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if route.Name != "Mirror" {
		t.Error("expected route unchanged after rejected update")
	}
}

func TestDeleteRouteEndpointWrongPrincipal(t *testing.T) {
	route := &model.Route{Principal: "p1", Name: "Mirror", Platform: model.PlatformTelegram, SourceID: "s", OpenChatAPIKey: "k"}
	repo := newMockRouteRepo(route)
	router := routeRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/routes/"+route.ID.Hex(), strings.NewReader(`{"principal":"p2"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if len(repo.routes) != 1 {
		t.Error("expected route still present after rejected delete")
	}
}

func TestDeleteRouteEndpoint(t *testing.T) {
	route := &model.Route{Principal: "p1", Name: "Mirror", Platform: model.PlatformTelegram, SourceID: "s", OpenChatAPIKey: "k"}
	repo := newMockRouteRepo(route)
	router := routeRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/routes/"+route.ID.Hex()+"?principal=p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.routes) != 0 {
		t.Error("expected route removed")
	}
}

func TestRouteEndpointInvalidID(t *testing.T) {
	router := routeRouter(newMockRouteRepo())

	req := httptest.NewRequest(http.MethodDelete, "/api/routes/not-an-id?principal=p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
