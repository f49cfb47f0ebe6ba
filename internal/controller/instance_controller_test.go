package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openwave/chatcast-backend/internal/model"
)

func instanceRouter(repo *mockInstanceRepo) http.Handler {
	ctrl := &InstanceController{InstanceRepo: repo}
	return newTestRouter(nil, nil, nil, nil, ctrl)
}

func TestSaveInstanceEndpoint(t *testing.T) {
	repo := newMockInstanceRepo()
	router := instanceRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/instances", strings.NewReader(`{"name":"Support bot"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["success"] != true || resp["instanceId"] == "" {
		t.Errorf("unexpected response: %v", resp)
	}
	if len(repo.instances) != 1 {
		t.Errorf("expected 1 stored instance, got %d", len(repo.instances))
	}
}

func TestSaveInstanceEndpointDefaultName(t *testing.T) {
	repo := newMockInstanceRepo()
	router := instanceRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/instances", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, inst := range repo.instances {
		if !strings.HasPrefix(inst.Name, "Chat Instance ") {
			t.Errorf("expected generated default name, got %q", inst.Name)
		}
	}
}

func TestGetInstanceEndpointMissing(t *testing.T) {
	router := instanceRouter(newMockInstanceRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/instances/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteInstanceEndpoint(t *testing.T) {
	inst := &model.ChatInstance{Name: "Old bot"}
	repo := newMockInstanceRepo(inst)
	router := instanceRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/instances/"+inst.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(repo.instances) != 0 {
		t.Error("expected instance removed")
	}
}
