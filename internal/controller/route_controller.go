// internal/controller/route_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/service"
)

type RouteController struct {
	RouteService *service.RouteService
}

func (c *RouteController) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var body service.RouteInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	route, err := c.RouteService.CreateRoute(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, route)
}

func (c *RouteController) ListRoutes(w http.ResponseWriter, r *http.Request) {
	principal := r.URL.Query().Get("principal")

	routes, err := c.RouteService.ListRoutes(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, routes)
}

func (c *RouteController) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body service.RouteInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	route, err := c.RouteService.UpdateRoute(r.Context(), id, body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, route)
}

func (c *RouteController) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	principal := r.URL.Query().Get("principal")
	var body struct {
		Principal string `json:"principal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Principal != "" {
		principal = body.Principal
	}

	if err := c.RouteService.DeleteRoute(r.Context(), id, principal); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Route deleted successfully"})
}
