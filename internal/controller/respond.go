package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("⚠️ Failed to encode response:", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses: validation 400,
// authorization 403, not-found 404, anything else 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var (
		validation  *appErrors.ErrValidation
		notAuth     *appErrors.ErrNotAuthorized
		campaign404 *appErrors.ErrCampaignNotFound
		route404    *appErrors.ErrRouteNotFound
		content404  *appErrors.ErrContentNotFound
		instance404 *appErrors.ErrInstanceNotFound
	)
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &notAuth):
		status = http.StatusForbidden
	case errors.As(err, &campaign404), errors.As(err, &route404),
		errors.As(err, &content404), errors.As(err, &instance404):
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]string{"message": err.Error()})
}

// urlID parses the {id} route parameter as an ObjectID.
func urlID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, appErrors.NewValidation("invalid id format")
	}
	return id, nil
}
