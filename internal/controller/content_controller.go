// internal/controller/content_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/repository"
)

type ContentController struct {
	ContentRepo  repository.ContentRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
}

func (c *ContentController) CreateContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID    string    `json:"campaignId"`
		Content       string    `json:"content"`
		ScheduledTime time.Time `json:"scheduledTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	if body.Content == "" {
		writeError(w, appErrors.NewValidation("content is required"))
		return
	}
	if body.ScheduledTime.IsZero() {
		writeError(w, appErrors.NewValidation("scheduledTime is required"))
		return
	}
	campaignID, err := primitive.ObjectIDFromHex(body.CampaignID)
	if err != nil {
		writeError(w, appErrors.NewValidation("invalid campaignId format"))
		return
	}

	// The campaign must exist at creation time; it may still be deleted later.
	if _, err := c.CampaignRepo.GetByID(r.Context(), campaignID); err != nil {
		writeError(w, err)
		return
	}

	content := &model.Content{
		CampaignID:    campaignID,
		Content:       body.Content,
		ScheduledTime: body.ScheduledTime.UTC(),
		Status:        model.ContentStatusPending,
	}
	if err := c.ContentRepo.Create(r.Context(), content); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, content)
}

func (c *ContentController) ListContents(w http.ResponseWriter, r *http.Request) {
	campaignID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("campaignId"))
	if err != nil {
		writeError(w, appErrors.NewValidation("campaignId is required"))
		return
	}

	contents, err := c.ContentRepo.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contents)
}

// UpdateContent edits text and schedule, and lets a failed item be reset to
// pending. Posted is terminal: no edit may move an item out of it.
func (c *ContentController) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Content       string     `json:"content"`
		ScheduledTime *time.Time `json:"scheduledTime"`
		Status        string     `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	content, err := c.ContentRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if content.Status == model.ContentStatusPosted {
		writeError(w, appErrors.NewValidation("posted content cannot be modified"))
		return
	}

	if body.Content != "" {
		content.Content = body.Content
	}
	if body.ScheduledTime != nil {
		content.ScheduledTime = body.ScheduledTime.UTC()
	}
	if body.Status != "" {
		if body.Status != model.ContentStatusPending {
			writeError(w, appErrors.NewValidation("status can only be reset to pending"))
			return
		}
		content.Status = model.ContentStatusPending
	}

	if err := c.ContentRepo.Update(r.Context(), content); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (c *ContentController) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.ContentRepo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Content deleted successfully"})
}
