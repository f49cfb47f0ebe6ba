// internal/controller/instance_controller.go
package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/repository"
)

type InstanceController struct {
	InstanceRepo repository.InstanceRepositoryInterface
}

func (c *InstanceController) SaveInstance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	if body.Name == "" {
		body.Name = fmt.Sprintf("Chat Instance %d", time.Now().UnixMilli())
	}

	inst := &model.ChatInstance{Name: body.Name}
	if err := c.InstanceRepo.Create(r.Context(), inst); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"instanceId": inst.ID.Hex(),
	})
}

func (c *InstanceController) ListInstances(w http.ResponseWriter, r *http.Request) {
	instances, err := c.InstanceRepo.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"instances": instances,
	})
}

func (c *InstanceController) GetInstance(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	inst, err := c.InstanceRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"instance": inst,
	})
}

func (c *InstanceController) DeleteInstance(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.InstanceRepo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Instance deleted successfully",
	})
}
