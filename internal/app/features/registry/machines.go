// internal/app/features/registry/machines.go
package registry

import (
	"context"
	"net/http"

	"github.com/floorhq/floorhub/internal/app/store/audit"
	machinestore "github.com/floorhq/floorhub/internal/app/store/machines"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type machineRequest struct {
	Code   string `json:"code" validate:"required,max=32" label:"Code"`
	Name   string `json:"name" validate:"required,max=200" label:"Name"`
	Type   string `json:"type" validate:"max=60" label:"Type"`
	Status string `json:"status" validate:"max=20" label:"Status"`
}

// HandleCreateMachine processes POST /machines.
func (h *Handler) HandleCreateMachine(w http.ResponseWriter, r *http.Request) {
	var req machineRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Fail(w, h.Log, apperr.InvalidMsg(res.First()))
		return
	}
	if req.Status != "" && req.Status != "active" && req.Status != "disabled" {
		httpjson.Fail(w, h.Log, apperr.Invalid("status must be active or disabled"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	machine, err := machinestore.New(h.DB).Create(ctx, models.Machine{
		Code:   inputval.Sanitize(req.Code),
		Name:   inputval.Sanitize(req.Name),
		Type:   inputval.Sanitize(req.Type),
		Status: req.Status,
	})
	if err == machinestore.ErrDuplicateCode {
		httpjson.Fail(w, h.Log, apperr.Conflictf("a machine with this code already exists"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	h.auditAdmin(ctx, r, "machine_created", machine.ID, map[string]string{"code": machine.Code})
	httpjson.OK(w, "machine created", map[string]any{"machine": machine})
}

// HandleListMachines processes GET /machines, optionally filtered with
// ?status=active|disabled.
func (h *Handler) HandleListMachines(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != "active" && status != "disabled" {
		httpjson.Fail(w, h.Log, apperr.Invalid("status must be active or disabled"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	machines, err := machinestore.New(h.DB).List(ctx, status)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}
	if machines == nil {
		machines = []models.Machine{}
	}
	httpjson.OK(w, "machines", map[string]any{"machines": machines})
}

// HandleGetMachine processes GET /machines/{id}.
func (h *Handler) HandleGetMachine(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Invalid("machine id must be a 24-hex id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	machine, err := machinestore.New(h.DB).GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.NotFoundf("machine not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}
	httpjson.OK(w, "machine", map[string]any{"machine": machine})
}

func (h *Handler) auditAdmin(ctx context.Context, r *http.Request, eventType string, entityID primitive.ObjectID, details map[string]string) {
	h.Audit.Log(ctx, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     eventType,
		EntityID:      &entityID,
		Success:       true,
		Details:       details,
		CorrelationID: auditlog.NewCorrelationID(),
		IP:            auditlog.ClientIP(r),
	})
}
