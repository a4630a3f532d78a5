// internal/app/features/planning/machines.go
package planning

import (
	"context"
	"net/http"

	machinestore "github.com/floorhq/floorhub/internal/app/store/machines"
	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleSetMachines processes PUT /planning/{id}/machines, replacing the
// plan's operation-to-machine bindings.
func (h *Handler) HandleSetMachines(w http.ResponseWriter, r *http.Request) {
	var req machinesRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	record, err := h.loadRecord(ctx, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	lines, err := h.resolveMachineLines(ctx, req.Assignments)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	record.Progress.MachineAssignment = progressMark(ctx)
	err = planningstore.New(h.DB).SetMachineAssignments(ctx, record.ID, lines, record.Progress.MachineAssignment, record.DeriveStatus())
	if err != nil {
		h.auditEvent(ctx, r, record.ID, "machines_set", stageErr(err), nil)
		httpjson.Fail(w, h.Log, stageErr(err))
		return
	}

	h.auditEvent(ctx, r, record.ID, "machines_set", nil, nil)
	httpjson.OK(w, "machine assignments saved", map[string]any{"assignments": lines})
}

func (h *Handler) resolveMachineLines(ctx context.Context, in []machineLine) ([]models.MachineAssignment, error) {
	if len(in) == 0 {
		return nil, apperr.Invalid("at least one machine assignment is required")
	}

	ids := make([]primitive.ObjectID, 0, len(in))
	for _, line := range in {
		if res := inputval.Validate(line); res.HasErrors() {
			return nil, apperr.InvalidMsg(res.First())
		}
		id, err := primitive.ObjectIDFromHex(line.MachineID)
		if err != nil {
			return nil, apperr.Invalid("machineId must be a 24-hex id")
		}
		if line.EstimatedHours < 0 {
			return nil, apperr.Invalid("estimatedHours must not be negative")
		}
		ids = append(ids, id)
	}

	machines, err := machinestore.New(h.DB).GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Store(err)
	}

	lines := make([]models.MachineAssignment, 0, len(in))
	for i, line := range in {
		m, ok := machines[ids[i]]
		if !ok {
			return nil, apperr.NotFoundf("machine %s not found", line.MachineID)
		}
		if !m.IsActive() {
			return nil, apperr.Precondition("machine %s is not active", m.Code)
		}
		lines = append(lines, models.MachineAssignment{
			Operation:      inputval.Sanitize(line.Operation),
			MachineID:      m.ID,
			MachineName:    m.Name,
			EstimatedHours: line.EstimatedHours,
		})
	}
	return lines, nil
}
