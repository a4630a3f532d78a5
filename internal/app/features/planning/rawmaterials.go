// internal/app/features/planning/rawmaterials.go
package planning

import (
	"context"
	"net/http"

	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	rawitemstore "github.com/floorhq/floorhub/internal/app/store/rawitems"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleSetRawMaterials processes PUT /planning/{id}/raw-materials. The
// submitted lines replace the plan's material commitment wholesale; names,
// unit costs, and deficit standing are resolved from the raw-item registry at
// write time.
func (h *Handler) HandleSetRawMaterials(w http.ResponseWriter, r *http.Request) {
	var req rawMaterialsRequest
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

	lines, err := h.resolveMaterialLines(ctx, req.Assignments)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	record.Progress.RawMaterialAssignment = progressMark(ctx)
	err = planningstore.New(h.DB).SetRawMaterialAssignments(ctx, record.ID, lines, record.Progress.RawMaterialAssignment, record.DeriveStatus())
	if err != nil {
		h.auditEvent(ctx, r, record.ID, "raw_materials_set", stageErr(err), nil)
		httpjson.Fail(w, h.Log, stageErr(err))
		return
	}

	h.auditEvent(ctx, r, record.ID, "raw_materials_set", nil, nil)
	httpjson.OK(w, "raw material assignments saved", map[string]any{"assignments": lines})
}

// resolveMaterialLines validates the submitted lines and joins them with the
// raw-item registry in one batched lookup.
func (h *Handler) resolveMaterialLines(ctx context.Context, in []rawMaterialLine) ([]models.RawMaterialAssignment, error) {
	if len(in) == 0 {
		return nil, apperr.Invalid("at least one raw material assignment is required")
	}

	ids := make([]primitive.ObjectID, 0, len(in))
	seen := map[primitive.ObjectID]bool{}
	for _, line := range in {
		if res := inputval.Validate(line); res.HasErrors() {
			return nil, apperr.InvalidMsg(res.First())
		}
		id, err := primitive.ObjectIDFromHex(line.RawItemID)
		if err != nil {
			return nil, apperr.Invalid("rawItemId must be a 24-hex id")
		}
		if line.AssignedQuantity < 0 {
			return nil, apperr.Invalid("assignedQuantity must not be negative")
		}
		if seen[id] {
			return nil, apperr.Invalid("raw item %s is assigned twice", line.RawItemID)
		}
		seen[id] = true
		ids = append(ids, id)
	}

	items, err := rawitemstore.New(h.DB).GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Store(err)
	}

	lines := make([]models.RawMaterialAssignment, 0, len(in))
	for i, line := range in {
		item, ok := items[ids[i]]
		if !ok {
			return nil, apperr.NotFoundf("raw item %s not found", line.RawItemID)
		}
		lines = append(lines, materialLine(item, line.AssignedQuantity))
	}
	return lines, nil
}

// materialLine snapshots one registry item into an assignment line. Deficit
// and status reflect availability at write time; approval re-checks with a
// conditional deduct.
func materialLine(item models.RawItem, assigned float64) models.RawMaterialAssignment {
	line := models.RawMaterialAssignment{
		RawItemID:        item.ID,
		RawItemName:      item.Name,
		AssignedQuantity: assigned,
		UnitCost:         item.UnitCost,
	}
	switch {
	case item.AvailableQuantity >= assigned:
		line.Status = models.AssignmentStatusAssigned
	case item.AvailableQuantity > 0:
		line.Status = models.AssignmentStatusPartiallyAssigned
		line.DeficitQuantity = assigned - item.AvailableQuantity
	default:
		line.Status = models.AssignmentStatusUnavailable
		line.DeficitQuantity = assigned
	}
	return line
}

// stageErr maps store failures from stage updates to the taxonomy.
func stageErr(err error) error {
	switch err {
	case planningstore.ErrLocked:
		return apperr.Precondition("planning is approved and can no longer be edited")
	case mongo.ErrNoDocuments:
		return apperr.NotFoundf("planning not found")
	default:
		return apperr.Store(err)
	}
}
