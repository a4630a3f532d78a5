// internal/app/features/planning/delete.go
package planning

import (
	"context"
	"net/http"

	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	workorderstore "github.com/floorhq/floorhub/internal/app/store/workorders"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/app/system/txn"
	"github.com/floorhq/floorhub/internal/domain/models"
)

// HandleDelete processes DELETE /planning/{id}. Only drafts may be deleted;
// the linked work order is reset to pending with its planning reference
// cleared in the same transaction, so the pair never points at a missing
// record.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	record, err := h.loadRecord(ctx, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := planningstore.New(h.DB).DeleteDraft(ctx, record.ID); err != nil {
			if err == planningstore.ErrNotDraft {
				return apperr.Precondition("only draft planning records can be deleted")
			}
			return err
		}
		workOrders := workorderstore.New(h.DB)
		if err := workOrders.SetStatus(ctx, record.WorkOrderID, models.WorkOrderStatusPending); err != nil {
			return err
		}
		return workOrders.SetPlanningID(ctx, record.WorkOrderID, nil)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.StoreFailure {
			err = apperr.Store(err)
		}
		h.auditEvent(ctx, r, record.ID, "planning_deleted", err, nil)
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.auditEvent(ctx, r, record.ID, "planning_deleted", nil, nil)
	httpjson.OK(w, "planning deleted", map[string]any{"planning_id": record.ID.Hex()})
}
