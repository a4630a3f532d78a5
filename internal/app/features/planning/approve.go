// internal/app/features/planning/approve.go
package planning

import (
	"context"
	"net/http"

	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	rawitemstore "github.com/floorhq/floorhub/internal/app/store/rawitems"
	workorderstore "github.com/floorhq/floorhub/internal/app/store/workorders"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/app/system/txn"
	"github.com/floorhq/floorhub/internal/domain/models"
)

// HandleApprove processes POST /planning/{id}/approve. Approval is the only
// step with side effects outside the planning record: every assigned raw
// material is deducted from availability and the work order moves to
// scheduled. The whole booking runs in one transaction; any deficit aborts
// it, so stock is never partially committed.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	record, err := h.loadRecord(ctx, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	if record.IsApproved() {
		httpjson.Fail(w, h.Log, apperr.Precondition("planning is already approved"))
		return
	}
	if !record.ReadyForApproval() {
		err := apperr.Precondition("raw materials, machines, and timeline must all be set before approval")
		h.auditEvent(ctx, r, record.ID, "planning_approved", err, nil)
		httpjson.Fail(w, h.Log, err)
		return
	}

	mark := progressMark(ctx)
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		raws := rawitemstore.New(h.DB)
		for _, line := range record.RawMaterialAssignments {
			if line.AssignedQuantity <= 0 {
				continue
			}
			if err := raws.Deduct(ctx, line.RawItemID, line.AssignedQuantity); err != nil {
				if err == rawitemstore.ErrInsufficientStock {
					return apperr.Precondition("insufficient stock of %s to book this plan", line.RawItemName)
				}
				return err
			}
		}

		if err := planningstore.New(h.DB).MarkApproved(ctx, record.ID, mark); err != nil {
			if err == planningstore.ErrLocked {
				// Another approval won the race after our pre-check.
				return apperr.Conflictf("planning was approved concurrently")
			}
			return err
		}

		return workorderstore.New(h.DB).SetStatus(ctx, record.WorkOrderID, models.WorkOrderStatusScheduled)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.StoreFailure {
			err = apperr.Store(err)
		}
		h.auditEvent(ctx, r, record.ID, "planning_approved", err, nil)
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.auditEvent(ctx, r, record.ID, "planning_approved", nil, nil)
	httpjson.OK(w, "planning approved", map[string]any{
		"planning_id":       record.ID.Hex(),
		"work_order_status": models.WorkOrderStatusScheduled,
	})
}
