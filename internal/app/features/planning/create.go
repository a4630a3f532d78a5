// internal/app/features/planning/create.go
package planning

import (
	"context"
	"net/http"

	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	workorderstore "github.com/floorhq/floorhub/internal/app/store/workorders"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/auth"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/app/system/txn"
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCreate processes POST /planning. Creating is idempotent per work
// order: when a planning record already exists for the given work order the
// existing record is returned unchanged.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Fail(w, h.Log, apperr.InvalidMsg(res.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	wo, err := workorderstore.New(h.DB).FindByWorkOrderID(ctx, inputval.Sanitize(req.WorkOrderID))
	if err == mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.NotFoundf("work order not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	planStore := planningstore.New(h.DB)

	if existing, err := planStore.GetByWorkOrderID(ctx, wo.ID); err == nil {
		httpjson.OK(w, "planning already exists for this work order", map[string]any{"planning": existing})
		return
	} else if err != mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	record := models.PlanningRecord{WorkOrderID: wo.ID}
	if actor, ok := auth.ActorFrom(ctx); ok {
		record.CreatedByID = actorObjectID(actor)
		record.CreatedByName = actor.Name
	}

	// The insert and the back-reference on the work order commit together,
	// mirroring delete, so the work order never points at a record that was
	// not created.
	var created models.PlanningRecord
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var terr error
		created, terr = planStore.Create(ctx, record)
		if terr != nil {
			return terr
		}
		return workorderstore.New(h.DB).SetPlanningID(ctx, wo.ID, &created.ID)
	})
	if err == planningstore.ErrDuplicateWorkOrder {
		// Lost a creation race; the winner's record is the answer.
		existing, lerr := planStore.GetByWorkOrderID(ctx, wo.ID)
		if lerr != nil {
			httpjson.Fail(w, h.Log, apperr.Store(lerr))
			return
		}
		httpjson.OK(w, "planning already exists for this work order", map[string]any{"planning": existing})
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	h.auditEvent(ctx, r, created.ID, "planning_created", nil, map[string]string{"work_order_id": wo.WorkOrderID})
	httpjson.OK(w, "planning created", map[string]any{"planning": created})
}
