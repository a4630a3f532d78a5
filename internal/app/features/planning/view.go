// internal/app/features/planning/view.go
package planning

import (
	"context"
	"net/http"
	"time"

	"github.com/floorhq/floorhub/internal/app/store/audit"
	planningstore "github.com/floorhq/floorhub/internal/app/store/plannings"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"github.com/floorhq/floorhub/internal/app/system/auth"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleView serves GET /planning/{id}.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	record, err := h.loadRecord(ctx, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "planning", map[string]any{"planning": record})
}

// planningID extracts and parses the {id} route parameter.
func planningID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("planning id must be a 24-hex id")
	}
	return id, nil
}

// loadRecord resolves {id} to a planning record, mapping the two failure
// shapes to the taxonomy.
func (h *Handler) loadRecord(ctx context.Context, r *http.Request) (*models.PlanningRecord, error) {
	id, err := planningID(r)
	if err != nil {
		return nil, err
	}
	record, err := planningstore.New(h.DB).GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("planning not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return record, nil
}

// progressMark stamps a completed gate with the acting user, when known.
func progressMark(ctx context.Context) models.ProgressMark {
	now := time.Now().UTC()
	mark := models.ProgressMark{Completed: true, CompletedAt: &now}
	if actor, ok := auth.ActorFrom(ctx); ok {
		mark.CompletedByID = actorObjectID(actor)
		mark.CompletedBy = actor.Name
	}
	return mark
}

// actorObjectID parses the actor's directory id, nil when it is not a
// document id (service accounts).
func actorObjectID(a auth.Actor) *primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil
	}
	return &id
}

func (h *Handler) auditEvent(ctx context.Context, r *http.Request, planningID primitive.ObjectID, eventType string, failure error, details map[string]string) {
	event := audit.Event{
		Category:      audit.CategoryPlanning,
		EventType:     eventType,
		EntityID:      &planningID,
		Success:       failure == nil,
		Details:       details,
		CorrelationID: auditlog.NewCorrelationID(),
		IP:            auditlog.ClientIP(r),
	}
	if failure != nil {
		event.FailureReason = apperr.MessageOf(failure)
	}
	if actor, ok := auth.ActorFrom(ctx); ok {
		event.ActorID = actorObjectID(actor)
	}
	h.Audit.Log(ctx, event)
}
