// internal/app/features/registry/rawitems.go
package registry

import (
	"context"
	"net/http"

	rawitemstore "github.com/floorhq/floorhub/internal/app/store/rawitems"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type rawItemRequest struct {
	Name              string  `json:"name" validate:"required,max=200" label:"Name"`
	Unit              string  `json:"unit" validate:"max=20" label:"Unit"`
	AvailableQuantity float64 `json:"availableQuantity"`
	UnitCost          float64 `json:"unitCost"`
}

// HandleCreateRawItem processes POST /raw-items.
func (h *Handler) HandleCreateRawItem(w http.ResponseWriter, r *http.Request) {
	var req rawItemRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Fail(w, h.Log, apperr.InvalidMsg(res.First()))
		return
	}
	if req.AvailableQuantity < 0 {
		httpjson.Fail(w, h.Log, apperr.Invalid("availableQuantity must not be negative"))
		return
	}
	if req.UnitCost < 0 {
		httpjson.Fail(w, h.Log, apperr.Invalid("unitCost must not be negative"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	item, err := rawitemstore.New(h.DB).Create(ctx, models.RawItem{
		Name:              inputval.Sanitize(req.Name),
		Unit:              inputval.Sanitize(req.Unit),
		AvailableQuantity: req.AvailableQuantity,
		UnitCost:          req.UnitCost,
	})
	if err == rawitemstore.ErrDuplicateName {
		httpjson.Fail(w, h.Log, apperr.Conflictf("a raw item with this name already exists"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	h.auditAdmin(ctx, r, "raw_item_created", item.ID, map[string]string{"name": item.Name})
	httpjson.OK(w, "raw item created", map[string]any{"raw_item": item})
}

// HandleListRawItems processes GET /raw-items.
func (h *Handler) HandleListRawItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := rawitemstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}
	if items == nil {
		items = []models.RawItem{}
	}
	httpjson.OK(w, "raw items", map[string]any{"raw_items": items})
}

// HandleGetRawItem processes GET /raw-items/{id}.
func (h *Handler) HandleGetRawItem(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Invalid("raw item id must be a 24-hex id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := rawitemstore.New(h.DB).GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.NotFoundf("raw item not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}
	httpjson.OK(w, "raw item", map[string]any{"raw_item": item})
}
