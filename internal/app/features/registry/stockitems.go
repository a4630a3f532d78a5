// internal/app/features/registry/stockitems.go
package registry

import (
	"context"
	"net/http"

	rawitemstore "github.com/floorhq/floorhub/internal/app/store/rawitems"
	stockitemstore "github.com/floorhq/floorhub/internal/app/store/stockitems"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/inputval"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type stockItemRequest struct {
	Name            string             `json:"name" validate:"required,max=200" label:"Name"`
	BillOfMaterials []bomLineRequest   `json:"billOfMaterials"`
	Operations      []routingOpRequest `json:"operations"`
}

type bomLineRequest struct {
	RawItemID  string  `json:"rawItemId" validate:"required" label:"Raw Item ID"`
	QtyPerUnit float64 `json:"qtyPerUnit"`
	UnitCost   float64 `json:"unitCost"`
}

type routingOpRequest struct {
	Name           string  `json:"name" validate:"required,max=120" label:"Operation Name"`
	Sequence       int     `json:"sequence"`
	MachineType    string  `json:"machineType" validate:"max=60" label:"Machine Type"`
	EstimatedHours float64 `json:"estimatedHours"`
}

// HandleCreateStockItem processes POST /stock-items. Every BOM line must
// reference an existing raw item so the requirement calculator never meets a
// dangling reference of our own making.
func (h *Handler) HandleCreateStockItem(w http.ResponseWriter, r *http.Request) {
	var req stockItemRequest
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

	bom, err := h.resolveBOM(ctx, req.BillOfMaterials)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ops := make([]models.RoutingOperation, 0, len(req.Operations))
	for _, op := range req.Operations {
		if res := inputval.Validate(op); res.HasErrors() {
			httpjson.Fail(w, h.Log, apperr.InvalidMsg(res.First()))
			return
		}
		ops = append(ops, models.RoutingOperation{
			Name:           inputval.Sanitize(op.Name),
			Sequence:       op.Sequence,
			MachineType:    inputval.Sanitize(op.MachineType),
			EstimatedHours: op.EstimatedHours,
		})
	}

	item, err := stockitemstore.New(h.DB).Create(ctx, models.StockItem{
		Name:            inputval.Sanitize(req.Name),
		BillOfMaterials: bom,
		Operations:      ops,
	})
	if err == stockitemstore.ErrDuplicateName {
		httpjson.Fail(w, h.Log, apperr.Conflictf("a stock item with this name already exists"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	h.auditAdmin(ctx, r, "stock_item_created", item.ID, map[string]string{"name": item.Name})
	httpjson.OK(w, "stock item created", map[string]any{"stock_item": item})
}

func (h *Handler) resolveBOM(ctx context.Context, in []bomLineRequest) ([]models.BOMLine, error) {
	bom := make([]models.BOMLine, 0, len(in))
	ids := make([]primitive.ObjectID, 0, len(in))
	for _, line := range in {
		if res := inputval.Validate(line); res.HasErrors() {
			return nil, apperr.InvalidMsg(res.First())
		}
		id, err := primitive.ObjectIDFromHex(line.RawItemID)
		if err != nil {
			return nil, apperr.Invalid("rawItemId must be a 24-hex id")
		}
		if line.QtyPerUnit <= 0 {
			return nil, apperr.Invalid("qtyPerUnit must be positive")
		}
		if line.UnitCost < 0 {
			return nil, apperr.Invalid("unitCost must not be negative")
		}
		ids = append(ids, id)
		bom = append(bom, models.BOMLine{RawItemID: id, QtyPerUnit: line.QtyPerUnit, UnitCost: line.UnitCost})
	}

	items, err := rawitemstore.New(h.DB).GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Store(err)
	}
	for i, id := range ids {
		if _, ok := items[id]; !ok {
			return nil, apperr.NotFoundf("raw item %s not found", in[i].RawItemID)
		}
	}
	return bom, nil
}

// HandleGetStockItem processes GET /stock-items/{id}.
func (h *Handler) HandleGetStockItem(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Invalid("stock item id must be a 24-hex id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := stockitemstore.New(h.DB).GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.NotFoundf("stock item not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}
	httpjson.OK(w, "stock item", map[string]any{"stock_item": item})
}
