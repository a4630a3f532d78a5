// internal/app/features/requirements/handler.go
package requirements

import (
	"context"
	"net/http"
	"strconv"

	rawitemstore "github.com/floorhq/floorhub/internal/app/store/rawitems"
	stockitemstore "github.com/floorhq/floorhub/internal/app/store/stockitems"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves raw-material requirement previews.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandlePreview serves GET /requirements/{stockItemID}?quantity=N: the BOM
// of the stock item expanded for the requested build quantity.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	stockItemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "stockItemID"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Invalid("stock item id must be a 24-hex id"))
		return
	}

	quantity, err := strconv.ParseFloat(r.URL.Query().Get("quantity"), 64)
	if err != nil || quantity <= 0 {
		httpjson.Fail(w, h.Log, apperr.Invalid("quantity must be a positive number"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	stockItem, err := stockitemstore.New(h.DB).GetByID(ctx, stockItemID)
	if err == mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.NotFoundf("stock item not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	ids := make([]primitive.ObjectID, 0, len(stockItem.BillOfMaterials))
	for _, b := range stockItem.BillOfMaterials {
		ids = append(ids, b.RawItemID)
	}
	items, err := rawitemstore.New(h.DB).GetByIDs(ctx, ids)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	httpjson.OK(w, "requirements", map[string]any{
		"stock_item_id":   stockItem.ID.Hex(),
		"stock_item_name": stockItem.Name,
		"quantity":        quantity,
		"requirements":    Calculate(stockItem.BillOfMaterials, quantity, items),
	})
}

// Routes returns the router for requirement previews.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{stockItemID}", h.HandlePreview)
	return r
}
