// internal/app/features/requirements/handler_test.go
package requirements_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/floorhq/floorhub/internal/app/features/requirements"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/floorhq/floorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestHandlePreview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := requirements.NewHandler(db, zap.NewNop())
	ctx := context.Background()

	raw := fx.CreateRawItem(ctx, "Steel Plate", 30)
	stock := fx.CreateStockItem(ctx, "Panel", []models.BOMLine{
		{RawItemID: raw.ID, QtyPerUnit: 4, UnitCost: 2},
	})

	req := httptest.NewRequest("GET", "/requirements/"+stock.ID.Hex()+"?quantity=10", nil)
	req = testutil.WithChiURLParam(req, "stockItemID", stock.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandlePreview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		StockItemID  string              `json:"stock_item_id"`
		Quantity     float64             `json:"quantity"`
		Requirements []requirements.Line `json:"requirements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.StockItemID != stock.ID.Hex() {
		t.Errorf("stock_item_id = %q, want %q", body.StockItemID, stock.ID.Hex())
	}
	if len(body.Requirements) != 1 {
		t.Fatalf("requirements = %d lines, want 1", len(body.Requirements))
	}

	// 10 panels at 4 plates each need 40; only 30 in stock.
	line := body.Requirements[0]
	if line.RequiredQuantity != 40 {
		t.Errorf("required = %v, want 40", line.RequiredQuantity)
	}
	if line.AvailableQuantity != 30 {
		t.Errorf("available = %v, want 30", line.AvailableQuantity)
	}
	if line.DeficitQuantity != 10 {
		t.Errorf("deficit = %v, want 10", line.DeficitQuantity)
	}
	if line.Status != "partially_assigned" {
		t.Errorf("status = %q, want partially_assigned", line.Status)
	}
	// Fixture registry cost overrides the BOM snapshot.
	if line.UnitCost != 5 {
		t.Errorf("unit cost = %v, want 5", line.UnitCost)
	}
}

func TestHandlePreviewRejections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := requirements.NewHandler(db, zap.NewNop())
	stock := fx.CreateStockItem(context.Background(), "Lid", nil)

	tests := []struct {
		name  string
		id    string
		query string
		want  int
	}{
		{"missing stock item", primitive.NewObjectID().Hex(), "quantity=5", http.StatusNotFound},
		{"malformed id", "nope", "quantity=5", http.StatusBadRequest},
		{"zero quantity", stock.ID.Hex(), "quantity=0", http.StatusBadRequest},
		{"no quantity", stock.ID.Hex(), "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/requirements/"+tt.id+"?"+tt.query, nil)
			req = testutil.WithChiURLParam(req, "stockItemID", tt.id)
			rec := httptest.NewRecorder()
			h.HandlePreview(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
