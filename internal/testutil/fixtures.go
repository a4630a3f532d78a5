// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMachine creates an active test machine with the given code.
func (f *Fixtures) CreateMachine(ctx context.Context, code string) models.Machine {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Machine{
		ID:        primitive.NewObjectID(),
		Code:      code,
		CodeCI:    text.Fold(code),
		Name:      "Test Machine " + code,
		NameCI:    text.Fold("Test Machine " + code),
		Type:      "milling",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if _, err := f.db.Collection("machines").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test machine: %v", err)
	}
	return m
}

// CreateOperator creates an active test operator with the given name parts.
func (f *Fixtures) CreateOperator(ctx context.Context, first, last string) models.Operator {
	f.t.Helper()

	now := time.Now().UTC()
	o := models.Operator{
		ID:         primitive.NewObjectID(),
		FirstName:  first,
		LastName:   last,
		FullNameCI: text.Fold(first + " " + last),
		Department: "machining",
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  &now,
	}
	if _, err := f.db.Collection("operators").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test operator: %v", err)
	}
	return o
}

// CreateRawItem creates a raw item with the given name and availability.
func (f *Fixtures) CreateRawItem(ctx context.Context, name string, available float64) models.RawItem {
	f.t.Helper()

	now := time.Now().UTC()
	ri := models.RawItem{
		ID:                primitive.NewObjectID(),
		Name:              name,
		NameCI:            text.Fold(name),
		Unit:              "kg",
		AvailableQuantity: available,
		UnitCost:          5,
		Status:            "active",
		CreatedAt:         now,
		UpdatedAt:         &now,
	}
	if _, err := f.db.Collection("raw_items").InsertOne(ctx, ri); err != nil {
		f.t.Fatalf("failed to create test raw item: %v", err)
	}
	return ri
}

// CreateStockItem creates a stock item with the given BOM lines.
func (f *Fixtures) CreateStockItem(ctx context.Context, name string, bom []models.BOMLine) models.StockItem {
	f.t.Helper()

	now := time.Now().UTC()
	si := models.StockItem{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		BillOfMaterials: bom,
		Operations: []models.RoutingOperation{
			{Name: "Milling", Sequence: 1, MachineType: "milling", EstimatedHours: 2},
		},
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if _, err := f.db.Collection("stock_items").InsertOne(ctx, si); err != nil {
		f.t.Fatalf("failed to create test stock item: %v", err)
	}
	return si
}

// CreateWorkOrder creates a pending work order for the given stock item.
func (f *Fixtures) CreateWorkOrder(ctx context.Context, workOrderID string, stockItemID primitive.ObjectID, qty float64) models.WorkOrder {
	f.t.Helper()

	now := time.Now().UTC()
	wo := models.WorkOrder{
		ID:          primitive.NewObjectID(),
		WorkOrderID: workOrderID,
		StockItemID: stockItemID,
		Quantity:    qty,
		Status:      models.WorkOrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}
	if _, err := f.db.Collection("work_orders").InsertOne(ctx, wo); err != nil {
		f.t.Fatalf("failed to create test work order: %v", err)
	}
	return wo
}

// CreatePlanning creates a draft planning record linked to the given work
// order document id.
func (f *Fixtures) CreatePlanning(ctx context.Context, workOrderID primitive.ObjectID) models.PlanningRecord {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.PlanningRecord{
		ID:                     primitive.NewObjectID(),
		WorkOrderID:            workOrderID,
		Status:                 models.PlanningStatusDraft,
		RawMaterialAssignments: []models.RawMaterialAssignment{},
		MachineAssignments:     []models.MachineAssignment{},
		CreatedAt:              now,
		UpdatedAt:              &now,
	}
	if _, err := f.db.Collection("plannings").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test planning: %v", err)
	}
	return p
}
