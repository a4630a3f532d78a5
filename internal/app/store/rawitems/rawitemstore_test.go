package rawitemstore_test

import (
	"testing"

	rawitemstore "github.com/floorhq/floorhub/internal/app/store/rawitems"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/floorhq/floorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rawitemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.RawItem{
		Name:              "Stainless Rod",
		Unit:              "kg",
		AvailableQuantity: 120,
		UnitCost:          7.5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Status != "active" {
		t.Errorf("expected default status 'active', got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Deduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rawitemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.RawItem{Name: "Brass Stock", Unit: "kg", AvailableQuantity: 100})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Deduct(ctx, created.ID, 30); err != nil {
		t.Fatalf("Deduct failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.AvailableQuantity != 70 {
		t.Errorf("available: got %v, want 70", got.AvailableQuantity)
	}

	// More than remains: rejected, nothing changes.
	if err := store.Deduct(ctx, created.ID, 80); err != rawitemstore.ErrInsufficientStock {
		t.Fatalf("over-deduct: got %v, want ErrInsufficientStock", err)
	}
	got, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.AvailableQuantity != 70 {
		t.Errorf("available after rejected deduct: got %v, want 70", got.AvailableQuantity)
	}

	// Exactly what remains is allowed.
	if err := store.Deduct(ctx, created.ID, 70); err != nil {
		t.Fatalf("exact deduct failed: %v", err)
	}

	// Zero and negative quantities are no-ops.
	if err := store.Deduct(ctx, created.ID, 0); err != nil {
		t.Errorf("zero deduct: got %v, want nil", err)
	}
	if err := store.Deduct(ctx, created.ID, -5); err != nil {
		t.Errorf("negative deduct: got %v, want nil", err)
	}
}
