// internal/app/features/registry/handler_test.go
package registry_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	registryfeature "github.com/floorhq/floorhub/internal/app/features/registry"
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"github.com/floorhq/floorhub/internal/app/system/indexes"
	"github.com/floorhq/floorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type registryEnv struct {
	h  *registryfeature.Handler
	fx *testutil.Fixtures
}

func setupRegistry(t *testing.T) registryEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// Duplicate detection rides on the unique indexes, same as production.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes: %v", err)
	}

	return registryEnv{
		h:  registryfeature.NewHandler(db, auditlog.NewNopLogger(), zap.NewNop()),
		fx: testutil.NewFixtures(t, db),
	}
}

func (e registryEnv) do(t *testing.T, method, path, body string, handler http.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = testutil.AsActor(req, testutil.AdminActor())
	for i := 0; i+1 < len(params); i += 2 {
		req = testutil.WithChiURLParam(req, params[i], params[i+1])
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateMachine(t *testing.T) {
	env := setupRegistry(t)

	rec := env.do(t, "POST", "/machines", `{"code":"VMC-20","name":"Vertical Mill 20","type":"milling","status":"active"}`, env.h.HandleCreateMachine)
	if rec.Code != http.StatusOK {
		t.Fatalf("create machine: status %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Machine struct {
			ID     string `json:"id"`
			Code   string `json:"code"`
			Status string `json:"status"`
		} `json:"machine"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Machine.Code != "VMC-20" {
		t.Errorf("code = %q, want VMC-20", body.Machine.Code)
	}

	// Codes are unique case-insensitively.
	rec = env.do(t, "POST", "/machines", `{"code":"vmc-20","name":"Another Mill"}`, env.h.HandleCreateMachine)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate code: status %d, want 400; body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/machines/"+body.Machine.ID, "", env.h.HandleGetMachine, "id", body.Machine.ID)
	if rec.Code != http.StatusOK {
		t.Errorf("get machine: status %d", rec.Code)
	}
}

func TestCreateMachineRejectsBadInput(t *testing.T) {
	env := setupRegistry(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing code", `{"name":"No Code"}`, http.StatusBadRequest},
		{"bogus status", `{"code":"VMC-21","name":"Mill","status":"sideways"}`, http.StatusBadRequest},
		{"not json", `{{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "POST", "/machines", tt.body, env.h.HandleCreateMachine)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestListMachinesFiltered(t *testing.T) {
	env := setupRegistry(t)

	rec := env.do(t, "POST", "/machines", `{"code":"VMC-30","name":"Mill 30","status":"active"}`, env.h.HandleCreateMachine)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %s", rec.Body.String())
	}
	rec = env.do(t, "POST", "/machines", `{"code":"VMC-31","name":"Mill 31","status":"disabled"}`, env.h.HandleCreateMachine)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %s", rec.Body.String())
	}

	rec = env.do(t, "GET", "/machines?status=active", "", env.h.HandleListMachines)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var body struct {
		Machines []struct {
			Code string `json:"code"`
		} `json:"machines"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body.Machines) != 1 || body.Machines[0].Code != "VMC-30" {
		t.Errorf("filtered list = %+v, want just VMC-30", body.Machines)
	}

	rec = env.do(t, "GET", "/machines?status=broken", "", env.h.HandleListMachines)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad filter: status %d, want 400", rec.Code)
	}
}

func TestGetMachineNotFound(t *testing.T) {
	env := setupRegistry(t)

	missing := primitive.NewObjectID().Hex()
	rec := env.do(t, "GET", "/machines/"+missing, "", env.h.HandleGetMachine, "id", missing)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = env.do(t, "GET", "/machines/nope", "", env.h.HandleGetMachine, "id", "nope")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", rec.Code)
	}
}

func TestCreateRawItem(t *testing.T) {
	env := setupRegistry(t)

	rec := env.do(t, "POST", "/raw-items", `{"name":"Mild Steel Bar","unit":"kg","availableQuantity":250,"unitCost":3.2}`, env.h.HandleCreateRawItem)
	if rec.Code != http.StatusOK {
		t.Fatalf("create raw item: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "POST", "/raw-items", `{"name":"mild steel bar","unit":"kg"}`, env.h.HandleCreateRawItem)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate name: status %d, want 400", rec.Code)
	}

	rec = env.do(t, "POST", "/raw-items", `{"name":"Negative Stock","availableQuantity":-1}`, env.h.HandleCreateRawItem)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative quantity: status %d, want 400", rec.Code)
	}
}

func TestCreateStockItem(t *testing.T) {
	env := setupRegistry(t)
	ctx := context.Background()

	raw := env.fx.CreateRawItem(ctx, "Spring Steel", 50)

	body := fmt.Sprintf(`{
		"name": "Leaf Spring",
		"billOfMaterials": [{"rawItemId":%q,"qtyPerUnit":1.5,"unitCost":4}],
		"operations": [{"name":"Forming","sequence":1,"machineType":"press","estimatedHours":0.5}]
	}`, raw.ID.Hex())

	rec := env.do(t, "POST", "/stock-items", body, env.h.HandleCreateStockItem)
	if rec.Code != http.StatusOK {
		t.Fatalf("create stock item: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		StockItem struct {
			ID              string `json:"id"`
			BillOfMaterials []struct {
				RawItemID string `json:"raw_item_id"`
			} `json:"bill_of_materials"`
		} `json:"stock_item"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.StockItem.BillOfMaterials) != 1 || resp.StockItem.BillOfMaterials[0].RawItemID != raw.ID.Hex() {
		t.Errorf("BOM = %+v, want one line for %s", resp.StockItem.BillOfMaterials, raw.ID.Hex())
	}

	rec = env.do(t, "GET", "/stock-items/"+resp.StockItem.ID, "", env.h.HandleGetStockItem, "id", resp.StockItem.ID)
	if rec.Code != http.StatusOK {
		t.Errorf("get stock item: status %d", rec.Code)
	}
}

func TestCreateStockItemRejectsDanglingBOM(t *testing.T) {
	env := setupRegistry(t)

	body := fmt.Sprintf(`{"name":"Ghost Part","billOfMaterials":[{"rawItemId":%q,"qtyPerUnit":1}]}`,
		primitive.NewObjectID().Hex())
	rec := env.do(t, "POST", "/stock-items", body, env.h.HandleCreateStockItem)
	if rec.Code != http.StatusNotFound {
		t.Errorf("dangling BOM line: status %d, want 404; body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "POST", "/stock-items", `{"name":"Bad Qty","billOfMaterials":[{"rawItemId":"0123456789abcdef01234567","qtyPerUnit":0}]}`, env.h.HandleCreateStockItem)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero qtyPerUnit: status %d, want 400", rec.Code)
	}
}
