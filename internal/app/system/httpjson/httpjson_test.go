package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "scan processed", map[string]any{"action": "sign_in"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("success should be true")
	}
	if body["message"] != "scan processed" {
		t.Errorf("message = %v", body["message"])
	}
	if body["action"] != "sign_in" {
		t.Errorf("payload field action = %v", body["action"])
	}
}

func TestFailStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", apperr.Invalid("bad timestamp"), http.StatusBadRequest},
		{"precondition", apperr.Precondition("no operator signed in"), http.StatusBadRequest},
		{"conflict", apperr.Conflictf("duplicate session"), http.StatusBadRequest},
		{"not found", apperr.NotFoundf("machine not found"), http.StatusNotFound},
		{"store failure", apperr.Store(errors.New("io timeout")), http.StatusInternalServerError},
		{"plain error", errors.New("io timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, zap.NewNop(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["success"] != false {
				t.Error("success should be false")
			}
		})
	}
}

func TestFailDoesNotLeakStoreDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, zap.NewNop(), apperr.Store(errors.New("dial tcp 10.0.0.4:27017: i/o timeout")))

	if strings.Contains(rec.Body.String(), "10.0.0.4") {
		t.Error("response leaked store failure detail")
	}
}

func TestDecode(t *testing.T) {
	var dst struct {
		ScanID string `json:"scanId"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"scanId":"WO-1"}`))
	if err := Decode(req, &dst); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if dst.ScanID != "WO-1" {
		t.Errorf("ScanID = %q", dst.ScanID)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{bad json`))
	if err := Decode(req, &dst); err == nil {
		t.Fatal("Decode() should fail on malformed JSON")
	} else if apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("kind = %v, want InvalidInput", apperr.KindOf(err))
	}
}
