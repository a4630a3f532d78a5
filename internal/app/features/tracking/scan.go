// internal/app/features/tracking/scan.go
package tracking

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/floorhq/floorhub/internal/app/store/audit"
	ledgerstore "github.com/floorhq/floorhub/internal/app/store/ledgers"
	machinestore "github.com/floorhq/floorhub/internal/app/store/machines"
	operatorstore "github.com/floorhq/floorhub/internal/app/store/operators"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/scantoken"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleScan processes POST /tracking/scan. The token is classified before
// any lookup; preconditions are checked before any write; the ledger
// mutation is one load-apply-save cycle retried on version conflict.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	scanID := strings.TrimSpace(req.ScanID)
	kind := scantoken.Classify(scanID)
	if kind == scantoken.Invalid {
		httpjson.Fail(w, h.Log, apperr.Invalid("scan token is neither a work-order barcode nor an operator id"))
		return
	}

	machineID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.MachineID))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Invalid("machineId must be a 24-hex id"))
		return
	}

	ts, err := parseTimestamp(req.TimeStamp)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Machine must resolve before anything is written.
	machine, err := machinestore.New(h.DB).GetByID(ctx, machineID)
	if err == mongo.ErrNoDocuments {
		httpjson.Fail(w, h.Log, apperr.NotFoundf("machine not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	var result ScanResult
	switch kind {
	case scantoken.Barcode:
		result, err = h.processScan(ctx, machineID, ts, func(l *models.DailyTrackingLedger) (ScanResult, error) {
			return applyBarcodeScan(l, machineID, scanID, ts)
		})
	case scantoken.OperatorID:
		operatorID, idErr := primitive.ObjectIDFromHex(scanID)
		if idErr != nil {
			httpjson.Fail(w, h.Log, apperr.Invalid("operator id is malformed"))
			return
		}
		_, opErr := operatorstore.New(h.DB).GetActiveByID(ctx, operatorID)
		if opErr == mongo.ErrNoDocuments {
			httpjson.Fail(w, h.Log, apperr.NotFoundf("operator not found or not active"))
			return
		}
		if opErr != nil {
			httpjson.Fail(w, h.Log, apperr.Store(opErr))
			return
		}
		result, err = h.processScan(ctx, machineID, ts, func(l *models.DailyTrackingLedger) (ScanResult, error) {
			return applyOperatorScan(l, machineID, operatorID, ts)
		})
	}
	if err != nil {
		h.auditScan(ctx, r, machine.ID, result, err)
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.auditScan(ctx, r, machine.ID, result, nil)

	fields := map[string]any{
		"action":     result.Action,
		"machine_id": result.MachineID.Hex(),
	}
	if !result.OperatorID.IsZero() {
		fields["operator_id"] = result.OperatorID.Hex()
	}
	if result.BarcodeID != "" {
		fields["barcode_id"] = result.BarcodeID
	}
	if len(result.AutoSignOuts) > 0 {
		autos := make([]map[string]string, 0, len(result.AutoSignOuts))
		for _, a := range result.AutoSignOuts {
			autos = append(autos, map[string]string{
				"machine_id":  a.MachineID.Hex(),
				"operator_id": a.OperatorID.Hex(),
			})
		}
		fields["auto_sign_outs"] = autos
	}
	httpjson.OK(w, "scan processed", fields)
}

// processScan runs one load-apply-save cycle against the day's ledger,
// retrying a bounded number of times when a concurrent scan won the version
// race.
func (h *Handler) processScan(ctx context.Context, machineID primitive.ObjectID, ts time.Time, apply func(*models.DailyTrackingLedger) (ScanResult, error)) (ScanResult, error) {
	store := ledgerstore.New(h.DB)

	attempts := h.SaveAttempts
	if attempts <= 0 {
		attempts = DefaultSaveAttempts
	}

	for attempt := 1; ; attempt++ {
		ledger, err := store.LoadOrCreate(ctx, ts)
		if err != nil {
			return ScanResult{}, apperr.Store(err)
		}

		result, err := apply(ledger)
		if err != nil {
			return ScanResult{}, err
		}

		err = store.Save(ctx, ledger)
		if err == nil {
			return result, nil
		}
		if err != ledgerstore.ErrVersionConflict {
			return ScanResult{}, apperr.Store(err)
		}
		if attempt >= attempts {
			h.Log.Warn("ledger version conflict persisted past retry budget",
				zap.String("machine_id", machineID.Hex()),
				zap.Int("attempts", attempts))
			return ScanResult{}, apperr.Conflictf("the machine's tracking record is being updated concurrently; retry the scan")
		}
	}
}

func (h *Handler) auditScan(ctx context.Context, r *http.Request, machineID primitive.ObjectID, result ScanResult, scanErr error) {
	event := audit.Event{
		Category:      audit.CategoryTracking,
		EventType:     result.Action,
		EntityID:      &machineID,
		Success:       scanErr == nil,
		CorrelationID: auditlog.NewCorrelationID(),
		IP:            auditlog.ClientIP(r),
	}
	if event.EventType == "" {
		event.EventType = "scan_rejected"
	}
	if scanErr != nil {
		event.FailureReason = apperr.MessageOf(scanErr)
	}
	if !result.OperatorID.IsZero() {
		op := result.OperatorID
		event.ActorID = &op
	}
	if result.BarcodeID != "" {
		event.Details = map[string]string{"barcode_id": result.BarcodeID}
	}
	h.Audit.Log(ctx, event)
}

// parseTimestamp accepts RFC3339 timestamps; an empty value is rejected so a
// scan can never be recorded at a fabricated "now" the device did not send.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperr.Invalid("timeStamp is required")
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperr.Invalid("timeStamp must be a valid RFC3339 instant")
	}
	return ts.UTC(), nil
}
