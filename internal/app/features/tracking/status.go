// internal/app/features/tracking/status.go
package tracking

import (
	"context"
	"net/http"
	"time"

	ledgerstore "github.com/floorhq/floorhub/internal/app/store/ledgers"
	machinestore "github.com/floorhq/floorhub/internal/app/store/machines"
	operatorstore "github.com/floorhq/floorhub/internal/app/store/operators"
	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/app/system/httpjson"
	"github.com/floorhq/floorhub/internal/app/system/timeouts"
	"github.com/floorhq/floorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleStatusToday serves GET /tracking/status/today.
func (h *Handler) HandleStatusToday(w http.ResponseWriter, r *http.Request) {
	h.serveStatus(w, r, time.Now().UTC())
}

// HandleStatusByDate serves GET /tracking/status/{date} where date is
// YYYY-MM-DD.
func (h *Handler) HandleStatusByDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Invalid("date must be YYYY-MM-DD"))
		return
	}
	h.serveStatus(w, r, day)
}

func (h *Handler) serveStatus(w http.ResponseWriter, r *http.Request, day time.Time) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ledger, err := ledgerstore.New(h.DB).GetByDay(ctx, day)
	if err == mongo.ErrNoDocuments {
		// A day with no scans is an empty status, not an error.
		httpjson.OK(w, "tracking status", map[string]any{
			"status": statusResponse{
				Date:     models.LedgerDay(day).Format("2006-01-02"),
				Machines: []machineStatus{},
			},
		})
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Store(err))
		return
	}

	resp, err := h.projectLedger(ctx, ledger)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "tracking status", map[string]any{"status": resp})
}

// projectLedger resolves machine and operator names in two batched lookups
// and flattens the ledger into the response shape.
func (h *Handler) projectLedger(ctx context.Context, ledger *models.DailyTrackingLedger) (statusResponse, error) {
	machineIDs := make([]primitive.ObjectID, 0, len(ledger.Machines))
	operatorSet := map[primitive.ObjectID]struct{}{}
	for _, e := range ledger.Machines {
		machineIDs = append(machineIDs, e.MachineID)
		for _, s := range e.Operators {
			operatorSet[s.OperatorID] = struct{}{}
		}
	}
	operatorIDs := make([]primitive.ObjectID, 0, len(operatorSet))
	for id := range operatorSet {
		operatorIDs = append(operatorIDs, id)
	}

	machineByID, err := machinestore.New(h.DB).GetByIDs(ctx, machineIDs)
	if err != nil {
		return statusResponse{}, apperr.Store(err)
	}
	operatorByID, err := operatorstore.New(h.DB).GetByIDs(ctx, operatorIDs)
	if err != nil {
		return statusResponse{}, apperr.Store(err)
	}

	resp := statusResponse{
		Date:     ledger.Date.Format("2006-01-02"),
		Machines: make([]machineStatus, 0, len(ledger.Machines)),
	}
	for _, e := range ledger.Machines {
		ms := machineStatus{
			MachineID: e.MachineID.Hex(),
			Sessions:  make([]sessionStatus, 0, len(e.Operators)),
		}
		if m, ok := machineByID[e.MachineID]; ok {
			ms.MachineCode = m.Code
			ms.MachineName = m.Name
		}
		if e.CurrentOperatorID != nil {
			ms.CurrentOperatorID = e.CurrentOperatorID.Hex()
			if op, ok := operatorByID[*e.CurrentOperatorID]; ok {
				ms.CurrentOperatorName = op.FullName()
			}
		}
		for _, s := range e.Operators {
			ss := sessionStatus{
				OperatorID:   s.OperatorID.Hex(),
				SignInTime:   s.SignInTime,
				SignOutTime:  s.SignOutTime,
				BarcodeScans: make([]scanStatus, 0, len(s.BarcodeScans)),
			}
			if op, ok := operatorByID[s.OperatorID]; ok {
				ss.OperatorName = op.FullName()
			}
			for _, b := range s.BarcodeScans {
				ss.BarcodeScans = append(ss.BarcodeScans, scanStatus{BarcodeID: b.BarcodeID, TimeStamp: b.TimeStamp})
			}
			ms.Sessions = append(ms.Sessions, ss)
		}
		resp.Machines = append(resp.Machines, ms)
	}
	return resp, nil
}
