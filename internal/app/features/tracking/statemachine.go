// internal/app/features/tracking/statemachine.go
package tracking

import (
	"time"

	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actions reported to the caller.
const (
	ActionBarcodeScan           = "barcode_scan"
	ActionSignIn                = "sign_in"
	ActionSignOut               = "sign_out"
	ActionSignInWithAutoSignOut = "sign_in_with_auto_signout"
)

// AutoSignOut describes one session the state machine force-closed to keep
// the occupancy invariants.
type AutoSignOut struct {
	MachineID  primitive.ObjectID `json:"machine_id"`
	OperatorID primitive.ObjectID `json:"operator_id"`
}

// ScanResult is the outcome of applying one scan to the ledger.
type ScanResult struct {
	Action       string             `json:"action"`
	MachineID    primitive.ObjectID `json:"machine_id"`
	OperatorID   primitive.ObjectID `json:"operator_id,omitempty"`
	BarcodeID    string             `json:"barcode_id,omitempty"`
	AutoSignOuts []AutoSignOut      `json:"auto_sign_outs,omitempty"`
}

// applyOperatorScan runs the sign-in/sign-out state machine for one operator
// badge scan against the in-memory ledger. The ledger is mutated in place;
// on error nothing is mutated and the caller must not save.
//
// The global pass always runs before the local one: any open session the
// operator holds on another machine is force-closed first, so the local
// branch can never see this operator current on the target machine while a
// stale session survives elsewhere.
func applyOperatorScan(l *models.DailyTrackingLedger, machineID, operatorID primitive.ObjectID, ts time.Time) (ScanResult, error) {
	res := ScanResult{MachineID: machineID, OperatorID: operatorID}

	// Validate before mutating: every session this scan would close must
	// keep sign_out_time >= sign_in_time.
	for i := range l.Machines {
		e := &l.Machines[i]
		closing := false
		switch {
		case e.MachineID != machineID && e.CurrentOperatorID != nil && *e.CurrentOperatorID == operatorID:
			closing = true // global conflict
		case e.MachineID == machineID && e.CurrentOperatorID != nil:
			closing = true // local sign-out or takeover
		}
		if closing {
			if open := e.OpenSession(); open != nil && ts.Before(open.SignInTime) {
				return ScanResult{}, apperr.Invalid("timestamp precedes the session's sign-in time")
			}
		}
	}

	entry := l.EnsureEntry(machineID)

	// A machine with no current operator must not carry an unclosed session
	// for this operator from an earlier anomaly.
	if entry.CurrentOperatorID == nil {
		for i := range entry.Operators {
			s := &entry.Operators[i]
			if s.OperatorID == operatorID && s.IsOpen() {
				return ScanResult{}, apperr.Conflictf("operator already has an unclosed session on this machine")
			}
		}
	}

	// Global pass: close this operator's open session on every other machine.
	for i := range l.Machines {
		e := &l.Machines[i]
		if e.MachineID == machineID {
			continue
		}
		if e.CurrentOperatorID != nil && *e.CurrentOperatorID == operatorID {
			closeOpenSession(e, ts)
			res.AutoSignOuts = append(res.AutoSignOuts, AutoSignOut{MachineID: e.MachineID, OperatorID: operatorID})
		}
	}

	// Local pass against the target machine.
	switch {
	case entry.CurrentOperatorID == nil:
		openSession(entry, operatorID, ts)
		res.Action = ActionSignIn

	case *entry.CurrentOperatorID == operatorID:
		closeOpenSession(entry, ts)
		res.Action = ActionSignOut

	default:
		displaced := *entry.CurrentOperatorID
		closeOpenSession(entry, ts)
		res.AutoSignOuts = append(res.AutoSignOuts, AutoSignOut{MachineID: machineID, OperatorID: displaced})
		openSession(entry, operatorID, ts)
		res.Action = ActionSignInWithAutoSignOut
	}

	return res, nil
}

// applyBarcodeScan attaches a work-order barcode to the open session of the
// target machine's current operator. An observation, not a state transition.
func applyBarcodeScan(l *models.DailyTrackingLedger, machineID primitive.ObjectID, barcodeID string, ts time.Time) (ScanResult, error) {
	entry := l.Entry(machineID)
	if entry == nil || entry.CurrentOperatorID == nil {
		return ScanResult{}, apperr.Precondition("no operator is signed in on this machine")
	}

	open := entry.OpenSession()
	if open == nil || open.OperatorID != *entry.CurrentOperatorID {
		// Cached pointer out of step with the session history.
		return ScanResult{}, apperr.Conflictf("machine tracking state is inconsistent")
	}

	open.BarcodeScans = append(open.BarcodeScans, models.BarcodeScan{BarcodeID: barcodeID, TimeStamp: ts})

	return ScanResult{
		Action:     ActionBarcodeScan,
		MachineID:  machineID,
		OperatorID: open.OperatorID,
		BarcodeID:  barcodeID,
	}, nil
}

func openSession(e *models.MachineTrackingEntry, operatorID primitive.ObjectID, ts time.Time) {
	e.Operators = append(e.Operators, models.OperatorSession{
		OperatorID:   operatorID,
		SignInTime:   ts,
		BarcodeScans: []models.BarcodeScan{},
	})
	op := operatorID
	e.CurrentOperatorID = &op
}

func closeOpenSession(e *models.MachineTrackingEntry, ts time.Time) {
	if open := e.OpenSession(); open != nil {
		t := ts
		open.SignOutTime = &t
	}
	e.CurrentOperatorID = nil
}
