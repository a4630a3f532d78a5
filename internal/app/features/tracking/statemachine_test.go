// internal/app/features/tracking/statemachine_test.go
package tracking

import (
	"testing"
	"time"

	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func emptyLedger() *models.DailyTrackingLedger {
	return &models.DailyTrackingLedger{
		ID:       primitive.NewObjectID(),
		Date:     models.LedgerDay(time.Now()),
		Machines: []models.MachineTrackingEntry{},
	}
}

func at(min int) time.Time {
	return time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC).Add(time.Duration(min) * time.Minute)
}

func TestOperatorScanSignIn(t *testing.T) {
	l := emptyLedger()
	machine := primitive.NewObjectID()
	operator := primitive.NewObjectID()

	res, err := applyOperatorScan(l, machine, operator, at(0))
	if err != nil {
		t.Fatalf("applyOperatorScan: %v", err)
	}
	if res.Action != ActionSignIn {
		t.Fatalf("action = %q, want %q", res.Action, ActionSignIn)
	}
	if len(res.AutoSignOuts) != 0 {
		t.Fatalf("unexpected auto sign-outs: %v", res.AutoSignOuts)
	}

	entry := l.Entry(machine)
	if entry == nil {
		t.Fatal("machine entry not created")
	}
	if entry.CurrentOperatorID == nil || *entry.CurrentOperatorID != operator {
		t.Fatal("current operator not set")
	}
	if len(entry.Operators) != 1 || !entry.Operators[0].IsOpen() {
		t.Fatalf("want one open session, got %+v", entry.Operators)
	}
	if !entry.Operators[0].SignInTime.Equal(at(0)) {
		t.Fatalf("sign-in time = %v, want %v", entry.Operators[0].SignInTime, at(0))
	}
}

func TestOperatorScanSignOut(t *testing.T) {
	l := emptyLedger()
	machine := primitive.NewObjectID()
	operator := primitive.NewObjectID()

	if _, err := applyOperatorScan(l, machine, operator, at(0)); err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	res, err := applyOperatorScan(l, machine, operator, at(30))
	if err != nil {
		t.Fatalf("sign-out: %v", err)
	}
	if res.Action != ActionSignOut {
		t.Fatalf("action = %q, want %q", res.Action, ActionSignOut)
	}

	entry := l.Entry(machine)
	if entry.CurrentOperatorID != nil {
		t.Fatal("current operator should be cleared after sign-out")
	}
	s := entry.Operators[0]
	if s.SignOutTime == nil || !s.SignOutTime.Equal(at(30)) {
		t.Fatalf("sign-out time = %v, want %v", s.SignOutTime, at(30))
	}

	// A further scan starts a second session; history is append-only.
	if _, err := applyOperatorScan(l, machine, operator, at(60)); err != nil {
		t.Fatalf("second sign-in: %v", err)
	}
	if got := len(l.Entry(machine).Operators); got != 2 {
		t.Fatalf("sessions = %d, want 2", got)
	}
}

func TestOperatorScanLocalTakeover(t *testing.T) {
	l := emptyLedger()
	machine := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	if _, err := applyOperatorScan(l, machine, alice, at(0)); err != nil {
		t.Fatalf("alice sign-in: %v", err)
	}
	res, err := applyOperatorScan(l, machine, bob, at(15))
	if err != nil {
		t.Fatalf("bob takeover: %v", err)
	}
	if res.Action != ActionSignInWithAutoSignOut {
		t.Fatalf("action = %q, want %q", res.Action, ActionSignInWithAutoSignOut)
	}
	if len(res.AutoSignOuts) != 1 || res.AutoSignOuts[0].OperatorID != alice || res.AutoSignOuts[0].MachineID != machine {
		t.Fatalf("auto sign-outs = %+v, want alice on machine", res.AutoSignOuts)
	}

	entry := l.Entry(machine)
	if entry.CurrentOperatorID == nil || *entry.CurrentOperatorID != bob {
		t.Fatal("bob should hold the machine")
	}
	if entry.Operators[0].SignOutTime == nil || !entry.Operators[0].SignOutTime.Equal(at(15)) {
		t.Fatal("alice's session should be closed at the takeover timestamp")
	}
	if open := entry.OpenSession(); open == nil || open.OperatorID != bob {
		t.Fatal("the only open session should belong to bob")
	}
}

func TestOperatorScanGlobalConflict(t *testing.T) {
	l := emptyLedger()
	lathe := primitive.NewObjectID()
	press := primitive.NewObjectID()
	operator := primitive.NewObjectID()

	if _, err := applyOperatorScan(l, lathe, operator, at(0)); err != nil {
		t.Fatalf("sign-in on lathe: %v", err)
	}
	res, err := applyOperatorScan(l, press, operator, at(20))
	if err != nil {
		t.Fatalf("sign-in on press: %v", err)
	}
	// Moving to another machine is a plain sign-in locally; the stale
	// session is closed and reported.
	if res.Action != ActionSignIn {
		t.Fatalf("action = %q, want %q", res.Action, ActionSignIn)
	}
	if len(res.AutoSignOuts) != 1 || res.AutoSignOuts[0].MachineID != lathe {
		t.Fatalf("auto sign-outs = %+v, want lathe session closed", res.AutoSignOuts)
	}

	if l.Entry(lathe).CurrentOperatorID != nil {
		t.Fatal("lathe should be vacant")
	}
	if got := l.Entry(press).CurrentOperatorID; got == nil || *got != operator {
		t.Fatal("operator should hold the press")
	}

	// Invariant: the operator has at most one open session across the ledger.
	open := 0
	for _, e := range l.Machines {
		for _, s := range e.Operators {
			if s.OperatorID == operator && s.IsOpen() {
				open++
			}
		}
	}
	if open != 1 {
		t.Fatalf("open sessions for operator = %d, want 1", open)
	}
}

func TestOperatorScanGlobalConflictWithTakeover(t *testing.T) {
	l := emptyLedger()
	lathe := primitive.NewObjectID()
	press := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	if _, err := applyOperatorScan(l, lathe, alice, at(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := applyOperatorScan(l, press, bob, at(5)); err != nil {
		t.Fatal(err)
	}

	// Alice scans the press: her lathe session closes and bob is displaced.
	res, err := applyOperatorScan(l, press, alice, at(10))
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionSignInWithAutoSignOut {
		t.Fatalf("action = %q, want %q", res.Action, ActionSignInWithAutoSignOut)
	}
	if len(res.AutoSignOuts) != 2 {
		t.Fatalf("auto sign-outs = %+v, want 2", res.AutoSignOuts)
	}

	if l.Entry(lathe).CurrentOperatorID != nil {
		t.Fatal("lathe should be vacant")
	}
	if got := l.Entry(press).CurrentOperatorID; got == nil || *got != alice {
		t.Fatal("alice should hold the press")
	}
}

func TestOperatorScanRejectsBackwardsTimestamp(t *testing.T) {
	l := emptyLedger()
	machine := primitive.NewObjectID()
	operator := primitive.NewObjectID()

	if _, err := applyOperatorScan(l, machine, operator, at(30)); err != nil {
		t.Fatal(err)
	}
	_, err := applyOperatorScan(l, machine, operator, at(10))
	if apperr.KindOf(err) != apperr.InvalidInput {
		t.Fatalf("err = %v, want invalid input", err)
	}
	// Nothing was mutated.
	if open := l.Entry(machine).OpenSession(); open == nil {
		t.Fatal("the original session must stay open after a rejected scan")
	}
}

func TestBarcodeScanAppendsToOpenSession(t *testing.T) {
	l := emptyLedger()
	machine := primitive.NewObjectID()
	operator := primitive.NewObjectID()

	if _, err := applyOperatorScan(l, machine, operator, at(0)); err != nil {
		t.Fatal(err)
	}
	res, err := applyBarcodeScan(l, machine, "WO-2026-0042", at(5))
	if err != nil {
		t.Fatalf("applyBarcodeScan: %v", err)
	}
	if res.Action != ActionBarcodeScan || res.BarcodeID != "WO-2026-0042" || res.OperatorID != operator {
		t.Fatalf("unexpected result %+v", res)
	}

	open := l.Entry(machine).OpenSession()
	if len(open.BarcodeScans) != 1 || open.BarcodeScans[0].BarcodeID != "WO-2026-0042" {
		t.Fatalf("scans = %+v", open.BarcodeScans)
	}
	if !open.BarcodeScans[0].TimeStamp.Equal(at(5)) {
		t.Fatalf("scan time = %v, want %v", open.BarcodeScans[0].TimeStamp, at(5))
	}
}

func TestBarcodeScanRequiresSignedInOperator(t *testing.T) {
	l := emptyLedger()
	machine := primitive.NewObjectID()

	_, err := applyBarcodeScan(l, machine, "WO-2026-0042", at(0))
	if apperr.KindOf(err) != apperr.PreconditionFailed {
		t.Fatalf("err = %v, want precondition failure", err)
	}

	// Same after a completed sign-in/sign-out cycle.
	operator := primitive.NewObjectID()
	if _, err := applyOperatorScan(l, machine, operator, at(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := applyOperatorScan(l, machine, operator, at(10)); err != nil {
		t.Fatal(err)
	}
	_, err = applyBarcodeScan(l, machine, "WO-2026-0042", at(20))
	if apperr.KindOf(err) != apperr.PreconditionFailed {
		t.Fatalf("err = %v, want precondition failure", err)
	}
}

func TestCurrentOperatorPointerStaysConsistent(t *testing.T) {
	l := emptyLedger()
	machines := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	operators := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	// A burst of scans bouncing two operators across three machines.
	seq := []struct {
		m, o int
	}{
		{0, 0}, {1, 1}, {1, 0}, {2, 1}, {0, 0}, {2, 1}, {0, 1},
	}
	for i, step := range seq {
		if _, err := applyOperatorScan(l, machines[step.m], operators[step.o], at(i*5)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	for _, e := range l.Machines {
		open := 0
		for _, s := range e.Operators {
			if s.IsOpen() {
				open++
				if e.CurrentOperatorID == nil || *e.CurrentOperatorID != s.OperatorID {
					t.Fatalf("machine %s: open session for %s but pointer %v", e.MachineID.Hex(), s.OperatorID.Hex(), e.CurrentOperatorID)
				}
			}
			if s.SignOutTime != nil && s.SignOutTime.Before(s.SignInTime) {
				t.Fatalf("machine %s: session signed out before sign-in", e.MachineID.Hex())
			}
		}
		if open > 1 {
			t.Fatalf("machine %s: %d open sessions", e.MachineID.Hex(), open)
		}
		if open == 0 && e.CurrentOperatorID != nil {
			t.Fatalf("machine %s: pointer set with no open session", e.MachineID.Hex())
		}
	}
}
