// internal/domain/models/ledger.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyTrackingLedger is the per-day record of machine occupancy and scan
// history. Exactly one document exists per UTC calendar day; Date is set once
// when the document is created and never changes.
//
// Version is the optimistic concurrency token: every save replaces the whole
// document with a filter on {_id, version} and increments it, so two
// concurrent scans can never both apply against the same snapshot.
type DailyTrackingLedger struct {
	ID       primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Date     time.Time              `bson:"date" json:"date"` // UTC midnight
	Machines []MachineTrackingEntry `bson:"machines" json:"machines"`
	Version  int64                  `bson:"version" json:"-"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// MachineTrackingEntry holds one machine's occupancy state for the day.
//
// CurrentOperatorID is a cached pointer: it is non-nil iff exactly one
// session in Operators is open (SignOutTime == nil) and belongs to that
// operator. The sign-in/sign-out state machine is the only writer and keeps
// the two in lockstep.
type MachineTrackingEntry struct {
	MachineID         primitive.ObjectID  `bson:"machine_id" json:"machine_id"`
	CurrentOperatorID *primitive.ObjectID `bson:"current_operator_id,omitempty" json:"current_operator_id,omitempty"`

	// Operators is append-only history. Closed sessions are never deleted;
	// only the single open session is ever mutated in place.
	Operators []OperatorSession `bson:"operators" json:"operators"`
}

// OperatorSession is one continuous sign-in-to-sign-out interval of an
// operator on a machine. SignOutTime is nil while the session is open and is
// set exactly once, always >= SignInTime.
type OperatorSession struct {
	OperatorID  primitive.ObjectID `bson:"operator_id" json:"operator_id"`
	SignInTime  time.Time          `bson:"sign_in_time" json:"sign_in_time"`
	SignOutTime *time.Time         `bson:"sign_out_time,omitempty" json:"sign_out_time,omitempty"`

	// BarcodeScans may only grow while the session is open.
	BarcodeScans []BarcodeScan `bson:"barcode_scans" json:"barcode_scans"`
}

// BarcodeScan records one work-order barcode observed during a session.
type BarcodeScan struct {
	BarcodeID string    `bson:"barcode_id" json:"barcode_id"`
	TimeStamp time.Time `bson:"time_stamp" json:"time_stamp"`
}

// IsOpen reports whether the session has not been signed out yet.
func (s *OperatorSession) IsOpen() bool {
	return s.SignOutTime == nil
}

// Entry returns the tracking entry for machineID, or nil when the machine has
// not been referenced in this ledger yet.
func (l *DailyTrackingLedger) Entry(machineID primitive.ObjectID) *MachineTrackingEntry {
	for i := range l.Machines {
		if l.Machines[i].MachineID == machineID {
			return &l.Machines[i]
		}
	}
	return nil
}

// EnsureEntry returns the tracking entry for machineID, creating it when the
// machine appears in the ledger for the first time.
func (l *DailyTrackingLedger) EnsureEntry(machineID primitive.ObjectID) *MachineTrackingEntry {
	if e := l.Entry(machineID); e != nil {
		return e
	}
	l.Machines = append(l.Machines, MachineTrackingEntry{MachineID: machineID})
	return &l.Machines[len(l.Machines)-1]
}

// OpenSession returns the entry's open session, or nil when nobody is signed
// in. At most one open session exists per machine.
func (e *MachineTrackingEntry) OpenSession() *OperatorSession {
	for i := range e.Operators {
		if e.Operators[i].IsOpen() {
			return &e.Operators[i]
		}
	}
	return nil
}

// LedgerDay truncates t to UTC midnight, the unique key for a ledger.
func LedgerDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
