// internal/domain/models/planning.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Planning status values. Status is a derived narrative label; the
// authoritative gates live in Progress.
const (
	PlanningStatusDraft               = "draft"
	PlanningStatusRawMaterialAssigned = "raw_material_assigned"
	PlanningStatusMachineAssigned     = "machine_assigned"
	PlanningStatusApproved            = "approved"
)

// Raw-material assignment status values, shared with the requirement
// calculator.
const (
	AssignmentStatusAssigned          = "assigned"
	AssignmentStatusPartiallyAssigned = "partially_assigned"
	AssignmentStatusUnavailable       = "unavailable"
)

// Work-order status values written back by the planning workflow.
const (
	WorkOrderStatusPending    = "pending"
	WorkOrderStatusScheduled  = "scheduled"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
)

// PlanningRecord is the staged assignment plan (materials, machines,
// timeline) for one work order. Unique on WorkOrderID.
//
// Raw-material and machine assignments are mutable field-by-field until the
// approved gate completes; after that they are locked. The record may only be
// deleted while Status is draft.
type PlanningRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkOrderID primitive.ObjectID `bson:"work_order_id" json:"work_order_id"`
	Status      string             `bson:"status" json:"status"`

	Progress PlanningProgress `bson:"progress" json:"progress"`

	RawMaterialAssignments []RawMaterialAssignment `bson:"raw_material_assignments" json:"raw_material_assignments"`
	MachineAssignments     []MachineAssignment     `bson:"machine_assignments" json:"machine_assignments"`
	Timeline               PlanningTimeline        `bson:"timeline" json:"timeline"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	CreatedByID   *primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedByName string              `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updated_by_id,omitempty"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}

// PlanningProgress holds the four independently-settable completion gates.
type PlanningProgress struct {
	RawMaterialAssignment ProgressMark `bson:"raw_material_assignment" json:"raw_material_assignment"`
	MachineAssignment     ProgressMark `bson:"machine_assignment" json:"machine_assignment"`
	TimelineSet           ProgressMark `bson:"timeline_set" json:"timeline_set"`
	Approved              ProgressMark `bson:"approved" json:"approved"`
}

// ProgressMark records one completion gate.
type ProgressMark struct {
	Completed     bool                `bson:"completed" json:"completed"`
	CompletedAt   *time.Time          `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CompletedByID *primitive.ObjectID `bson:"completed_by_id,omitempty" json:"completed_by_id,omitempty"`
	CompletedBy   string              `bson:"completed_by,omitempty" json:"completed_by,omitempty"`
}

// RawMaterialAssignment is one line of the plan's material commitment.
// AssignedQuantity is what approval will deduct from the raw item's
// availability.
type RawMaterialAssignment struct {
	RawItemID        primitive.ObjectID `bson:"raw_item_id" json:"raw_item_id"`
	RawItemName      string             `bson:"raw_item_name,omitempty" json:"raw_item_name,omitempty"`
	AssignedQuantity float64            `bson:"assigned_quantity" json:"assigned_quantity"`
	DeficitQuantity  float64            `bson:"deficit_quantity,omitempty" json:"deficit_quantity,omitempty"`
	UnitCost         float64            `bson:"unit_cost" json:"unit_cost"`
	Status           string             `bson:"status" json:"status"`
}

// MachineAssignment binds one routing operation to a machine.
type MachineAssignment struct {
	Operation      string             `bson:"operation" json:"operation"`
	MachineID      primitive.ObjectID `bson:"machine_id" json:"machine_id"`
	MachineName    string             `bson:"machine_name,omitempty" json:"machine_name,omitempty"`
	EstimatedHours float64            `bson:"estimated_hours,omitempty" json:"estimated_hours,omitempty"`
}

// PlanningTimeline is the scheduled execution window.
type PlanningTimeline struct {
	StartDate           *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate             *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`
	TotalEstimatedHours float64    `bson:"total_estimated_hours" json:"total_estimated_hours"`
	Remarks             string     `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// IsApproved reports whether the record has passed the approval gate and is
// therefore locked against material/machine edits.
func (p *PlanningRecord) IsApproved() bool {
	return p.Progress.Approved.Completed
}

// ReadyForApproval reports whether all three pre-approval gates are complete.
func (p *PlanningRecord) ReadyForApproval() bool {
	return p.Progress.RawMaterialAssignment.Completed &&
		p.Progress.MachineAssignment.Completed &&
		p.Progress.TimelineSet.Completed
}

// DeriveStatus recomputes the narrative status label from the gates.
func (p *PlanningRecord) DeriveStatus() string {
	switch {
	case p.Progress.Approved.Completed:
		return PlanningStatusApproved
	case p.Progress.MachineAssignment.Completed:
		return PlanningStatusMachineAssigned
	case p.Progress.RawMaterialAssignment.Completed:
		return PlanningStatusRawMaterialAssigned
	default:
		return PlanningStatusDraft
	}
}
