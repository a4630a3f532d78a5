// internal/app/store/plannings/planningstore.go
package planningstore

import (
	"context"
	"errors"
	"time"

	"github.com/floorhq/floorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store owns the plannings collection. Edits after approval are blocked at
// the filter level: every stage update matches only documents whose approved
// gate is still open, so a concurrent approval can never interleave with a
// stage edit.
type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateWorkOrder = errors.New("a planning record already exists for this work order")

	// ErrLocked is returned when a stage update targets a record whose
	// approval gate has already completed.
	ErrLocked = errors.New("planning is approved and can no longer be edited")

	// ErrNotDraft is returned when deletion targets a record that has
	// progressed beyond draft.
	ErrNotDraft = errors.New("only draft planning records can be deleted")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("plannings")}
}

// GetByID loads a planning record by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PlanningRecord, error) {
	var p models.PlanningRecord
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByWorkOrderID loads the planning record linked to a work order.
func (s *Store) GetByWorkOrderID(ctx context.Context, workOrderID primitive.ObjectID) (*models.PlanningRecord, error) {
	var p models.PlanningRecord
	if err := s.c.FindOne(ctx, bson.M{"work_order_id": workOrderID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new draft record for a work order.
func (s *Store) Create(ctx context.Context, p models.PlanningRecord) (models.PlanningRecord, error) {
	now := time.Now().UTC()

	p.ID = primitive.NewObjectID()
	p.Status = models.PlanningStatusDraft
	p.Progress = models.PlanningProgress{}
	if p.RawMaterialAssignments == nil {
		p.RawMaterialAssignments = []models.RawMaterialAssignment{}
	}
	if p.MachineAssignments == nil {
		p.MachineAssignments = []models.MachineAssignment{}
	}
	p.CreatedAt = now
	p.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PlanningRecord{}, ErrDuplicateWorkOrder
		}
		return models.PlanningRecord{}, err
	}
	return p, nil
}

// stageUpdate applies set to a record whose approval gate is still open.
// Distinguishes "missing" from "locked" so handlers can report 404 vs 400.
func (s *Store) stageUpdate(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "progress.approved.completed": false},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrLocked
	}
	return nil
}

// SetRawMaterialAssignments replaces the material lines, marks the
// raw-material gate complete, and rederives the narrative status.
func (s *Store) SetRawMaterialAssignments(ctx context.Context, id primitive.ObjectID, lines []models.RawMaterialAssignment, mark models.ProgressMark, status string) error {
	return s.stageUpdate(ctx, id, bson.M{
		"raw_material_assignments":         lines,
		"progress.raw_material_assignment": mark,
		"status":                           status,
	})
}

// SetMachineAssignments replaces the machine bindings and marks the machine
// gate complete.
func (s *Store) SetMachineAssignments(ctx context.Context, id primitive.ObjectID, lines []models.MachineAssignment, mark models.ProgressMark, status string) error {
	return s.stageUpdate(ctx, id, bson.M{
		"machine_assignments":         lines,
		"progress.machine_assignment": mark,
		"status":                      status,
	})
}

// SetTimeline replaces the execution window and marks the timeline gate
// complete.
func (s *Store) SetTimeline(ctx context.Context, id primitive.ObjectID, tl models.PlanningTimeline, mark models.ProgressMark, status string) error {
	return s.stageUpdate(ctx, id, bson.M{
		"timeline":              tl,
		"progress.timeline_set": mark,
		"status":                status,
	})
}

// MarkApproved closes the approval gate. The filter re-checks that the three
// prerequisite gates are complete and the record is not already approved, so
// approval races resolve to exactly one winner.
func (s *Store) MarkApproved(ctx context.Context, id primitive.ObjectID, mark models.ProgressMark) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id": id,
			"progress.raw_material_assignment.completed": true,
			"progress.machine_assignment.completed":      true,
			"progress.timeline_set.completed":            true,
			"progress.approved.completed":                false,
		},
		bson.M{"$set": bson.M{
			"progress.approved": mark,
			"status":            models.PlanningStatusApproved,
			"updated_at":        now,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLocked
	}
	return nil
}

// DeleteDraft removes a record only while its status is draft.
func (s *Store) DeleteDraft(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "status": models.PlanningStatusDraft})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrNotDraft
	}
	return nil
}
