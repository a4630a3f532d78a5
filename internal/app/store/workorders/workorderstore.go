// internal/app/store/workorders/workorderstore.go
package workorderstore

import (
	"context"
	"time"

	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store accesses the manufacturing-order aggregate's work-order lines. The
// planning workflow owns the status/planning_id pair on these documents;
// every write here is paired with the corresponding planning write inside
// the same transaction.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("work_orders")}
}

// GetByID loads a work order by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&wo); err != nil {
		return nil, err
	}
	return &wo, nil
}

// FindByWorkOrderID loads a work order by its human "WO-…" key.
func (s *Store) FindByWorkOrderID(ctx context.Context, workOrderID string) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	if err := s.c.FindOne(ctx, bson.M{"work_order_id": workOrderID}).Decode(&wo); err != nil {
		return nil, err
	}
	return &wo, nil
}

// SetStatus updates the work order's status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPlanningID sets or clears the work order's planning reference. Pass nil
// to clear.
func (s *Store) SetPlanningID(ctx context.Context, id primitive.ObjectID, planningID *primitive.ObjectID) error {
	now := time.Now().UTC()

	update := bson.M{"$set": bson.M{"updated_at": now}}
	if planningID == nil {
		update["$unset"] = bson.M{"planning_id": ""}
	} else {
		update["$set"].(bson.M)["planning_id"] = *planningID
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Create inserts a work order line. Used by fixtures and by the
// manufacturing-order intake that feeds this service.
func (s *Store) Create(ctx context.Context, wo models.WorkOrder) (models.WorkOrder, error) {
	now := time.Now().UTC()

	wo.ID = primitive.NewObjectID()
	if wo.Status == "" {
		wo.Status = models.WorkOrderStatusPending
	}
	wo.CreatedAt = now
	wo.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, wo); err != nil {
		return models.WorkOrder{}, err
	}
	return wo, nil
}
