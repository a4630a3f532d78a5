// internal/app/store/audit/auditstore.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Event categories.
const (
	CategoryTracking = "tracking"
	CategoryPlanning = "planning"
	CategoryAdmin    = "admin"
)

// Event is one audit record: who did what, to which entity, and whether it
// succeeded. CorrelationID ties together the events of one request.
type Event struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	Category      string              `bson:"category"`
	EventType     string              `bson:"event_type"`          // e.g. "sign_in", "planning_approved"
	ActorID       *primitive.ObjectID `bson:"actor_id,omitempty"`
	ActorName     string              `bson:"actor_name,omitempty"`
	EntityID      *primitive.ObjectID `bson:"entity_id,omitempty"` // machine, planning, work order
	Success       bool                `bson:"success"`
	FailureReason string              `bson:"failure_reason,omitempty"`
	Details       map[string]string   `bson:"details,omitempty"`
	CorrelationID string              `bson:"correlation_id,omitempty"`
	IP            string              `bson:"ip,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Insert writes one event. Failures are the caller's to log; audit writes
// never block the business operation.
func (s *Store) Insert(ctx context.Context, e Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}
