// internal/app/store/operators/operatorstore.go
package operatorstore

import (
	"context"

	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store reads the employee-directory mirror. The tracking subsystem only
// ever reads operators; lifecycle management lives in the HR service.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("operators")}
}

// GetByID loads an operator regardless of status.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error) {
	var o models.Operator
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetActiveByID loads an operator that exists and is active. Returns
// mongo.ErrNoDocuments for missing or disabled operators, so callers treat
// both the same way.
func (s *Store) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error) {
	var o models.Operator
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "status": "active"}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByIDs loads several operators at once, keyed by id.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Operator, error) {
	out := make(map[primitive.ObjectID]models.Operator, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var o models.Operator
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out[o.ID] = o
	}
	return out, cur.Err()
}
