// internal/app/store/rawitems/rawitemstore.go
package rawitemstore

import (
	"context"
	"errors"
	"time"

	"github.com/floorhq/floorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateName = errors.New("a raw item with this name already exists")

	// ErrInsufficientStock is returned by Deduct when the conditional
	// update matches nothing: the item is missing or its availability is
	// below the requested quantity. Inside txn.Run this aborts the whole
	// booking.
	ErrInsufficientStock = errors.New("insufficient raw material stock")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("raw_items")}
}

// GetByID loads a raw item by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RawItem, error) {
	var ri models.RawItem
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ri); err != nil {
		return nil, err
	}
	return &ri, nil
}

// GetByIDs loads several raw items at once, keyed by id.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.RawItem, error) {
	out := make(map[primitive.ObjectID]models.RawItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ri models.RawItem
		if err := cur.Decode(&ri); err != nil {
			return nil, err
		}
		out[ri.ID] = ri
	}
	return out, cur.Err()
}

// Deduct atomically removes qty from the item's availability. The filter
// requires available_quantity >= qty, so availability can never go negative;
// when the filter matches nothing, ErrInsufficientStock is returned.
func (s *Store) Deduct(ctx context.Context, id primitive.ObjectID, qty float64) error {
	if qty <= 0 {
		return nil
	}
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "available_quantity": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"available_quantity": -qty},
			"$set": bson.M{"updated_at": now},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// Create inserts a new raw item, setting the CI name and timestamps.
func (s *Store) Create(ctx context.Context, ri models.RawItem) (models.RawItem, error) {
	now := time.Now().UTC()

	ri.ID = primitive.NewObjectID()
	ri.NameCI = text.Fold(ri.Name)
	if ri.Status == "" {
		ri.Status = "active"
	}
	ri.CreatedAt = now
	ri.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, ri); err != nil {
		if wafflemongo.IsDup(err) {
			return models.RawItem{}, ErrDuplicateName
		}
		return models.RawItem{}, err
	}
	return ri, nil
}

// List returns raw items sorted by name.
func (s *Store) List(ctx context.Context) ([]models.RawItem, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RawItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
