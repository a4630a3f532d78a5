// internal/app/store/machines/machinestore.go
package machinestore

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

var ErrDuplicateCode = errors.New("a machine with this code already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("machines")}
}

// GetByID loads a machine by ObjectID. Returns mongo.ErrNoDocuments when the
// machine does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Machine, error) {
	var m models.Machine
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByIDs loads several machines at once, keyed by id. Missing ids are
// simply absent from the result; the ledger projection treats those as
// decommissioned machines.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Machine, error) {
	out := make(map[primitive.ObjectID]models.Machine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var m models.Machine
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	return out, cur.Err()
}

// Create inserts a new machine, setting CI fields and timestamps.
func (s *Store) Create(ctx context.Context, m models.Machine) (models.Machine, error) {
	now := time.Now().UTC()

	m.ID = primitive.NewObjectID()
	m.CodeCI = text.Fold(m.Code)
	m.NameCI = text.Fold(m.Name)
	if m.Status == "" {
		m.Status = "active"
	}
	m.CreatedAt = now
	m.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Machine{}, ErrDuplicateCode
		}
		return models.Machine{}, err
	}
	return m, nil
}

// List returns machines sorted by code, optionally filtered by status.
func (s *Store) List(ctx context.Context, status string) ([]models.Machine, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Machine
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
