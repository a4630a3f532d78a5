// internal/app/store/stockitems/stockitemstore.go
package stockitemstore

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
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateName = errors.New("a stock item with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("stock_items")}
}

// GetByID loads a stock item (with its bill of materials and routing).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StockItem, error) {
	var si models.StockItem
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&si); err != nil {
		return nil, err
	}
	return &si, nil
}

// Create inserts a new stock item, setting the CI name and timestamps.
func (s *Store) Create(ctx context.Context, si models.StockItem) (models.StockItem, error) {
	now := time.Now().UTC()

	si.ID = primitive.NewObjectID()
	si.NameCI = text.Fold(si.Name)
	si.CreatedAt = now
	si.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, si); err != nil {
		if wafflemongo.IsDup(err) {
			return models.StockItem{}, ErrDuplicateName
		}
		return models.StockItem{}, err
	}
	return si, nil
}
