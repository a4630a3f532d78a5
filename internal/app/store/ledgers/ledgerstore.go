// internal/app/store/ledgers/ledgerstore.go
package ledgerstore

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

// Store owns the tracking_ledgers collection: one document per UTC day,
// mutated only through the sign-in/sign-out state machine. Writes use an
// optimistic version check so two concurrent scans can never both apply
// against the same snapshot; callers reload and retry on ErrVersionConflict.
type Store struct {
	c *mongo.Collection
}

// ErrVersionConflict is returned by Save when the document changed since it
// was loaded.
var ErrVersionConflict = errors.New("ledger was modified concurrently")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tracking_ledgers")}
}

// GetByDay loads the ledger for a calendar day (any time within it).
// Returns mongo.ErrNoDocuments when no activity exists for that day.
func (s *Store) GetByDay(ctx context.Context, t time.Time) (*models.DailyTrackingLedger, error) {
	var l models.DailyTrackingLedger
	if err := s.c.FindOne(ctx, bson.M{"date": models.LedgerDay(t)}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadOrCreate loads the day's ledger, inserting an empty one when the day
// has no document yet. A duplicate-key error on insert means another request
// created it first; the fresh document is loaded in that case.
func (s *Store) LoadOrCreate(ctx context.Context, t time.Time) (*models.DailyTrackingLedger, error) {
	day := models.LedgerDay(t)

	l, err := s.GetByDay(ctx, day)
	if err == nil {
		return l, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now().UTC()
	fresh := models.DailyTrackingLedger{
		ID:        primitive.NewObjectID(),
		Date:      day,
		Machines:  []models.MachineTrackingEntry{},
		Version:   0,
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, fresh); err != nil {
		if wafflemongo.IsDup(err) {
			return s.GetByDay(ctx, day)
		}
		return nil, err
	}
	return &fresh, nil
}

// Save replaces the ledger document iff its stored version still matches the
// loaded one, then bumps the version. Returns ErrVersionConflict when the
// check fails.
func (s *Store) Save(ctx context.Context, l *models.DailyTrackingLedger) error {
	loadedVersion := l.Version
	now := time.Now().UTC()

	l.Version = loadedVersion + 1
	l.UpdatedAt = &now

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": l.ID, "version": loadedVersion}, l)
	if err != nil {
		l.Version = loadedVersion
		return err
	}
	if res.MatchedCount == 0 {
		l.Version = loadedVersion
		return ErrVersionConflict
	}
	return nil
}
