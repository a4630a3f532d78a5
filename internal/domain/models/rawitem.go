// internal/domain/models/rawitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RawItem is one raw-material inventory line. AvailableQuantity is the only
// field the planning workflow mutates, and only through the booking deduction
// at approval time.
type RawItem struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	NameCI            string             `bson:"name_ci" json:"-"`
	Unit              string             `bson:"unit" json:"unit"` // e.g. "kg", "pcs", "m"
	AvailableQuantity float64            `bson:"available_quantity" json:"available_quantity"`
	UnitCost          float64            `bson:"unit_cost" json:"unit_cost"`
	Status            string             `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
