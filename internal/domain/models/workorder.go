// internal/domain/models/workorder.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkOrder is one line item of a manufacturing order: a stock item and a
// quantity to produce. The planning workflow owns the Status/PlanningID pair;
// every write to one is paired with the corresponding write to the other.
type WorkOrder struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	WorkOrderID string              `bson:"work_order_id" json:"work_order_id"` // human key, "WO-…"
	StockItemID primitive.ObjectID  `bson:"stock_item_id" json:"stock_item_id"`
	Quantity    float64             `bson:"quantity" json:"quantity"`
	Status      string              `bson:"status" json:"status"`
	PlanningID  *primitive.ObjectID `bson:"planning_id,omitempty" json:"planning_id,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
