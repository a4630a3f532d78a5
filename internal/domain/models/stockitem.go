// internal/domain/models/stockitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockItem is a producible product: its bill of materials drives the
// requirement calculator and its routing operations seed machine assignments.
type StockItem struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	BillOfMaterials []BOMLine          `bson:"bill_of_materials" json:"bill_of_materials"`
	Operations      []RoutingOperation `bson:"operations" json:"operations"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// BOMLine is one bill-of-materials line: the quantity of a raw item consumed
// per unit produced.
type BOMLine struct {
	RawItemID  primitive.ObjectID `bson:"raw_item_id" json:"raw_item_id"`
	QtyPerUnit float64            `bson:"qty_per_unit" json:"qty_per_unit"`
	UnitCost   float64            `bson:"unit_cost" json:"unit_cost"`
}

// RoutingOperation is one manufacturing step of a stock item.
type RoutingOperation struct {
	Name           string  `bson:"name" json:"name"`
	Sequence       int     `bson:"sequence" json:"sequence"`
	MachineType    string  `bson:"machine_type,omitempty" json:"machine_type,omitempty"`
	EstimatedHours float64 `bson:"estimated_hours,omitempty" json:"estimated_hours,omitempty"`
}
