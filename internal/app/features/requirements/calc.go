// internal/app/features/requirements/calc.go
package requirements

import (
	"github.com/floorhq/floorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Line is one requirement preview row: what a build of the requested
// quantity would consume from one raw item, against current availability.
type Line struct {
	RawItemID         primitive.ObjectID `json:"raw_item_id"`
	RawItemName       string             `json:"raw_item_name"`
	Unit              string             `json:"unit,omitempty"`
	RequiredQuantity  float64            `json:"required_quantity"`
	AvailableQuantity float64            `json:"available_quantity"`
	AssignedQuantity  float64            `json:"assigned_quantity"`
	DeficitQuantity   float64            `json:"deficit_quantity"`
	UnitCost          float64            `json:"unit_cost"`
	Status            string             `json:"status"`
}

// Calculate expands a bill of materials for a build quantity against the
// given raw-item snapshot. Pure: availability is whatever the caller read,
// and nothing is reserved.
//
// Per line: required = qty_per_unit * quantity, assigned =
// min(required, available), deficit = required - assigned. Status is
// "unavailable" when the item has no stock at all, "partially_assigned"
// when some but not all of the requirement can be covered, and "assigned"
// otherwise.
func Calculate(bom []models.BOMLine, quantity float64, items map[primitive.ObjectID]models.RawItem) []Line {
	lines := make([]Line, 0, len(bom))
	for _, b := range bom {
		line := Line{
			RawItemID:        b.RawItemID,
			RequiredQuantity: b.QtyPerUnit * quantity,
			UnitCost:         b.UnitCost,
		}
		item, ok := items[b.RawItemID]
		if ok {
			line.RawItemName = item.Name
			line.Unit = item.Unit
			line.AvailableQuantity = item.AvailableQuantity
			if item.UnitCost > 0 {
				// The registry's current cost wins over the BOM snapshot.
				line.UnitCost = item.UnitCost
			}
		}

		if line.AvailableQuantity >= line.RequiredQuantity {
			line.AssignedQuantity = line.RequiredQuantity
		} else if line.AvailableQuantity > 0 {
			line.AssignedQuantity = line.AvailableQuantity
		}
		line.DeficitQuantity = line.RequiredQuantity - line.AssignedQuantity

		switch {
		case line.AvailableQuantity == 0:
			line.Status = models.AssignmentStatusUnavailable
		case line.DeficitQuantity > 0:
			line.Status = models.AssignmentStatusPartiallyAssigned
		default:
			line.Status = models.AssignmentStatusAssigned
		}
		lines = append(lines, line)
	}
	return lines
}
