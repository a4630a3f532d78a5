// internal/domain/models/machine.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Machine is one registered shop-floor machine. The tracking and planning
// subsystems treat this registry as a read-only lookup.
type Machine struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code   string             `bson:"code" json:"code"`     // short floor label, e.g. "VMC-02"
	CodeCI string             `bson:"code_ci" json:"-"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	Type   string             `bson:"type" json:"type"`     // e.g. "milling", "turning", "grinding"
	Status string             `bson:"status" json:"status"` // "active" or "disabled"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsActive reports whether the machine may accept scans.
func (m *Machine) IsActive() bool {
	return m.Status == "active"
}
