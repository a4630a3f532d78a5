// internal/domain/models/operator.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operator mirrors the employee directory entry for a shop-floor operator.
// The tracking subsystem resolves scan tokens against this collection but
// never writes to it.
type Operator struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	LastName   string             `bson:"last_name" json:"last_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	Status     string             `bson:"status" json:"status"` // "active" or "disabled"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// FullName joins the name parts for display.
func (o *Operator) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// IsActive reports whether the operator may sign in to machines.
func (o *Operator) IsActive() bool {
	return o.Status == "active"
}
