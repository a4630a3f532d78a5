// internal/testutil/http.go
package testutil

import (
	"net/http"

	"github.com/floorhq/floorhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannerActor returns an actor with the planner role for handler tests.
func PlannerActor() auth.Actor {
	return auth.Actor{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test Planner",
		Role: "planner",
	}
}

// AdminActor returns an actor with the admin role for handler tests.
func AdminActor() auth.Actor {
	return auth.Actor{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test Admin",
		Role: "admin",
	}
}

// AsActor attaches the actor to the request context, the way the token
// middleware would after verifying a bearer token.
func AsActor(r *http.Request, a auth.Actor) *http.Request {
	return auth.WithTestActor(r, a)
}
