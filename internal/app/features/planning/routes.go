// internal/app/features/planning/routes.go
package planning

import "github.com/go-chi/chi/v5"

// Routes returns the router for the planning workflow.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleView)
	r.Post("/{id}/approve", h.HandleApprove)
	r.Put("/{id}/raw-materials", h.HandleSetRawMaterials)
	r.Put("/{id}/machines", h.HandleSetMachines)
	r.Put("/{id}/timeline", h.HandleSetTimeline)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
