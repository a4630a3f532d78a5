// internal/app/features/tracking/routes.go
package tracking

import "github.com/go-chi/chi/v5"

// Routes returns the router for production tracking endpoints. Token
// enforcement is applied by the caller so scan terminals and status
// dashboards share one auth policy.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/scan", h.HandleScan)
	r.Get("/status/today", h.HandleStatusToday)
	r.Get("/status/{date}", h.HandleStatusByDate)

	return r
}
