// internal/app/features/registry/routes.go
package registry

import "github.com/go-chi/chi/v5"

// MachineRoutes returns the router mounted at /machines.
func MachineRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreateMachine)
	r.Get("/", h.HandleListMachines)
	r.Get("/{id}", h.HandleGetMachine)
	return r
}

// RawItemRoutes returns the router mounted at /raw-items.
func RawItemRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreateRawItem)
	r.Get("/", h.HandleListRawItems)
	r.Get("/{id}", h.HandleGetRawItem)
	return r
}

// StockItemRoutes returns the router mounted at /stock-items.
func StockItemRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreateStockItem)
	r.Get("/{id}", h.HandleGetStockItem)
	return r
}
