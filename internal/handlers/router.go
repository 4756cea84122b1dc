package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the application routes. CORS is layered on top by the
// caller so test servers can skip it.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Authentication
	api.HandleFunc("/register", h.Register).Methods("POST")
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/logout", h.Logout).Methods("POST")
	api.HandleFunc("/users/check", h.CheckUsername).Methods("GET")

	// Events
	api.HandleFunc("/events", h.ListEvents).Methods("GET")
	api.HandleFunc("/events", h.AuthRequired(h.EventActions)).Methods("POST")
	api.HandleFunc("/events", h.AuthRequired(h.DeleteEvent)).Methods("DELETE")
	api.HandleFunc("/events/{id:[0-9]+}", h.GetEvent).Methods("GET")
	api.HandleFunc("/event-types", h.ListEventTypes).Methods("GET")

	// Dashboard
	api.HandleFunc("/dashboard/events", h.AuthRequired(h.MyEvents)).Methods("GET")
	api.HandleFunc("/dashboard/attending", h.AuthRequired(h.AttendingEvents)).Methods("GET")

	r.Use(h.LoggingMiddleware)
	r.Use(h.RecoveryMiddleware)

	return r
}
