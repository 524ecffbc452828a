package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Task Store
	r.HandleFunc("/api/task", deps.TaskHandler.ListTasks).Methods("GET")
	r.HandleFunc("/api/task", deps.TaskHandler.CreateTask).Methods("POST")
	r.HandleFunc("/api/task/{taskId}", deps.TaskHandler.UpdateTask).Methods("PUT")
	r.HandleFunc("/api/task/{taskId}", deps.TaskHandler.DeleteTask).Methods("DELETE")

	// Tag Store
	r.HandleFunc("/api/tag", deps.TagHandler.ListTags).Methods("GET")
	r.HandleFunc("/api/tag", deps.TagHandler.CreateTag).Methods("POST")
	r.HandleFunc("/api/tag/{tagId}", deps.TagHandler.UpdateTag).Methods("PUT")
	r.HandleFunc("/api/tag/{tagId}", deps.TagHandler.DeleteTag).Methods("DELETE")
}

// NewRouter builds a router with middleware and all routes registered.
func NewRouter(deps *Dependencies) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)
	return r
}
