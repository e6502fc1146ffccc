package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/rest"
)

type HealthDTO struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.GetCategory).Methods("GET")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.UpdateCategory).Methods("PATCH")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.UpdateExpense).Methods("PATCH")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetDashboard).Methods("GET")

	// Activity
	r.HandleFunc("/api/activity", deps.ActivityLog.ListActivity).Methods("GET")

	// Preflight requests, answered by the CORS middleware
	r.PathPrefix("/api/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	r.HandleFunc("/api/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.Ping(req.Context()); err != nil {
				rest.WriteError(w, apperr.Unavailable("database ping", err))
				return
			}
		}
		rest.WriteJSON(w, http.StatusOK, HealthDTO{Status: "ok", Backend: deps.Backend})
	}).Methods("GET")
}
