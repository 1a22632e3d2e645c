package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitmate/splitmate/internal/auth"
	"github.com/splitmate/splitmate/internal/middleware"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Auth   *AuthHandler
	Group  *GroupHandler
	Ledger *LedgerHandler

	JWTManager  *auth.JWTManager
	RateLimiter *middleware.RateLimiter

	CORSAllowedOrigin string

	// MetricsMiddleware is optional; when nil no request metrics are
	// recorded.
	MetricsMiddleware func(http.Handler) http.Handler

	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter builds the full route tree.
//
// Middleware order, outermost first:
//
//	Recovery → Metrics → CORS → Logging → (auth group: RequireAuth → RateLimit)
//
// /auth/* and /healthz stay outside the authenticated group.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	if deps.MetricsMiddleware != nil {
		r.Use(deps.MetricsMiddleware)
	}
	r.Use(middleware.CORS(deps.CORSAllowedOrigin))
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.JWTManager))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware)
		}

		r.Route("/api/users/{id}", func(r chi.Router) {
			r.Get("/", deps.Auth.GetProfile)
			r.Put("/", deps.Auth.UpdateProfile)
		})

		r.Route("/api/groups", func(r chi.Router) {
			r.Post("/", deps.Group.CreateGroup)
			r.Get("/", deps.Group.ListGroups)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.Group.GetGroup)
				r.Delete("/", deps.Group.DeleteGroup)
				r.Post("/members", deps.Group.AddMember)
				r.Get("/expenses", deps.Ledger.ListGroupExpenses)
				r.Post("/expenses", deps.Ledger.CreateExpense)
			})
		})

		r.Route("/api/expenses/{id}", func(r chi.Router) {
			r.Get("/", deps.Ledger.GetExpense)
			r.Delete("/", deps.Ledger.DeleteExpense)
		})

		r.Post("/api/splits/{id}/settle", deps.Ledger.SettleSplit)

		r.Route("/api/settlements", func(r chi.Router) {
			r.Post("/", deps.Ledger.RecordSettlement)
			r.Get("/", deps.Ledger.ListSettlements)
		})

		r.Get("/api/balances", deps.Ledger.PortfolioBalance)
		r.Get("/api/balances/{userID}", deps.Ledger.NetBalance)
		r.Get("/api/history", deps.Ledger.History)
		r.Get("/api/usage", deps.Ledger.MonthlyUsage)
	})

	return r
}
