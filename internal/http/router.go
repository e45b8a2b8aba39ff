package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fintwin-app/fintwin/internal/http/auth"
	"github.com/fintwin-app/fintwin/internal/http/budget"
	"github.com/fintwin-app/fintwin/internal/http/digest"
	"github.com/fintwin-app/fintwin/internal/http/goal"
	"github.com/fintwin-app/fintwin/internal/http/importcsv"
	"github.com/fintwin-app/fintwin/internal/http/insights"
	"github.com/fintwin-app/fintwin/internal/http/subscription"
	"github.com/fintwin-app/fintwin/internal/http/transaction"
)

func New(
	jwtSecret string,
	allowedOrigins []string,
	transactionsV1 *transaction.Handler,
	budgetsV1 *budget.Handler,
	subscriptionsV1 *subscription.Handler,
	goalsV1 *goal.Handler,
	insightsV1 *insights.Handler,
	importV1 *importcsv.Handler,
	digestV1 *digest.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			subscriptionsV1.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			goalsV1.Routes(r)
		})

		r.Route("/insights", insightsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/digest", digestV1.Routes)
	})

	return router
}
