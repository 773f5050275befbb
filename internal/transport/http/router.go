package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminmw "edumatch/pkg/platform/middleware/admin"
	"edumatch/pkg/platform/middleware/operator"
	"edumatch/pkg/platform/middleware/requestid"
)

// RouterConfig carries the transport-level knobs the router needs.
type RouterConfig struct {
	JWTSigningKey string
	AdminToken    string
}

// NewRouter wires the admission API. This is the single target contract:
// reads are open, mutations require an operator token, and quota
// administration additionally requires the admin token.
func NewRouter(h *Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/eduadmission", func(r chi.Router) {
		// Read surface.
		r.Get("/get_seat", h.HandleGetSeat)
		r.Get("/list_seats", h.HandleListSeats)
		r.Get("/get_score", h.HandleGetScore)
		r.Get("/list_scores", h.HandleListScores)
		r.Get("/get_result", h.HandleGetResult)
		r.Get("/list_results", h.HandleListResults)
		r.Get("/get_quota", h.HandleGetQuota)
		r.Get("/list_quotas", h.HandleListQuotas)

		// Mutations: operator token required.
		r.Group(func(r chi.Router) {
			r.Use(operator.RequireOperator(cfg.JWTSigningKey, logger))

			r.Post("/mint_seat", h.HandleMintSeat)
			r.Post("/burn_seat", h.HandleBurnSeat)
			r.Post("/vacate_seat", h.HandleVacateSeat)
			r.Post("/push_score", h.HandlePushScore)
			r.Post("/run_matching", h.HandleRunMatching)
			r.Post("/assign_seat", h.HandleAssignSeat)

			// Quota administration: admin token on top of operator auth.
			r.Group(func(r chi.Router) {
				r.Use(adminmw.RequireAdminToken(cfg.AdminToken, logger))
				r.Post("/create_quota", h.HandleCreateQuota)
			})
		})
	})

	return r
}
