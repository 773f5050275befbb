package httptransport

import (
	"net/http"
	"time"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/httputil"
	"edumatch/pkg/requestcontext"
)

// HandleRunMatching handles POST /eduadmission/run_matching. The run proposes
// assignments only; seat state is untouched until assign_seat confirms them.
func (h *Handler) HandleRunMatching(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	set, err := h.matching.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "matching run failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "matching run served",
		"request_id", requestcontext.RequestID(ctx),
		"run_id", set.RunID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, set)
}

// HandleListResults handles GET /eduadmission/list_results.
func (h *Handler) HandleListResults(w http.ResponseWriter, r *http.Request) {
	set, err := h.matching.Latest(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, set)
}

// HandleGetResult handles GET /eduadmission/get_result?candidate_hash=...
func (h *Handler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	candidate := r.URL.Query().Get("candidate_hash")

	result, err := h.matching.Get(r.Context(), id.CandidateID(candidate))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
