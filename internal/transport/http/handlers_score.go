package httptransport

import (
	"net/http"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/httputil"
)

// HandlePushScore handles POST /eduadmission/push_score.
func (h *Handler) HandlePushScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[PushScoreRequest](w, r, h.logger)
	if !ok {
		return
	}

	year := req.Year
	if year == 0 {
		year = h.cycleYear
	}

	entry, err := h.scores.Push(ctx,
		id.CandidateID(req.CandidateHash),
		id.Subject(req.Subject),
		*req.Score,
		year,
		id.InstitutionID(req.InstitutionID),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// HandleGetScore handles GET /eduadmission/get_score?candidate_hash=...
func (h *Handler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	candidate := r.URL.Query().Get("candidate_hash")

	entries, err := h.scores.Get(r.Context(), id.CandidateID(candidate))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

// HandleListScores handles GET /eduadmission/list_scores.
func (h *Handler) HandleListScores(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scores.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}
