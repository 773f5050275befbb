package httptransport

import (
	"net/http"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/httputil"
)

// HandleCreateQuota handles POST /eduadmission/create_quota. Overwrite
// semantics: re-posting replaces the institution's authorized count.
func (h *Handler) HandleCreateQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[CreateQuotaRequest](w, r, h.logger)
	if !ok {
		return
	}

	q, err := h.quotas.Set(ctx, id.InstitutionID(req.InstitutionID), *req.SeatCount)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, q)
}

// HandleGetQuota handles GET /eduadmission/get_quota?institution_id=...
func (h *Handler) HandleGetQuota(w http.ResponseWriter, r *http.Request) {
	institution := r.URL.Query().Get("institution_id")

	count, err := h.quotas.Get(r.Context(), id.InstitutionID(institution))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"institution_id": institution,
		"seat_count":     count,
	})
}

// HandleListQuotas handles GET /eduadmission/list_quotas.
func (h *Handler) HandleListQuotas(w http.ResponseWriter, r *http.Request) {
	quotas, err := h.quotas.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, quotas)
}
