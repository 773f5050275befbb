package httptransport

import (
	"net/http"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/httputil"
	"edumatch/pkg/requestcontext"
)

// HandleMintSeat handles POST /eduadmission/mint_seat.
func (h *Handler) HandleMintSeat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[MintSeatRequest](w, r, h.logger)
	if !ok {
		return
	}

	minted, err := h.seats.Mint(ctx, id.SeatID(req.SeatID), id.InstitutionID(req.InstitutionID))
	if err != nil {
		h.logger.ErrorContext(ctx, "mint seat failed",
			"request_id", requestcontext.RequestID(ctx),
			"seat_id", req.SeatID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, minted)
}

// HandleBurnSeat handles POST /eduadmission/burn_seat.
func (h *Handler) HandleBurnSeat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[BurnSeatRequest](w, r, h.logger)
	if !ok {
		return
	}

	burned, err := h.seats.Burn(ctx, id.SeatID(req.SeatID))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, burned)
}

// HandleVacateSeat handles POST /eduadmission/vacate_seat. Unlike plain burn,
// this path acknowledges that it revokes a confirmed admission.
func (h *Handler) HandleVacateSeat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[BurnSeatRequest](w, r, h.logger)
	if !ok {
		return
	}

	vacated, err := h.seats.VacateAndBurn(ctx, id.SeatID(req.SeatID))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vacated)
}

// HandleAssignSeat handles POST /eduadmission/assign_seat, the confirmation
// step that turns a proposed match into a binding assignment.
func (h *Handler) HandleAssignSeat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[AssignSeatRequest](w, r, h.logger)
	if !ok {
		return
	}

	assigned, err := h.assignments.Confirm(ctx, id.SeatID(req.SeatID), id.CandidateID(req.CandidateHash))
	if err != nil {
		h.logger.ErrorContext(ctx, "assign seat failed",
			"request_id", requestcontext.RequestID(ctx),
			"seat_id", req.SeatID,
			"candidate_id", req.CandidateHash,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, assigned)
}

// HandleGetSeat handles GET /eduadmission/get_seat?seat_id=...
func (h *Handler) HandleGetSeat(w http.ResponseWriter, r *http.Request) {
	seatID := r.URL.Query().Get("seat_id")

	found, err := h.seats.Get(r.Context(), id.SeatID(seatID))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, found)
}

// HandleListSeats handles GET /eduadmission/list_seats with an optional
// institution_id filter.
func (h *Handler) HandleListSeats(w http.ResponseWriter, r *http.Request) {
	institution := r.URL.Query().Get("institution_id")

	seats, err := h.seats.List(r.Context(), id.InstitutionID(institution))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, seats)
}
