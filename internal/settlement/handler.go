package settlement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wanderbliss/fairshare/internal/trip"
	"github.com/wanderbliss/fairshare/pkg/middleware"
	"github.com/wanderbliss/fairshare/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints, mounted under
// /trips/{tripID}/settlements
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/{fromId}/{toId}/settle", h.MarkSettled)

	return r
}

func tripIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
}

// Summary handles GET /trips/{tripID}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, err := tripIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	summary, err := h.service.Summary(r.Context(), tripID, userID)
	if err != nil {
		if errors.Is(err, trip.ErrNotParticipant) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute summary")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// List handles GET /trips/{tripID}/settlements. Settlements are recomputed
// from the expense ledger on every call.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, err := tripIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	settlements, err := h.service.Refresh(r.Context(), tripID, userID)
	if err != nil {
		if errors.Is(err, trip.ErrNotParticipant) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute settlements")
		return
	}

	settlementResponses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		settlementResponses[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, settlementResponses)
}

// MarkSettled handles POST /trips/{tripID}/settlements/{fromId}/{toId}/settle
func (h *Handler) MarkSettled(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, err := tripIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}
	fromID, err := strconv.ParseInt(chi.URLParam(r, "fromId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payer ID")
		return
	}
	toID, err := strconv.ParseInt(chi.URLParam(r, "toId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid receiver ID")
		return
	}

	settlement, err := h.service.MarkSettled(r.Context(), tripID, userID, fromID, toID)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotDebtor) {
			response.Forbidden(w, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidStatusChange) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, trip.ErrNotParticipant) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to mark settlement as settled")
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}
