package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wanderbliss/fairshare/internal/trip"
	"github.com/wanderbliss/fairshare/pkg/middleware"
	"github.com/wanderbliss/fairshare/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints, mounted under
// /trips/{tripID}/expenses
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

func tripIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
}

// Create handles POST /trips/{tripID}/expenses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Description == "" {
		response.BadRequest(w, "Description is required")
		return
	}

	expense, err := h.service.Create(r.Context(), tripID, userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrEmptySplit) || errors.Is(err, ErrSplitNotOnTrip) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, trip.ErrNotParticipant) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create expense")
		return
	}

	response.JSON(w, http.StatusCreated, expense.ToResponse())
}

// GetByID handles GET /trips/{tripID}/expenses/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
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
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	expense, err := h.service.GetByID(r.Context(), tripID, id, userID)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) || errors.Is(err, ErrWrongTrip) {
			response.NotFound(w, ErrExpenseNotFound.Error())
			return
		}
		if errors.Is(err, trip.ErrNotParticipant) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// List handles GET /trips/{tripID}/expenses
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

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	expenses, total, err := h.service.ListByTripID(r.Context(), tripID, userID, page, perPage)
	if err != nil {
		if errors.Is(err, trip.ErrNotParticipant) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, expenseResponses, response.NewMeta(page, perPage, total))
}

// Update handles PATCH /trips/{tripID}/expenses/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.service.Update(r.Context(), tripID, id, userID, &req)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) || errors.Is(err, ErrWrongTrip) {
			response.NotFound(w, ErrExpenseNotFound.Error())
			return
		}
		if errors.Is(err, ErrNotExpensePayer) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// Delete handles DELETE /trips/{tripID}/expenses/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	if err := h.service.Delete(r.Context(), tripID, id, userID); err != nil {
		if errors.Is(err, ErrExpenseNotFound) || errors.Is(err, ErrWrongTrip) {
			response.NotFound(w, ErrExpenseNotFound.Error())
			return
		}
		if errors.Is(err, ErrNotExpensePayer) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete expense")
		return
	}

	response.Message(w, "Expense deleted")
}
