package planner

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

// Handler handles HTTP requests for planner operations
type Handler struct {
	service *Service
}

// NewHandler creates a new planner handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for planner endpoints, mounted under
// /trips/{tripID}/planner
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/itinerary", func(r chi.Router) {
		r.Post("/", h.AddItineraryItem)
		r.Get("/", h.ListItinerary)
		r.Patch("/{id}", h.UpdateItineraryItem)
		r.Delete("/{id}", h.DeleteItineraryItem)
	})

	r.Route("/travel", func(r chi.Router) {
		r.Post("/", h.AddTravelLeg)
		r.Get("/", h.ListTravelLegs)
		r.Delete("/{id}", h.DeleteTravelLeg)
	})

	r.Route("/lodging", func(r chi.Router) {
		r.Post("/", h.AddLodgingEntry)
		r.Get("/", h.ListLodgingEntries)
		r.Delete("/{id}", h.DeleteLodgingEntry)
	})

	r.Route("/todos", func(r chi.Router) {
		r.Post("/", h.AddTodoItem)
		r.Get("/", h.ListTodoItems)
		r.Patch("/{id}", h.UpdateTodoItem)
		r.Delete("/{id}", h.DeleteTodoItem)
	})

	return r
}

func pathIDs(r *http.Request) (tripID, id int64, err error) {
	tripID, err = strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	return tripID, id, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trip.ErrNotParticipant):
		response.Forbidden(w, err.Error())
	case errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrItemNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidMode):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Something went wrong")
	}
}

// AddItineraryItem handles POST /trips/{tripID}/itinerary
func (h *Handler) AddItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req CreateItineraryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	item, err := h.service.AddItineraryItem(r.Context(), tripID, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, item)
}

// ListItinerary handles GET /trips/{tripID}/itinerary
func (h *Handler) ListItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	items, err := h.service.ListItinerary(r.Context(), tripID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// UpdateItineraryItem handles PATCH /trips/{tripID}/itinerary/{id}
func (h *Handler) UpdateItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, id, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	var req UpdateItineraryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.UpdateItineraryItem(r.Context(), tripID, id, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// DeleteItineraryItem handles DELETE /trips/{tripID}/itinerary/{id}
func (h *Handler) DeleteItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, id, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.service.DeleteItineraryItem(r.Context(), tripID, id, userID); err != nil {
		h.writeError(w, err)
		return
	}

	response.Message(w, "Itinerary item deleted")
}

// AddTravelLeg handles POST /trips/{tripID}/travel
func (h *Handler) AddTravelLeg(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req CreateTravelLegRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.TravellerNames == "" || req.StartCity == "" || req.DestinationCity == "" {
		response.BadRequest(w, "Traveller names, start city and destination city are required")
		return
	}

	leg, err := h.service.AddTravelLeg(r.Context(), tripID, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, leg)
}

// ListTravelLegs handles GET /trips/{tripID}/travel
func (h *Handler) ListTravelLegs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	legs, err := h.service.ListTravelLegs(r.Context(), tripID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, legs)
}

// DeleteTravelLeg handles DELETE /trips/{tripID}/travel/{id}
func (h *Handler) DeleteTravelLeg(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, id, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.service.DeleteTravelLeg(r.Context(), tripID, id, userID); err != nil {
		h.writeError(w, err)
		return
	}

	response.Message(w, "Travel leg deleted")
}

// AddLodgingEntry handles POST /trips/{tripID}/lodging
func (h *Handler) AddLodgingEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req CreateLodgingEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GuestNames == "" || req.PlaceName == "" || req.City == "" {
		response.BadRequest(w, "Guest names, place name and city are required")
		return
	}

	entry, err := h.service.AddLodgingEntry(r.Context(), tripID, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, entry)
}

// ListLodgingEntries handles GET /trips/{tripID}/lodging
func (h *Handler) ListLodgingEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	entries, err := h.service.ListLodgingEntries(r.Context(), tripID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// DeleteLodgingEntry handles DELETE /trips/{tripID}/lodging/{id}
func (h *Handler) DeleteLodgingEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, id, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.service.DeleteLodgingEntry(r.Context(), tripID, id, userID); err != nil {
		h.writeError(w, err)
		return
	}

	response.Message(w, "Lodging entry deleted")
}

// AddTodoItem handles POST /trips/{tripID}/todos
func (h *Handler) AddTodoItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req CreateTodoItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Activity == "" {
		response.BadRequest(w, "Activity is required")
		return
	}

	item, err := h.service.AddTodoItem(r.Context(), tripID, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, item)
}

// ListTodoItems handles GET /trips/{tripID}/todos
func (h *Handler) ListTodoItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, _, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	items, err := h.service.ListTodoItems(r.Context(), tripID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// UpdateTodoItem handles PATCH /trips/{tripID}/todos/{id}
func (h *Handler) UpdateTodoItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, id, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	var req UpdateTodoItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.UpdateTodoItem(r.Context(), tripID, id, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// DeleteTodoItem handles DELETE /trips/{tripID}/todos/{id}
func (h *Handler) DeleteTodoItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	tripID, id, err := pathIDs(r)
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.service.DeleteTodoItem(r.Context(), tripID, id, userID); err != nil {
		h.writeError(w, err)
		return
	}

	response.Message(w, "Todo item deleted")
}
