package planner

import (
	"context"
	"errors"

	"github.com/wanderbliss/fairshare/internal/trip"
)

// Common errors
var (
	ErrItemNotFound    = errors.New("planner item not found")
	ErrInvalidCategory = errors.New("category must be place or food")
	ErrInvalidMode     = errors.New("mode must be flight, train, car or bus")
)

// Service handles planner business logic. Every operation requires the caller
// to be a trip participant.
type Service struct {
	repo  *Repository
	trips *trip.Service
}

// NewService creates a new planner service
func NewService(repo *Repository, trips *trip.Service) *Service {
	return &Service{repo: repo, trips: trips}
}

// AddItineraryItem adds an itinerary item to a trip
func (s *Service) AddItineraryItem(ctx context.Context, tripID, userID int64, req *CreateItineraryItemRequest) (*ItineraryItem, error) {
	if req.Category != ItineraryCategoryPlace && req.Category != ItineraryCategoryFood {
		return nil, ErrInvalidCategory
	}
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.CreateItineraryItem(ctx, tripID, req)
}

// ListItinerary retrieves a trip's itinerary
func (s *Service) ListItinerary(ctx context.Context, tripID, userID int64) ([]*ItineraryItem, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListItineraryItems(ctx, tripID)
}

// UpdateItineraryItem modifies an itinerary item
func (s *Service) UpdateItineraryItem(ctx context.Context, tripID, id, userID int64, req *UpdateItineraryItemRequest) (*ItineraryItem, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateItineraryItem(ctx, tripID, id, req)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// DeleteItineraryItem removes an itinerary item
func (s *Service) DeleteItineraryItem(ctx context.Context, tripID, id, userID int64) error {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return err
	}
	return s.repo.DeleteItineraryItem(ctx, tripID, id)
}

// AddTravelLeg adds a travel leg to a trip
func (s *Service) AddTravelLeg(ctx context.Context, tripID, userID int64, req *CreateTravelLegRequest) (*TravelLeg, error) {
	if req.Mode != nil {
		switch *req.Mode {
		case "flight", "train", "car", "bus":
		default:
			return nil, ErrInvalidMode
		}
	}
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.CreateTravelLeg(ctx, tripID, req)
}

// ListTravelLegs retrieves a trip's travel legs
func (s *Service) ListTravelLegs(ctx context.Context, tripID, userID int64) ([]*TravelLeg, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListTravelLegs(ctx, tripID)
}

// DeleteTravelLeg removes a travel leg
func (s *Service) DeleteTravelLeg(ctx context.Context, tripID, id, userID int64) error {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return err
	}
	return s.repo.DeleteTravelLeg(ctx, tripID, id)
}

// AddLodgingEntry adds a lodging entry to a trip
func (s *Service) AddLodgingEntry(ctx context.Context, tripID, userID int64, req *CreateLodgingEntryRequest) (*LodgingEntry, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.CreateLodgingEntry(ctx, tripID, req)
}

// ListLodgingEntries retrieves a trip's lodging entries
func (s *Service) ListLodgingEntries(ctx context.Context, tripID, userID int64) ([]*LodgingEntry, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListLodgingEntries(ctx, tripID)
}

// DeleteLodgingEntry removes a lodging entry
func (s *Service) DeleteLodgingEntry(ctx context.Context, tripID, id, userID int64) error {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return err
	}
	return s.repo.DeleteLodgingEntry(ctx, tripID, id)
}

// AddTodoItem adds a todo item to a trip
func (s *Service) AddTodoItem(ctx context.Context, tripID, userID int64, req *CreateTodoItemRequest) (*TodoItem, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.CreateTodoItem(ctx, tripID, req)
}

// ListTodoItems retrieves a trip's todo list
func (s *Service) ListTodoItems(ctx context.Context, tripID, userID int64) ([]*TodoItem, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListTodoItems(ctx, tripID)
}

// UpdateTodoItem modifies a todo item
func (s *Service) UpdateTodoItem(ctx context.Context, tripID, id, userID int64, req *UpdateTodoItemRequest) (*TodoItem, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateTodoItem(ctx, tripID, id, req)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// DeleteTodoItem removes a todo item
func (s *Service) DeleteTodoItem(ctx context.Context, tripID, id, userID int64) error {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return err
	}
	return s.repo.DeleteTodoItem(ctx, tripID, id)
}
