package expense

import (
	"context"
	"errors"
	"time"

	"github.com/wanderbliss/fairshare/internal/notification"
	"github.com/wanderbliss/fairshare/internal/trip"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrEmptySplit      = errors.New("split_between must contain at least one participant")
	ErrSplitNotOnTrip  = errors.New("split_between references users who are not trip participants")
	ErrNotExpensePayer = errors.New("only the payer can modify an expense")
	ErrWrongTrip       = errors.New("expense does not belong to this trip")
)

// Service handles expense business logic. Validation of amount positivity and
// split membership happens here, at the caller boundary; the ledger itself
// accepts any snapshot.
type Service struct {
	repo          *Repository
	trips         *trip.Service
	notifications *notification.Service
}

// NewService creates a new expense service
func NewService(repo *Repository, trips *trip.Service, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		trips:         trips,
		notifications: notifications,
	}
}

// Create validates and records a new expense paid by payerID, then notifies
// the other participants in the split.
func (s *Service) Create(ctx context.Context, tripID, payerID int64, req *CreateExpenseRequest) (*Expense, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(req.SplitBetween) == 0 {
		return nil, ErrEmptySplit
	}

	payer, err := s.trips.RequireParticipant(ctx, tripID, payerID)
	if err != nil {
		return nil, err
	}

	roster, err := s.trips.ParticipantIDs(ctx, tripID)
	if err != nil {
		return nil, err
	}
	onTrip := make(map[int64]bool, len(roster))
	for _, id := range roster {
		onTrip[id] = true
	}
	for _, id := range req.SplitBetween {
		if !onTrip[id] {
			return nil, ErrSplitNotOnTrip
		}
	}

	category := req.Category
	if category == "" {
		category = "other"
	}
	spentAt := time.Now()
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense, err := s.repo.Create(ctx, tripID, payerID, req.Description, req.Amount, category, spentAt, req.SplitBetween)
	if err != nil {
		return nil, err
	}

	for _, userID := range req.SplitBetween {
		if userID == payerID {
			continue
		}
		s.notifications.NotifyExpenseAdded(ctx, userID, payer.Username, expense.Description, expense.ID)
	}

	return expense, nil
}

// GetByID retrieves an expense, checking it belongs to the given trip
func (s *Service) GetByID(ctx context.Context, tripID, id, userID int64) (*Expense, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}

	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if expense.TripID != tripID {
		return nil, ErrWrongTrip
	}
	return expense, nil
}

// ListByTripID retrieves expenses for a trip
func (s *Service) ListByTripID(ctx context.Context, tripID, userID int64, page, perPage int) ([]*Expense, int, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByTripID(ctx, tripID, perPage, offset)
}

// Update modifies an expense's description or category; payer only
func (s *Service) Update(ctx context.Context, tripID, id, userID int64, req *UpdateExpenseRequest) (*Expense, error) {
	expense, err := s.GetByID(ctx, tripID, id, userID)
	if err != nil {
		return nil, err
	}
	if expense.PayerID != userID {
		return nil, ErrNotExpensePayer
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}
	updated.SplitBetween = expense.SplitBetween
	return updated, nil
}

// Delete removes an expense; payer only
func (s *Service) Delete(ctx context.Context, tripID, id, userID int64) error {
	expense, err := s.GetByID(ctx, tripID, id, userID)
	if err != nil {
		return err
	}
	if expense.PayerID != userID {
		return ErrNotExpensePayer
	}

	return s.repo.Delete(ctx, id)
}
