package settlement

import (
	"context"
	"errors"

	"github.com/wanderbliss/fairshare/internal/expense"
	"github.com/wanderbliss/fairshare/internal/ledger"
	"github.com/wanderbliss/fairshare/internal/notification"
	"github.com/wanderbliss/fairshare/internal/trip"
)

// Common errors
var (
	ErrSettlementNotFound  = errors.New("no pending settlement for this pair")
	ErrNotDebtor           = errors.New("only the owing participant can mark a settlement as settled")
	ErrInvalidStatusChange = errors.New("settlement is already settled")
)

// Service recomputes settlements from the trip's expense ledger and keeps the
// user-set status alive across recomputations via the (from, to) pair key.
type Service struct {
	repo          *Repository
	expenses      *expense.Repository
	trips         *trip.Service
	notifications *notification.Service
}

// NewService creates a new settlement service
func NewService(repo *Repository, expenses *expense.Repository, trips *trip.Service, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		expenses:      expenses,
		trips:         trips,
		notifications: notifications,
	}
}

// Summary computes the trip's balance summary from the current snapshot
func (s *Service) Summary(ctx context.Context, tripID, userID int64) (*SummaryResponse, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}

	summary, _, err := s.snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return NewSummaryResponse(tripID, summary), nil
}

// Refresh recomputes the trip's settlements, reconciles them against the
// stored set and persists the result.
func (s *Service) Refresh(ctx context.Context, tripID, userID int64) ([]*Settlement, error) {
	if _, err := s.trips.RequireParticipant(ctx, tripID, userID); err != nil {
		return nil, err
	}

	_, transfers, err := s.snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	reconciled := reconcile(tripID, transfers, stored)
	if err := s.repo.Replace(ctx, tripID, reconciled); err != nil {
		return nil, err
	}

	return s.repo.ListByTripID(ctx, tripID)
}

// MarkSettled flips a settlement to SETTLED. Only the debtor can do this, and
// the transition is one-way.
func (s *Service) MarkSettled(ctx context.Context, tripID, userID, fromID, toID int64) (*Settlement, error) {
	payer, err := s.trips.RequireParticipant(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if userID != fromID {
		return nil, ErrNotDebtor
	}

	existing, err := s.repo.GetByPair(ctx, tripID, fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrSettlementNotFound
	}
	if existing.Status == StatusSettled {
		return nil, ErrInvalidStatusChange
	}

	settled, err := s.repo.MarkSettled(ctx, tripID, fromID, toID)
	if err != nil {
		return nil, err
	}
	if settled == nil {
		return nil, ErrSettlementNotFound
	}

	s.notifications.NotifySettlementSettled(ctx, toID, payer.Username, settled.Amount, settled.ID)

	return settled, nil
}

// snapshot loads the trip's current expenses and roster and runs the ledger
func (s *Service) snapshot(ctx context.Context, tripID int64) (*ledger.Summary, []ledger.Transfer, error) {
	expenses, err := s.expenses.ListAllByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	roster, err := s.trips.ParticipantIDs(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	ledgerExpenses := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		ledgerExpenses[i] = e.ToLedger()
	}

	summary, transfers := ledger.Settle(ledgerExpenses, roster)
	return summary, transfers, nil
}

// reconcile joins freshly computed transfers against stored settlements by
// the (from, to) pair key: amounts always come from the new computation,
// status survives from the stored row. Stored pairs that no longer appear are
// dropped; the ledger considers them settled.
func reconcile(tripID int64, transfers []ledger.Transfer, stored []*Settlement) []*Settlement {
	type pair struct{ from, to int64 }

	statusByPair := make(map[pair]Status, len(stored))
	for _, s := range stored {
		statusByPair[pair{s.FromID, s.ToID}] = s.Status
	}

	settlements := make([]*Settlement, len(transfers))
	for i, t := range transfers {
		status, ok := statusByPair[pair{t.From, t.To}]
		if !ok {
			status = StatusPending
		}
		settlements[i] = &Settlement{
			TripID: tripID,
			FromID: t.From,
			ToID:   t.To,
			Amount: t.Amount,
			Status: status,
		}
	}

	return settlements
}
