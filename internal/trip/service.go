package trip

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wanderbliss/fairshare/internal/notification"
)

// Common errors
var (
	ErrTripNotFound        = errors.New("trip not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("user is already a participant of this trip")
	ErrNotParticipant      = errors.New("not a participant of this trip")
	ErrNotOwner            = errors.New("only the trip owner can perform this action")
	ErrInvalidInviteToken  = errors.New("invalid invite token")
	ErrCannotRemoveOwner   = errors.New("the trip owner cannot be removed")
)

// Service handles trip business logic
type Service struct {
	repo          *Repository
	notifications *notification.Service
}

// NewService creates a new trip service
func NewService(repo *Repository, notifications *notification.Service) *Service {
	return &Service{repo: repo, notifications: notifications}
}

// Create creates a new trip and adds the creator as an active owner
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateTripRequest) (*Trip, error) {
	trip, err := s.repo.Create(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.AddParticipant(ctx, trip.ID, creatorID, ParticipantStatusActive, ParticipantRoleOwner, nil)
	if err != nil {
		// TODO: Should rollback trip creation in a transaction
		return nil, err
	}

	return trip, nil
}

// GetByID retrieves a trip by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// GetByIDWithParticipants retrieves a trip with all its participants
func (s *Service) GetByIDWithParticipants(ctx context.Context, id int64) (*Trip, []*Participant, error) {
	trip, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return trip, participants, nil
}

// ListByUserID retrieves trips for a user
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Trip, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies a trip; only the owner may do this
func (s *Service) Update(ctx context.Context, id, userID int64, req *UpdateTripRequest) (*Trip, error) {
	if err := s.requireOwner(ctx, id, userID); err != nil {
		return nil, err
	}

	trip, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// Delete removes a trip; only the owner may do this
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.requireOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Invite adds a user as an INVITED participant carrying a fresh invite token
// and notifies them.
func (s *Service) Invite(ctx context.Context, tripID, inviterID int64, req *InviteParticipantRequest) (*Participant, string, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, "", err
	}

	inviter, err := s.RequireParticipant(ctx, tripID, inviterID)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.repo.GetParticipant(ctx, tripID, req.UserID)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrParticipantExists
	}

	token := uuid.New().String()
	participant, err := s.repo.AddParticipant(ctx, tripID, req.UserID, ParticipantStatusInvited, ParticipantRoleMember, &token)
	if err != nil {
		return nil, "", err
	}

	s.notifications.NotifyTripInvite(ctx, req.UserID, inviter.Username, trip.Name, trip.ID)

	return participant, token, nil
}

// AcceptInvite flips an invited participant to ACTIVE using the invite token
func (s *Service) AcceptInvite(ctx context.Context, tripID int64, token string) (*Participant, error) {
	participant, err := s.repo.ActivateByToken(ctx, tripID, token)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrInvalidInviteToken
	}
	return participant, nil
}

// RemoveParticipant removes a user from a trip; owners cannot be removed
func (s *Service) RemoveParticipant(ctx context.Context, tripID, requesterID, userID int64) error {
	if requesterID != userID {
		if err := s.requireOwner(ctx, tripID, requesterID); err != nil {
			return err
		}
	}

	target, err := s.repo.GetParticipant(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrParticipantNotFound
	}
	if target.Role == ParticipantRoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.repo.RemoveParticipant(ctx, tripID, userID)
}

// RequireParticipant returns the participant entry for a user on a trip or
// ErrNotParticipant. Other feature services use this as the authorization check.
func (s *Service) RequireParticipant(ctx context.Context, tripID, userID int64) (*Participant, error) {
	participant, err := s.repo.GetParticipant(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}
	return participant, nil
}

// ParticipantIDs returns the ids of every participant on the trip,
// invited or active. The ledger needs the full roster so invited members
// already referenced by expenses get balance entries.
func (s *Service) ParticipantIDs(ctx context.Context, tripID int64) ([]int64, error) {
	participants, err := s.repo.GetParticipants(ctx, tripID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(participants))
	for i, p := range participants {
		ids[i] = p.UserID
	}
	return ids, nil
}

func (s *Service) requireOwner(ctx context.Context, tripID, userID int64) error {
	participant, err := s.RequireParticipant(ctx, tripID, userID)
	if err != nil {
		if errors.Is(err, ErrNotParticipant) {
			return ErrNotOwner
		}
		return err
	}
	if participant.Role != ParticipantRoleOwner {
		return ErrNotOwner
	}
	return nil
}
