package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListByRecipientID retrieves notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Notifications are best-effort side effects of other features; failures are
// logged and never bubble up into the originating operation.

// NotifyTripInvite notifies a user that they were invited to a trip
func (s *Service) NotifyTripInvite(ctx context.Context, recipientID int64, inviterName, tripName string, tripID int64) {
	message := fmt.Sprintf("%s invited you to the trip %q", inviterName, tripName)
	s.create(ctx, recipientID, message, EntityTrip, tripID)
}

// NotifyExpenseAdded notifies a participant that an expense was logged
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID int64, payerName, description string, expenseID int64) {
	message := fmt.Sprintf("%s added the expense %q you are part of", payerName, description)
	s.create(ctx, recipientID, message, EntityExpense, expenseID)
}

// NotifySettlementSettled notifies the creditor that a transfer was marked settled
func (s *Service) NotifySettlementSettled(ctx context.Context, recipientID int64, payerName string, amount float64, settlementID int64) {
	message := fmt.Sprintf("%s marked their payment of %.2f to you as settled", payerName, amount)
	s.create(ctx, recipientID, message, EntitySettlement, settlementID)
}

func (s *Service) create(ctx context.Context, recipientID int64, message, entityType string, entityID int64) {
	if _, err := s.repo.Create(ctx, recipientID, message, &entityType, &entityID); err != nil {
		slog.Warn("failed to create notification",
			"recipient_id", recipientID,
			"entity_type", entityType,
			"error", err,
		)
	}
}
