package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListByTripID retrieves the stored settlements of a trip
func (r *Repository) ListByTripID(ctx context.Context, tripID int64) ([]*Settlement, error) {
	query := `
		SELECT s.id, s.trip_id, s.from_id, s.to_id, s.amount, s.status, s.updated_at,
		       f.username AS from_username, t.username AS to_username
		FROM settlements s
		JOIN users f ON s.from_id = f.id
		JOIN users t ON s.to_id = t.id
		WHERE s.trip_id = $1
		ORDER BY s.amount DESC, s.from_id, s.to_id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.TripID,
			&s.FromID,
			&s.ToID,
			&s.Amount,
			&s.Status,
			&s.UpdatedAt,
			&s.FromUsername,
			&s.ToUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, nil
}

// Replace swaps a trip's stored settlements for the freshly reconciled set in
// one transaction. Pairs absent from the new set are dropped; that pair is now
// fully settled by the ledger.
func (r *Repository) Replace(ctx context.Context, tripID int64, settlements []*Settlement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settlements WHERE trip_id = $1`, tripID); err != nil {
		return fmt.Errorf("failed to clear settlements: %w", err)
	}

	query := `
		INSERT INTO settlements (trip_id, from_id, to_id, amount, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	for _, s := range settlements {
		if _, err := tx.ExecContext(ctx, query, tripID, s.FromID, s.ToID, s.Amount, s.Status); err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlements: %w", err)
	}

	return nil
}

// GetByPair retrieves a trip's settlement for a (from, to) pair
func (r *Repository) GetByPair(ctx context.Context, tripID, fromID, toID int64) (*Settlement, error) {
	query := `
		SELECT id, trip_id, from_id, to_id, amount, status, updated_at
		FROM settlements
		WHERE trip_id = $1 AND from_id = $2 AND to_id = $3
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, tripID, fromID, toID).Scan(
		&s.ID,
		&s.TripID,
		&s.FromID,
		&s.ToID,
		&s.Amount,
		&s.Status,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return s, nil
}

// MarkSettled performs the one-way PENDING -> SETTLED transition
func (r *Repository) MarkSettled(ctx context.Context, tripID, fromID, toID int64) (*Settlement, error) {
	query := `
		UPDATE settlements
		SET status = $4, updated_at = NOW()
		WHERE trip_id = $1 AND from_id = $2 AND to_id = $3 AND status = $5
		RETURNING id, trip_id, from_id, to_id, amount, status, updated_at
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, tripID, fromID, toID, StatusSettled, StatusPending).Scan(
		&s.ID,
		&s.TripID,
		&s.FromID,
		&s.ToID,
		&s.Amount,
		&s.Status,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark settlement as settled: %w", err)
	}

	return s, nil
}
