package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense and its share rows in one transaction
func (r *Repository) Create(ctx context.Context, tripID, payerID int64, description string, amount float64, category string, spentAt time.Time, splitBetween []int64) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (trip_id, payer_id, description, amount, category, spent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, trip_id, payer_id, description, amount, category, spent_at, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query, tripID, payerID, description, amount, category, spentAt).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Category,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	for _, userID := range splitBetween {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, user_id) VALUES ($1, $2)`,
			expense.ID, userID); err != nil {
			return nil, fmt.Errorf("failed to create expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	expense.SplitBetween = splitBetween
	return expense, nil
}

// GetByID retrieves an expense with its split set
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.category,
		       e.spent_at, e.created_at, u.username,
		       COALESCE(ARRAY_AGG(es.user_id) FILTER (WHERE es.user_id IS NOT NULL), '{}')
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		LEFT JOIN expense_shares es ON es.expense_id = e.id
		WHERE e.id = $1
		GROUP BY e.id, u.username
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Category,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.PayerUsername,
		pq.Array(&expense.SplitBetween),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// ListByTripID retrieves expenses for a trip, newest first
func (r *Repository) ListByTripID(ctx context.Context, tripID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE trip_id = $1`, tripID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.category,
		       e.spent_at, e.created_at, u.username,
		       COALESCE(ARRAY_AGG(es.user_id) FILTER (WHERE es.user_id IS NOT NULL), '{}')
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		LEFT JOIN expense_shares es ON es.expense_id = e.id
		WHERE e.trip_id = $1
		GROUP BY e.id, u.username
		ORDER BY e.spent_at DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.TripID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.PayerUsername,
			pq.Array(&expense.SplitBetween),
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListAllByTripID retrieves the complete expense ledger of a trip without
// pagination, for balance computation.
func (r *Repository) ListAllByTripID(ctx context.Context, tripID int64) ([]*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.category,
		       e.spent_at, e.created_at,
		       COALESCE(ARRAY_AGG(es.user_id) FILTER (WHERE es.user_id IS NOT NULL), '{}')
		FROM expenses e
		LEFT JOIN expense_shares es ON es.expense_id = e.id
		WHERE e.trip_id = $1
		GROUP BY e.id
		ORDER BY e.id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trip ledger: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.TripID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
			&expense.SpentAt,
			&expense.CreatedAt,
			pq.Array(&expense.SplitBetween),
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

// Update modifies an expense's description or category
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateExpenseRequest) (*Expense, error) {
	query := `
		UPDATE expenses
		SET description = COALESCE($2, description),
		    category = COALESCE($3, category)
		WHERE id = $1
		RETURNING id, trip_id, payer_id, description, amount, category, spent_at, created_at
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id, req.Description, req.Category).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Category,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// Delete removes an expense from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return ensureDeleted(result)
}

// ensureDeleted returns ErrExpenseNotFound when a delete touched no rows, so
// callers can classify it with errors.Is like every other miss.
func ensureDeleted(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}
