package expense

import "time"

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	Description  string     `json:"description" validate:"required,min=1,max=255"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	Category     string     `json:"category"`
	SpentAt      *time.Time `json:"spent_at,omitempty"`
	SplitBetween []int64    `json:"split_between" validate:"required,min=1"`
}

// UpdateExpenseRequest represents the request to update an expense
type UpdateExpenseRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Category    *string `json:"category,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            int64   `json:"id"`
	TripID        int64   `json:"trip_id"`
	PayerID       int64   `json:"payer_id"`
	PayerUsername string  `json:"payer_username,omitempty"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	SpentAt       string  `json:"spent_at"`
	CreatedAt     string  `json:"created_at"`
	SplitBetween  []int64 `json:"split_between"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		TripID:        e.TripID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		SpentAt:       e.SpentAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		SplitBetween:  e.SplitBetween,
	}
}
