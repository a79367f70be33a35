package expense

import (
	"time"

	"github.com/wanderbliss/fairshare/internal/ledger"
)

// Expense represents a shared expense within a trip, split equally among
// the participants listed in SplitBetween.
type Expense struct {
	ID           int64     `json:"id"`
	TripID       int64     `json:"trip_id"`
	PayerID      int64     `json:"payer_id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	Category     string    `json:"category"`
	SpentAt      time.Time `json:"spent_at"`
	CreatedAt    time.Time `json:"created_at"`
	SplitBetween []int64   `json:"split_between"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// ToLedger converts an expense to the ledger's minimal view.
func (e *Expense) ToLedger() ledger.Expense {
	return ledger.Expense{
		PayerID:      e.PayerID,
		Amount:       e.Amount,
		SplitBetween: e.SplitBetween,
	}
}
