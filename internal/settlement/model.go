package settlement

import "time"

// Status represents the lifecycle status of a settlement.
// The only transition is PENDING -> SETTLED; it is never reversed.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSettled Status = "SETTLED"
)

// Settlement is a derived debtor-to-creditor transfer for a trip. Rows are
// recomputed from the expense ledger on every read; the (TripID, FromID, ToID)
// key is stable across recomputations and carries the user-set status, while
// Amount always reflects the latest ledger snapshot.
type Settlement struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"trip_id"`
	FromID    int64     `json:"from_id"` // who owes
	ToID      int64     `json:"to_id"`   // who is owed
	Amount    float64   `json:"amount"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated via JOIN
	FromUsername string `json:"from_username,omitempty"`
	ToUsername   string `json:"to_username,omitempty"`
}
