package settlement

import "github.com/wanderbliss/fairshare/internal/ledger"

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID           int64   `json:"id"`
	TripID       int64   `json:"trip_id"`
	FromID       int64   `json:"from_id"`
	FromUsername string  `json:"from_username,omitempty"`
	ToID         int64   `json:"to_id"`
	ToUsername   string  `json:"to_username,omitempty"`
	Amount       float64 `json:"amount"`
	Status       Status  `json:"status"`
	UpdatedAt    string  `json:"updated_at"`
}

// SummaryResponse represents the balance summary of a trip
type SummaryResponse struct {
	TripID   int64             `json:"trip_id"`
	Total    float64           `json:"total"`
	Paid     map[int64]float64 `json:"paid"`
	Owed     map[int64]float64 `json:"owed"`
	Balances map[int64]float64 `json:"balances"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		TripID:       s.TripID,
		FromID:       s.FromID,
		FromUsername: s.FromUsername,
		ToID:         s.ToID,
		ToUsername:   s.ToUsername,
		Amount:       s.Amount,
		Status:       s.Status,
		UpdatedAt:    s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// NewSummaryResponse builds a SummaryResponse from a ledger summary
func NewSummaryResponse(tripID int64, s *ledger.Summary) *SummaryResponse {
	return &SummaryResponse{
		TripID:   tripID,
		Total:    s.Total,
		Paid:     s.Paid,
		Owed:     s.Owed,
		Balances: s.Balances,
	}
}
