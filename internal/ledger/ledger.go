// Package ledger computes net balances and settlement transfers for a trip's
// expense snapshot. It is pure: no I/O, no state across calls. Callers pass
// the current expenses and participant roster and get fresh results back.
package ledger

import (
	"math"
	"sort"
)

// Epsilon is one minor currency unit. Balances within Epsilon of zero are
// treated as settled and never produce a transfer.
const Epsilon = 0.01

// Expense is the minimal expense view the ledger needs.
type Expense struct {
	PayerID      int64
	Amount       float64
	SplitBetween []int64 // participants sharing the amount equally
}

// Summary holds the derived per-participant amounts for one trip.
type Summary struct {
	Total    float64           `json:"total"`
	Paid     map[int64]float64 `json:"paid"`
	Owed     map[int64]float64 `json:"owed"`
	Balances map[int64]float64 `json:"balances"` // positive = owed money, negative = owes money
}

// Transfer is a single debtor-to-creditor settlement instruction.
// The (From, To) pair is the stable identity across recomputations;
// Amount is always refreshed from the latest snapshot.
type Transfer struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Amount float64 `json:"amount"`
}

// ComputeBalances derives what each participant paid, owes and nets out to.
// Every roster id gets a zero entry; ids referenced by an expense but missing
// from the roster are initialized on first sight rather than rejected.
// An expense with an empty split set credits the payer but owes nobody.
func ComputeBalances(expenses []Expense, participantIDs []int64) *Summary {
	s := &Summary{
		Paid:     make(map[int64]float64, len(participantIDs)),
		Owed:     make(map[int64]float64, len(participantIDs)),
		Balances: make(map[int64]float64, len(participantIDs)),
	}

	for _, id := range participantIDs {
		s.Paid[id] = 0
		s.Owed[id] = 0
	}

	for _, e := range expenses {
		s.Total += e.Amount
		s.Paid[e.PayerID] += e.Amount

		// Guard against division by zero: a zero-length split simply
		// contributes no owed increments.
		if len(e.SplitBetween) == 0 {
			continue
		}
		share := e.Amount / float64(len(e.SplitBetween))
		for _, id := range e.SplitBetween {
			s.Owed[id] += share
		}
	}

	for id, paid := range s.Paid {
		s.Balances[id] = paid - s.Owed[id]
	}
	for id, owed := range s.Owed {
		if _, ok := s.Balances[id]; !ok {
			s.Balances[id] = -owed
		}
	}

	return s
}

// ComputeTransfers converts a balance map into a minimal-in-practice list of
// transfers using greedy largest-first matching: the biggest debt is paired
// with the biggest credit until both sides are exhausted. Ties are broken by
// id so identical input always yields identical output.
func ComputeTransfers(balances map[int64]float64) []Transfer {
	var debtors, creditors []int64
	remaining := make(map[int64]float64, len(balances))

	for id, bal := range balances {
		remaining[id] = bal
		switch {
		case bal < -Epsilon:
			debtors = append(debtors, id)
		case bal > Epsilon:
			creditors = append(creditors, id)
		}
	}

	sort.Slice(debtors, func(a, b int) bool {
		da, db := remaining[debtors[a]], remaining[debtors[b]]
		if da != db {
			return da < db // most negative first
		}
		return debtors[a] < debtors[b]
	})
	sort.Slice(creditors, func(a, b int) bool {
		ca, cb := remaining[creditors[a]], remaining[creditors[b]]
		if ca != cb {
			return ca > cb // most positive first
		}
		return creditors[a] < creditors[b]
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i], creditors[j]

		amount := math.Min(-remaining[debtor], remaining[creditor])
		if amount > Epsilon {
			transfers = append(transfers, Transfer{
				From:   debtor,
				To:     creditor,
				Amount: round2(amount),
			})
		}

		// Running balances stay unrounded; rounding happens at emission
		// only so errors do not compound across transfers.
		remaining[debtor] += amount
		remaining[creditor] -= amount

		if -remaining[debtor] < Epsilon {
			i++
		}
		if remaining[creditor] < Epsilon {
			j++
		}
	}

	return transfers
}

// Settle composes ComputeBalances and ComputeTransfers over one snapshot.
func Settle(expenses []Expense, participantIDs []int64) (*Summary, []Transfer) {
	summary := ComputeBalances(expenses, participantIDs)
	return summary, ComputeTransfers(summary.Balances)
}

// round2 rounds to 2 decimal places (minor currency unit).
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
