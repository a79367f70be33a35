package ledger

import (
	"math"
	"reflect"
	"testing"
)

const (
	alice   = int64(1)
	bob     = int64(2)
	charlie = int64(3)
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name          string
		expenses      []Expense
		participants  []int64
		wantConserved bool
		validateFunc  func(t *testing.T, s *Summary)
	}{
		{
			name: "one payer three-way split",
			expenses: []Expense{
				{PayerID: alice, Amount: 90, SplitBetween: []int64{alice, bob, charlie}},
			},
			participants:  []int64{alice, bob, charlie},
			wantConserved: true,
			validateFunc: func(t *testing.T, s *Summary) {
				if s.Total != 90 {
					t.Errorf("Total = %v, want 90", s.Total)
				}
				wantPaid := map[int64]float64{alice: 90, bob: 0, charlie: 0}
				if !reflect.DeepEqual(s.Paid, wantPaid) {
					t.Errorf("Paid = %v, want %v", s.Paid, wantPaid)
				}
				for _, id := range []int64{alice, bob, charlie} {
					if math.Abs(s.Owed[id]-30) > 0.01 {
						t.Errorf("Owed[%d] = %v, want 30", id, s.Owed[id])
					}
				}
				if math.Abs(s.Balances[alice]-60) > 0.01 {
					t.Errorf("Balances[alice] = %v, want 60", s.Balances[alice])
				}
				if math.Abs(s.Balances[bob]+30) > 0.01 || math.Abs(s.Balances[charlie]+30) > 0.01 {
					t.Errorf("debtor balances = %v/%v, want -30/-30", s.Balances[bob], s.Balances[charlie])
				}
			},
		},
		{
			name: "single-person split nets to zero",
			expenses: []Expense{
				{PayerID: alice, Amount: 50, SplitBetween: []int64{alice}},
			},
			participants:  []int64{alice},
			wantConserved: true,
			validateFunc: func(t *testing.T, s *Summary) {
				if s.Balances[alice] != 0 {
					t.Errorf("Balances[alice] = %v, want 0", s.Balances[alice])
				}
			},
		},
		{
			name: "two expenses crossing payers",
			expenses: []Expense{
				{PayerID: alice, Amount: 100, SplitBetween: []int64{alice, bob}},
				{PayerID: bob, Amount: 40, SplitBetween: []int64{alice, bob}},
			},
			participants:  []int64{alice, bob},
			wantConserved: true,
			validateFunc: func(t *testing.T, s *Summary) {
				if math.Abs(s.Owed[alice]-70) > 0.01 || math.Abs(s.Owed[bob]-70) > 0.01 {
					t.Errorf("Owed = %v, want 70 each", s.Owed)
				}
				if math.Abs(s.Balances[alice]-30) > 0.01 {
					t.Errorf("Balances[alice] = %v, want 30", s.Balances[alice])
				}
				if math.Abs(s.Balances[bob]+30) > 0.01 {
					t.Errorf("Balances[bob] = %v, want -30", s.Balances[bob])
				}
			},
		},
		{
			name:          "empty expenses yields all zeros",
			expenses:      nil,
			participants:  []int64{alice, bob},
			wantConserved: true,
			validateFunc: func(t *testing.T, s *Summary) {
				if s.Total != 0 {
					t.Errorf("Total = %v, want 0", s.Total)
				}
				for _, id := range []int64{alice, bob} {
					if s.Paid[id] != 0 || s.Owed[id] != 0 || s.Balances[id] != 0 {
						t.Errorf("participant %d not all-zero: paid=%v owed=%v bal=%v",
							id, s.Paid[id], s.Owed[id], s.Balances[id])
					}
				}
			},
		},
		{
			name: "empty split credits payer and owes nobody",
			expenses: []Expense{
				{PayerID: alice, Amount: 20, SplitBetween: nil},
			},
			participants: []int64{alice, bob},
			// The orphan credit is owed by nobody, so balances sum to +20.
			wantConserved: false,
			validateFunc: func(t *testing.T, s *Summary) {
				if s.Paid[alice] != 20 {
					t.Errorf("Paid[alice] = %v, want 20", s.Paid[alice])
				}
				if s.Owed[alice] != 0 || s.Owed[bob] != 0 {
					t.Errorf("Owed = %v, want all zero", s.Owed)
				}
				if s.Balances[alice] != 20 {
					t.Errorf("Balances[alice] = %v, want 20", s.Balances[alice])
				}
			},
		},
		{
			name: "expense referencing unknown participant is initialized defensively",
			expenses: []Expense{
				{PayerID: 99, Amount: 30, SplitBetween: []int64{alice, bob, 98}},
			},
			participants:  []int64{alice, bob},
			wantConserved: true,
			validateFunc: func(t *testing.T, s *Summary) {
				if s.Paid[99] != 30 {
					t.Errorf("Paid[99] = %v, want 30", s.Paid[99])
				}
				if math.Abs(s.Balances[99]-30) > 0.01 {
					t.Errorf("Balances[99] = %v, want 30", s.Balances[99])
				}
				if math.Abs(s.Balances[98]+10) > 0.01 {
					t.Errorf("Balances[98] = %v, want -10", s.Balances[98])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeBalances(tt.expenses, tt.participants)
			tt.validateFunc(t, s)

			// Conservation holds whenever every expense carries a non-empty
			// split; an empty split leaves an orphan credit behind.
			if tt.wantConserved {
				var sum float64
				for _, bal := range s.Balances {
					sum += bal
				}
				if math.Abs(sum) > 1e-6 {
					t.Errorf("balances sum to %v, want ~0", sum)
				}
			}
		})
	}
}

func TestComputeTransfers(t *testing.T) {
	tests := []struct {
		name         string
		balances     map[int64]float64
		validateFunc func(t *testing.T, transfers []Transfer)
	}{
		{
			name:     "two debtors one creditor",
			balances: map[int64]float64{alice: 60, bob: -30, charlie: -30},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("got %d transfers, want 2", len(transfers))
				}
				var total float64
				for _, tr := range transfers {
					if tr.To != alice {
						t.Errorf("transfer to %d, want alice", tr.To)
					}
					if math.Abs(tr.Amount-30) > 0.01 {
						t.Errorf("transfer amount = %v, want 30", tr.Amount)
					}
					total += tr.Amount
				}
				if math.Abs(total-60) > 0.01 {
					t.Errorf("total transferred = %v, want 60", total)
				}
			},
		},
		{
			name:     "single pair",
			balances: map[int64]float64{alice: 30, bob: -30},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				want := []Transfer{{From: bob, To: alice, Amount: 30}}
				if !reflect.DeepEqual(transfers, want) {
					t.Errorf("transfers = %v, want %v", transfers, want)
				}
			},
		},
		{
			name:     "all settled up",
			balances: map[int64]float64{alice: 0, bob: 0},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 0 {
					t.Errorf("got %d transfers, want 0", len(transfers))
				}
			},
		},
		{
			name:     "residue below one cent is ignored",
			balances: map[int64]float64{alice: 0.005, bob: -0.005, charlie: 0},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 0 {
					t.Errorf("got %d transfers, want 0", len(transfers))
				}
			},
		},
		{
			name:     "largest debt pairs with largest credit first",
			balances: map[int64]float64{alice: 70, bob: 10, charlie: -50, 4: -30},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) == 0 {
					t.Fatal("expected transfers")
				}
				first := transfers[0]
				if first.From != charlie || first.To != alice {
					t.Errorf("first transfer %d->%d, want charlie->alice", first.From, first.To)
				}
				if math.Abs(first.Amount-50) > 0.01 {
					t.Errorf("first amount = %v, want 50", first.Amount)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := ComputeTransfers(tt.balances)
			tt.validateFunc(t, transfers)
			checkTransferProperties(t, tt.balances, transfers)
		})
	}
}

// checkTransferProperties asserts the invariants every transfer list must hold:
// no self-transfers, the greedy bound on transfer count, and that applying all
// transfers drives every balance to within Epsilon of zero.
func checkTransferProperties(t *testing.T, balances map[int64]float64, transfers []Transfer) {
	t.Helper()

	var debtors, creditors int
	for _, bal := range balances {
		switch {
		case bal < -Epsilon:
			debtors++
		case bal > Epsilon:
			creditors++
		}
	}
	if debtors > 0 && creditors > 0 && len(transfers) > debtors+creditors-1 {
		t.Errorf("got %d transfers, greedy bound is %d", len(transfers), debtors+creditors-1)
	}

	applied := make(map[int64]float64, len(balances))
	for id, bal := range balances {
		applied[id] = bal
	}
	for _, tr := range transfers {
		if tr.From == tr.To {
			t.Errorf("self-transfer for participant %d", tr.From)
		}
		if tr.Amount <= 0 {
			t.Errorf("non-positive transfer amount %v", tr.Amount)
		}
		applied[tr.From] += tr.Amount
		applied[tr.To] -= tr.Amount
	}
	for id, bal := range applied {
		if math.Abs(bal) > 2*Epsilon {
			t.Errorf("participant %d left with balance %v after settling", id, bal)
		}
	}
}

func TestSettleIsIdempotent(t *testing.T) {
	expenses := []Expense{
		{PayerID: alice, Amount: 90, SplitBetween: []int64{alice, bob, charlie}},
		{PayerID: bob, Amount: 45.5, SplitBetween: []int64{bob, charlie}},
		{PayerID: charlie, Amount: 12.34, SplitBetween: []int64{alice, bob, charlie}},
	}
	participants := []int64{alice, bob, charlie}

	first, firstTransfers := Settle(expenses, participants)
	second, secondTransfers := Settle(expenses, participants)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("summaries differ across identical calls: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(firstTransfers, secondTransfers) {
		t.Errorf("transfers differ across identical calls: %v vs %v", firstTransfers, secondTransfers)
	}
}

func TestSettleUnevenThreeWay(t *testing.T) {
	// 100 / 3 leaves repeating decimals; transfers must still settle
	// everyone to within a cent and round only at emission.
	expenses := []Expense{
		{PayerID: alice, Amount: 100, SplitBetween: []int64{alice, bob, charlie}},
	}
	summary, transfers := Settle(expenses, []int64{alice, bob, charlie})

	if len(transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(transfers))
	}
	for _, tr := range transfers {
		if math.Abs(tr.Amount-33.33) > 0.01 {
			t.Errorf("transfer amount = %v, want ~33.33", tr.Amount)
		}
	}
	checkTransferProperties(t, summary.Balances, transfers)
}
