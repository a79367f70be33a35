package settlement

import (
	"testing"

	"github.com/wanderbliss/fairshare/internal/ledger"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name         string
		transfers    []ledger.Transfer
		stored       []*Settlement
		validateFunc func(t *testing.T, got []*Settlement)
	}{
		{
			name: "fresh pairs default to pending",
			transfers: []ledger.Transfer{
				{From: 2, To: 1, Amount: 30},
			},
			stored: nil,
			validateFunc: func(t *testing.T, got []*Settlement) {
				if len(got) != 1 {
					t.Fatalf("got %d settlements, want 1", len(got))
				}
				if got[0].Status != StatusPending {
					t.Errorf("status = %s, want PENDING", got[0].Status)
				}
			},
		},
		{
			name: "settled status survives an amount change",
			transfers: []ledger.Transfer{
				{From: 2, To: 1, Amount: 45.50},
			},
			stored: []*Settlement{
				{TripID: 7, FromID: 2, ToID: 1, Amount: 30, Status: StatusSettled},
			},
			validateFunc: func(t *testing.T, got []*Settlement) {
				if len(got) != 1 {
					t.Fatalf("got %d settlements, want 1", len(got))
				}
				if got[0].Status != StatusSettled {
					t.Errorf("status = %s, want SETTLED", got[0].Status)
				}
				if got[0].Amount != 45.50 {
					t.Errorf("amount = %v, want refreshed 45.50", got[0].Amount)
				}
			},
		},
		{
			name: "reversed pair is a different settlement thread",
			transfers: []ledger.Transfer{
				{From: 1, To: 2, Amount: 10},
			},
			stored: []*Settlement{
				{TripID: 7, FromID: 2, ToID: 1, Amount: 10, Status: StatusSettled},
			},
			validateFunc: func(t *testing.T, got []*Settlement) {
				if len(got) != 1 {
					t.Fatalf("got %d settlements, want 1", len(got))
				}
				if got[0].Status != StatusPending {
					t.Errorf("status = %s, want PENDING for reversed pair", got[0].Status)
				}
			},
		},
		{
			name:      "stored pair absent from new computation is dropped",
			transfers: nil,
			stored: []*Settlement{
				{TripID: 7, FromID: 2, ToID: 1, Amount: 30, Status: StatusPending},
			},
			validateFunc: func(t *testing.T, got []*Settlement) {
				if len(got) != 0 {
					t.Errorf("got %d settlements, want 0", len(got))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconcile(7, tt.transfers, tt.stored)
			for _, s := range got {
				if s.TripID != 7 {
					t.Errorf("TripID = %d, want 7", s.TripID)
				}
			}
			tt.validateFunc(t, got)
		})
	}
}
