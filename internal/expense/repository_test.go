package expense

import (
	"errors"
	"testing"
)

type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

func TestEnsureDeleted(t *testing.T) {
	tests := []struct {
		name         string
		result       fakeResult
		validateFunc func(t *testing.T, err error)
	}{
		{
			name:   "deleted row yields no error",
			result: fakeResult{rows: 1},
			validateFunc: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
			},
		},
		{
			name:   "zero rows maps to the not-found sentinel",
			result: fakeResult{rows: 0},
			validateFunc: func(t *testing.T, err error) {
				if !errors.Is(err, ErrExpenseNotFound) {
					t.Errorf("err = %v, want ErrExpenseNotFound", err)
				}
			},
		},
		{
			name:   "driver failure is wrapped, not classified as not found",
			result: fakeResult{err: errors.New("connection reset")},
			validateFunc: func(t *testing.T, err error) {
				if err == nil {
					t.Fatal("err = nil, want wrapped driver error")
				}
				if errors.Is(err, ErrExpenseNotFound) {
					t.Errorf("err = %v, must not match ErrExpenseNotFound", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, ensureDeleted(tt.result))
		})
	}
}
