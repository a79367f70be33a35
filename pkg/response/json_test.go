package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		validateFunc func(t *testing.T, rec *httptest.ResponseRecorder, resp APIResponse)
	}{
		{
			name:   "2xx is marked successful",
			status: http.StatusCreated,
			data:   map[string]int{"id": 7},
			validateFunc: func(t *testing.T, rec *httptest.ResponseRecorder, resp APIResponse) {
				if rec.Code != http.StatusCreated {
					t.Errorf("status = %d, want 201", rec.Code)
				}
				if !resp.Success {
					t.Error("Success = false, want true")
				}
				if resp.Error != nil {
					t.Errorf("Error = %v, want nil", resp.Error)
				}
			},
		},
		{
			name:   "non-2xx is marked unsuccessful",
			status: http.StatusTeapot,
			data:   nil,
			validateFunc: func(t *testing.T, rec *httptest.ResponseRecorder, resp APIResponse) {
				if resp.Success {
					t.Error("Success = true, want false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.status, tt.data)

			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			tt.validateFunc(t, rec, decode(t, rec))
		})
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "trip not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" || resp.Error.Message != "trip not found" {
		t.Errorf("Error = %+v, want NOT_FOUND/trip not found", resp.Error)
	}
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "Expense deleted")

	resp := decode(t, rec)
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["message"] != "Expense deleted" {
		t.Errorf("Data = %v, want message envelope", resp.Data)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		total          int
		wantTotalPages int
	}{
		{name: "partial last page rounds up", page: 1, perPage: 20, total: 41, wantTotalPages: 3},
		{name: "exact fit", page: 2, perPage: 10, total: 30, wantTotalPages: 3},
		{name: "no rows", page: 1, perPage: 20, total: 0, wantTotalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.page, tt.perPage, tt.total)
			if meta.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.wantTotalPages)
			}
			if meta.Page != tt.page || meta.PerPage != tt.perPage || meta.Total != tt.total {
				t.Errorf("meta = %+v, inputs not carried through", meta)
			}
		})
	}
}
