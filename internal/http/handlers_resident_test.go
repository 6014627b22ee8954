package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aidat/internal/core"
	"aidat/internal/registry"
	"aidat/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	book := registry.NewBook(context.Background(), st, nil)
	s := NewServer(":0", book, core.LegacyCurrentMonthOnly)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s, st
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func createResident(t *testing.T, s *Server, body string) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/residents", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create resident: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data core.Resident `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Fatalf("created resident has no id: %s", rec.Body.String())
	}
	return resp.Data.ID
}

func TestCreateResident(t *testing.T) {
	s, _ := newTestServer(t)

	id := createResident(t, s,
		`{"flatNo":"3","fullName":"Ali Kaya","monthlyFee":1000,"paidThisMonth":500,"forMonth":"2024-01"}`)

	rec := doJSON(t, s, http.MethodGet, "/api/residents/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	var res core.Resident
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.MonthlyFee.Kurus != 100000 {
		t.Errorf("monthly fee: got %d kurus", res.MonthlyFee.Kurus)
	}
	if core.PaidFor(res, "2024-01").Kurus != 50000 {
		t.Errorf("seeded payment: got %d kurus", core.PaidFor(res, "2024-01").Kurus)
	}
}

func TestCreateResidentValidation(t *testing.T) {
	s, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty name", `{"flatNo":"1","fullName":"","monthlyFee":1000}`, http.StatusUnprocessableEntity},
		{"negative fee", `{"flatNo":"1","fullName":"Ad","monthlyFee":-5}`, http.StatusUnprocessableEntity},
		{"negative paid", `{"flatNo":"1","fullName":"Ad","monthlyFee":10,"paidThisMonth":-1}`, http.StatusUnprocessableEntity},
		{"malformed body", `{"flatNo":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/residents", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d, body %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestListResidentsWithMonth(t *testing.T) {
	s, _ := newTestServer(t)
	createResident(t, s,
		`{"flatNo":"3","fullName":"Ali Kaya","monthlyFee":1000,"paidThisMonth":700,"forMonth":"2024-02"}`)

	rec := doJSON(t, s, http.MethodGet, "/api/residents?month=2024-02", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var resp struct {
		Month     core.MonthKey `json:"month"`
		Residents []struct {
			FlatNo    string     `json:"flatNo"`
			Paid      core.Money `json:"paid"`
			Remaining core.Money `json:"remaining"`
		} `json:"residents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Month != "2024-02" || len(resp.Residents) != 1 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	row := resp.Residents[0]
	if row.Paid.Kurus != 70000 || row.Remaining.Kurus != 30000 {
		t.Errorf("paid/remaining: got %d/%d", row.Paid.Kurus, row.Remaining.Kurus)
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/residents?month=2024-2", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed month: status %d", rec.Code)
	}
}

func TestUpdateResident(t *testing.T) {
	s, _ := newTestServer(t)
	id := createResident(t, s, `{"flatNo":"3","fullName":"Ali Kaya","monthlyFee":1000}`)

	rec := doJSON(t, s, http.MethodPut, "/api/residents/"+id,
		`{"note":"asansör borcu","paidThisMonth":250,"forMonth":"2024-03"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data core.Resident `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Note != "asansör borcu" || resp.Data.FullName != "Ali Kaya" {
		t.Errorf("merge: %+v", resp.Data)
	}
	if core.PaidFor(resp.Data, "2024-03").Kurus != 25000 {
		t.Errorf("payment: got %d", core.PaidFor(resp.Data, "2024-03").Kurus)
	}

	if rec := doJSON(t, s, http.MethodPut, "/api/residents/yok", `{}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPut, "/api/residents/"+id, `{"fullName":""}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid update: status %d", rec.Code)
	}
}

func TestSetPaymentAndHistory(t *testing.T) {
	s, _ := newTestServer(t)
	id := createResident(t, s, `{"flatNo":"3","fullName":"Ali Kaya","monthlyFee":1000}`)

	rec := doJSON(t, s, http.MethodPut, "/api/residents/"+id+"/payments/2024-05", `{"paid":1200}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set payment: status %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(t, s, http.MethodPut, "/api/residents/"+id+"/payments/05-2024", `{"paid":1}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad month path: status %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPut, "/api/residents/"+id+"/payments/2024-06", `{"paid":-1}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative amount: status %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPut, "/api/residents/yok/payments/2024-05", `{"paid":1}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/residents/"+id+"/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history: status %d", rec.Code)
	}
	var hist struct {
		History []core.HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hist.History) != 1 || hist.History[0].Remaining.Kurus != -20000 {
		t.Fatalf("unexpected history: %s", rec.Body.String())
	}
}

func TestDeleteResident(t *testing.T) {
	s, _ := newTestServer(t)
	id := createResident(t, s, `{"flatNo":"3","fullName":"Ali Kaya","monthlyFee":1000}`)

	if rec := doJSON(t, s, http.MethodDelete, "/api/residents/"+id, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodDelete, "/api/residents/"+id, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/residents/"+id, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d", rec.Code)
	}
}

func TestMutationWithSaveFailureCarriesWarning(t *testing.T) {
	s, st := newTestServer(t)
	st.SaveErr = errors.New("disk full")

	rec := doJSON(t, s, http.MethodPost, "/api/residents",
		`{"flatNo":"3","fullName":"Ali Kaya","monthlyFee":1000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data    core.Resident `json:"data"`
		Warning string        `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("mutation result must still be returned")
	}
	if resp.Warning == "" {
		t.Error("expected persistence warning")
	}

	// The resident is live despite the failed save.
	if rec := doJSON(t, s, http.MethodGet, "/api/residents/"+resp.Data.ID, ""); rec.Code != http.StatusOK {
		t.Errorf("get after failed save: status %d", rec.Code)
	}
}
