package http

import (
	"net/http"
	"time"

	"aidat/internal/core"
	"aidat/internal/registry"
)

// residentRow is a resident plus context for the selected month.
type residentRow struct {
	core.Resident
	Paid      core.Money `json:"paid"`
	Remaining core.Money `json:"remaining"`
}

// parseMonthParam reads the ?month= query parameter, defaulting to the
// current month.
func parseMonthParam(r *http.Request) (core.MonthKey, error) {
	v := r.URL.Query().Get("month")
	if v == "" {
		return core.MonthKeyOf(time.Now()), nil
	}
	return core.ParseMonthKey(v)
}

func (s *Server) handleListResidents(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month parameter: expected YYYY-MM")
		return
	}

	residents := s.book.Residents().All()
	rows := make([]residentRow, 0, len(residents))
	for _, res := range residents {
		rows = append(rows, residentRow{
			Resident:  res,
			Paid:      core.PaidFor(res, month),
			Remaining: core.Remaining(res, month),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"month": month, "residents": rows})
}

type createResidentRequest struct {
	FlatNo        string      `json:"flatNo"`
	FullName      string      `json:"fullName"`
	MonthlyFee    core.Money  `json:"monthlyFee"`
	Note          string      `json:"note"`
	PaidThisMonth *core.Money `json:"paidThisMonth"`
	ForMonth      string      `json:"forMonth"`
}

func (s *Server) handleCreateResident(w http.ResponseWriter, r *http.Request) {
	var req createResidentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	paid := core.Money{}
	if req.PaidThisMonth != nil {
		paid = *req.PaidThisMonth
	}
	forMonth := req.ForMonth
	if forMonth == "" {
		forMonth = string(core.MonthKeyOf(time.Now()))
	}

	res, err := s.book.Residents().Add(r.Context(), registry.ResidentFields{
		FlatNo:     req.FlatNo,
		FullName:   req.FullName,
		MonthlyFee: req.MonthlyFee,
		Note:       req.Note,
	}, paid, forMonth)
	if err != nil && res.ID == "" {
		writeDomainError(w, err)
		return
	}
	writeSaved(w, r, http.StatusCreated, res, err)
}

func (s *Server) handleGetResident(w http.ResponseWriter, r *http.Request) {
	res, ok := s.book.Residents().Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "resident not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type updateResidentRequest struct {
	FlatNo        *string     `json:"flatNo"`
	FullName      *string     `json:"fullName"`
	MonthlyFee    *core.Money `json:"monthlyFee"`
	Note          *string     `json:"note"`
	PaidThisMonth *core.Money `json:"paidThisMonth"`
	ForMonth      string      `json:"forMonth"`
}

func (s *Server) handleUpdateResident(w http.ResponseWriter, r *http.Request) {
	var req updateResidentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	paid := core.Money{}
	forMonth := ""
	if req.PaidThisMonth != nil {
		paid = *req.PaidThisMonth
		forMonth = req.ForMonth
		if forMonth == "" {
			forMonth = string(core.MonthKeyOf(time.Now()))
		}
	}

	res, found, err := s.book.Residents().Update(r.Context(), r.PathValue("id"), registry.ResidentUpdate{
		FlatNo:     req.FlatNo,
		FullName:   req.FullName,
		MonthlyFee: req.MonthlyFee,
		Note:       req.Note,
	}, paid, forMonth)
	if !found {
		writeError(w, http.StatusNotFound, "resident not found")
		return
	}
	if err != nil && res.ID == "" {
		writeDomainError(w, err)
		return
	}
	writeSaved(w, r, http.StatusOK, res, err)
}

func (s *Server) handleDeleteResident(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed, err := s.book.Residents().Remove(r.Context(), id)
	if !removed {
		writeError(w, http.StatusNotFound, "resident not found")
		return
	}
	writeSaved(w, r, http.StatusOK, map[string]string{"deleted": id}, err)
}

type setPaymentRequest struct {
	Paid core.Money `json:"paid"`
}

func (s *Server) handleSetPayment(w http.ResponseWriter, r *http.Request) {
	month, err := core.ParseMonthKey(r.PathValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month in path: expected YYYY-MM")
		return
	}
	var req setPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, found, err := s.book.Residents().SetPaid(r.Context(), r.PathValue("id"), month, req.Paid)
	if !found {
		writeError(w, http.StatusNotFound, "resident not found")
		return
	}
	if err != nil && res.ID == "" {
		writeDomainError(w, err)
		return
	}
	writeSaved(w, r, http.StatusOK, res, err)
}

func (s *Server) handleResidentHistory(w http.ResponseWriter, r *http.Request) {
	entries, ok := s.book.Residents().History(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "resident not found")
		return
	}
	if entries == nil {
		entries = []core.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}
