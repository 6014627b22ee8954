package http

import (
	"net/http"
	"strconv"
	"time"

	"aidat/internal/core"
)

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month parameter: expected YYYY-MM")
		return
	}

	snap := s.book.Snapshot()
	writeJSON(w, http.StatusOK, core.Monthly(snap.Residents, snap.Expenses, month))
}

func (s *Server) handleAnnualSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "invalid year parameter")
			return
		}
		year = y
	}

	snap := s.book.Snapshot()
	summary := core.Annual(snap.Residents, snap.Expenses, year, core.AnnualOptions{
		Mode:         s.annualMode,
		CurrentMonth: core.MonthKeyOf(now),
	})
	writeJSON(w, http.StatusOK, summary)
}
