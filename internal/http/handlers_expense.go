package http

import (
	"net/http"

	"aidat/internal/core"
	"aidat/internal/registry"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var expenses []core.Expense
	if v := r.URL.Query().Get("month"); v != "" {
		month, err := core.ParseMonthKey(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month parameter: expected YYYY-MM")
			return
		}
		expenses = s.book.Expenses().ByMonth(month)
	} else {
		expenses = s.book.Expenses().All()
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

type createExpenseRequest struct {
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	exp, err := s.book.Expenses().Add(r.Context(), registry.ExpenseFields{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil && exp.ID == "" {
		writeDomainError(w, err)
		return
	}
	writeSaved(w, r, http.StatusCreated, exp, err)
}

type updateExpenseRequest struct {
	Date        *string     `json:"date"`
	Category    *string     `json:"category"`
	Description *string     `json:"description"`
	Amount      *core.Money `json:"amount"`
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	exp, found, err := s.book.Expenses().Update(r.Context(), r.PathValue("id"), registry.ExpenseUpdate{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if !found {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil && exp.ID == "" {
		writeDomainError(w, err)
		return
	}
	writeSaved(w, r, http.StatusOK, exp, err)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed, err := s.book.Expenses().Remove(r.Context(), id)
	if !removed {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeSaved(w, r, http.StatusOK, map[string]string{"deleted": id}, err)
}
