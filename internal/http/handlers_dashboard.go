package http

import (
	"bytes"
	"net/http"

	"spesa/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, http.StatusOK, newDashboard(s.ledger, formValues{}))
}

// renderDashboard executes the index template into a buffer first so a
// template failure still yields a clean 500.
func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, data dashboard) {
	logger := log.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err,
			log.FieldOperation, log.OpRender)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	draft := p.Draft()
	e, err := s.ledger.Add(r.Context(), draft)
	if err != nil {
		if _, msg, ok := validationMessage(err); ok {
			data := newDashboard(s.ledger, formValues(draft))
			data.Error = msg
			s.renderDashboard(w, r, http.StatusUnprocessableEntity, data)
			return
		}
		s.events.LogError(r.Context(), "Expense add failed", err, log.ComponentLedger, log.OpAdd, nil)
		data := newDashboard(s.ledger, formValues(draft))
		data.Error = "The expense could not be saved. Please try again."
		s.renderDashboard(w, r, http.StatusInternalServerError, data)
		return
	}

	s.events.LogExpenseAdded(r.Context(), e)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed, err := s.ledger.Remove(r.Context(), id)
	if err != nil {
		s.events.LogError(r.Context(), "Expense remove failed", err, log.ComponentLedger, log.OpRemove,
			log.LogFields{log.FieldExpenseID: id})
		http.Error(w, "the expense could not be removed", http.StatusInternalServerError)
		return
	}

	s.events.LogExpenseRemoved(r.Context(), id, removed)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	count := s.ledger.Len()
	if err := s.ledger.Clear(r.Context()); err != nil {
		s.events.LogError(r.Context(), "Ledger clear failed", err, log.ComponentLedger, log.OpClear, nil)
		http.Error(w, "the expenses could not be cleared", http.StatusInternalServerError)
		return
	}

	s.events.LogLedgerCleared(r.Context(), count)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
