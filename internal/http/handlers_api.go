package http

import (
	"net/http"

	"spesa/internal/log"
)

func (s *Server) handleAPIListExpenses(w http.ResponseWriter, r *http.Request) {
	reg := s.ledger.Registry()
	expenses := s.ledger.List()

	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e, reg))
	}
	NewResponse().JSON(out).Write(w)
}

func (s *Server) handleAPICreateExpense(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	e, err := s.ledger.Add(r.Context(), p.Draft())
	if err != nil {
		if field, msg, ok := validationMessage(err); ok {
			ValidationErrorResponse(field, msg).Write(w)
			return
		}
		s.events.LogError(r.Context(), "Expense add failed", err, log.ComponentLedger, log.OpAdd, nil)
		InternalServerError("the expense could not be saved").Write(w)
		return
	}

	s.events.LogExpenseAdded(r.Context(), e)
	NewResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+e.ID).
		JSON(toExpenseJSON(e, s.ledger.Registry())).
		Write(w)
}

func (s *Server) handleAPIGetExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ledger.Get(r.PathValue("id"))
	if !ok {
		NotFoundError("expense not found").Write(w)
		return
	}
	NewResponse().JSON(toExpenseJSON(e, s.ledger.Registry())).Write(w)
}

// handleAPIDeleteExpense answers 204 whether or not the id existed.
func (s *Server) handleAPIDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed, err := s.ledger.Remove(r.Context(), id)
	if err != nil {
		s.events.LogError(r.Context(), "Expense remove failed", err, log.ComponentLedger, log.OpRemove,
			log.LogFields{log.FieldExpenseID: id})
		InternalServerError("the expense could not be removed").Write(w)
		return
	}

	s.events.LogExpenseRemoved(r.Context(), id, removed)
	NoContent().Write(w)
}

func (s *Server) handleAPIClearExpenses(w http.ResponseWriter, r *http.Request) {
	count := s.ledger.Len()
	if err := s.ledger.Clear(r.Context()); err != nil {
		s.events.LogError(r.Context(), "Ledger clear failed", err, log.ComponentLedger, log.OpClear, nil)
		InternalServerError("the expenses could not be cleared").Write(w)
		return
	}

	s.events.LogLedgerCleared(r.Context(), count)
	NoContent().Write(w)
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(toSummaryJSON(s.ledger.Summary())).Write(w)
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	cats := s.ledger.Registry().All()
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryJSON(c))
	}
	NewResponse().JSON(out).Write(w)
}
