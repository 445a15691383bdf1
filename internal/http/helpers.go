package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"spesa/internal/core"
)

var templateFuncs = template.FuncMap{
	"money": core.FormatMoney,
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// validationMessage turns a ledger validation error into text for the user.
// ok is false for any other error.
func validationMessage(err error) (field, msg string, ok bool) {
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		return "", "", false
	}

	switch {
	case errors.Is(err, core.ErrEmptyName):
		msg = "Please enter a name for the expense."
	case errors.Is(err, core.ErrNameTooLong):
		msg = fmt.Sprintf("The name can be at most %d characters long.", core.MaxNameLength)
	case errors.Is(err, core.ErrInvalidAmount):
		msg = "The amount must be a number greater than zero."
	case errors.Is(err, core.ErrInvalidDate):
		msg = "Please pick a valid date."
	default:
		msg = ve.Error()
	}
	return ve.Field, msg, true
}
