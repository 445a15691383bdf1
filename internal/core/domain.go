package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for input and persistence.
const DateLayout = "2006-01-02"

// MaxNameLength bounds the expense label.
const MaxNameLength = 200

type (
	// Date is a calendar date without time-of-day semantics.
	Date struct {
		time.Time
	}

	// Expense is a single spending event owned by a Ledger.
	Expense struct {
		ID         string
		Name       string
		Amount     decimal.Decimal
		CategoryID string
		Date       Date
	}

	// Draft carries raw user input for a new expense. The ledger parses and
	// validates it; views pass form values through untouched.
	Draft struct {
		Name       string
		Amount     string
		CategoryID string
		Date       string
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrNameTooLong   = fmt.Errorf("name too long (max %d characters)", MaxNameLength)
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// ValidationError reports user input rejected by the ledger.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Label returns a short "Jan 2" label for lists.
func (d Date) Label() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks an already-built expense, e.g. one read back from storage.
// An empty name is tolerated here; only new input must carry one.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("empty id")
	}
	if !ValidAmount(e.Amount) {
		return ErrInvalidAmount
	}
	return e.Date.Validate()
}

// parse turns raw input into expense fields. The returned error is always a
// *ValidationError.
func (d Draft) parse() (name string, amount decimal.Decimal, date Date, err error) {
	name = strings.TrimSpace(d.Name)
	if name == "" {
		return "", decimal.Zero, Date{}, &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if len([]rune(name)) > MaxNameLength {
		return "", decimal.Zero, Date{}, &ValidationError{Field: "name", Err: ErrNameTooLong}
	}
	amount, err = ParseAmount(d.Amount)
	if err != nil {
		return "", decimal.Zero, Date{}, &ValidationError{Field: "amount", Err: err}
	}
	date, err = ParseDate(d.Date)
	if err != nil {
		return "", decimal.Zero, Date{}, &ValidationError{Field: "date", Err: err}
	}
	return name, amount, date, nil
}
