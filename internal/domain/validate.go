package domain

import (
	"strconv"
	"strings"
)

// Page numbers accepted by the paged and summary endpoints.
const (
	MinPage = 1
	MaxPage = 40
)

// ValidateMovieID accepts any identifier >= 1.
func ValidateMovieID(id int) error {
	if id < 1 {
		return NewValidationError("ValidateMovieID", "movie id must be a positive integer, got %d", id)
	}
	return nil
}

// ValidatePageNumber accepts page numbers in [MinPage, MaxPage].
func ValidatePageNumber(n int) error {
	if n < MinPage || n > MaxPage {
		return NewValidationError("ValidatePageNumber", "page number must be between %d and %d, got %d", MinPage, MaxPage, n)
	}
	return nil
}

// ParseMovieID converts a textual identifier and validates it.
// Non-integer input such as "1.5" is a validation failure, not a parse panic.
func ParseMovieID(s string) (int, error) {
	id, err := parseInt("ParseMovieID", "movie id", s)
	if err != nil {
		return 0, err
	}
	if err := ValidateMovieID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ParsePageNumber converts a textual page number and validates it.
func ParsePageNumber(s string) (int, error) {
	n, err := parseInt("ParsePageNumber", "page number", s)
	if err != nil {
		return 0, err
	}
	if err := ValidatePageNumber(n); err != nil {
		return 0, err
	}
	return n, nil
}

func parseInt(op, what, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &Error{Kind: KindValidation, Op: op, Msg: what + " must be an integer, got " + strconv.Quote(s), Err: err}
	}
	return n, nil
}
