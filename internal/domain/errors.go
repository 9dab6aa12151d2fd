package domain

import (
	"errors"
	"fmt"
)

// Pipeline outcomes the orchestration layer turns into user-visible messages.
// None of them is fatal to the process.
var (
	// ErrNoFile means the request carried no ledger upload at all.
	ErrNoFile = errors.New("no ledger file uploaded")

	// ErrNoLedgerInRange means the upload parsed but no row fell inside the
	// requested date range.
	ErrNoLedgerInRange = errors.New("no ledger records in the selected date range")

	// ErrAuthorityEmpty means the backend has no records for the shop and range.
	ErrAuthorityEmpty = errors.New("no backend records for the shop and date range")

	// ErrShopNotFound means the shop id did not resolve to a known shop.
	ErrShopNotFound = errors.New("shop not found")
)

// ParseError reports an upload that is not usable as a ledger: content that is
// not decodable as CSV, a missing required column, or a broken money value.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse ledger: %s: %v", e.Reason, e.Err)
	}
	return "parse ledger: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
