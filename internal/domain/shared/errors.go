// internal/domain/shared/errors.go
package shared

import "errors"

// Sentinel errors for the stable error taxonomy. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP status codes with
// errors.Is while keeping the human-readable message intact.
var (
	// ErrNotFound indicates a missing record or FK target.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName indicates a name uniqueness violation.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrDuplicateSKU indicates a SKU uniqueness violation.
	ErrDuplicateSKU = errors.New("duplicate sku")
	// ErrDuplicateLineItem indicates the same product twice in one batch.
	ErrDuplicateLineItem = errors.New("duplicate line item")
	// ErrInvalidReference indicates a referenced record does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrValidation indicates a field constraint violation that binding
	// could not express (e.g. decimal positivity).
	ErrValidation = errors.New("validation error")
	// ErrConflict indicates the record is still referenced and cannot be deleted.
	ErrConflict = errors.New("conflict")
	// ErrEmptyResult indicates a query filter matched nothing. Surfaced as
	// not-found at the API boundary, matching the existing client contract.
	ErrEmptyResult = errors.New("empty result")
)
