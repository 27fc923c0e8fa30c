package repositories

import "errors"

// ErrNotFound is wrapped by repository lookups when no row matches, so the
// service layer can tell a missing record apart from a store failure.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateCompletedOrder is returned when the partial unique index on
// completed orders rejects a second completion for the same (user, course).
var ErrDuplicateCompletedOrder = errors.New("completed order already exists")
