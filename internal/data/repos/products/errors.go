package products

import "errors"

// ErrNoRowsAffected is returned when a write that must touch exactly one row touched none.
var ErrNoRowsAffected = errors.New("no rows affected")
