package repository

import "errors"

// ErrNotFound is wrapped by every lookup or mutation that matches no row.
var ErrNotFound = errors.New("not found")
