package repository

import "errors"

// Sentinel errors shared by every repository implementation. Services
// translate them into user-facing errors.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrStaleWrite = errors.New("record changed concurrently")
)
