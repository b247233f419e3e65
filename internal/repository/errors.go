// Package repository implements the record store over MySQL. Each
// aggregate gets one repo struct bound to a *sql.DB. Missing rows
// surface as sql.ErrNoRows; sentinel errors below cover the cases the
// database reports that services need to tell apart.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would violate
// the unique index on users.email. Services translate this into a
// conflict error.
var ErrEmailExists = errors.New("email already exists")
