// Package repository contains the data access layer.  This file defines the
// sentinel errors shared across repositories so that the service and handler
// layers can branch on failure kind instead of parsing message strings:
// absent rows map to HTTP 404 and duplicate listing names map to HTTP 409.
package repository

import "errors"

// ErrPropertyNotFound is returned when a property id does not resolve to a row.
var ErrPropertyNotFound = errors.New("property not found")

// ErrOwnerNotFound is returned when an owner id does not resolve to a row.
var ErrOwnerNotFound = errors.New("owner not found")

// ErrPropertyNameExists is returned when creating a property whose name is
// already taken.  The name check happens at creation only; updates may
// rename onto an existing name.
var ErrPropertyNameExists = errors.New("property name already exists")
