package service

import "errors"

// Lifecycle error taxonomy. Ownership failures are deliberately reported as
// ErrNotFound so the API never reveals the existence of another user's
// content.
var (
	ErrNotFound       = errors.New("trash: item not found")
	ErrAlreadyDeleted = errors.New("trash: item is already deleted")
	ErrTrashEmpty     = errors.New("trash: nothing to act on")
	ErrUnknownKind    = errors.New("trash: unknown item kind")
)
