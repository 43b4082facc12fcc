package client

import (
	"github.com/akshat1423/memoire/internal/types"
)

// ErrNotFound is returned when the store has no entry for the given id.
// Re-exported so callers compare against a single symbol.
var ErrNotFound = types.ErrNotFound
