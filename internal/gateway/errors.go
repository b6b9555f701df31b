package gateway

import (
	"errors"
	"strings"
)

// ErrNotSignedIn is returned before any network mutation is attempted when an
// operation requires a signed-in identity and none is present.
var ErrNotSignedIn = errors.New("not signed in")

// ErrObjectExists is returned when an upload targets a storage key that is
// already taken; uploads never overwrite.
var ErrObjectExists = errors.New("storage object already exists")

// ErrNotFound is returned when a read targets a row that does not exist. It
// is distinct from transient backend errors so callers can render "not
// found" without swallowing outages.
var ErrNotFound = errors.New("record not found")

// IsNoRows reports whether err is the PostgREST "no rows" signal produced by
// single-object reads (PGRST116).
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "PGRST116")
}
