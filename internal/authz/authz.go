// Package authz implements the mutation-authorization protocol: a pure
// decision over (stored code, supplied code) with no identity or session
// state behind it.
package authz

import (
	"errors"
	"fmt"
)

// ErrForbidden is the outward face of every authorization failure. Callers
// must not distinguish a missing code from a wrong one when talking to
// clients; the finer-grained sentinels below exist for logs and tests only.
var ErrForbidden = errors.New("forbidden")

var (
	ErrCodeRequired = fmt.Errorf("modification code required: %w", ErrForbidden)
	ErrCodeInvalid  = fmt.Errorf("invalid modification code: %w", ErrForbidden)
)

// Authorize decides whether a mutation may proceed. The comparison is an
// exact, case-sensitive string match against the code issued at creation.
func Authorize(recordCode, suppliedCode string) error {
	if suppliedCode == "" {
		return ErrCodeRequired
	}
	if suppliedCode != recordCode {
		return ErrCodeInvalid
	}
	return nil
}
