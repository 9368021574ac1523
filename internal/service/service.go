// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import "errors"

// ErrInvalidInput marks request validation failures. Handlers translate it
// to 400 while other errors stay internal.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidCredentials is returned on any login failure. Unknown email
// and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// clampPaging normalises listing parameters: a non-positive limit takes the
// default, anything above the cap is capped, and negative offsets become 0.
func clampPaging(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
