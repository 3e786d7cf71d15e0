package slushpool

import "errors"

var (
	// ErrNoToken is returned by every operation called before a token was set.
	ErrNoToken = errors.New("slushpool: no token configured")

	// ErrUnknownWorkerState is returned when a worker state is outside ok|low|off|dis.
	ErrUnknownWorkerState = errors.New("slushpool: unknown worker state")
)
