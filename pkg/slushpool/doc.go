// Package slushpool is a client for the Slush Pool statistics API.
//
// It fetches the pool stats, user profile, daily rewards and workers endpoints
// with an account token and maps the raw payloads (snake_case keys, decimal
// strings, Unix seconds) into typed records with float64 values and time.Time
// instants.
package slushpool
