// Package checks provides check scopes for the contract test runner. A scope is similar to
// Go's *testing.T but runs outside of the Go test runner, and counts individual passed,
// failed and advisory results instead of only reporting whether the scope failed.
package checks
