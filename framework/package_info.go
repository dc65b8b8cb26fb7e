// Package framework contains low-level pieces of the contract test runner that do not know
// anything about the venue booking API.
//
// The general model is:
//
// 1. The runner talks to the API under test over plain HTTP, one request at a time.
//
// 2. Checks are grouped into named scopes (see the checks subpackage), which are similar to
// Go's *testing.T: a scope accumulates passes, failures and warnings, and can be skipped when
// a prerequisite from an earlier scope is missing.
//
// 3. Each scope has its own debug log, which is only printed if the run was started with
// debug output enabled.
//
// The domain-specific code that knows which endpoints to call and what to expect lives in
// the venuetests package.
package framework
