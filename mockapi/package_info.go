// Package mockapi is an in-memory implementation of the venue booking API. It is used to
// test the check runner itself, and can be configured to break parts of the contract.
package mockapi
