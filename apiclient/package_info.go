// Package apiclient is the HTTP transport that the contract test runner uses to talk to the
// API under test. It knows nothing about what the responses should be; the venuetests
// package decides that.
package apiclient
