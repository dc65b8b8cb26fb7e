// Package apidef contains the request and response types of the venue booking API, as seen
// by the contract test runner. Only the properties that the runner sends or inspects are
// defined here.
package apidef
