// Package venuetests contains the contract checks for the venue booking API and their
// supporting helpers.
//
// The checks run strictly in order, one request at a time. Later groups depend on tokens and
// IDs captured by earlier groups; if one of those is missing, the dependent group is skipped
// and a warning is recorded instead of a failure.
//
// Infrastructure that is not specific to this API, such as check scopes and console output,
// is in the framework packages.
package venuetests
