package venuetests

import (
	"time"

	"github.com/lsv-cafe/api-contract-tests/apiclient"
	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
)

const (
	defaultCORSOrigin              = "http://localhost:3000"
	defaultSingleRequestThreshold  = time.Second
	defaultAverageRequestThreshold = time.Millisecond * 500
	defaultLoadRequestCount        = 10
)

// SuiteConfig contains the parameters of a run that are not part of the API contract itself.
type SuiteConfig struct {
	// AdminCredentials is an account with the admin role.
	AdminCredentials apidef.LoginParams

	// UserCredentials is an account without the admin role. If it does not exist, the checks
	// that need it are skipped with a warning.
	UserCredentials apidef.LoginParams

	// CORSOrigin is sent as the Origin of the preflight request.
	CORSOrigin string

	// SingleRequestThreshold is the latency above which a single request is reported as slow.
	SingleRequestThreshold time.Duration

	// AverageRequestThreshold is the average latency above which the sequential load check is
	// reported as slow.
	AverageRequestThreshold time.Duration

	// LoadRequestCount is the number of sequential requests in the load check.
	LoadRequestCount int

	// Now is used to compute event dates and unique names. Defaults to time.Now.
	Now func() time.Time
}

// DefaultSuiteConfig returns the accounts and thresholds that match the seed data of a
// development server.
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		AdminCredentials:        apidef.LoginParams{Username: "admin", Password: "admin123"},
		UserCredentials:         apidef.LoginParams{Username: "testuser", Password: "test123"},
		CORSOrigin:              defaultCORSOrigin,
		SingleRequestThreshold:  defaultSingleRequestThreshold,
		AverageRequestThreshold: defaultAverageRequestThreshold,
		LoadRequestCount:        defaultLoadRequestCount,
	}
}

func (c SuiteConfig) withDefaults() SuiteConfig {
	d := DefaultSuiteConfig()
	if c.CORSOrigin == "" {
		c.CORSOrigin = d.CORSOrigin
	}
	if c.SingleRequestThreshold <= 0 {
		c.SingleRequestThreshold = d.SingleRequestThreshold
	}
	if c.AverageRequestThreshold <= 0 {
		c.AverageRequestThreshold = d.AverageRequestThreshold
	}
	if c.LoadRequestCount <= 0 {
		c.LoadRequestCount = d.LoadRequestCount
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// VenueTestContext is the run-scoped state shared by all check groups. The tokens are set by
// the authentication group and read by every later group.
type VenueTestContext struct {
	client     *apiclient.Client
	config     SuiteConfig
	adminToken string
	userToken  string
}

func requireContext(t *checks.T) *VenueTestContext {
	if c, ok := t.Context().(*VenueTestContext); ok {
		return c
	}
	panic("VenueTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// anyToken returns the user token if there is one, otherwise the admin token, otherwise "".
func (c *VenueTestContext) anyToken() string {
	if c.userToken != "" {
		return c.userToken
	}
	return c.adminToken
}

func (c *VenueTestContext) now() time.Time {
	return c.config.Now()
}
