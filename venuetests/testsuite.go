package venuetests

import (
	"github.com/lsv-cafe/api-contract-tests/apiclient"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
)

// Names of the check groups, in the order they run. They are also the first component of
// every check ID, which is what the -run and -skip parameters match against.
const (
	GroupHealthCheck      = "health check"
	GroupAuthentication   = "authentication"
	GroupAuthorization    = "authorization"
	GroupEventsCRUD       = "events CRUD"
	GroupConfigManagement = "config management"
	GroupErrorHandling    = "error handling"
	GroupInputValidation  = "input validation"
	GroupSecurity         = "security"
	GroupPerformance      = "performance"
	GroupDataIntegrity    = "data integrity"
)

// RunTestSuite runs every check group against the API that client points to.
func RunTestSuite(
	client *apiclient.Client,
	config SuiteConfig,
	filter checks.Filter,
	testLogger checks.TestLogger,
) checks.Results {
	context := &VenueTestContext{
		client: client,
		config: config.withDefaults(),
	}
	testConfig := checks.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Context:    context,
	}
	return checks.Run(testConfig, func(t *checks.T) {
		t.Infof("Checking API at %s", client.BaseURL())

		t.Run(GroupHealthCheck, DoHealthCheckTests)
		t.Run(GroupAuthentication, DoAuthenticationTests)
		t.Run(GroupAuthorization, DoAuthorizationTests)
		t.Run(GroupEventsCRUD, DoEventsCRUDTests)
		t.Run(GroupConfigManagement, DoConfigManagementTests)
		t.Run(GroupErrorHandling, DoErrorHandlingTests)
		t.Run(GroupInputValidation, DoInputValidationTests)
		t.Run(GroupSecurity, DoSecurityTests)
		t.Run(GroupPerformance, DoPerformanceTests)
		t.Run(GroupDataIntegrity, DoDataIntegrityTests)
	})
}
