package venuetests

import (
	"net/http"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
)

// DoHealthCheckTests calls the public list endpoints without credentials. These calls are
// read-only, so the group can be repeated within a run with the same outcome.
func DoHealthCheckTests(t *checks.T) {
	publicEndpoints := []struct {
		description string
		path        string
	}{
		{"Public Config Endpoint (Departments)", apidef.PathDepartments},
		{"Public Config Endpoint (Resources)", apidef.PathResources},
		{"Public Config Endpoint (Locations)", apidef.PathLocations},
		{"Public Events Endpoint", apidef.PathEvents},
	}
	for _, e := range publicEndpoints {
		Expect(t, e.description, http.StatusOK, get(e.path, ""), isArray)
	}
}
