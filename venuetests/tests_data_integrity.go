package venuetests

import (
	"net/http"
	"strings"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoDataIntegrityTests checks that events in the list have the properties the frontend
// relies on. If the list cannot be fetched nothing is recorded, since the earlier groups
// already report on that endpoint.
func DoDataIntegrityTests(t *checks.T) {
	c := requireContext(t)
	token := c.anyToken()
	if token == "" {
		return
	}

	resp, err := c.client.Get(apidef.PathEvents, token, t.DebugLogger())
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Debug("could not fetch events; not checking integrity")
		return
	}
	events, err := resp.JSON()
	if err != nil {
		t.Debug("%s", err)
		return
	}
	if events.Type() != ldvalue.ArrayType {
		t.Errorf("Event list is not an array: %s", events.JSONString())
		return
	}
	if events.Count() == 0 {
		t.Warnf("No events found for integrity check")
		return
	}

	if missing := missingProperties(events.GetByIndex(0), apidef.RequiredEventFields); len(missing) != 0 {
		t.Errorf("Event missing required fields: [%s]", strings.Join(missing, ", "))
		return
	}
	t.Pass("Event data integrity check passed")
}
