package venuetests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lsv-cafe/api-contract-tests/apiclient"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// expectAgainst runs a single Expect call against handler and returns its results.
func expectAgainst(
	handler http.Handler,
	expectedStatus int,
	validate Validator,
) (checks.Results, bool, ldvalue.Value) {
	var ok bool
	var body ldvalue.Value
	var results checks.Results
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		context := &VenueTestContext{
			client: apiclient.NewClient(server.URL, time.Second, nil),
			config: DefaultSuiteConfig().withDefaults(),
		}
		results = checks.Run(checks.TestConfiguration{Context: context}, func(t *checks.T) {
			t.Run("scope", func(t *checks.T) {
				ok, body = Expect(t, "Do something", expectedStatus, get("/things", ""), validate)
			})
		})
	})
	return results, ok, body
}

func jsonHandler(status int, body string) http.Handler {
	return httphelpers.HandlerWithResponse(status, http.Header{"Content-Type": {"application/json"}}, []byte(body))
}

func TestExpectPassesOnMatchingStatus(t *testing.T) {
	results, ok, body := expectAgainst(jsonHandler(200, `{"id":"x"}`), 200, nil)

	assert.True(t, ok)
	assert.Equal(t, "x", body.GetByKey("id").StringValue())
	assert.Equal(t, 1, results.Passed)
	assert.Equal(t, 0, results.Failed)
}

func TestExpectReturnsNullForEmptyBody(t *testing.T) {
	_, ok, body := expectAgainst(httphelpers.HandlerWithStatus(200), 200, nil)

	assert.True(t, ok)
	assert.True(t, body.IsNull())
}

func TestExpectToleratesNonJSONBodyWithoutValidator(t *testing.T) {
	results, ok, body := expectAgainst(jsonHandler(200, `<html>`), 200, nil)

	assert.True(t, ok)
	assert.True(t, body.IsNull())
	assert.Equal(t, 1, results.Passed)
}

func TestExpectFailsOnStatusMismatch(t *testing.T) {
	results, ok, body := expectAgainst(jsonHandler(500, strings.Repeat("e", 300)), 200, nil)

	assert.False(t, ok)
	assert.True(t, body.IsNull())
	assert.Equal(t, 0, results.Passed)
	assert.Equal(t, 1, results.Failed)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "Do something - Expected 200, got 500\nResponse: "+strings.Repeat("e", 200),
		results.Failures[0].Errors[0].Error())
}

func TestExpectFailsOnStatusMismatchWithoutBody(t *testing.T) {
	results, _, _ := expectAgainst(httphelpers.HandlerWithStatus(404), 200, nil)

	require.Len(t, results.Failures, 1)
	assert.Equal(t, "Do something - Expected 200, got 404", results.Failures[0].Errors[0].Error())
}

func TestExpectFailsOnValidationError(t *testing.T) {
	results, ok, _ := expectAgainst(jsonHandler(200, `{"id":"x"}`), 200, isArray)

	assert.False(t, ok)
	assert.Equal(t, 0, results.Passed)
	assert.Equal(t, 1, results.Failed)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "Do something - Validation failed: expected a JSON array")
}

func TestExpectFailsOnTransportError(t *testing.T) {
	results, ok, _ := expectAgainst(httphelpers.BrokenConnectionHandler(), 200, nil)

	assert.False(t, ok)
	assert.Equal(t, 1, results.Failed)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "Do something - Request failed: ")
}

func TestValidators(t *testing.T) {
	object := ldvalue.Parse([]byte(`{"id":"a","token":"","n":1}`))

	assert.NoError(t, isArray(ldvalue.ArrayOf()))
	assert.Error(t, isArray(object))

	assert.NoError(t, hasStringProperty("id")(object))
	assert.Error(t, hasStringProperty("token")(object))
	assert.Error(t, hasStringProperty("n")(object))
	assert.Error(t, hasStringProperty("id")(ldvalue.ArrayOf()))

	assert.NoError(t, hasPropertyValue("id", ldvalue.String("a"))(object))
	assert.Error(t, hasPropertyValue("id", ldvalue.String("b"))(object))
}

func TestMissingProperties(t *testing.T) {
	event := ldvalue.Parse([]byte(`{"id":"a","title":"b","startDate":"c"}`))

	assert.Equal(t, []string{"endDate", "status"}, missingProperties(event, []string{"id", "title", "startDate", "endDate", "status"}))
	assert.Nil(t, missingProperties(event, []string{"id"}))
	assert.Equal(t, []string{"id"}, missingProperties(ldvalue.Null(), []string{"id"}))
}
