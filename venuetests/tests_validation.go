package venuetests

import (
	"net/http"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"

	"github.com/google/uuid"
)

const malformedID = "invalid-uuid-12345"

// DoErrorHandlingTests checks the status codes for unknown resources, invalid bodies and
// missing credentials.
//
// The unknown event ID is a freshly generated UUID, so it is well-formed and the server has
// to look it up rather than reject its format.
func DoErrorHandlingTests(t *checks.T) {
	c := requireContext(t)
	token := c.anyToken()
	unknownEventID := uuid.NewString()

	Expect(t, "Non-existent event returns 404", http.StatusNotFound,
		get(apidef.EventPath(unknownEventID), token), nil)
	Expect(t, "Update non-existent event returns 404", http.StatusNotFound,
		put(apidef.EventPath(unknownEventID), apidef.UpdateEventParams{Title: apidef.Title("Test")}, token), nil)
	Expect(t, "Create event with empty title", http.StatusBadRequest,
		post(apidef.PathEvents, apidef.CreateEventParams{Title: apidef.Title("")}, token), nil)
	Expect(t, "Create event without authentication", http.StatusUnauthorized,
		post(apidef.PathEvents, apidef.CreateEventParams{Title: apidef.Title("Test")}, ""), nil)
}

// DoInputValidationTests submits events that are well-formed JSON but violate the API's
// validation rules.
func DoInputValidationTests(t *checks.T) {
	c := requireContext(t)
	token := c.anyToken()
	requireToken(t, token, "no authentication token")
	departmentID, locationID := requireDepartmentAndLocation(t)

	start := c.now().UTC().Add(eventLeadTime)
	end := start.Add(eventDuration)

	endBeforeStart := apidef.CreateEventParams{
		Title:        apidef.Title("Test"),
		StartDate:    end.Format(apidef.DateFormat),
		EndDate:      start.Format(apidef.DateFormat),
		DepartmentID: departmentID,
		LocationID:   locationID,
		Attendees:    10,
	}
	Expect(t, "Invalid date range validation", http.StatusBadRequest,
		post(apidef.PathEvents, endBeforeStart, token), nil)

	Expect(t, "Missing required fields validation", http.StatusBadRequest,
		post(apidef.PathEvents, apidef.CreateEventParams{Title: apidef.Title("Test")}, token), nil)

	malformedDepartment := apidef.CreateEventParams{
		Title:        apidef.Title("Test"),
		StartDate:    start.Format(apidef.DateFormat),
		EndDate:      end.Format(apidef.DateFormat),
		DepartmentID: malformedID,
		LocationID:   locationID,
		Attendees:    10,
	}
	Expect(t, "Invalid UUID format validation", http.StatusBadRequest,
		post(apidef.PathEvents, malformedDepartment, token), nil)
}
