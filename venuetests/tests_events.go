package venuetests

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	eventLeadTime = time.Hour * 24 * 7
	eventDuration = time.Hour
)

// DoEventsCRUDTests creates an event, reads it back, updates it and deletes it. The event is
// only deleted if it was created and the delete check itself passes; otherwise it is left
// behind on the server.
func DoEventsCRUDTests(t *checks.T) {
	c := requireContext(t)
	token := c.anyToken()
	requireToken(t, token, "no authentication token")
	departmentID, locationID := requireDepartmentAndLocation(t)

	start := c.now().UTC().Add(eventLeadTime)
	params := apidef.CreateEventParams{
		Title:         apidef.Title("Test Event - Comprehensive Test"),
		Description:   "Automated test event",
		StartDate:     start.Format(apidef.DateFormat),
		EndDate:       start.Add(eventDuration).Format(apidef.DateFormat),
		DepartmentID:  departmentID,
		LocationID:    locationID,
		Attendees:     10,
		ContactPerson: "Test User",
	}
	ok, created := Expect(t, "Create event", http.StatusCreated,
		post(apidef.PathEvents, params, token), hasStringProperty("id"))
	if !ok {
		return
	}
	eventID := created.GetByKey("id").StringValue()
	t.Debug("created event %s", eventID)

	Expect(t, "Read created event", http.StatusOK,
		get(apidef.EventPath(eventID), token), hasPropertyValue("id", ldvalue.String(eventID)))

	update := apidef.UpdateEventParams{
		Title:       apidef.Title("Updated Test Event"),
		Description: "Updated description",
	}
	Expect(t, "Update event", http.StatusOK,
		put(apidef.EventPath(eventID), update, token), nil)

	if deleted, _ := Expect(t, "Delete test event", http.StatusOK,
		del(apidef.EventPath(eventID), token), nil); deleted {
		Expect(t, "Deleted event is no longer readable", http.StatusNotFound,
			get(apidef.EventPath(eventID), token), nil)
	}
}

// DoConfigManagementTests creates, updates and deletes a department. Only admins may do this.
func DoConfigManagementTests(t *checks.T) {
	c := requireContext(t)
	requireToken(t, c.adminToken, "no admin token")

	params := apidef.CreateDepartmentParams{
		Name: fmt.Sprintf("Test Dept %d", c.now().Unix()),
		Code: "TEST",
	}
	ok, created := Expect(t, "Create department", http.StatusCreated,
		post(apidef.PathDepartments, params, c.adminToken), hasStringProperty("id"))
	if !ok {
		return
	}
	departmentID := created.GetByKey("id").StringValue()

	update := apidef.UpdateDepartmentParams{
		Name:   "Updated Test Department",
		Active: apidef.Bool(false),
	}
	Expect(t, "Update department", http.StatusOK,
		put(apidef.DepartmentPath(departmentID), update, c.adminToken), nil)

	Expect(t, "Delete test department", http.StatusOK,
		del(apidef.DepartmentPath(departmentID), c.adminToken), nil)
}

// requireDepartmentAndLocation gets the first department and location from the public
// config endpoints, or skips the current scope if either is unavailable.
func requireDepartmentAndLocation(t *checks.T) (string, string) {
	departmentID, err := fetchFirstID(t, apidef.PathDepartments)
	if err != nil {
		t.Debug("could not get a department ID: %s", err)
		t.SkipWithReason("could not get valid IDs")
	}
	locationID, err := fetchFirstID(t, apidef.PathLocations)
	if err != nil {
		t.Debug("could not get a location ID: %s", err)
		t.SkipWithReason("could not get valid IDs")
	}
	return departmentID, locationID
}
