package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	eventStatusPending  = "pending"
	eventStatusApproved = "approved"
)

type event struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	DepartmentID  string   `json:"departmentId"`
	LocationID    string   `json:"locationId"`
	Attendees     int      `json:"attendees"`
	ContactPerson string   `json:"contactPerson,omitempty"`
	ResourceIDs   []string `json:"resourceIds"`
	Status        string   `json:"status,omitempty"`
	CreatedBy     string   `json:"createdBy,omitempty"`
}

var (
	errTitleRequired     = errors.New("title is required")
	errDatesRequired     = errors.New("startDate and endDate are required ISO 8601 timestamps")
	errDateRange         = errors.New("endDate must be after startDate")
	errReferenceRequired = errors.New("departmentId and locationId are required")
	errInvalidUUID       = errors.New("departmentId and locationId must be UUIDs")
	errAttendees         = errors.New("attendees must be a positive number")
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	events := make([]event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, s.present(e))
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	i := s.findEvent(mux.Vars(r)["id"])
	if i < 0 {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, s.present(s.events[i]))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authorize(w, r, false)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	e := event{
		ID:            uuid.NewString(),
		Title:         body.GetByKey("title").StringValue(),
		Description:   body.GetByKey("description").StringValue(),
		StartDate:     body.GetByKey("startDate").StringValue(),
		EndDate:       body.GetByKey("endDate").StringValue(),
		DepartmentID:  body.GetByKey("departmentId").StringValue(),
		LocationID:    body.GetByKey("locationId").StringValue(),
		Attendees:     body.GetByKey("attendees").IntValue(),
		ContactPerson: body.GetByKey("contactPerson").StringValue(),
		ResourceIDs:   []string{},
		Status:        eventStatusPending,
		CreatedBy:     user.ID,
	}
	resourceIDs := body.GetByKey("resourceIds")
	for i := 0; i < resourceIDs.Count(); i++ {
		e.ResourceIDs = append(e.ResourceIDs, resourceIDs.GetByIndex(i).StringValue())
	}
	if !s.options.AcceptInvalidEvents {
		if err := validateEvent(body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s.lock.Lock()
	s.events = append(s.events, e)
	result := s.present(e)
	s.lock.Unlock()
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, false); !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	i := s.findEvent(mux.Vars(r)["id"])
	if i < 0 {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if title := body.GetByKey("title"); !title.IsNull() {
		if !title.IsString() || strings.TrimSpace(title.StringValue()) == "" {
			writeError(w, http.StatusBadRequest, errTitleRequired.Error())
			return
		}
		s.events[i].Title = title.StringValue()
	}
	if description := body.GetByKey("description"); description.IsString() {
		s.events[i].Description = description.StringValue()
	}
	writeJSON(w, http.StatusOK, s.present(s.events[i]))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, false); !ok {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	i := s.findEvent(mux.Vars(r)["id"])
	if i < 0 {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// findEvent must be called with the lock held.
func (s *Server) findEvent(id string) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) present(e event) event {
	if s.options.OmitEventStatus {
		e.Status = ""
	}
	return e
}

func validateEvent(body ldvalue.Value) error {
	title := body.GetByKey("title")
	if !title.IsString() || strings.TrimSpace(title.StringValue()) == "" {
		return errTitleRequired
	}

	start, startErr := parseDate(body.GetByKey("startDate"))
	end, endErr := parseDate(body.GetByKey("endDate"))
	if startErr != nil || endErr != nil {
		return errDatesRequired
	}
	if !end.After(start) {
		return errDateRange
	}

	departmentID, locationID := body.GetByKey("departmentId"), body.GetByKey("locationId")
	if !departmentID.IsString() || !locationID.IsString() {
		return errReferenceRequired
	}
	for _, id := range []string{departmentID.StringValue(), locationID.StringValue()} {
		if _, err := uuid.Parse(id); err != nil {
			return errInvalidUUID
		}
	}

	if attendees := body.GetByKey("attendees"); !attendees.IsNumber() || attendees.IntValue() <= 0 {
		return errAttendees
	}
	return nil
}

func parseDate(value ldvalue.Value) (time.Time, error) {
	if !value.IsString() {
		return time.Time{}, errDatesRequired
	}
	return time.Parse(time.RFC3339, value.StringValue())
}
