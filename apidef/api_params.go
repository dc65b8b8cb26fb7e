package apidef

// Endpoint paths, relative to the API base URL.
const (
	PathLogin       = "/auth/login"
	PathUsers       = "/users"
	PathEvents      = "/events"
	PathDepartments = "/config/departments"
	PathResources   = "/config/resources"
	PathLocations   = "/config/locations"
)

// EventPath returns the path of a single event.
func EventPath(id string) string {
	return PathEvents + "/" + id
}

// DepartmentPath returns the path of a single department.
func DepartmentPath(id string) string {
	return PathDepartments + "/" + id
}

// DateFormat is the timestamp format used for event dates. Timestamps are always sent in UTC.
const DateFormat = "2006-01-02T15:04:05.000Z07:00"

// RequiredEventFields are the properties that every event returned by GET /events must have.
var RequiredEventFields = []string{"id", "title", "startDate", "endDate", "status"} //nolint:gochecknoglobals

// LoginParams is the request body of POST /auth/login.
type LoginParams struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// LoginResponse is the part of a successful login response that the runner uses.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateEventParams is the request body of POST /events. Every field is optional on the wire
// so that the validation checks can leave some of them out.
type CreateEventParams struct {
	Title         *string  `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
	DepartmentID  string   `json:"departmentId,omitempty"`
	LocationID    string   `json:"locationId,omitempty"`
	Attendees     int      `json:"attendees,omitempty"`
	ContactPerson string   `json:"contactPerson,omitempty"`
	ResourceIDs   []string `json:"resourceIds,omitempty"`
}

// UpdateEventParams is the request body of PUT /events/{id}.
type UpdateEventParams struct {
	Title       *string `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CreateDepartmentParams is the request body of POST /config/departments.
type CreateDepartmentParams struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// UpdateDepartmentParams is the request body of PUT /config/departments/{id}.
type UpdateDepartmentParams struct {
	Name   string `json:"name,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// Title returns a pointer to s, for the optional title fields. An empty title is still sent.
func Title(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
