package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/launchdarkly/go-test-helpers/v2/jsonhelpers"
	"github.com/rs/cors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// BasePath is the path prefix that all API routes are served under.
const BasePath = "/api"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can log in to the mock API.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// Options controls which parts of the contract the mock API honors.
type Options struct {
	// Users are the accounts that can log in. If nil, DefaultUsers() is used.
	Users []User

	// DisableCORS makes the server omit the CORS headers. Preflight requests then get a 405.
	DisableCORS bool

	// Latency is added to the handling of every request.
	Latency time.Duration

	// OmitEventStatus makes events be returned without their "status" property.
	OmitEventStatus bool

	// AcceptInvalidEvents turns off validation of event bodies, so any create succeeds.
	AcceptInvalidEvents bool

	// DebugLogger receives a line for every request. It may be nil.
	DebugLogger framework.Logger
}

// DefaultUsers returns the admin account and the regular account of a development server.
func DefaultUsers() []User {
	return []User{
		{ID: uuid.NewString(), Username: "admin", Password: "admin123", Role: RoleAdmin},
		{ID: uuid.NewString(), Username: "testuser", Password: "test123", Role: RoleUser},
	}
}

type loginResponse struct {
	apidef.LoginResponse
	User User `json:"user"`
}

type namedItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Active bool   `json:"active"`
}

// Server is an http.Handler for the mock API. The routes are relative to BasePath.
type Server struct {
	options     Options
	users       []User
	tokens      map[string]User
	departments []namedItem
	resources   []namedItem
	locations   []namedItem
	events      []event
	handler     http.Handler
	debugLogger framework.Logger
	lock        sync.Mutex
}

// NewServer creates a Server seeded with one department, resource, location and event.
func NewServer(options Options) *Server {
	s := &Server{
		options:     options,
		users:       options.Users,
		tokens:      make(map[string]User),
		debugLogger: framework.LoggerWithPrefix(options.DebugLogger, "[mock API] "),
	}
	if s.users == nil {
		s.users = DefaultUsers()
	}

	s.departments = []namedItem{{ID: uuid.NewString(), Name: "Cafe", Code: "CAFE", Active: true}}
	s.resources = []namedItem{{ID: uuid.NewString(), Name: "Projector", Active: true}}
	s.locations = []namedItem{{ID: uuid.NewString(), Name: "Main Hall", Active: true}}
	start := time.Now().UTC().Add(time.Hour * 24)
	s.events = []event{{
		ID:           uuid.NewString(),
		Title:        "Opening Night",
		StartDate:    start.Format(apidef.DateFormat),
		EndDate:      start.Add(time.Hour * 3).Format(apidef.DateFormat),
		DepartmentID: s.departments[0].ID,
		LocationID:   s.locations[0].ID,
		Attendees:    40,
		ResourceIDs:  []string{},
		Status:       eventStatusApproved,
	}}

	router := mux.NewRouter()
	api := router.PathPrefix(BasePath).Subrouter()
	api.HandleFunc(apidef.PathLogin, s.handleLogin).Methods("POST")
	api.HandleFunc(apidef.PathUsers, s.handleListUsers).Methods("GET")
	api.HandleFunc(apidef.PathEvents, s.handleListEvents).Methods("GET")
	api.HandleFunc(apidef.PathEvents, s.handleCreateEvent).Methods("POST")
	api.HandleFunc(apidef.EventPath("{id}"), s.handleGetEvent).Methods("GET")
	api.HandleFunc(apidef.EventPath("{id}"), s.handleUpdateEvent).Methods("PUT")
	api.HandleFunc(apidef.EventPath("{id}"), s.handleDeleteEvent).Methods("DELETE")
	api.HandleFunc(apidef.PathDepartments, s.listHandler(&s.departments)).Methods("GET")
	api.HandleFunc(apidef.PathDepartments, s.handleCreateDepartment).Methods("POST")
	api.HandleFunc(apidef.DepartmentPath("{id}"), s.handleUpdateDepartment).Methods("PUT")
	api.HandleFunc(apidef.DepartmentPath("{id}"), s.handleDeleteDepartment).Methods("DELETE")
	api.HandleFunc(apidef.PathResources, s.listHandler(&s.resources)).Methods("GET")
	api.HandleFunc(apidef.PathLocations, s.listHandler(&s.locations)).Methods("GET")
	s.handler = router

	if !options.DisableCORS {
		c := cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		})
		s.handler = c.Handler(router)
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.debugLogger.Printf("%s %s", r.Method, r.URL.Path)
	if s.options.Latency > 0 {
		time.Sleep(s.options.Latency)
	}
	s.handler.ServeHTTP(w, r)
}

// EventCount returns the number of events currently stored.
func (s *Server) EventCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.events)
}

// DepartmentCount returns the number of departments currently stored.
func (s *Server) DepartmentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.departments)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var params apidef.LoginParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, u := range s.users {
		if u.Username == params.Username && u.Password == params.Password {
			token := uuid.NewString()
			s.tokens[token] = u
			writeJSON(w, http.StatusOK, loginResponse{LoginResponse: apidef.LoginResponse{Token: token}, User: u})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "invalid credentials")
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, true); !ok {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	writeJSON(w, http.StatusOK, s.users)
}

func (s *Server) listHandler(items *[]namedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		defer s.lock.Unlock()
		writeJSON(w, http.StatusOK, *items)
	}
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, true); !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	name := body.GetByKey("name")
	if !name.IsString() || strings.TrimSpace(name.StringValue()) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	d := namedItem{
		ID:     uuid.NewString(),
		Name:   name.StringValue(),
		Code:   body.GetByKey("code").StringValue(),
		Active: true,
	}
	s.lock.Lock()
	s.departments = append(s.departments, d)
	s.lock.Unlock()
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, true); !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	i := findItem(s.departments, mux.Vars(r)["id"])
	if i < 0 {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}
	if name := body.GetByKey("name"); name.IsString() && name.StringValue() != "" {
		s.departments[i].Name = name.StringValue()
	}
	if active := body.GetByKey("active"); active.IsBool() {
		s.departments[i].Active = active.BoolValue()
	}
	writeJSON(w, http.StatusOK, s.departments[i])
}

func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, true); !ok {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	i := findItem(s.departments, mux.Vars(r)["id"])
	if i < 0 {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}
	s.departments = append(s.departments[:i], s.departments[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "department deleted"})
}

// authorize checks the bearer token. It writes a 401 or 403 response and returns false if the
// request may not proceed.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, adminOnly bool) (User, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.lock.Lock()
	user, ok := s.tokens[token]
	s.lock.Unlock()
	if token == "" || !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return User{}, false
	}
	if adminOnly && user.Role != RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return User{}, false
	}
	return user, true
}

func findItem(items []namedItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func readBody(w http.ResponseWriter, r *http.Request) (ldvalue.Value, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return ldvalue.Null(), false
	}
	var body ldvalue.Value
	if err := json.Unmarshal(data, &body); err != nil || body.Type() != ldvalue.ObjectType {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return ldvalue.Null(), false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, content interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonhelpers.ToJSON(content))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
