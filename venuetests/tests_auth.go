package venuetests

import (
	"net/http"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
)

var invalidCredentials = apidef.LoginParams{Username: "invalid", Password: "wrong"} //nolint:gochecknoglobals

// DoAuthenticationTests logs in with bad credentials, then as the admin and the regular
// user. The tokens it captures are used by every later group.
func DoAuthenticationTests(t *checks.T) {
	c := requireContext(t)

	Expect(t, "Login with invalid credentials", http.StatusUnauthorized,
		post(apidef.PathLogin, invalidCredentials, ""), nil)

	c.adminToken = login(t, "Admin login", c.config.AdminCredentials)
	c.userToken = login(t, "User login", c.config.UserCredentials)

	if c.userToken == "" {
		t.Warnf("User login failed - %q may not exist; checks that need a non-admin user will be skipped",
			c.config.UserCredentials.Username)
	}
}

// DoAuthorizationTests checks that /users is restricted to admins while /events is open to
// any authenticated user.
func DoAuthorizationTests(t *checks.T) {
	c := requireContext(t)

	t.Run("admin", func(t *checks.T) {
		requireToken(t, c.adminToken, "no admin token")
		Expect(t, "Admin can access user list", http.StatusOK, get(apidef.PathUsers, c.adminToken), isArray)
		Expect(t, "Admin can access events", http.StatusOK, get(apidef.PathEvents, c.adminToken), isArray)
	})

	t.Run("user", func(t *checks.T) {
		requireToken(t, c.userToken, "no user token")
		Expect(t, "User cannot access user list", http.StatusForbidden, get(apidef.PathUsers, c.userToken), nil)
		Expect(t, "User can access events", http.StatusOK, get(apidef.PathEvents, c.userToken), isArray)
	})

	t.Run("anonymous", func(t *checks.T) {
		Expect(t, "Unauthenticated request to protected endpoint", http.StatusUnauthorized,
			get(apidef.PathUsers, ""), nil)
	})
}

// login returns the token from a successful login, or "" if the check failed.
func login(t *checks.T, description string, credentials apidef.LoginParams) string {
	ok, body := Expect(t, description, http.StatusOK,
		post(apidef.PathLogin, credentials, ""), hasStringProperty("token"))
	if !ok {
		return ""
	}
	return body.GetByKey("token").StringValue()
}

func requireToken(t *checks.T, token, reason string) {
	if token == "" {
		t.SkipWithReason(reason)
	}
}
