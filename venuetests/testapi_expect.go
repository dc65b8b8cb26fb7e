package venuetests

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lsv-cafe/api-contract-tests/apiclient"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// responsePreviewLength is how much of an unexpected response body is shown in a failure.
const responsePreviewLength = 200

// Call describes the request made by one check.
type Call struct {
	Method string
	Path   string
	Body   interface{}
	Token  string
}

// Validator inspects the parsed body of a response whose status was as expected. Returning
// an error fails the check.
type Validator func(body ldvalue.Value) error

func get(path, token string) Call {
	return Call{Method: http.MethodGet, Path: path, Token: token}
}

func post(path string, body interface{}, token string) Call {
	return Call{Method: http.MethodPost, Path: path, Body: body, Token: token}
}

func put(path string, body interface{}, token string) Call {
	return Call{Method: http.MethodPut, Path: path, Body: body, Token: token}
}

func del(path, token string) Call {
	return Call{Method: http.MethodDelete, Path: path, Token: token}
}

// Expect makes exactly one request and records exactly one check: passed if the response
// status is expectedStatus and validate (if not nil) accepts the body, failed otherwise,
// including when no response was received at all.
//
// On success it returns true and the parsed body, which is a null value if the response had
// no body. On failure it returns false and a null value.
func Expect(
	t *checks.T,
	description string,
	expectedStatus int,
	call Call,
	validate Validator,
) (bool, ldvalue.Value) {
	c := requireContext(t)
	resp, err := c.client.Do(apiclient.Request{
		Method: call.Method,
		Path:   call.Path,
		Body:   call.Body,
		Token:  call.Token,
	}, t.DebugLogger())
	if err != nil {
		t.Errorf("%s - Request failed: %s", description, err)
		return false, ldvalue.Null()
	}

	if resp.StatusCode != expectedStatus {
		message := fmt.Sprintf("%s - Expected %d, got %d", description, expectedStatus, resp.StatusCode)
		if len(resp.Body) != 0 {
			message += "\nResponse: " + resp.Preview(responsePreviewLength)
		}
		t.Errorf("%s", message)
		return false, ldvalue.Null()
	}

	body, err := resp.JSON()
	if err != nil {
		t.Debug("%s", err)
	}
	if validate != nil {
		if err := validate(body); err != nil {
			t.Errorf("%s - Validation failed: %s", description, err)
			return false, ldvalue.Null()
		}
	}

	t.Pass("%s (HTTP %d)", description, resp.StatusCode)
	return true, body
}

func isArray(body ldvalue.Value) error {
	if body.Type() != ldvalue.ArrayType {
		return fmt.Errorf("expected a JSON array, got %s", body.JSONString())
	}
	return nil
}

func hasStringProperty(name string) Validator {
	return func(body ldvalue.Value) error {
		if body.Type() != ldvalue.ObjectType {
			return fmt.Errorf("expected a JSON object, got %s", body.JSONString())
		}
		if value := body.GetByKey(name); !value.IsString() || value.StringValue() == "" {
			return fmt.Errorf("expected a non-empty string property %q, got %s", name, value.JSONString())
		}
		return nil
	}
}

func hasPropertyValue(name string, expected ldvalue.Value) Validator {
	return func(body ldvalue.Value) error {
		if actual := body.GetByKey(name); !actual.Equal(expected) {
			return fmt.Errorf("expected property %q to be %s, got %s", name, expected.JSONString(), actual.JSONString())
		}
		return nil
	}
}

// missingProperties returns the names in required that are not keys of the object, in the
// order given. A value that is not an object is missing all of them.
func missingProperties(object ldvalue.Value, required []string) []string {
	present := make(map[string]bool)
	if object.Type() == ldvalue.ObjectType {
		for _, k := range object.Keys() {
			present[k] = true
		}
	}
	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

var errNoID = errors.New("no usable ID in the response")

// fetchFirstID gets a public list and returns the "id" of its first element. This is setup
// for other checks, so it is not counted as a check itself.
func fetchFirstID(t *checks.T, path string) (string, error) {
	c := requireContext(t)
	resp, err := c.client.Get(path, "", t.DebugLogger())
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s returned HTTP %d", path, resp.StatusCode)
	}
	list, err := resp.JSON()
	if err != nil {
		return "", err
	}
	id := list.GetByIndex(0).GetByKey("id")
	if !id.IsString() || id.StringValue() == "" {
		return "", fmt.Errorf("GET %s: %w", path, errNoID)
	}
	return id.StringValue(), nil
}
