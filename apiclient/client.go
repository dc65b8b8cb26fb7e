package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lsv-cafe/api-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultTimeout is the time limit for a single request, including reading the response body.
const DefaultTimeout = time.Second * 5

// Client sends requests to the API under test. It never retries: every call is attempted
// exactly once, and a slow server simply makes the call slow until the timeout is reached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// Request describes one call to the API under test.
type Request struct {
	Method string
	Path   string

	// Body, if not nil, is serialized with json.Marshal. A json.RawMessage is sent as is.
	Body interface{}

	// Token, if not empty, is sent as a bearer credential.
	Token string

	// Headers are added to the request after the standard ones.
	Headers http.Header
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// NewClient creates a Client for an API whose paths are relative to baseURL, for instance
// "http://localhost:9980/api". If timeout is zero, DefaultTimeout is used.
func NewClient(baseURL string, timeout time.Duration, logger framework.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the base URL that request paths are appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request and reads the whole response. A non-nil error means that no HTTP
// response was received at all (connection refused, timeout, DNS failure, etc.); any status
// code, including 4xx and 5xx, is returned as a Response.
//
// Requests and responses are written to logger, or to the client's own logger if logger is nil.
func (c *Client) Do(r Request, logger framework.Logger) (Response, error) {
	if logger == nil {
		logger = c.logger
	}

	var body io.Reader
	var bodyData []byte
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return Response{}, fmt.Errorf("could not serialize request body: %w", err)
		}
		bodyData = data
		body = bytes.NewBuffer(data)
	}

	url := c.baseURL + r.Path
	req, err := http.NewRequest(r.Method, url, body)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	for name, values := range r.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	if bodyData == nil {
		logger.Printf(">> %s %s", r.Method, url)
	} else {
		logger.Printf(">> %s %s %s", r.Method, url, string(bodyData))
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Printf("<< error: %s", err)
		return Response{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	respData, err := io.ReadAll(resp.Body)
	duration := time.Since(startTime)
	if err != nil {
		logger.Printf("<< error reading response body: %s", err)
		return Response{}, fmt.Errorf("error reading response body: %w", err)
	}
	logger.Printf("<< %d (%dms) %s", resp.StatusCode, duration.Milliseconds(), string(respData))

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respData,
		Duration:   duration,
	}, nil
}

// Get is a shortcut for a GET request with no body.
func (c *Client) Get(path, token string, logger framework.Logger) (Response, error) {
	return c.Do(Request{Method: http.MethodGet, Path: path, Token: token}, logger)
}

// Preflight sends a CORS preflight request as a browser page served from origin would
// before calling path with the given method.
func (c *Client) Preflight(path, origin, method string, logger framework.Logger) (Response, error) {
	headers := make(http.Header)
	headers.Set("Origin", origin)
	headers.Set("Access-Control-Request-Method", method)
	return c.Do(Request{Method: http.MethodOptions, Path: path, Headers: headers}, logger)
}

// JSON parses the response body. An empty body is returned as a null value with no error.
func (r Response) JSON() (ldvalue.Value, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return ldvalue.Null(), nil
	}
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), fmt.Errorf("response body is not valid JSON: %w", err)
	}
	return v, nil
}

// Preview returns at most maxChars characters of the response body, for failure messages.
func (r Response) Preview(maxChars int) string {
	s := string(r.Body)
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
