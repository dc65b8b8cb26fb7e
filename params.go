package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/lsv-cafe/api-contract-tests/apiclient"
	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
	"github.com/lsv-cafe/api-contract-tests/venuetests"

	"github.com/alessio/shellescape"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "http://localhost:9980/api"

const (
	exitCodeSuccess      = 0
	exitCodeCheckFailure = 1
	exitCodeRuntimeError = 2
)

type commandParams struct {
	baseURL    string
	timeout    time.Duration
	configFile string
	filters    checks.RegexFilters
	debug      bool
	debugAll   bool
	suite      venuetests.SuiteConfig
}

// configFileContent is the optional -config file. It can be YAML or JSON. Durations are
// strings such as "500ms". Any property that is left out keeps its default.
type configFileContent struct {
	BaseURL                 string              `yaml:"baseURL"`
	Timeout                 time.Duration       `yaml:"timeout"`
	Admin                   *apidef.LoginParams `yaml:"admin"`
	User                    *apidef.LoginParams `yaml:"user"`
	CORSOrigin              string              `yaml:"corsOrigin"`
	SingleRequestThreshold  time.Duration       `yaml:"singleRequestThreshold"`
	AverageRequestThreshold time.Duration       `yaml:"averageRequestThreshold"`
	LoadRequestCount        int                 `yaml:"loadRequestCount"`
}

// Read parses the command line. Parameters given explicitly on the command line take
// precedence over the config file.
func (c *commandParams) Read(args []string) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.baseURL, "url", defaultBaseURL, "base URL of the API under test")
	fs.DurationVar(&c.timeout, "timeout", apiclient.DefaultTimeout, "time limit for each request")
	fs.StringVar(&c.configFile, "config", "", "YAML or JSON file with credentials and thresholds")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select checks to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select checks not to run")
	fs.BoolVar(&c.debug, "debug", false, "show request/response log for failed checks")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show request/response log for all checks")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	c.suite = venuetests.DefaultSuiteConfig()
	if c.configFile != "" {
		content, err := readConfigFile(c.configFile)
		if err != nil {
			return err
		}
		c.applyConfigFile(content, explicit)
	}

	if err := validateBaseURL(c.baseURL); err != nil {
		return err
	}
	if c.timeout <= 0 {
		return errors.New("-timeout must be greater than zero")
	}
	return nil
}

func (c *commandParams) applyConfigFile(content configFileContent, explicit map[string]bool) {
	if content.BaseURL != "" && !explicit["url"] {
		c.baseURL = content.BaseURL
	}
	if content.Timeout > 0 && !explicit["timeout"] {
		c.timeout = content.Timeout
	}
	if content.Admin != nil {
		c.suite.AdminCredentials = *content.Admin
	}
	if content.User != nil {
		c.suite.UserCredentials = *content.User
	}
	if content.CORSOrigin != "" {
		c.suite.CORSOrigin = content.CORSOrigin
	}
	if content.SingleRequestThreshold > 0 {
		c.suite.SingleRequestThreshold = content.SingleRequestThreshold
	}
	if content.AverageRequestThreshold > 0 {
		c.suite.AverageRequestThreshold = content.AverageRequestThreshold
	}
	if content.LoadRequestCount > 0 {
		c.suite.LoadRequestCount = content.LoadRequestCount
	}
}

func readConfigFile(path string) (configFileContent, error) {
	var content configFileContent
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return content, fmt.Errorf("cannot read config file: %w", err)
	}
	// JSON is also valid YAML, so one decoder handles both formats.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&content); err != nil && !errors.Is(err, io.EOF) {
		return content, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return content, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", s)
	}
	return nil
}

// rerunCommand returns a command line that runs only the given groups with the same
// connection parameters. The authentication group is always included because the other
// groups depend on the tokens it obtains.
func rerunCommand(program string, params commandParams, groups []string) string {
	var cmd commandBuilder
	cmd.add(program)
	if params.baseURL != defaultBaseURL {
		cmd.add("-url", params.baseURL)
	}
	if params.configFile != "" {
		cmd.add("-config", params.configFile)
	}
	if params.timeout != apiclient.DefaultTimeout {
		cmd.add("-timeout", params.timeout.String())
	}
	needsAuthentication := true
	for _, g := range groups {
		if g == venuetests.GroupAuthentication {
			needsAuthentication = false
		}
	}
	if needsAuthentication {
		groups = append([]string{venuetests.GroupAuthentication}, groups...)
	}
	for _, g := range groups {
		cmd.add("-run", "^"+regexp.QuoteMeta(g)+"$")
	}
	if params.debug || params.debugAll {
		cmd.add("-debug")
	}
	return cmd.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
