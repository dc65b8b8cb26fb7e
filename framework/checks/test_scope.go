package checks

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/lsv-cafe/api-contract-tests/framework"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a check scope. It is very similar to Go's testing.T type, and implements the
// TestingT interfaces of testify's assert and require packages, so those can be used inside
// a scope.
//
// Unlike testing.T, a scope also counts individual checks: Pass, Errorf and Warnf each add
// one to the corresponding counter of the run.
type T struct {
	env         *environment
	parent      *T
	id          TestID
	debugLogger framework.CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	cleanups    []func()
	errors      []error
	passed      int
	failures    int
	warnings    int
}

// TestConfiguration contains options for the entire run.
type TestConfiguration struct {
	// Filter is an optional function for determining which scopes to run based on their names.
	Filter Filter

	// TestLogger receives status information about each scope and check.
	TestLogger TestLogger

	// Context is an optional value of any type defined by the application which can be
	// accessed from every scope.
	Context interface{}
}

// Run starts a top-level scope.
func Run(
	config TestConfiguration,
	action func(*T),
) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{
		config: config,
	}
	startTime := time.Now()
	t := &T{env: env}
	t.run(action)
	env.results.Duration = time.Since(startTime)
	return env.results
}

func (t *T) run(action func(*T)) (result TestResult) {
	result.TestID = t.id
	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			if t.skipped {
				t.warnings++
				t.env.results.Warnings++
			} else {
				var addError error
				if _, ok := r.(*T); ok {
					if len(t.errors) == 0 {
						addError = errors.New("check failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in check: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					t.recordFailure(addError)
				}
			}
		}
		for i := len(t.cleanups) - 1; i >= 0; i-- {
			t.cleanups[i]()
		}
		result.Errors = t.errors
		result.Passed = t.passed
		result.Failed = t.failures
		result.Warnings = t.warnings
		result.Skipped = t.skipped
		result.SkipReason = t.skipReason
		result.Duration = time.Since(startTime)
		if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.parent != nil {
			t.parent.passed += t.passed
			t.parent.failures += t.failures
			t.parent.warnings += t.warnings
		}
	}()

	action(t)
	return result
}

// ID returns the full name of the current scope.
func (t *T) ID() TestID {
	return t.id
}

// Run runs a named subscope.
//
// This is equivalent to Go's testing.T.Run.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)

	if t.env.config.Filter != nil && !t.env.config.Filter.Match(id) {
		t.env.config.TestLogger.TestExcluded(id)
		return
	}
	t.env.config.TestLogger.TestStarted(id)
	c1 := &T{
		id:     id,
		env:    t.env,
		parent: t,
	}
	result := c1.run(action)
	if c1.skipped {
		t.env.config.TestLogger.TestSkipped(id, c1.skipReason)
	}
	t.env.config.TestLogger.TestFinished(id, result, c1.debugLogger.Output())
}

// Pass records one successful check.
func (t *T) Pass(format string, args ...interface{}) {
	t.passed++
	t.env.results.Passed++
	t.env.config.TestLogger.TestPassed(t.id, fmt.Sprintf(format, args...))
}

// Errorf records one failed check. It does not cause the scope to terminate.
//
// It is also part of this type's implementation of assert.TestingT, so a failed testify
// assertion counts as one failed check.
func (t *T) Errorf(format string, args ...interface{}) {
	t.recordFailure(reformatError(fmt.Errorf(format, args...)))
}

func (t *T) recordFailure(err error) {
	t.failed = true
	t.failures++
	t.env.results.Failed++
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// Warnf records one advisory result: something that is worth a look but is not a defect of
// the API under test, such as a slow response.
func (t *T) Warnf(format string, args ...interface{}) {
	t.warnings++
	t.env.results.Warnings++
	t.env.config.TestLogger.TestWarning(t.id, fmt.Sprintf(format, args...))
}

// Infof prints a message without affecting any counter.
func (t *T) Infof(format string, args ...interface{}) {
	t.env.config.TestLogger.TestInfo(t.id, fmt.Sprintf(format, args...))
}

// FailNow causes the scope to immediately terminate and be marked as failed.
func (t *T) FailNow() {
	panic(t)
}

// Skip causes the scope to immediately terminate. A skipped scope counts as one warning.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is equivalent to Skip but provides a message.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Debug writes a message to the debug output for this scope.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger instance for writing debug output for this scope.
//
// The captured output is passed to TestLogger.TestFinished at the end of the scope, and the
// console logger decides whether to show it based on command-line options.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Defer schedules a cleanup function which is guaranteed to be called when this scope exits
// for any reason. Unlike a Go defer statement, Defer can be used from within helper functions.
func (t *T) Defer(cleanupFn func()) {
	t.cleanups = append(t.cleanups, cleanupFn)
}

// Context returns the application-defined context value, if any, that was specified in the
// TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

var errorTraceInMessageRegex = regexp.MustCompile(`^(?s:\s*Error Trace:.*\sError:\s*)`)

// reformatError strips the stacktrace that testify adds to assertion messages, since the
// console output already says which scope the failure came from.
func reformatError(err error) error {
	message := err.Error()
	if !strings.Contains(message, "Error Trace:") {
		return err
	}
	return errors.New(strings.TrimSpace(errorTraceInMessageRegex.ReplaceAllLiteralString(message, "")))
}
