package checks

import (
	"strings"
	"time"
)

// Results is the outcome of a whole run.
//
// Passed, Failed and Warnings count individual checks, not scopes: a group that makes five
// successful requests adds five to Passed. Skipping a scope because a prerequisite is missing
// counts as one warning.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Passed   int
	Failed   int
	Warnings int
	Duration time.Duration
}

// TestResult is the outcome of one scope. Its counters include those of its subscopes.
type TestResult struct {
	TestID     TestID
	Errors     []error
	Passed     int
	Failed     int
	Warnings   int
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

// OK returns true if no check failed. This determines the exit status of the runner.
func (r Results) OK() bool {
	return r.Failed == 0
}

// TopLevel returns the results of the outermost named scopes, in the order they ran.
func (r Results) TopLevel() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if len(t.TestID) == 1 {
			ret = append(ret, t)
		}
	}
	return ret
}

type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}
