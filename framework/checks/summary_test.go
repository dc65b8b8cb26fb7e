package checks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeResults() Results {
	return Run(TestConfiguration{}, func(ct *T) {
		ct.Run("health check", func(ct *T) {
			ct.Pass("ok")
			ct.Pass("ok")
		})
		ct.Run("events CRUD", func(ct *T) {
			ct.Pass("ok")
			ct.Errorf("Create event - Expected 201, got 500")
		})
		ct.Run("authorization", func(ct *T) {
			ct.Run("user", func(ct *T) {
				ct.SkipWithReason("no user token")
			})
		})
		ct.Run("security", func(ct *T) {
			ct.Warnf("CORS headers not found")
		})
	})
}

func TestFailedGroups(t *testing.T) {
	assert.Equal(t, []string{"events CRUD"}, FailedGroups(makeResults()))
	assert.Nil(t, FailedGroups(Results{}))
}

func TestGroupStatus(t *testing.T) {
	statuses := make(map[string]string)
	for _, g := range makeResults().TopLevel() {
		statuses[g.TestID.String()] = groupStatus(g)
	}
	assert.Equal(t, map[string]string{
		"health check":  "PASS",
		"events CRUD":   "FAIL",
		"authorization": "WARN",
		"security":      "WARN",
	}, statuses)
}

func TestPrintResultsForFailedRun(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintResults(makeResults(), &buf)
	out := buf.String()

	assert.Contains(t, out, "TEST SUMMARY")
	assert.Contains(t, out, "health check")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Passed: 3\n")
	assert.Contains(t, out, "Failed: 1\n")
	assert.Contains(t, out, "Warnings: 2\n")
	assert.Contains(t, out, "✗ Some checks failed. Please review above.")
	assert.Contains(t, out, "  * events CRUD\n")
	assert.NotContains(t, out, "All critical checks passed")
}

func TestPrintResultsForSuccessfulRun(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	results := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("health check", func(ct *T) {
			ct.Pass("ok")
		})
	})
	PrintResults(results, &buf)

	assert.Contains(t, buf.String(), "✓ All critical checks passed.")
	assert.Contains(t, buf.String(), "Failed: 0\n")
}
