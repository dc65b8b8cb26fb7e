package checks

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/lsv-cafe/api-contract-tests/framework"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

type recordingTestLogger struct {
	nullTestLogger
	finished []framework.CapturedOutput
}

func (r *recordingTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	r.finished = append(r.finished, debugOutput)
}

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestConsoleLoggerPrintsGroupHeaderOnlyForTopLevel(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	logger := ConsoleTestLogger{Out: &buf}

	logger.TestStarted(TestID{"events CRUD"})
	logger.TestStarted(TestID{"events CRUD", "sub"})

	assert.Equal(t, "EVENTS CRUD\n------------------------------------------------------------\n", buf.String())
}

func TestConsoleLoggerCheckLines(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	logger := ConsoleTestLogger{Out: &buf}
	id := TestID{"health check"}

	logger.TestPassed(id, "Public Events Endpoint (HTTP 200)")
	logger.TestError(id, errors.New("Create event - Expected 201, got 400\nResponse: {}"))
	logger.TestWarning(id, "CORS headers not found")
	logger.TestInfo(id, "Checking API")
	logger.TestSkipped(TestID{"authorization", "user"}, "no user token")

	assert.Equal(t, "✓ Public Events Endpoint (HTTP 200)\n"+
		"✗ Create event - Expected 201, got 400\n"+
		"  Response: {}\n"+
		"⚠ CORS headers not found\n"+
		"ℹ Checking API\n"+
		"⚠ Skipping authorization/user (no user token)\n",
		buf.String())
}

func TestConsoleLoggerDebugOutput(t *testing.T) {
	withoutColor(t)
	output := framework.CapturedOutput{{Time: time.Now(), Message: "GET /events"}}

	for _, p := range []struct {
		name      string
		logger    ConsoleTestLogger
		result    TestResult
		shouldLog bool
	}{
		{"failure with debug", ConsoleTestLogger{DebugOutputOnFailure: true}, TestResult{Failed: 1}, true},
		{"success with debug", ConsoleTestLogger{DebugOutputOnFailure: true}, TestResult{Passed: 1}, false},
		{"success with debug-all", ConsoleTestLogger{DebugOutputOnFailure: true, DebugOutputOnSuccess: true},
			TestResult{Passed: 1}, true},
		{"failure without debug", ConsoleTestLogger{}, TestResult{Failed: 1}, false},
	} {
		t.Run(p.name, func(t *testing.T) {
			var buf bytes.Buffer
			p.logger.Out = &buf
			p.logger.TestFinished(TestID{"a", "b"}, p.result, output)
			if p.shouldLog {
				assert.Contains(t, buf.String(), "    DEBUG ")
				assert.Contains(t, buf.String(), "GET /events")
			} else {
				assert.Equal(t, "", buf.String())
			}
		})
	}
}
