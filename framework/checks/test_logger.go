package checks

import (
	"io"
	"os"
	"strings"

	"github.com/lsv-cafe/api-contract-tests/framework"

	"github.com/fatih/color"
)

var consolePassedColor = color.New(color.FgGreen)               //nolint:gochecknoglobals
var consoleFailedColor = color.New(color.FgRed)                 //nolint:gochecknoglobals
var consoleWarningColor = color.New(color.FgYellow, color.Bold) //nolint:gochecknoglobals
var consoleInfoColor = color.New(color.FgBlue)                  //nolint:gochecknoglobals
var consoleExcludedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)            //nolint:gochecknoglobals
var consoleGroupHeaderColor = color.New(color.Bold)             //nolint:gochecknoglobals

const (
	passedMark  = "✓"
	failedMark  = "✗"
	warningMark = "⚠"
	infoMark    = "ℹ"
)

const headerRuleWidth = 60

type TestLogger interface {
	TestStarted(id TestID)
	TestPassed(id TestID, message string)
	TestError(id TestID, err error)
	TestWarning(id TestID, message string)
	TestInfo(id TestID, message string)
	TestSkipped(id TestID, reason string)
	TestExcluded(id TestID)
	TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                        {}
func (n nullTestLogger) TestPassed(TestID, string)                                 {}
func (n nullTestLogger) TestError(TestID, error)                                   {}
func (n nullTestLogger) TestWarning(TestID, string)                                {}
func (n nullTestLogger) TestInfo(TestID, string)                                   {}
func (n nullTestLogger) TestSkipped(TestID, string)                                {}
func (n nullTestLogger) TestExcluded(TestID)                                       {}
func (n nullTestLogger) TestFinished(TestID, TestResult, framework.CapturedOutput) {}

// ConsoleTestLogger prints one line per check, with a header for each group.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	// Out defaults to os.Stdout.
	Out io.Writer
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	if len(id) != 1 {
		return
	}
	_, _ = consoleGroupHeaderColor.Fprintf(c.out(), "%s\n", strings.ToUpper(id.String()))
	_, _ = io.WriteString(c.out(), strings.Repeat("-", headerRuleWidth)+"\n")
}

func (c ConsoleTestLogger) TestPassed(id TestID, message string) {
	_, _ = consolePassedColor.Fprint(c.out(), passedMark)
	_, _ = io.WriteString(c.out(), " "+message+"\n")
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	lines := strings.Split(err.Error(), "\n")
	_, _ = consoleFailedColor.Fprint(c.out(), failedMark)
	_, _ = io.WriteString(c.out(), " "+lines[0]+"\n")
	for _, line := range lines[1:] {
		_, _ = io.WriteString(c.out(), "  "+line+"\n")
	}
}

func (c ConsoleTestLogger) TestWarning(id TestID, message string) {
	_, _ = consoleWarningColor.Fprint(c.out(), warningMark)
	_, _ = io.WriteString(c.out(), " "+message+"\n")
}

func (c ConsoleTestLogger) TestInfo(id TestID, message string) {
	_, _ = consoleInfoColor.Fprint(c.out(), infoMark)
	_, _ = io.WriteString(c.out(), " "+message+"\n")
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		c.TestWarning(id, "Skipping "+id.String())
	} else {
		c.TestWarning(id, "Skipping "+id.String()+" ("+reason+")")
	}
}

func (c ConsoleTestLogger) TestExcluded(id TestID) {
	_, _ = consoleExcludedColor.Fprintf(c.out(), "  EXCLUDED: %s (excluded by filter parameters)\n", id)
}

func (c ConsoleTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	failed := result.Failed > 0
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Fprintln(c.out(), debugOutput.ToString("    DEBUG "))
	}
	if len(id) == 1 {
		_, _ = io.WriteString(c.out(), "\n")
	}
}
