package checks

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const summaryRuleWidth = 60

// PrintResults writes the end-of-run summary: a table with one row per check group, the
// overall counters, and a verdict line. If out is nil, it writes to os.Stdout.
func PrintResults(results Results, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	rule := strings.Repeat("=", summaryRuleWidth)
	_, _ = fmt.Fprintf(out, "%s\nTEST SUMMARY (%s)\n%s\n", rule, formatDuration(results.Duration), rule)

	groups := results.TopLevel()
	if len(groups) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.AppendHeader(table.Row{"Group", "Duration", "Passed", "Failed", "Warnings", "Status"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Group", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
			{Name: "Duration", Align: text.AlignRight},
			{Name: "Passed", Align: text.AlignRight},
			{Name: "Failed", Align: text.AlignRight},
			{Name: "Warnings", Align: text.AlignRight},
		})
		for _, g := range groups {
			t.AppendRow(table.Row{
				g.TestID.String(),
				formatDuration(g.Duration),
				g.Passed,
				g.Failed,
				g.Warnings,
				groupStatus(g),
			})
		}
		t.AppendFooter(table.Row{
			"TOTAL",
			formatDuration(results.Duration),
			results.Passed,
			results.Failed,
			results.Warnings,
			"",
		})
		t.SetStyle(table.StyleLight)
		t.Render()
	}

	_, _ = consolePassedColor.Fprintf(out, "Passed: %d\n", results.Passed)
	_, _ = consoleFailedColor.Fprintf(out, "Failed: %d\n", results.Failed)
	_, _ = consoleWarningColor.Fprintf(out, "Warnings: %d\n", results.Warnings)
	_, _ = fmt.Fprintln(out)

	if results.OK() {
		_, _ = consolePassedColor.Fprintf(out, "%s All critical checks passed.\n", passedMark)
	} else {
		_, _ = consoleFailedColor.Fprintf(out, "%s Some checks failed. Please review above.\n", failedMark)
		for _, f := range results.Failures {
			_, _ = consoleFailedColor.Fprintf(out, "  * %s\n", f.TestID)
		}
	}
}

// FailedGroups returns the names of the top-level groups that recorded at least one failure,
// in the order they ran.
func FailedGroups(results Results) []string {
	var ret []string
	for _, g := range results.TopLevel() {
		if g.Failed > 0 {
			ret = append(ret, g.TestID.String())
		}
	}
	return ret
}

func groupStatus(r TestResult) string {
	switch {
	case r.Failed > 0:
		return "FAIL"
	case r.Skipped:
		return "SKIP"
	case r.Warnings > 0:
		return "WARN"
	default:
		return "PASS"
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
