package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lsv-cafe/api-contract-tests/apiclient"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
	"github.com/lsv-cafe/api-contract-tests/venuetests"
)

const startTimeFormat = "2006-01-02 15:04:05"

func main() {
	var params commandParams
	if err := params.Read(os.Args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitCodeSuccess)
		}
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(exitCodeRuntimeError)
	}

	results := run(params, os.Stdout)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed groups again:")
		fmt.Printf("  %s\n", rerunCommand(os.Args[0], params, checks.FailedGroups(results)))
		os.Exit(exitCodeCheckFailure)
	}
}

func run(params commandParams, out io.Writer) checks.Results {
	_, _ = fmt.Fprintln(out, "LSV Cafe API contract tests")
	_, _ = fmt.Fprintf(out, "Base URL: %s\n", params.baseURL)
	_, _ = fmt.Fprintf(out, "Started: %s\n\n", time.Now().Format(startTimeFormat))

	checks.PrintFilterDescription(params.filters)

	client := apiclient.NewClient(params.baseURL, params.timeout, nil)
	testLogger := checks.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Out:                  out,
	}
	results := venuetests.RunTestSuite(client, params.suite, params.filters, testLogger)

	_, _ = fmt.Fprintln(out)
	checks.PrintResults(results, out)
	return results
}
