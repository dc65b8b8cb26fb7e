package venuetests

import (
	"fmt"
	"time"

	"github.com/lsv-cafe/api-contract-tests/apidef"
	"github.com/lsv-cafe/api-contract-tests/framework/checks"
)

// DoPerformanceTests measures the latency of the department list. The load check sends its
// requests one after another, so it measures average serial latency, not behavior under
// concurrent load. Slow responses are warnings; a request that gets no response is a failure.
func DoPerformanceTests(t *checks.T) {
	c := requireContext(t)

	elapsed, err := timeRequest(t, apidef.PathDepartments)
	if err != nil {
		t.Errorf("API response time check - Request failed: %s", err)
	} else if elapsed < c.config.SingleRequestThreshold {
		t.Pass("API response time acceptable (%s)", formatMillis(elapsed))
	} else {
		t.Warnf("API response time slow (%s)", formatMillis(elapsed))
	}

	count := c.config.LoadRequestCount
	var total time.Duration
	for i := 0; i < count; i++ {
		elapsed, err := timeRequest(t, apidef.PathDepartments)
		if err != nil {
			t.Errorf("Load test - Request %d of %d failed: %s", i+1, count, err)
			return
		}
		total += elapsed
	}
	average := total / time.Duration(count)
	if average < c.config.AverageRequestThreshold {
		t.Pass("Load test passed (avg %s per request)", formatMillis(average))
	} else {
		t.Warnf("Load test slow (avg %s per request)", formatMillis(average))
	}
}

// timeRequest returns the wall-clock time of an unauthenticated GET, including reading the
// body. The status code is not checked.
func timeRequest(t *checks.T, path string) (time.Duration, error) {
	c := requireContext(t)
	startTime := time.Now()
	_, err := c.client.Get(path, "", t.DebugLogger())
	return time.Since(startTime), err
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}
