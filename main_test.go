package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/lsv-cafe/api-contract-tests/mockapi"

	"github.com/fatih/color"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAgainstMockAPI(t *testing.T) {
	color.NoColor = true
	httphelpers.WithServer(mockapi.NewServer(mockapi.Options{DisableCORS: true}), func(server *httptest.Server) {
		var params commandParams
		require.NoError(t, params.Read([]string{"x", "-url", server.URL + mockapi.BasePath, "-skip", "performance"}))

		var buf bytes.Buffer
		results := run(params, &buf)
		out := buf.String()

		assert.True(t, results.OK())
		assert.Equal(t, 1, results.Warnings)
		assert.Contains(t, out, "Base URL: "+server.URL+mockapi.BasePath)
		assert.Contains(t, out, "HEALTH CHECK\n")
		assert.Contains(t, out, "⚠ CORS headers not found")
		assert.Contains(t, out, "EXCLUDED: performance")
		assert.Contains(t, out, "✓ All critical checks passed.")
	})
}
