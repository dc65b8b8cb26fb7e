package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeInheritsContext(t *testing.T) {
	myContextValue := "hi"
	_ = Run(TestConfiguration{Context: myContextValue}, func(ct *T) {
		assert.Equal(t, myContextValue, ct.Context())

		ct.Run("subscope", func(ct1 *T) {
			assert.Equal(t, myContextValue, ct1.Context())
			assert.Equal(t, TestID{"subscope"}, ct1.ID())
		})
	})
}

func TestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1, executed2, executed3 := false, false, false
	result := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			executed1 = true
			ct.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)

	assert.False(t, result.OK())
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "check failed with no failure message", result.Failures[0].Errors[0].Error())
}

func TestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1, executed2, executed3 := false, false, false
	result := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			executed1 = true
			ct.SkipWithReason("no token")
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)

	assert.True(t, result.OK())
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Warnings)
	groups := result.TopLevel()
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Skipped)
	assert.Equal(t, "no token", groups[0].SkipReason)
}

func TestScopeCountsIndividualChecks(t *testing.T) {
	result := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("parent", func(ct0 *T) {
			ct0.Pass("one")
			ct0.Run("child", func(ct1 *T) {
				ct1.Pass("two")
				ct1.Errorf("failed because %s", "reasons")
				ct1.Warnf("slow")
				ct1.Pass("three")
			})
			ct0.Infof("does not count")
		})
		ct.Run("other", func(ct0 *T) {
			ct0.Warnf("also slow")
		})
	})

	assert.Equal(t, 3, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.Warnings)
	assert.False(t, result.OK())

	groups := result.TopLevel()
	require.Len(t, groups, 2)
	assert.Equal(t, TestID{"parent"}, groups[0].TestID)
	assert.Equal(t, 3, groups[0].Passed)
	assert.Equal(t, 1, groups[0].Failed)
	assert.Equal(t, 1, groups[0].Warnings)
	assert.Equal(t, TestID{"other"}, groups[1].TestID)
	assert.Equal(t, 0, groups[1].Passed)
	assert.Equal(t, 1, groups[1].Warnings)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, TestID{"parent", "child"}, result.Failures[0].TestID)
	assert.Equal(t, "failed because reasons", result.Failures[0].Errors[0].Error())
}

func TestScopeErrorfDoesNotTerminate(t *testing.T) {
	executed := false
	result := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			ct.Errorf("first")
			ct.Errorf("second")
			executed = true
		})
	})
	assert.True(t, executed)
	assert.Equal(t, 2, result.Failed)
}

func TestScopeRecoversFromUnexpectedPanic(t *testing.T) {
	executed := false
	result := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			panic("oops")
		})
		executed = true
	})
	assert.True(t, executed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Errors[0].Error(), "unexpected panic in check: oops")
}

func TestScopeRunsCleanupsInReverseOrder(t *testing.T) {
	var calls []string
	_ = Run(TestConfiguration{}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			ct.Defer(func() { calls = append(calls, "first") })
			ct.Defer(func() { calls = append(calls, "second") })
			ct.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, calls)
}

func TestScopeFilterExclusionIsNotAWarning(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(ct *T) {
		ct.Run("a", func(ct0 *T) {
			ct0.Pass("excluded")
		})
		ct.Run("b", func(ct0 *T) {
			ct0.Pass("included")
		})
	})

	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 0, result.Warnings)
	groups := result.TopLevel()
	require.Len(t, groups, 1)
	assert.Equal(t, TestID{"b"}, groups[0].TestID)
}

func TestScopeSupportsTestifyAssertions(t *testing.T) {
	result := Run(TestConfiguration{}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			assert.Equal(ct, 1, 2)
			require.True(ct, false)
			ct.Pass("not reached")
		})
	})
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 0, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.NotContains(t, result.Failures[0].Errors[0].Error(), "Error Trace:")
}

func TestScopeDebugOutputIsPassedToLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	_ = Run(TestConfiguration{TestLogger: logger}, func(ct *T) {
		ct.Run("a", func(ct *T) {
			ct.Debug("hello %s", "there")
			ct.DebugLogger().Printf("again")
		})
	})
	require.Len(t, logger.finished, 1)
	output := logger.finished[0].ToString("")
	assert.Contains(t, output, "hello there")
	assert.Contains(t, output, "again")
}
