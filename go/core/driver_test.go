package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.skia.org/multisection/go/testutils/unittest"
)

func TestDriver_MultisectAllTargets_SharesOneCacheAcrossTargets(t *testing.T) {
	unittest.SmallTest(t)
	seqLen := 10
	runner := newFakeRunner(map[string]string{
		"build": "AAAAABBBBB",
		"test":  "XXXXXXXXXY",
	})
	commits := commitsOfLen(seqLen)
	targets := []Target{
		{Path: "build.sh", Stub: "build"},
		{Path: "test.sh", Stub: "test"},
	}
	driver := NewDriver(commits, targets, runner)

	require.NoError(t, driver.Prepare(context.Background()))
	require.NoError(t, driver.MultisectAllTargets(context.Background()))

	outputs := driver.MultisectedOutputs()
	require.True(t, Validate(outputs["build"]))
	require.True(t, Validate(outputs["test"]))
	assert.Equal(t, 2, RunCount(outputs["build"]))
	assert.Equal(t, 2, RunCount(outputs["test"]))

	// Every probe services both targets at once, so the number of distinct
	// commits actually probed should stay well under an exhaustive sweep of
	// both sequences.
	assert.Less(t, runner.distinctProbeCount(), seqLen)
}

func TestDriver_Prepare_RejectsShortCommitRange(t *testing.T) {
	unittest.SmallTest(t)
	runner := newFakeRunner(map[string]string{"a": "A"})
	driver := NewDriver(commitsOfLen(1), []Target{{Path: "a", Stub: "a"}}, runner)

	err := driver.Prepare(context.Background())
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestDriver_Prepare_RejectsNoTargets(t *testing.T) {
	unittest.SmallTest(t)
	runner := newFakeRunner(map[string]string{})
	driver := NewDriver(commitsOfLen(4), nil, runner)

	err := driver.Prepare(context.Background())
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestDriver_MultisectAllTargets_BeforePrepareIsUsageError(t *testing.T) {
	unittest.SmallTest(t)
	runner := newFakeRunner(map[string]string{"a": "AAAB"})
	driver := NewDriver(commitsOfLen(4), []Target{{Path: "a", Stub: "a"}}, runner)

	err := driver.MultisectAllTargets(context.Background())
	require.Error(t, err)
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
}

func TestDriver_WithFullSweepPolicyOverride(t *testing.T) {
	unittest.SmallTest(t)
	runner := newFakeRunner(map[string]string{"a": "AAAABCCCCC"})
	targets := []Target{{Path: "a", Stub: "a"}}
	driver := NewDriverWithPolicies(commitsOfLen(10), targets, runner, map[string]CompletionPolicy{
		"a": FullSweepPolicy{},
	})

	require.NoError(t, driver.Prepare(context.Background()))
	require.NoError(t, driver.MultisectAllTargets(context.Background()))

	assert.Equal(t, 10, runner.distinctProbeCount())
}
