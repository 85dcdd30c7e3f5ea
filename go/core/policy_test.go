package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.skia.org/multisection/go/testutils/unittest"
)

func commitsOfLen(n int) CommitRange {
	commits := make(CommitRange, n)
	for i := range commits {
		commits[i] = CommitId(fakeCommitID(i))
	}
	return commits
}

func fakeCommitID(i int) string { return "commit-" + string(rune('a'+i%26)) }

func driveToCompletion(t *testing.T, policy CompletionPolicy, seq string) (*TargetSession, *fakeRunner) {
	t.Helper()
	runner := newFakeRunner(map[string]string{"a": seq})
	cache := NewCache(len(seq), runner)
	commits := commitsOfLen(len(seq))
	sess := &TargetSession{cache: cache, commits: commits, stub: "a"}

	_, err := sess.EnsureIndex(context.Background(), 0)
	require.NoError(t, err)
	_, err = sess.EnsureIndex(context.Background(), len(seq)-1)
	require.NoError(t, err)

	state := policy.NewState(len(seq))
	for i := 0; i < len(seq)+5; i++ {
		if Validate(sess.View()) {
			return sess, runner
		}
		progressed, err := policy.Step(context.Background(), sess, state)
		require.NoError(t, err)
		require.True(t, progressed, "policy stalled before reaching a valid view")
	}
	t.Fatalf("policy did not converge within len(seq)+5 steps")
	return nil, nil
}

func TestMultisectCompletionPolicy_NoTransition(t *testing.T) {
	unittest.SmallTest(t)
	sess, runner := driveToCompletion(t, MultisectCompletionPolicy{}, "AAAAAAAAAA")
	assert.True(t, Validate(sess.View()))
	assert.Equal(t, 1, RunCount(sess.View()))
	assert.LessOrEqual(t, runner.distinctProbeCount(), 10)
}

func TestMultisectCompletionPolicy_SingleMidpointTransition(t *testing.T) {
	unittest.SmallTest(t)
	sess, runner := driveToCompletion(t, MultisectCompletionPolicy{}, "AAAAABBBBB")
	view := sess.View()
	require.True(t, Validate(view))
	assert.Equal(t, 2, RunCount(view))
	// Bisection should locate the one boundary in O(log N) probes, well
	// under an exhaustive per-commit sweep.
	assert.Less(t, runner.distinctProbeCount(), 10)
}

func TestMultisectCompletionPolicy_TwoTransitions(t *testing.T) {
	unittest.SmallTest(t)
	sess, _ := driveToCompletion(t, MultisectCompletionPolicy{}, "AAAABCCCCC")
	view := sess.View()
	require.True(t, Validate(view))
	assert.Equal(t, 3, RunCount(view))
}

func TestMultisectCompletionPolicy_TransitionAtSecondPosition(t *testing.T) {
	unittest.SmallTest(t)
	sess, _ := driveToCompletion(t, MultisectCompletionPolicy{}, "ABBBBBBBBB")
	view := sess.View()
	require.True(t, Validate(view))
	assert.Equal(t, 2, RunCount(view))
}

func TestFullSweepPolicy_ProbesEveryPosition(t *testing.T) {
	unittest.SmallTest(t)
	sess, runner := driveToCompletion(t, FullSweepPolicy{}, "AAAABCCCCC")
	assert.True(t, Validate(sess.View()))
	assert.Equal(t, 10, runner.distinctProbeCount())
	for i := 0; i < 10; i++ {
		assert.True(t, sess.cache.Filled(i))
	}
}

func TestTargetSession_EnsureIndex_ExceedingProbeBudgetIsInvariantViolation(t *testing.T) {
	unittest.SmallTest(t)
	runner := newFakeRunner(map[string]string{"a": "AB"})
	cache := NewCache(2, runner)
	sess := &TargetSession{cache: cache, commits: commitsOfLen(2), stub: "a"}

	_, err := sess.EnsureIndex(context.Background(), 0)
	require.NoError(t, err)
	_, err = sess.EnsureIndex(context.Background(), 1)
	require.NoError(t, err)

	// Force the probe counter past the bound by hand to exercise the guard;
	// a correct policy never does this.
	sess.probes = cache.Len()
	cache.rows[0] = nil
	_, err = sess.EnsureIndex(context.Background(), 0)
	require.Error(t, err)
	var invariantErr *InvariantViolation
	require.ErrorAs(t, err, &invariantErr)
}
