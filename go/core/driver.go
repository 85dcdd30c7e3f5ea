package core

import "context"

// targetState is one target's position in the overall multisection: its
// policy, that policy's private search state, and the session it uses to
// touch the shared cache.
type targetState struct {
	target Target
	policy CompletionPolicy
	state  interface{}
	sess   *TargetSession
	done   bool
}

// Driver runs the multisection engine for a fixed commit range across a
// fixed set of targets, sharing one probe Cache so that a single probe at
// a given commit index serves every target at once.
type Driver struct {
	commits  CommitRange
	cache    *Cache
	targets  []*targetState
	prepared bool
}

// NewDriver returns a Driver that bisects every target with the default
// MultisectCompletionPolicy.
func NewDriver(commits CommitRange, targets []Target, runner Port) *Driver {
	return NewDriverWithPolicies(commits, targets, runner, nil)
}

// NewDriverWithPolicies is NewDriver, but lets individual targets (keyed by
// stub) override the default policy, e.g. to run FullSweepPolicy instead of
// bisecting.
func NewDriverWithPolicies(commits CommitRange, targets []Target, runner Port, policies map[string]CompletionPolicy) *Driver {
	cache := NewCache(len(commits), runner)
	states := make([]*targetState, len(targets))
	for i, t := range targets {
		var policy CompletionPolicy = MultisectCompletionPolicy{}
		if p, ok := policies[t.Stub]; ok {
			policy = p
		}
		states[i] = &targetState{
			target: t,
			policy: policy,
			sess:   &TargetSession{cache: cache, commits: commits, stub: t.Stub},
		}
	}
	return &Driver{commits: commits, cache: cache, targets: states}
}

// Prepare probes the first and last commit in the range for every target.
// It must run before MultisectAllTargets or InspectTransitions.
func (d *Driver) Prepare(ctx context.Context) error {
	n := len(d.commits)
	if n < 2 {
		return newConfigurationError("commit range must contain at least two commits, got %d", n)
	}
	if len(d.targets) == 0 {
		return newConfigurationError("no targets configured")
	}
	for _, ts := range d.targets {
		if _, err := ts.sess.EnsureIndex(ctx, 0); err != nil {
			return err
		}
		if _, err := ts.sess.EnsureIndex(ctx, n-1); err != nil {
			return err
		}
		ts.state = ts.policy.NewState(n)
	}
	d.prepared = true
	return nil
}

// MultisectAllTargets drives every target's CompletionPolicy to completion,
// interleaving one Step per target per round so that targets make roughly
// even progress instead of finishing one at a time. It returns once every
// target's view satisfies Validate, or on the first error.
func (d *Driver) MultisectAllTargets(ctx context.Context) error {
	if !d.prepared {
		return newUsageError("MultisectAllTargets called before Prepare")
	}
	for {
		anyPending := false
		for _, ts := range d.targets {
			if ts.done {
				continue
			}
			if Validate(ts.sess.View()) {
				ts.done = true
				continue
			}
			anyPending = true

			progressed, err := ts.policy.Step(ctx, ts.sess, ts.state)
			if err != nil {
				return err
			}
			if Validate(ts.sess.View()) {
				ts.done = true
				continue
			}
			if !progressed {
				return newInvariantViolation("target %q made no further progress but its digest sequence is still unresolved", ts.target.Stub)
			}
		}
		if !anyPending {
			return nil
		}
	}
}

// MultisectedOutputs returns the current per-target view for every
// configured target, keyed by target stub. Calling it before
// MultisectAllTargets completes returns whatever partial views exist so
// far.
func (d *Driver) MultisectedOutputs() map[string]PerTargetView {
	out := make(map[string]PerTargetView, len(d.targets))
	for _, ts := range d.targets {
		out[ts.target.Stub] = ts.sess.View()
	}
	return out
}
