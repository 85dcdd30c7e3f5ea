package core

import "context"

// TargetSession is the slice of shared, cross-target cache state a
// CompletionPolicy is allowed to touch while advancing one target. It
// counts this target's own probe-caused cache fills against a safety bound
// without restricting which commit indices may be probed — a row filled on
// another target's behalf is still a pure cache hit here.
type TargetSession struct {
	cache   *Cache
	commits CommitRange
	stub    string
	probes  int
}

// EnsureIndex guarantees Cache[idx] is filled and returns this target's
// digest at idx. A cache hit (the row was already filled, possibly by
// another target's probe) does not count against this target's probe
// budget.
func (s *TargetSession) EnsureIndex(ctx context.Context, idx int) (Digest, error) {
	wasFilled := s.cache.Filled(idx)
	row, err := s.cache.Ensure(ctx, idx, s.commits[idx])
	if err != nil {
		return "", err
	}
	if !wasFilled {
		s.probes++
		if s.probes > s.cache.Len() {
			return "", newInvariantViolation("target %q issued more probes than the commit range has positions", s.stub)
		}
	}
	return row.Results[s.stub].Digest, nil
}

// View returns this target's current sparse digest sequence.
func (s *TargetSession) View() PerTargetView { return s.cache.View(s.stub) }

// LastIdx returns the final index of the commit range, len(commits)-1.
func (s *TargetSession) LastIdx() int { return s.cache.Len() - 1 }

// CompletionPolicy decides how a target's probing advances one step at a
// time and what internal state it needs to do so. The driver calls Step
// repeatedly, re-validating the target's view after each call rather than
// trusting the policy's own notion of done-ness, so completion stays
// centralized in one predicate instead of scattered through each policy.
type CompletionPolicy interface {
	// NewState returns the starting search state for a target whose commit
	// range has n positions.
	NewState(n int) interface{}
	// Step advances state by one step of the policy's search, issuing
	// whatever probes that step needs (MultisectCompletionPolicy at most
	// two, FullSweepPolicy every index not yet cached), and returns whether
	// it made any progress at all. A false return with an as-yet-unvalidated
	// view indicates the policy has exhausted its own search strategy
	// without satisfying the sequence grammar — the driver treats this as
	// InvariantViolation.
	Step(ctx context.Context, sess *TargetSession, state interface{}) (progressed bool, err error)
}

// bisectState is the (lo, hi) active window of MultisectCompletionPolicy.
type bisectState struct {
	lo, hi int
}

// MultisectCompletionPolicy is the default policy: a bisection search for
// every transition in a target's digest sequence.
type MultisectCompletionPolicy struct{}

func (MultisectCompletionPolicy) NewState(n int) interface{} {
	return &bisectState{lo: 0, hi: n - 1}
}

func (MultisectCompletionPolicy) Step(ctx context.Context, sess *TargetSession, state interface{}) (bool, error) {
	st := state.(*bisectState)
	lastIdx := sess.LastIdx()

	if st.lo >= st.hi {
		return false, nil // window already fully collapsed; nothing left to do
	}

	if st.hi-st.lo <= 1 {
		// Trivially resolved: both endpoints are already cached (loop
		// invariant), so no probe is needed to decide this window.
		dHi, err := sess.EnsureIndex(ctx, st.hi)
		if err != nil {
			return false, err
		}
		dLast, err := sess.EnsureIndex(ctx, lastIdx)
		if err != nil {
			return false, err
		}
		if dHi == dLast {
			st.lo, st.hi = st.hi, st.hi
			return true, nil
		}
		st.lo, st.hi = st.hi, lastIdx
		return true, nil
	}

	m := (st.lo + st.hi) / 2
	dLo, err := sess.EnsureIndex(ctx, st.lo)
	if err != nil {
		return false, err
	}
	dM, err := sess.EnsureIndex(ctx, m)
	if err != nil {
		return false, err
	}
	if dM == dLo {
		// Every position in [lo, m] could share the same value; the next
		// transition, if any, lies in (m, hi].
		st.lo = m
		return true, nil
	}

	// A transition lies somewhere in (lo, m]; narrow further or, if m-1
	// already matches d_lo, it lies exactly at m.
	dPrev, err := sess.EnsureIndex(ctx, m-1)
	if err != nil {
		return false, err
	}
	if dPrev == dLo {
		dLast, err := sess.EnsureIndex(ctx, lastIdx)
		if err != nil {
			return false, err
		}
		if dM == dLast {
			st.lo, st.hi = m, m
			return true, nil
		}
		st.lo, st.hi = m, lastIdx
		return true, nil
	}
	st.hi = m
	return true, nil
}

// fullSweepState tracks the next unvisited index for FullSweepPolicy.
type fullSweepState struct {
	next int
}

// FullSweepPolicy is the degenerate "visit every commit" mode: a single Step
// probes every index not yet cached, in order, instead of bisecting. The
// driver only calls Step while a target's view is still unresolved, so a
// target whose view already validates after Prepare (equal digests at both
// ends) keeps only those two probes. Nothing in the CLI selects it by
// default; it exists for callers that want exhaustive per-commit data
// rather than the minimal probe set.
type FullSweepPolicy struct{}

func (FullSweepPolicy) NewState(n int) interface{} {
	return &fullSweepState{next: 0}
}

func (FullSweepPolicy) Step(ctx context.Context, sess *TargetSession, state interface{}) (bool, error) {
	st := state.(*fullSweepState)
	n := sess.LastIdx() + 1
	progressed := false
	for ; st.next < n; st.next++ {
		if sess.cache.Filled(st.next) {
			continue
		}
		if _, err := sess.EnsureIndex(ctx, st.next); err != nil {
			return false, err
		}
		progressed = true
	}
	return progressed, nil
}
