// Package core implements the multisection engine: the bisection state
// machine, probe cache, sequence validator, and reporting that locate every
// digest transition in a commit range while probing a minimal number of
// intermediate commits. Everything it depends on (the Runner port, the
// commit range) is supplied by the caller.
package core

import "context"

// CommitId is an opaque, immutable commit identifier.
type CommitId string

// CommitRange is an ordered sequence of commits, oldest first.
type CommitRange []CommitId

// Target names one observed command; Stub is its filesystem-safe rewrite
// (every '/' and '.' replaced with '_') used to key per-target state.
type Target struct {
	Path string
	Stub string
}

// Digest is a fixed-width hex content hash of a target's normalized output
// at one commit. Equal digests mean equal normalized content.
type Digest string

// Result is what the Runner port returns for one (commit, target) pair.
type Result struct {
	CommitID   CommitId
	ShortID    string
	OutputPath string
	Digest     Digest
	TargetStub string
}

// ProbeRow is everything learned about one commit position: one Result per
// target, keyed by target stub. A ProbeRow is only ever constructed fully
// populated; there is no partially-filled state, a row is either entirely
// present (every configured target) or entirely absent.
type ProbeRow struct {
	Results map[string]Result
}

// Port is the interface the driver depends on to learn a commit's state:
// given a zero-based position in the commit range, run every configured
// target at that commit and return one Result per target. Implementations
// must be deterministic (same digest on repeat) and must return the working
// tree to a consistent state whether or not the probe succeeds.
type Port interface {
	Probe(ctx context.Context, idx int, commit CommitId) ([]Result, error)
}

// Entry is one defined position in a PerTargetView: a digest plus enough of
// its Result to build a report.
type Entry struct {
	Idx        int
	Digest     Digest
	OutputPath string
	ShortID    string
	CommitID   CommitId
}

// PerTargetView is a sparse projection of the Cache onto one target: index i
// is defined iff Cache[i] has been filled and contains that target's stub.
type PerTargetView []*Entry
