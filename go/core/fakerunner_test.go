package core

import (
	"context"
	"fmt"
)

// fakeRunner is a Port backed by an in-memory digest sequence, one per
// target stub, so tests can describe a scenario as a literal string like
// "AAAABCCCCC" instead of wiring up shell commands.
type fakeRunner struct {
	// seqs maps target stub to its digest sequence, one rune per commit
	// position.
	seqs   map[string]string
	probed []int
}

func newFakeRunner(seqs map[string]string) *fakeRunner {
	return &fakeRunner{seqs: seqs}
}

func (f *fakeRunner) Probe(ctx context.Context, idx int, commit CommitId) ([]Result, error) {
	f.probed = append(f.probed, idx)
	results := make([]Result, 0, len(f.seqs))
	for stub, seq := range f.seqs {
		if idx < 0 || idx >= len(seq) {
			return nil, fmt.Errorf("index %d out of range for stub %q", idx, stub)
		}
		results = append(results, Result{
			CommitID:   CommitId(fmt.Sprintf("commit-%d", idx)),
			ShortID:    fmt.Sprintf("c%d", idx),
			OutputPath: fmt.Sprintf("/out/%d/%s", idx, stub),
			Digest:     Digest(seq[idx : idx+1]),
			TargetStub: stub,
		})
	}
	return results, nil
}

// distinctProbeCount returns how many distinct indices were actually probed,
// de-duplicating repeat calls so tests can assert on Cache's fill-once
// guarantee rather than fakeRunner's own bookkeeping.
func (f *fakeRunner) distinctProbeCount() int {
	seen := map[int]bool{}
	for _, idx := range f.probed {
		seen[idx] = true
	}
	return len(seen)
}
