package core

import (
	"context"

	"go.skia.org/multisection/go/sklog"
)

// Cache memoizes the Runner port: at most one Probe call per commit
// position for the lifetime of a session. Rows are never overwritten once
// filled; the set of filled indices grows monotonically.
type Cache struct {
	rows   []*ProbeRow
	runner Port
}

// NewCache returns a Cache of length n backed by runner. n must be the
// length of the commit range the session operates over.
func NewCache(n int, runner Port) *Cache {
	return &Cache{rows: make([]*ProbeRow, n), runner: runner}
}

// Len returns the number of commit positions the cache covers.
func (c *Cache) Len() int { return len(c.rows) }

// Filled reports whether position i has already been probed.
func (c *Cache) Filled(i int) bool {
	return c.rows[i] != nil
}

// Ensure returns the ProbeRow for position i, probing the runner on first
// access and storing the result. Subsequent calls for the same i are a pure
// cache hit and never invoke the runner again.
func (c *Cache) Ensure(ctx context.Context, idx int, commit CommitId) (*ProbeRow, error) {
	if row := c.rows[idx]; row != nil {
		return row, nil
	}
	sklog.Infof("probing commit %s (index %d)", commit, idx)
	results, err := c.runner.Probe(ctx, idx, commit)
	if err != nil {
		return nil, newProbeError(idx, commit, err)
	}
	row := &ProbeRow{Results: make(map[string]Result, len(results))}
	for _, r := range results {
		row.Results[r.TargetStub] = r
	}
	c.rows[idx] = row
	return row, nil
}

// View projects the cache onto one target's sparse digest sequence. The
// returned slice is rebuilt fresh on each call and holds copies of the
// underlying results, not references that could be mutated out from under
// a caller holding onto an old view.
func (c *Cache) View(stub string) PerTargetView {
	view := make(PerTargetView, len(c.rows))
	for i, row := range c.rows {
		if row == nil {
			continue
		}
		res, ok := row.Results[stub]
		if !ok {
			continue
		}
		view[i] = &Entry{
			Idx:        i,
			Digest:     res.Digest,
			OutputPath: res.OutputPath,
			ShortID:    res.ShortID,
			CommitID:   res.CommitID,
		}
	}
	return view
}
