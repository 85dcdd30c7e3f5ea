package runner

import (
	"context"

	"go.skia.org/multisection/go/core"
)

// BuildTargetStub names the implicit target a singleTargetAdapter reports
// under, for sessions with no explicit -targets configured.
const BuildTargetStub = "build"

// SingleProbeFunc runs one implicit build/test cycle at a commit and
// returns its digest plus the output artifact path it wrote, if any.
type SingleProbeFunc func(ctx context.Context, idx int, commit core.CommitId) (digest core.Digest, outputPath string, err error)

type singleTargetAdapter struct {
	probe SingleProbeFunc
}

// NewSingleTargetAdapter adapts probe to core.Port, reporting its result
// under BuildTargetStub. Used by the single-target build-transition mode,
// which has no per-target stub computation to do.
func NewSingleTargetAdapter(probe SingleProbeFunc) core.Port {
	return &singleTargetAdapter{probe: probe}
}

func (a *singleTargetAdapter) Probe(ctx context.Context, idx int, commit core.CommitId) ([]core.Result, error) {
	digest, outputPath, err := a.probe(ctx, idx, commit)
	if err != nil {
		return nil, err
	}
	shortID := string(commit)
	if len(shortID) > 12 {
		shortID = shortID[:12]
	}
	return []core.Result{{
		CommitID:   commit,
		ShortID:    shortID,
		OutputPath: outputPath,
		Digest:     digest,
		TargetStub: BuildTargetStub,
	}}, nil
}
