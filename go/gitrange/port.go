// Package gitrange resolves a linear commit range from a repository host,
// the caller-supplied boundaries a session is configured with. It sits
// outside the multisection kernel: the driver only ever sees the already
// materialized core.CommitRange this package produces.
package gitrange

import (
	"context"

	"go.skia.org/multisection/go/core"
)

// Enumerator resolves the commits strictly after first up to and including
// last, oldest first. Implementations must return at least two commits or
// fail with a *core.ConfigurationError.
type Enumerator interface {
	Commits(ctx context.Context, first, last core.CommitId) (core.CommitRange, error)
}
