// Package unittest tags tests by how expensive they are to run, matching
// the go.skia.org/infra convention of SmallTest/MediumTest/LargeTest calls
// at the top of a test function. SmallTest enables t.Parallel(); the larger
// tiers are skipped under `go test -short`.
package unittest

import "testing"

// SmallTest marks t as a fast, in-memory-only test. Safe to run in parallel.
func SmallTest(t *testing.T) {
	t.Helper()
	t.Parallel()
}

// MediumTest marks t as a test that touches the filesystem or spawns a
// subprocess but still completes quickly.
func MediumTest(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping medium test in short mode")
	}
}

// LargeTest marks t as a slow test (network, real external tooling).
func LargeTest(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping large test in short mode")
	}
}
