// Package runner supplies the reference implementation of the Runner port
// the multisection kernel depends on: given a commit index, check the
// working tree out to that commit, build and test it, and return one
// digested Result per configured target. The kernel itself only depends on
// the core.Port interface; everything in this package is an external
// collaborator wired in by cmd/multisection.
package runner

import "go.skia.org/multisection/go/core"

// Port is an alias for core.Port, kept here so callers constructing a
// runner adapter don't need to import core just to name the interface they
// are satisfying.
type Port = core.Port
