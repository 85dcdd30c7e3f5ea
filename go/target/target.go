// Package target turns the raw command strings a caller passes via
// -targets into core.Target values, computing each one's filesystem-safe
// stub and rejecting any stub collision up front.
package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"go.skia.org/multisection/go/core"
	"go.skia.org/multisection/go/skerr"
)

// stubReplacer rewrites the characters a target path may contain that
// cannot appear in a filename component.
var stubReplacer = strings.NewReplacer("/", "_", ".", "_")

// Stub computes the canonical, filesystem-safe rewrite of a target path.
func Stub(path string) string {
	return stubReplacer.Replace(path)
}

// NewTargets builds one core.Target per path, in the order given, and
// rejects the whole set if any two paths compute the same stub.
func NewTargets(paths []string) ([]core.Target, error) {
	targets := make([]core.Target, len(paths))
	byStub := make(map[string][]string, len(paths))
	for i, p := range paths {
		stub := Stub(p)
		targets[i] = core.Target{Path: p, Stub: stub}
		byStub[stub] = append(byStub[stub], p)
	}

	var errs error
	for stub, paths := range byStub {
		if len(paths) > 1 {
			errs = multierror.Append(errs, fmt.Errorf("targets %s all collide on stub %q", strings.Join(paths, ", "), stub))
		}
	}
	if errs != nil {
		return nil, skerr.Wrap(&core.ConfigurationError{Message: errs.Error()})
	}
	return targets, nil
}
