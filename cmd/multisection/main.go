// Command multisection locates every digest transition across a linear
// commit range for a set of build/test targets, probing as few
// intermediate commits as the bisection search allows.
package main

import (
	"context"
	"flag"
	"os"

	"go.skia.org/multisection/go/core"
	"go.skia.org/multisection/go/gitrange"
	"go.skia.org/multisection/go/report"
	"go.skia.org/multisection/go/runner"
	"go.skia.org/multisection/go/sklog"
	"go.skia.org/multisection/go/target"
)

func main() {
	flag.Parse()
	if *verbose {
		sklog.SetThreshold(sklog.Debug)
	}
	if err := validateFlags(); err != nil {
		sklog.Fatal(err)
	}

	ctx := context.Background()
	if err := run(ctx); err != nil {
		sklog.Fatal(err)
	}
}

func run(ctx context.Context) error {
	targets, err := target.NewTargets(targetPaths)
	if err != nil {
		return err
	}

	enumerator := gitrange.NewGitilesEnumerator(*repository, nil)
	endBoundary := core.CommitId(*last)
	trimLast := false
	if *lastBefore != "" {
		endBoundary = core.CommitId(*lastBefore)
		trimLast = true
	}
	commits, err := enumerator.Commits(ctx, core.CommitId(*first), endBoundary)
	if err != nil {
		return err
	}
	if trimLast && len(commits) > 0 {
		commits = commits[:len(commits)-1]
	}

	adapter := runner.NewShellAdapter(*workdir, *outputdir, targets, *configureCommand, *makeCommand, *testCommand)
	adapter.ShortIDLen = *shortIDLen

	driver := core.NewDriver(commits, targets, adapter)
	if err := driver.Prepare(ctx); err != nil {
		return err
	}
	sklog.Infof("resolved %d commits on branch %s, probing %d targets", len(commits), *branch, len(targets))
	if err := driver.MultisectAllTargets(ctx); err != nil {
		return err
	}

	results, err := driver.Inspect()
	if err != nil {
		return err
	}

	order := make([]string, len(targets))
	for i, t := range targets {
		order[i] = t.Stub
	}

	if err := report.WriteText(os.Stdout, results, order, !*noColor); err != nil {
		return err
	}
	if *jsonOutput != "" {
		f, err := os.Create(*jsonOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteJSON(f, results, order); err != nil {
			return err
		}
	}
	return nil
}
