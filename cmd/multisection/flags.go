package main

import (
	"flag"

	"go.skia.org/multisection/go/common"
	"go.skia.org/multisection/go/core"
)

var (
	first      = flag.String("first", "", "Commit excluded from the search, the last known-good state.")
	last       = flag.String("last", "", "Commit included as the end of the search range.")
	lastBefore = flag.String("last_before", "", "Alternative to -last: search up to, but excluding, this commit.")
	shortIDLen = flag.Int("short", 12, "Number of leading characters of a commit hash to use in reports and artifact names.")
	verbose    = flag.Bool("verbose", false, "Log at Debug level instead of Info.")

	workdir   = flag.String("workdir", "", "Path to the checked-out repository the runner operates in.")
	outputdir = flag.String("outputdir", "", "Directory probe artifacts are written under.")

	configureCommand = flag.String("configure_command", "", "Command run once per probed commit before building, if non-empty.")
	makeCommand      = flag.String("make_command", "", "Command run once per probed commit to build it, if non-empty.")
	testCommand      = flag.String("test_command", "", "Command run once per target per probed commit; {target} is replaced with the target's path.")

	branch     = flag.String("branch", "main", "Branch name reported in the startup log; it does not affect range resolution or probing.")
	repository = flag.String("repository", "", "Gitiles base URL of the repository to resolve the commit range from.")

	jsonOutput = flag.String("json_output", "", "If set, also write the JSON report to this path.")
	noColor    = flag.Bool("no_color", false, "Disable ANSI color in the text report even when stdout is a terminal.")

	targetPaths []string
)

func init() {
	common.MultiStringFlagVar(&targetPaths, "targets", nil, "Repeatable. A command to probe at every commit; may be passed multiple times.")
}

// validateFlags applies the cross-flag checks flag.Parse can't express on
// its own.
func validateFlags() error {
	if *workdir == "" {
		return &core.ConfigurationError{Message: "-workdir is required"}
	}
	if *outputdir == "" {
		return &core.ConfigurationError{Message: "-outputdir is required"}
	}
	if *repository == "" {
		return &core.ConfigurationError{Message: "-repository is required"}
	}
	if *first == "" {
		return &core.ConfigurationError{Message: "-first is required"}
	}
	if *last == "" && *lastBefore == "" {
		return &core.ConfigurationError{Message: "one of -last or -last_before is required"}
	}
	if *last != "" && *lastBefore != "" {
		return &core.ConfigurationError{Message: "-last and -last_before are mutually exclusive"}
	}
	if *testCommand == "" {
		return &core.ConfigurationError{Message: "-test_command is required"}
	}
	if len(targetPaths) == 0 {
		return &core.ConfigurationError{Message: "at least one -targets value is required"}
	}
	return nil
}
