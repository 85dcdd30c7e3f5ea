package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"go.skia.org/multisection/go/core"
	"go.skia.org/multisection/go/exec"
	"go.skia.org/multisection/go/skerr"
	"go.skia.org/multisection/go/sklog"
)

// targetPlaceholder is substituted with a target's Path inside TestCommand.
const targetPlaceholder = "{target}"

// ShellAdapter is the reference runner.Port implementation: it checks the
// working tree out to each probed commit, rebuilds it, and runs every
// configured target's test command once, digesting the normalized combined
// output. It satisfies core.Port.
type ShellAdapter struct {
	// Workdir is the checked-out repository the adapter operates in.
	Workdir string
	// OutputDir is where per-probe logs are written, one run-scoped
	// subdirectory per ShellAdapter lifetime.
	OutputDir string
	// Targets are the commands probed at every commit.
	Targets []core.Target

	ConfigureCommand string
	MakeCommand      string
	TestCommand      string

	// Normalizers overrides the default output-noise regexps; nil uses
	// defaultNormalizers.
	Normalizers []*regexp.Regexp

	// ShortIDLen controls how many leading characters of a commit hash
	// appear in reports and artifact filenames. Zero means 12.
	ShortIDLen int

	runID string
}

// NewShellAdapter returns a ShellAdapter stamped with a fresh run ID, used
// to keep one invocation's artifacts from colliding with another's under
// OutputDir.
func NewShellAdapter(workdir, outputDir string, targets []core.Target, configureCmd, makeCmd, testCmd string) *ShellAdapter {
	return &ShellAdapter{
		Workdir:          workdir,
		OutputDir:        outputDir,
		Targets:          targets,
		ConfigureCommand: configureCmd,
		MakeCommand:      makeCmd,
		TestCommand:      testCmd,
		runID:            uuid.New().String(),
	}
}

// Probe implements core.Port.
func (a *ShellAdapter) Probe(ctx context.Context, idx int, commit core.CommitId) ([]core.Result, error) {
	if _, err := exec.RunCwd(ctx, a.Workdir, "git", "checkout", string(commit)); err != nil {
		return nil, skerr.Wrapf(err, "checking out %s", commit)
	}
	if a.ConfigureCommand != "" {
		if _, err := a.runInWorkdir(ctx, a.ConfigureCommand); err != nil {
			return nil, skerr.Wrapf(err, "configuring at %s", commit)
		}
	}
	if a.MakeCommand != "" {
		if _, err := a.runInWorkdir(ctx, a.MakeCommand); err != nil {
			return nil, skerr.Wrapf(err, "building at %s", commit)
		}
	}

	shortIDLen := a.ShortIDLen
	if shortIDLen == 0 {
		shortIDLen = 12
	}
	shortID := string(commit)
	if len(shortID) > shortIDLen {
		shortID = shortID[:shortIDLen]
	}

	results := make([]core.Result, 0, len(a.Targets))
	for _, target := range a.Targets {
		cmdLine := strings.ReplaceAll(a.TestCommand, targetPlaceholder, target.Path)
		output, testErr := a.runInWorkdir(ctx, cmdLine)
		// A failing test command still produces a meaningful digest of its
		// output; the adapter only fails the probe on infrastructure errors
		// (checkout/configure/build), not on test exit status.
		normalized := Normalize([]byte(output), a.Normalizers)
		digest := DigestOf(normalized)

		outPath, err := a.writeArtifact(shortID, target.Stub, output)
		if err != nil {
			return nil, err
		}

		sklog.Infof("probed %s at %s: digest=%s test_err=%v", target.Stub, shortID, digest, testErr)
		results = append(results, core.Result{
			CommitID:   commit,
			ShortID:    shortID,
			OutputPath: outPath,
			Digest:     digest,
			TargetStub: target.Stub,
		})
	}
	return results, nil
}

func (a *ShellAdapter) runInWorkdir(ctx context.Context, cmdLine string) (string, error) {
	parsed := exec.ParseCommand(cmdLine)
	return exec.RunCwd(ctx, a.Workdir, parsed.Name, parsed.Args...)
}

func (a *ShellAdapter) writeArtifact(shortID, stub, output string) (string, error) {
	dir := filepath.Join(a.OutputDir, a.runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", skerr.Wrapf(err, "creating output dir %s", dir)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s.log", shortID, stub))
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return "", skerr.Wrapf(err, "writing artifact %s", path)
	}
	return path, nil
}
