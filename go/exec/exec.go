// Package exec runs external commands the way the multisection runner needs
// to: with a timeout, with combined-output capture, and with an injectable
// collector so tests never spawn a real process.
package exec

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"go.skia.org/multisection/go/skerr"
)

// Command describes a single external command invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string

	Stdin          io.Reader
	Stdout         io.Writer
	Stderr         io.Writer
	CombinedOutput io.Writer

	Timeout time.Duration
}

// RunFn actually executes (or, in tests, records) a Command.
type RunFn func(ctx context.Context, cmd *Command) error

type contextKey struct{}

// NewContext returns a context that causes Run to call fn instead of
// spawning a real process. Used by tests and by CommandCollector.
func NewContext(ctx context.Context, fn RunFn) context.Context {
	return context.WithValue(ctx, contextKey{}, fn)
}

func runFnFromContext(ctx context.Context) RunFn {
	if fn, ok := ctx.Value(contextKey{}).(RunFn); ok {
		return fn
	}
	return defaultRun
}

// Run executes cmd, honoring a context injected via NewContext if present.
func Run(ctx context.Context, cmd *Command) error {
	return runFnFromContext(ctx)(ctx, cmd)
}

// RunSimple parses and runs a single command line, returning its combined
// output.
func RunSimple(ctx context.Context, cmdLine string) (string, error) {
	parsed := ParseCommand(cmdLine)
	var buf bytes.Buffer
	err := Run(ctx, &Command{Name: parsed.Name, Args: parsed.Args, CombinedOutput: &buf})
	return buf.String(), err
}

// RunCwd runs name+args in dir and returns combined output.
func RunCwd(ctx context.Context, dir string, name string, args ...string) (string, error) {
	var buf bytes.Buffer
	err := Run(ctx, &Command{Name: name, Args: args, Dir: dir, CombinedOutput: &buf})
	return buf.String(), err
}

func defaultRun(ctx context.Context, cmd *Command) error {
	runCtx := ctx
	var cancel context.CancelFunc
	if cmd.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}
	c := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdin = cmd.Stdin

	stdout := squashWriters(cmd.Stdout, cmd.CombinedOutput)
	stderr := squashWriters(cmd.Stderr, cmd.CombinedOutput)
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return skerr.Fmt("command killed: %s timed out after %s", DebugString(cmd), cmd.Timeout)
	}
	if err != nil {
		return skerr.Wrapf(err, "running %s", DebugString(cmd))
	}
	return nil
}

// squashWriters merges multiple writers (skipping nils) into one io.Writer,
// or nil if every argument was nil.
func squashWriters(writers ...io.Writer) io.Writer {
	live := make([]io.Writer, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		live = append(live, w)
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return io.MultiWriter(live...)
	}
}

// CommandCollector is a RunFn that records every Command it is given
// instead of running it, for tests that only need to assert what would
// have been executed.
type CommandCollector struct {
	commands []*Command
}

// Run implements RunFn.
func (c *CommandCollector) Run(ctx context.Context, cmd *Command) error {
	c.commands = append(c.commands, cmd)
	return nil
}

// Commands returns every Command recorded so far.
func (c *CommandCollector) Commands() []*Command {
	return c.commands
}

// ClearCommands discards recorded commands.
func (c *CommandCollector) ClearCommands() {
	c.commands = nil
}

// DebugString renders cmd the way a shell would echo it.
func DebugString(cmd *Command) string {
	parts := append([]string{cmd.Name}, cmd.Args...)
	return strings.Join(parts, " ")
}

// ParseCommand splits a shell-like command line on whitespace. It does not
// understand quoting; callers with arguments containing spaces should build
// a Command directly instead.
func ParseCommand(cmdLine string) Command {
	fields := strings.Fields(cmdLine)
	if len(fields) == 0 {
		return Command{Name: "", Args: []string{}}
	}
	return Command{Name: fields[0], Args: append([]string{}, fields[1:]...)}
}

// RunCommand is a convenience wrapper returning combined output as a string,
// matching the shape other go.skia.org/infra callers expect from a single
// invocation.
func RunCommand(ctx context.Context, cmd *Command) (string, error) {
	var buf bytes.Buffer
	if cmd.CombinedOutput == nil {
		cmd.CombinedOutput = &buf
	}
	err := Run(ctx, cmd)
	return buf.String(), err
}
