package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"go.skia.org/multisection/go/core"
)

// WriteText renders results as a human-readable table, one block per
// target, highlighting transitions in the given order. Color is disabled
// automatically when stdout is not a terminal (color.NoColor handles that
// globally, whatever w is); colorEnabled lets callers force it off
// regardless, e.g. for -no_color or when w is a file.
func WriteText(w io.Writer, results map[string]core.InspectionResult, order []string, colorEnabled bool) error {
	boundary := color.New(color.FgYellow, color.Bold)
	header := color.New(color.FgCyan, color.Bold)
	if !colorEnabled {
		boundary.DisableColor()
		header.DisableColor()
	}

	for _, stub := range order {
		r, ok := results[stub]
		if !ok {
			continue
		}
		header.Fprintf(w, "== %s (%s) ==\n", r.Target.Path, r.Target.Stub)
		fmt.Fprintf(w, "  oldest: %s  digest=%s\n", shortOrDash(r.Oldest), digestOrDash(r.Oldest))
		fmt.Fprintf(w, "  newest: %s  digest=%s\n", shortOrDash(r.Newest), digestOrDash(r.Newest))

		if len(r.Transitions) == 0 {
			fmt.Fprintln(w, "  no transitions found")
			continue
		}
		for _, tr := range r.Transitions {
			boundary.Fprintf(w, "  transition: %s (%s) -> %s (%s)\n",
				shortOrDash(tr.Before), digestOrDash(tr.Before),
				shortOrDash(tr.After), digestOrDash(tr.After))
		}
	}
	return nil
}

func shortOrDash(e *core.Entry) string {
	if e == nil {
		return "-"
	}
	return e.ShortID
}

func digestOrDash(e *core.Entry) string {
	if e == nil {
		return "-"
	}
	return string(e.Digest)
}
