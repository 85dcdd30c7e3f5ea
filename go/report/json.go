// Package report renders a completed multisection session's results, one
// writer per output format the CLI supports.
package report

import (
	"encoding/json"
	"io"

	"go.skia.org/multisection/go/core"
)

// jsonEntry mirrors core.Entry with stable, documented field names for the
// wire format.
type jsonEntry struct {
	Index      int           `json:"index"`
	CommitID   core.CommitId `json:"commit_id"`
	ShortID    string        `json:"short_id"`
	Digest     core.Digest   `json:"digest"`
	OutputPath string        `json:"output_path"`
}

type jsonTransition struct {
	Before jsonEntry `json:"before"`
	After  jsonEntry `json:"after"`
}

type jsonTarget struct {
	Path        string           `json:"path"`
	Stub        string           `json:"stub"`
	Oldest      jsonEntry        `json:"oldest"`
	Newest      jsonEntry        `json:"newest"`
	Transitions []jsonTransition `json:"transitions"`
}

type jsonReport struct {
	Targets []jsonTarget `json:"targets"`
}

func toJSONEntry(e *core.Entry) jsonEntry {
	if e == nil {
		return jsonEntry{}
	}
	return jsonEntry{
		Index:      e.Idx,
		CommitID:   e.CommitID,
		ShortID:    e.ShortID,
		Digest:     e.Digest,
		OutputPath: e.OutputPath,
	}
}

// buildReport converts the driver's inspection results into the stable
// wire shape, listing targets in the caller-given order so output is
// deterministic across runs. Stubs missing from order are left out.
func buildReport(results map[string]core.InspectionResult, order []string) jsonReport {
	out := jsonReport{Targets: make([]jsonTarget, 0, len(order))}
	for _, stub := range order {
		r, ok := results[stub]
		if !ok {
			continue
		}
		transitions := make([]jsonTransition, 0, len(r.Transitions))
		for _, tr := range r.Transitions {
			transitions = append(transitions, jsonTransition{
				Before: toJSONEntry(tr.Before),
				After:  toJSONEntry(tr.After),
			})
		}
		out.Targets = append(out.Targets, jsonTarget{
			Path:        r.Target.Path,
			Stub:        r.Target.Stub,
			Oldest:      toJSONEntry(r.Oldest),
			Newest:      toJSONEntry(r.Newest),
			Transitions: transitions,
		})
	}
	return out
}

// WriteJSON marshals results as indented JSON to w. order fixes the target
// iteration order (callers typically pass the -targets flag order, since a
// Go map has none).
func WriteJSON(w io.Writer, results map[string]core.InspectionResult, order []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildReport(results, order))
}
