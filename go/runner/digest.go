package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"go.skia.org/multisection/go/core"
)

// defaultNormalizers strips lines of test output that vary from run to run
// without reflecting a real behavior change, so that two runs of an
// unchanged binary hash identically. Callers whose harness prints other
// noise pass their own set (ShellAdapter.Normalizers), which replaces this
// one rather than adding to it.
var defaultNormalizers = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^.*\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}.*\n?`),    // ISO timestamps
	regexp.MustCompile(`(?m)^.*\belapsed\b.*\b\d+(\.\d+)?\s*(ms|s)\b.*\n?`), // elapsed-time lines
	regexp.MustCompile(`(?m)^PASS\s+\S+\s+\d+(\.\d+)?s\s*\n?`),              // `go test` timing lines
}

// Normalize strips run-to-run noise from raw command output using
// normalizers, falling back to defaultNormalizers when none are supplied.
func Normalize(output []byte, normalizers []*regexp.Regexp) []byte {
	if normalizers == nil {
		normalizers = defaultNormalizers
	}
	for _, re := range normalizers {
		output = re.ReplaceAll(output, nil)
	}
	return output
}

// DigestOf returns the sha256 hex digest of normalized command output.
func DigestOf(output []byte) core.Digest {
	sum := sha256.Sum256(output)
	return core.Digest(hex.EncodeToString(sum[:]))
}
