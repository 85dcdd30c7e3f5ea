// Package common provides the small set of CLI helpers cmd/multisection's
// main needs: a repeatable "-targets" flag that behaves like other
// go.skia.org/infra binaries' multi-value flags (comma-separated, appendable
// across repeated occurrences).
package common

import (
	"flag"
	"strings"
)

// multiString is a flag.Value backed by a caller-owned []string. The first
// Set call (i.e. the flag was actually provided) replaces the seeded
// defaults; every subsequent Set call for a repeated flag occurrence
// appends to it.
type multiString struct {
	values *[]string
	isSet  bool
}

func newMultiString(target *[]string, defaults []string) *multiString {
	*target = append([]string(nil), defaults...)
	return &multiString{values: target}
}

// Set implements flag.Value.
func (m *multiString) Set(value string) error {
	if !m.isSet {
		*m.values = nil
		m.isSet = true
	}
	for _, part := range strings.Split(value, ",") {
		if part == "" {
			continue
		}
		*m.values = append(*m.values, part)
	}
	return nil
}

// String implements flag.Value.
func (m *multiString) String() string {
	if m.values == nil || *m.values == nil {
		return ""
	}
	return strings.Join(*m.values, ",")
}

// MultiStringFlagVar registers a repeatable, comma-splitting flag writing
// into target, seeded with defaults. The first time the flag is actually
// provided on the command line, its values replace the defaults entirely;
// every subsequent occurrence of the same flag appends instead.
func MultiStringFlagVar(target *[]string, name string, defaults []string, usage string) {
	flag.Var(newMultiString(target, defaults), name, usage)
}

// NewMultiStringFlag is like MultiStringFlagVar but also returns the
// underlying flag.Value, for callers (tests, mainly) that want to inspect it
// directly via flag.Lookup.
func NewMultiStringFlag(name string, defaults []string, usage string) *multiString {
	var values []string
	m := newMultiString(&values, defaults)
	flag.Var(m, name, usage)
	return m
}
