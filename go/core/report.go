package core

// Transition is one detected digest change between two adjacent defined
// positions in a target's completed view: the output at Before differs
// from the output at After, and nothing in between was probed (or, if it
// was, shared one of those two digests).
type Transition struct {
	Target Target
	Before *Entry
	After  *Entry
}

// InspectTransitions walks a target's completed view and returns one
// Transition per adjacent pair of defined entries whose digests differ. It
// requires the view to already satisfy Validate; calling it on an
// unresolved view is a usage error rather than a best-effort partial
// answer.
func InspectTransitions(target Target, view PerTargetView) ([]Transition, error) {
	if !Validate(view) {
		return nil, newUsageError("cannot inspect transitions for target " + target.Stub + ": its digest sequence has not reached a valid multisection answer")
	}
	var transitions []Transition
	var prev *Entry
	for _, e := range view {
		if e == nil {
			continue
		}
		if prev != nil && prev.Digest != e.Digest {
			transitions = append(transitions, Transition{Target: target, Before: prev, After: e})
		}
		prev = e
	}
	return transitions, nil
}

// InspectTransitions returns every target's transitions, keyed by stub.
func (d *Driver) InspectTransitions() (map[string][]Transition, error) {
	if !d.prepared {
		return nil, newUsageError("InspectTransitions called before Prepare")
	}
	out := make(map[string][]Transition, len(d.targets))
	for _, ts := range d.targets {
		transitions, err := InspectTransitions(ts.target, ts.sess.View())
		if err != nil {
			return nil, err
		}
		out[ts.target.Stub] = transitions
	}
	return out, nil
}

// InspectionResult is the final, reportable outcome for one target: its
// oldest and newest probed entries and every transition located between
// them.
type InspectionResult struct {
	Target      Target
	Oldest      *Entry
	Newest      *Entry
	Transitions []Transition
}

// Inspect returns the InspectionResult for every configured target, keyed
// by stub. It is the entry point report writers build from.
func (d *Driver) Inspect() (map[string]InspectionResult, error) {
	if !d.prepared {
		return nil, newUsageError("Inspect called before Prepare")
	}
	out := make(map[string]InspectionResult, len(d.targets))
	for _, ts := range d.targets {
		view := ts.sess.View()
		transitions, err := InspectTransitions(ts.target, view)
		if err != nil {
			return nil, err
		}
		out[ts.target.Stub] = InspectionResult{
			Target:      ts.target,
			Oldest:      view[0],
			Newest:      view[len(view)-1],
			Transitions: transitions,
		}
	}
	return out, nil
}
