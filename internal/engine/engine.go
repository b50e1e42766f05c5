// Package engine dispatches pointer samples to a set of registered gesture
// recognizers and derives the aggregate interaction state.
//
// The engine performs no geometry itself: it fans each sample out to every
// recognizer and recomputes the aggregate state from their terminal outcomes.
// It holds no locks; a host embedding it in a concurrent environment must
// serialize all calls (see internal/app for the single-owner loop).
package engine

import (
	"github.com/ayusman/mudra/internal/recognizer"
	"github.com/ayusman/mudra/internal/touch"
)

// StateKind classifies the aggregate interaction state.
type StateKind int

const (
	// StateIdle means no recognizer is in the recognized state.
	StateIdle StateKind = iota
	// StateSingle means exactly one recognizer is recognized.
	StateSingle
	// StateMulti means several recognizers are recognized simultaneously.
	StateMulti
)

// String returns the state kind name.
func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateSingle:
		return "single"
	case StateMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// State is the aggregate interaction state derived from the registered
// recognizers. It is recomputed after every dispatch, never stored
// authoritatively. Active holds the recognized recognizers ordered by
// priority (descending), ties broken by registration order.
type State struct {
	Kind   StateKind
	Active []recognizer.Recognizer
}

// Engine owns a registry of recognizers and fans incoming samples out to
// all of them.
type Engine struct {
	recognizers []recognizer.Recognizer
	state       State
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{state: State{Kind: StateIdle}}
}

// Register adds a recognizer to the active set. A recognizer already
// registered under the same identity is ignored.
func (e *Engine) Register(r recognizer.Recognizer) {
	if r == nil {
		return
	}
	for _, existing := range e.recognizers {
		if existing.ID() == r.ID() {
			return
		}
	}
	e.recognizers = append(e.recognizers, r)
}

// Unregister removes a recognizer by identity. No-op if absent.
func (e *Engine) Unregister(id string) {
	for i, r := range e.recognizers {
		if r.ID() == id {
			e.recognizers = append(e.recognizers[:i], e.recognizers[i+1:]...)
			e.state = e.computeState()
			return
		}
	}
}

// Recognizers returns the registered recognizers in registration order.
// The returned slice is owned by the engine and must not be mutated.
func (e *Engine) Recognizers() []recognizer.Recognizer {
	return e.recognizers
}

// Lookup returns the registered recognizer with the given identity.
func (e *Engine) Lookup(id string) (recognizer.Recognizer, bool) {
	for _, r := range e.recognizers {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Dispatch forwards the sample to every registered recognizer and returns
// the recomputed aggregate state.
func (e *Engine) Dispatch(s touch.Sample) State {
	for _, r := range e.recognizers {
		r.Ingest(s)
	}
	e.state = e.computeState()
	return e.state
}

// CheckTimeouts runs the cooperative timeout check on every recognizer
// and returns the recomputed aggregate state. The host loop calls this
// periodically while samples may be pending.
func (e *Engine) CheckTimeouts(now float64) State {
	for _, r := range e.recognizers {
		r.CheckTimeout(now)
	}
	e.state = e.computeState()
	return e.state
}

// State returns the aggregate state computed by the last dispatch.
func (e *Engine) State() State {
	return e.state
}

// ResetAll resets every registered recognizer and forces the aggregate
// state back to idle.
func (e *Engine) ResetAll() {
	for _, r := range e.recognizers {
		r.Reset()
	}
	e.state = State{Kind: StateIdle}
}

// computeState derives the aggregate state from the recognized set.
func (e *Engine) computeState() State {
	var active []recognizer.Recognizer
	for _, r := range e.recognizers {
		if r.State() == recognizer.StateRecognized {
			active = append(active, r)
		}
	}

	switch len(active) {
	case 0:
		return State{Kind: StateIdle}
	case 1:
		return State{Kind: StateSingle, Active: active}
	}

	// Stable sort by descending priority preserves registration order
	// among equal priorities.
	for i := 1; i < len(active); i++ {
		for j := i; j > 0 && active[j].Priority() > active[j-1].Priority(); j-- {
			active[j], active[j-1] = active[j-1], active[j]
		}
	}
	return State{Kind: StateMulti, Active: active}
}
