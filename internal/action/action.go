// Package action binds recognition events to external commands: a
// bindings directory holds JSON manifests mapping gesture or shape
// events to executables, which receive the event on stdin.
package action

import "github.com/ayusman/mudra/internal/app"

// Trigger selects the events a binding fires on. Empty fields match
// anything; State defaults to "recognized" for gesture triggers.
type Trigger struct {
	Type    string `json:"type"`
	Gesture string `json:"gesture,omitempty"`
	Shape   string `json:"shape,omitempty"`
	State   string `json:"state,omitempty"`
}

// Binding maps a trigger to a command.
type Binding struct {
	Name      string   `json:"name"`
	On        Trigger  `json:"on"`
	Command   string   `json:"command"`
	Args      []string `json:"args,omitempty"`
	TimeoutMs int      `json:"timeout_ms,omitempty"`

	// Path is the manifest file the binding was loaded from.
	Path string `json:"-"`
}

// Matches reports whether the binding's trigger selects the event.
func (b *Binding) Matches(e app.Event) bool {
	tr := b.On

	if tr.Type != "" && tr.Type != e.Type {
		return false
	}
	if tr.Gesture != "" && tr.Gesture != e.Gesture {
		return false
	}
	if tr.Shape != "" {
		if e.Shape == nil || string(e.Shape.Shape) != tr.Shape {
			return false
		}
	}

	state := tr.State
	if state == "" && e.Type == app.EventGesture {
		state = "recognized"
	}
	if state != "" && state != e.State {
		return false
	}

	return true
}
