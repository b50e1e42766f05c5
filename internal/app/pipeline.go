package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/recognizer"
	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/touch"
)

// run drives the cooperative timeout checks. Recognizer deadlines are
// expressed in sample time, so each tick projects the wall clock onto
// the timestamp of the most recent sample.
func (a *App) run(stopCh chan struct{}) {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.mu.Lock()
			if !a.enabled || a.lastWall.IsZero() {
				a.mu.Unlock()
				continue
			}
			now := a.lastTimestamp + time.Since(a.lastWall).Seconds()
			a.engine.CheckTimeouts(now)
			events := a.collectTransitions(now)
			a.mu.Unlock()

			a.publish(events)
		}
	}
}

// process runs one sample through dispatch, stroke tracking, and shape
// classification. Callers must hold a.mu.
func (a *App) process(s touch.Sample) []Event {
	// A fresh primary contact starts a new stroke.
	if s.Phase == touch.PhaseStart && len(a.contacts) == 0 {
		a.resetStroke()
		a.engine.ResetAll()
	}

	a.lastTimestamp = s.Timestamp
	a.lastWall = time.Now()

	if a.recording {
		a.recBuf = append(a.recBuf, s)
	}

	switch s.Phase {
	case touch.PhaseStart:
		a.contacts[s.Contact] = struct{}{}
	case touch.PhaseEnd, touch.PhaseCancel:
		delete(a.contacts, s.Contact)
	}

	// Buffer the primary contact's path for shape classification.
	if s.Contact == 0 && s.Phase != touch.PhaseCancel {
		if len(a.path) >= PathBufferSize {
			copy(a.path, a.path[1:])
			a.path = a.path[:PathBufferSize-1]
		}
		a.path = append(a.path, s.Position)
	}

	a.engine.Dispatch(s)
	events := a.collectTransitions(s.Timestamp)

	if s.Contact == 0 && s.Phase == touch.PhaseEnd {
		events = append(events, a.classifyStroke(s.Timestamp)...)
	}

	return events
}

// collectTransitions emits one gesture event per recognizer that has
// reached a terminal state since the stroke began. Callers must hold
// a.mu.
func (a *App) collectTransitions(ts float64) []Event {
	var events []Event
	for _, r := range a.engine.Recognizers() {
		st := r.State()
		if !st.Terminal() || a.reported[r.ID()] {
			continue
		}
		a.reported[r.ID()] = true

		e := Event{
			ID:        uuid.NewString(),
			Type:      EventGesture,
			Gesture:   string(r.Kind()),
			State:     st.String(),
			Timestamp: ts,
		}
		if st == recognizer.StateFailed {
			e.Reason = r.FailureReason().String()
		}
		events = append(events, e)
	}
	return events
}

// classifyStroke runs the shape classifier and the custom template
// matcher over the completed primary-contact path. Callers must hold
// a.mu.
func (a *App) classifyStroke(ts float64) []Event {
	if len(a.path) < 3 {
		return nil
	}

	points := make([]touch.Point, len(a.path))
	copy(points, a.path)

	var events []Event

	result := shape.Classify(points)
	if result.Shape != shape.ShapeUnknown {
		events = append(events, Event{
			ID:        uuid.NewString(),
			Type:      EventShape,
			Shape:     &result,
			Score:     result.Confidence,
			Timestamp: ts,
		})
	}

	if matches := a.matcher.Match(points); len(matches) > 0 {
		best := matches[0]
		events = append(events, Event{
			ID:        uuid.NewString(),
			Type:      EventTemplate,
			Template:  best.Template.Name,
			Score:     best.Score,
			Timestamp: ts,
		})
	}

	return events
}

// resetStroke clears per-stroke bookkeeping. Callers must hold a.mu.
func (a *App) resetStroke() {
	a.path = a.path[:0]
	a.reported = make(map[string]bool)
	for c := range a.contacts {
		delete(a.contacts, c)
	}
}
