// Package app hosts the Mudra recognition pipeline. It feeds pointer
// samples into the engine, drives cooperative timeout checks from a
// ticker, classifies completed stroke paths, and publishes recognition
// events to subscribers and the store's event log.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/recognizer"
	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/touch"
)

// Pipeline constants.
const (
	// DefaultTickInterval is how often the timeout ticker fires.
	DefaultTickInterval = 50 * time.Millisecond
	// PathBufferSize is the maximum number of points buffered per stroke
	// for shape classification.
	PathBufferSize = 1024
	// eventBufferSize is the capacity of each subscriber channel.
	eventBufferSize = 64
)

// Event type values.
const (
	// EventGesture reports a recognizer reaching a terminal state.
	EventGesture = "gesture"
	// EventShape reports a classified stroke shape.
	EventShape = "shape"
	// EventTemplate reports a custom template match.
	EventTemplate = "template"
)

// Event is one recognition outcome published to subscribers.
type Event struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Gesture   string        `json:"gesture,omitempty"`
	State     string        `json:"state,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Shape     *shape.Result `json:"shape,omitempty"`
	Template  string        `json:"template,omitempty"`
	Score     float64       `json:"score,omitempty"`
	Timestamp float64       `json:"timestamp"`
}

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Engine       *engine.Engine
	TickInterval time.Duration
}

// App orchestrates sample dispatch, timeout ticking, stroke
// classification, and event publishing.
type App struct {
	config  Config
	engine  *engine.Engine
	matcher *shape.Matcher
	tick    time.Duration

	mu       sync.Mutex
	enabled  bool
	stopCh   chan struct{}
	subs     map[chan Event]struct{}
	path     []touch.Point
	contacts map[int]struct{}
	reported map[string]bool

	// Timebase bridging sample timestamps to the wall clock, so timeout
	// ticks can be expressed in the same monotonic seconds as samples.
	lastTimestamp float64
	lastWall      time.Time

	recording bool
	recID     string
	recName   string
	recBuf    []touch.Sample
}

// DefaultEngine returns an engine with the six built-in recognizers
// registered under their default configurations.
func DefaultEngine() *engine.Engine {
	e := engine.New()
	e.Register(recognizer.NewTap(recognizer.DefaultTapConfig()))
	e.Register(recognizer.NewSwipe(recognizer.DefaultSwipeConfig()))
	e.Register(recognizer.NewDrag(recognizer.DefaultDragConfig()))
	e.Register(recognizer.NewPinch(recognizer.DefaultPinchConfig()))
	e.Register(recognizer.NewRotation(recognizer.DefaultRotationConfig()))
	e.Register(recognizer.NewLongPress(recognizer.DefaultLongPressConfig()))
	return e
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	eng := config.Engine
	if eng == nil {
		eng = DefaultEngine()
	}
	tick := config.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	return &App{
		config:   config,
		engine:   eng,
		matcher:  shape.NewMatcher(),
		tick:     tick,
		subs:     make(map[chan Event]struct{}),
		path:     make([]touch.Point, 0, PathBufferSize),
		contacts: make(map[int]struct{}),
		reported: make(map[string]bool),
	}
}

// Engine returns the recognition engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Matcher returns the custom shape template matcher.
func (a *App) Matcher() *shape.Matcher {
	return a.matcher
}

// SetEnabled enables or disables recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Start begins the timeout ticker.
func (a *App) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return
	}

	a.stopCh = make(chan struct{})
	go a.run(a.stopCh)

	log.Println("Recognition pipeline started")
}

// Stop halts the timeout ticker and closes all subscriber channels.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	for ch := range a.subs {
		close(ch)
		delete(a.subs, ch)
	}
	a.mu.Unlock()

	log.Println("Recognition pipeline stopped")
}

// Subscribe registers a new event subscriber. The returned channel is
// closed when the app stops or the subscriber is removed.
func (a *App) Subscribe() chan Event {
	ch := make(chan Event, eventBufferSize)

	a.mu.Lock()
	a.subs[ch] = struct{}{}
	a.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (a *App) Unsubscribe(ch chan Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.subs[ch]; ok {
		close(ch)
		delete(a.subs, ch)
	}
}

// Submit feeds one sample through the pipeline. Samples are dropped
// while recognition is disabled.
func (a *App) Submit(s touch.Sample) {
	a.mu.Lock()
	if !a.enabled {
		a.mu.Unlock()
		return
	}
	events := a.process(s)
	a.mu.Unlock()

	a.publish(events)
}

// Replay pushes a stored recording back through a fresh dispatch
// sequence and returns the events it produced. Timeout checks are
// driven from the recorded timestamps, so replay is deterministic.
func (a *App) Replay(recordingID string) ([]Event, error) {
	if a.config.Store == nil {
		return nil, errors.New("no store configured")
	}

	if _, err := a.config.Store.Recordings().GetByID(recordingID); err != nil {
		return nil, fmt.Errorf("failed to load recording: %w", err)
	}
	samples, err := a.config.Store.Recordings().GetSamples(recordingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("recording %s has no samples", recordingID)
	}

	a.mu.Lock()
	if a.recording {
		a.mu.Unlock()
		return nil, errors.New("recording in progress")
	}

	a.resetStroke()
	a.engine.ResetAll()

	var events []Event
	for _, s := range samples {
		a.engine.CheckTimeouts(s.Timestamp)
		events = append(events, a.collectTransitions(s.Timestamp)...)
		events = append(events, a.process(s)...)
	}
	a.mu.Unlock()

	a.publish(events)
	return events, nil
}

// StartRecording begins buffering incoming samples under a new
// recording ID. A store must be configured.
func (a *App) StartRecording(name string) (string, error) {
	if a.config.Store == nil {
		return "", errors.New("no store configured")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.recording {
		return "", errors.New("recording already in progress")
	}

	a.recording = true
	a.recID = uuid.NewString()
	a.recName = name
	a.recBuf = a.recBuf[:0]
	return a.recID, nil
}

// StopRecording persists the buffered samples and returns the stored
// recording.
func (a *App) StopRecording() (*store.Recording, error) {
	a.mu.Lock()
	if !a.recording {
		a.mu.Unlock()
		return nil, errors.New("no recording in progress")
	}
	a.recording = false
	rec := &store.Recording{ID: a.recID, Name: a.recName}
	samples := make([]touch.Sample, len(a.recBuf))
	copy(samples, a.recBuf)
	a.recBuf = a.recBuf[:0]
	a.mu.Unlock()

	repo := a.config.Store.Recordings()
	if err := repo.Create(rec); err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}
	if err := repo.AddSamples(rec.ID, samples); err != nil {
		return nil, fmt.Errorf("failed to store samples: %w", err)
	}
	rec.Samples = len(samples)

	log.Printf("Stored recording %s (%d samples)", rec.Name, rec.Samples)
	return rec, nil
}

// publish delivers events to subscribers and the store's event log.
// Slow subscribers are skipped rather than blocking the pipeline.
func (a *App) publish(events []Event) {
	if len(events) == 0 {
		return
	}

	a.mu.Lock()
	for _, e := range events {
		for ch := range a.subs {
			select {
			case ch <- e:
			default:
			}
		}
	}
	a.mu.Unlock()

	if a.config.Store != nil {
		for _, e := range events {
			a.logEvent(e)
		}
	}
}

// logEvent appends one event to the store's event log.
func (a *App) logEvent(e Event) {
	kind := e.Gesture
	if kind == "" {
		kind = e.Type
	}

	detail, err := json.Marshal(e)
	if err != nil {
		log.Printf("Failed to encode event %s: %v", e.ID, err)
		return
	}

	rec := &store.Event{
		ID:     e.ID,
		Kind:   kind,
		State:  e.State,
		Reason: e.Reason,
		Detail: detail,
	}
	if err := a.config.Store.Events().Create(rec); err != nil {
		log.Printf("Failed to log event %s: %v", e.ID, err)
	}
}
