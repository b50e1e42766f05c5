package action

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/ayusman/mudra/internal/app"
)

// DefaultTimeoutMs bounds a command's runtime when the binding does
// not set one.
const DefaultTimeoutMs = 5000

// Executor runs bound commands with timeout support.
type Executor struct {
	timeoutMs int
}

// NewExecutor creates a new Executor with the given default timeout in
// milliseconds.
func NewExecutor(timeoutMs int) *Executor {
	if timeoutMs <= 0 {
		timeoutMs = DefaultTimeoutMs
	}
	return &Executor{
		timeoutMs: timeoutMs,
	}
}

// Execute runs the binding's command with the triggering event as JSON
// on stdin, returning the command's stdout.
func (e *Executor) Execute(binding *Binding, event app.Event) ([]byte, error) {
	timeoutMs := binding.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = e.timeoutMs
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, binding.Command, binding.Args...)

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	cmd.Stdin = bytes.NewReader(eventJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("action %s timeout after %dms", binding.Name, timeoutMs)
	}
	if err != nil {
		if stderrStr := stderr.String(); stderrStr != "" {
			return nil, fmt.Errorf("action %s failed: %w, stderr: %s", binding.Name, err, stderrStr)
		}
		return nil, fmt.Errorf("action %s failed: %w", binding.Name, err)
	}

	return stdout.Bytes(), nil
}

// Dispatch consumes events from the channel and executes every
// matching binding. It returns when the channel closes, so it is meant
// to run on its own goroutine with an app subscription.
func Dispatch(events <-chan app.Event, manager *Manager, executor *Executor) {
	for e := range events {
		for _, binding := range manager.List() {
			if !binding.Matches(e) {
				continue
			}
			if _, err := executor.Execute(binding, e); err != nil {
				log.Printf("Action error: %v", err)
			}
		}
	}
}
