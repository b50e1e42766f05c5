package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/engine"
)

// SamplesHandler feeds batches of live samples into the pipeline.
type SamplesHandler struct {
	app *app.App
}

// NewSamplesHandler creates a new SamplesHandler.
func NewSamplesHandler(a *app.App) *SamplesHandler {
	return &SamplesHandler{app: a}
}

type ingestSamplesRequest struct {
	Samples []sampleJSON `json:"samples"`
}

type ingestSamplesResponse struct {
	Accepted int           `json:"accepted"`
	State    stateResponse `json:"state"`
}

// ServeHTTP handles POST /api/samples.
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ingestSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Samples) == 0 {
		writeError(w, http.StatusBadRequest, "At least one sample is required")
		return
	}

	samples, err := toSamples(req.Samples)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.app.IsEnabled() {
		writeError(w, http.StatusConflict, "Recognition is disabled")
		return
	}

	for _, s := range samples {
		h.app.Submit(s)
	}

	writeJSON(w, http.StatusOK, ingestSamplesResponse{
		Accepted: len(samples),
		State:    buildState(h.app.Engine()),
	})
}

// StateHandler reports the engine's aggregate state and the registered
// recognizers.
type StateHandler struct {
	app *app.App
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(a *app.App) *StateHandler {
	return &StateHandler{app: a}
}

type recognizerResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Priority int    `json:"priority"`
	State    string `json:"state"`
	Reason   string `json:"reason,omitempty"`
}

type stateResponse struct {
	Kind    string               `json:"kind"`
	Enabled bool                 `json:"enabled"`
	Active  []recognizerResponse `json:"active"`
}

type listRecognizersResponse struct {
	Recognizers []recognizerResponse `json:"recognizers"`
}

// buildState snapshots the engine's aggregate state.
func buildState(e *engine.Engine) stateResponse {
	state := e.State()
	resp := stateResponse{
		Kind:   state.Kind.String(),
		Active: make([]recognizerResponse, 0, len(state.Active)),
	}
	for _, r := range state.Active {
		resp.Active = append(resp.Active, recognizerResponse{
			ID:       r.ID(),
			Kind:     string(r.Kind()),
			Priority: r.Priority(),
			State:    r.State().String(),
		})
	}
	return resp
}

// ServeHTTP handles GET /api/state and GET /api/recognizers.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path == "/api/recognizers" {
		h.listRecognizers(w, r)
		return
	}

	resp := buildState(h.app.Engine())
	resp.Enabled = h.app.IsEnabled()
	writeJSON(w, http.StatusOK, resp)
}

// listRecognizers reports every registered recognizer regardless of
// its current state.
func (h *StateHandler) listRecognizers(w http.ResponseWriter, r *http.Request) {
	recognizers := h.app.Engine().Recognizers()
	resp := listRecognizersResponse{
		Recognizers: make([]recognizerResponse, 0, len(recognizers)),
	}
	for _, rec := range recognizers {
		entry := recognizerResponse{
			ID:       rec.ID(),
			Kind:     string(rec.Kind()),
			Priority: rec.Priority(),
			State:    rec.State().String(),
		}
		if reason := rec.FailureReason(); reason.String() != "none" {
			entry.Reason = reason.String()
		}
		resp.Recognizers = append(resp.Recognizers, entry)
	}

	writeJSON(w, http.StatusOK, resp)
}
