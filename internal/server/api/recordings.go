// Package api provides HTTP API handlers for the Mudra gesture
// recognition service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/report"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/touch"
)

// RecordingHandler handles HTTP requests for recording resources.
type RecordingHandler struct {
	store *store.Store
	app   *app.App
}

// NewRecordingHandler creates a new RecordingHandler.
func NewRecordingHandler(s *store.Store, a *app.App) *RecordingHandler {
	return &RecordingHandler{store: s, app: a}
}

// ServeHTTP routes requests under /api/recordings.
// Expected paths: /api/recordings, /api/recordings/{id},
// /api/recordings/{id}/samples, /api/recordings/{id}/replay,
// /api/recordings/{id}/report.
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recordings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "samples":
		switch r.Method {
		case http.MethodGet:
			h.listSamples(w, r, id)
		case http.MethodPost:
			h.addSamples(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case "replay":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.replay(w, r, id)
	case "report":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.report(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Request and response types

type createRecordingRequest struct {
	Name    string       `json:"name"`
	Samples []sampleJSON `json:"samples"`
}

type addSamplesRequest struct {
	Samples []sampleJSON `json:"samples"`
}

type recordingResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Samples   int    `json:"samples"`
	CreatedAt string `json:"created_at"`
}

type listRecordingsResponse struct {
	Recordings []recordingResponse `json:"recordings"`
}

type listSamplesResponse struct {
	Samples []sampleJSON `json:"samples"`
}

type replayResponse struct {
	Events []app.Event `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Recording to a recordingResponse.
func toResponse(rec *store.Recording) recordingResponse {
	return recordingResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Samples:   rec.Samples,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/recordings.
func (h *RecordingHandler) list(w http.ResponseWriter, r *http.Request) {
	recordings, err := h.store.Recordings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}

	response := listRecordingsResponse{
		Recordings: make([]recordingResponse, 0, len(recordings)),
	}
	for _, rec := range recordings {
		response.Recordings = append(response.Recordings, toResponse(rec))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/recordings/{id}.
func (h *RecordingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.store.Recordings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(rec))
}

// create handles POST /api/recordings. Samples may be supplied inline.
func (h *RecordingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	samples, err := toSamples(req.Samples)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := &store.Recording{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if err := h.store.Recordings().Create(rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create recording")
		return
	}

	if len(samples) > 0 {
		if err := h.store.Recordings().AddSamples(rec.ID, samples); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store samples")
			return
		}
		rec.Samples = len(samples)
	}

	writeJSON(w, http.StatusCreated, toResponse(rec))
}

// delete handles DELETE /api/recordings/{id}.
func (h *RecordingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Recordings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete recording")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listSamples handles GET /api/recordings/{id}/samples.
func (h *RecordingHandler) listSamples(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Recordings().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	samples, err := h.store.Recordings().GetSamples(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{Samples: make([]sampleJSON, 0, len(samples))}
	for _, s := range samples {
		response.Samples = append(response.Samples, fromSample(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// addSamples handles POST /api/recordings/{id}/samples.
func (h *RecordingHandler) addSamples(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Recordings().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	var req addSamplesRequest
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

	if err := h.store.Recordings().AddSamples(id, samples); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store samples")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// replay handles POST /api/recordings/{id}/replay.
func (h *RecordingHandler) replay(w http.ResponseWriter, r *http.Request, id string) {
	if h.app == nil {
		writeError(w, http.StatusServiceUnavailable, "Replay unavailable")
		return
	}

	events, err := h.app.Replay(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if events == nil {
		events = []app.Event{}
	}
	writeJSON(w, http.StatusOK, replayResponse{Events: events})
}

// report handles GET /api/recordings/{id}/report.
func (h *RecordingHandler) report(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.store.Recordings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	samples, err := h.store.Recordings().GetSamples(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load samples")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, rec, samples); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report")
	}
}

// sampleJSON is the wire form of a touch.Sample.
type sampleJSON struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp float64 `json:"timestamp"`
	Phase     string  `json:"phase"`
	Pressure  float64 `json:"pressure,omitempty"`
	Kind      string  `json:"pointer_kind,omitempty"`
	Contact   int     `json:"contact,omitempty"`
}

// toSamples converts wire samples, applying the defaults NewSample uses.
func toSamples(in []sampleJSON) ([]touch.Sample, error) {
	samples := make([]touch.Sample, 0, len(in))
	for _, sj := range in {
		phase, ok := touch.ParsePhase(sj.Phase)
		if !ok {
			return nil, errors.New("invalid phase: " + sj.Phase)
		}

		s := touch.NewSample(sj.X, sj.Y, sj.Timestamp, phase)
		if sj.Pressure > 0 {
			s.Pressure = sj.Pressure
		}
		switch sj.Kind {
		case "", "finger":
		case "stylus":
			s.Kind = touch.PointerStylus
		case "pen":
			s.Kind = touch.PointerPen
		default:
			return nil, errors.New("invalid pointer kind: " + sj.Kind)
		}
		s.Contact = sj.Contact
		samples = append(samples, s)
	}
	return samples, nil
}

// fromSample converts a touch.Sample to its wire form.
func fromSample(s touch.Sample) sampleJSON {
	return sampleJSON{
		X:         s.Position.X,
		Y:         s.Position.Y,
		Timestamp: s.Timestamp,
		Phase:     s.Phase.String(),
		Pressure:  s.Pressure,
		Kind:      s.Kind.String(),
		Contact:   s.Contact,
	}
}
