package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/touch"
)

// ClassifyHandler runs the shape classifier over a submitted stroke
// path without touching the live pipeline.
type ClassifyHandler struct {
	app *app.App
}

// NewClassifyHandler creates a new ClassifyHandler.
func NewClassifyHandler(a *app.App) *ClassifyHandler {
	return &ClassifyHandler{app: a}
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type classifyRequest struct {
	Points []pointJSON `json:"points"`
}

type templateMatchResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
}

type classifyResponse struct {
	Result    shape.Result            `json:"result"`
	Templates []templateMatchResponse `json:"templates"`
}

// ServeHTTP handles POST /api/classify.
func (h *ClassifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, "At least one point is required")
		return
	}

	points := make([]touch.Point, len(req.Points))
	for i, p := range req.Points {
		points[i] = touch.Point{X: p.X, Y: p.Y}
	}

	resp := classifyResponse{
		Result:    shape.Classify(points),
		Templates: make([]templateMatchResponse, 0),
	}
	for _, m := range h.app.Matcher().Match(points) {
		resp.Templates = append(resp.Templates, templateMatchResponse{
			ID:       m.Template.ID,
			Name:     m.Template.Name,
			Score:    m.Score,
			Distance: m.Distance,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
