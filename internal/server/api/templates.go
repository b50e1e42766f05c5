package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/touch"
)

// TemplateHandler manages user-registered stroke templates.
type TemplateHandler struct {
	matcher *shape.Matcher
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(m *shape.Matcher) *TemplateHandler {
	return &TemplateHandler{matcher: m}
}

type createTemplateRequest struct {
	Name      string      `json:"name"`
	Path      []pointJSON `json:"path"`
	Tolerance float64     `json:"tolerance"`
}

type templateResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Points    int     `json:"points"`
	Tolerance float64 `json:"tolerance"`
}

type listTemplatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

// DefaultTemplateTolerance is the DTW distance bound applied when a
// template is registered without one.
const DefaultTemplateTolerance = 0.25

// ServeHTTP routes requests under /api/templates.
func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/templates")
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

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.delete(w, r, path)
}

// list handles GET /api/templates.
func (h *TemplateHandler) list(w http.ResponseWriter, r *http.Request) {
	templates := h.matcher.Templates()
	resp := listTemplatesResponse{
		Templates: make([]templateResponse, 0, len(templates)),
	}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, templateResponse{
			ID:        t.ID,
			Name:      t.Name,
			Points:    len(t.Path),
			Tolerance: t.Tolerance,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// create handles POST /api/templates.
func (h *TemplateHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if len(req.Path) < 2 {
		writeError(w, http.StatusBadRequest, "Path needs at least two points")
		return
	}

	tolerance := req.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTemplateTolerance
	}

	path := make([]touch.Point, len(req.Path))
	for i, p := range req.Path {
		path[i] = touch.Point{X: p.X, Y: p.Y}
	}

	t := &shape.Template{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Path:      path,
		Tolerance: tolerance,
	}
	h.matcher.AddTemplate(t)

	writeJSON(w, http.StatusCreated, templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Points:    len(t.Path),
		Tolerance: t.Tolerance,
	})
}

// delete handles DELETE /api/templates/{id}.
func (h *TemplateHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	for _, t := range h.matcher.Templates() {
		if t.ID == id {
			h.matcher.RemoveTemplate(id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Template not found")
}
