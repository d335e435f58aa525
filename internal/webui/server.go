package webui

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/engine"
	"github.com/kayz/slidesmith/internal/logger"
	"github.com/kayz/slidesmith/internal/persist"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server exposes the engine over a small JSON API plus a websocket event
// stream. The engine itself stays transport-free.
type Server struct {
	engine    *engine.Engine
	generate  engine.GenerateFunc
	history   *persist.Store
	hub       *Hub
	startedAt time.Time
}

// NewServer wires the HTTP surface. history may be nil when disabled.
func NewServer(eng *engine.Engine, generate engine.GenerateFunc, history *persist.Store, hub *Hub) *Server {
	return &Server{
		engine:    eng,
		generate:  generate,
		history:   history,
		hub:       hub,
		startedAt: time.Now().UTC(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/variants", s.handleVariants)
	mux.HandleFunc("/api/slides/generate", s.handleGenerate)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"ok":         true,
		"started_at": s.startedAt.Format(time.RFC3339),
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := p.MemoryInfo(); err == nil {
			status["rss_bytes"] = mem.RSS
		}
		if cpu, err := p.CPUPercent(); err == nil {
			status["cpu_percent"] = cpu
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleVariants(w http.ResponseWriter, _ *http.Request) {
	ids, err := s.engine.Specs().List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"variants": ids})
}

type generateRequest struct {
	VariantID string `json:"variant_id"`
	Slide     struct {
		Title       string `json:"title,omitempty"`
		Topic       string `json:"topic,omitempty"`
		Notes       string `json:"notes,omitempty"`
		Position    int    `json:"position,omitempty"`
		TotalSlides int    `json:"total_slides,omitempty"`
	} `json:"slide"`
	Presentation *struct {
		Title    string `json:"title,omitempty"`
		Audience string `json:"audience,omitempty"`
		Tone     string `json:"tone,omitempty"`
		Language string `json:"language,omitempty"`
	} `json:"presentation,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	req.VariantID = strings.TrimSpace(req.VariantID)
	if req.VariantID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "variant_id is required"})
		return
	}

	slide := compose.SlideContext{
		Title:       req.Slide.Title,
		Topic:       req.Slide.Topic,
		Notes:       req.Slide.Notes,
		Position:    req.Slide.Position,
		TotalSlides: req.Slide.TotalSlides,
	}
	var presCtx *compose.PresentationContext
	if req.Presentation != nil {
		presCtx = &compose.PresentationContext{
			Title:    req.Presentation.Title,
			Audience: req.Presentation.Audience,
			Tone:     req.Presentation.Tone,
			Language: req.Presentation.Language,
		}
	}

	result, err := s.engine.Generate(r.Context(), req.VariantID, slide, presCtx, s.generate)
	s.record(req.VariantID, result, err)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history is disabled"})
		return
	}
	records, err := s.history.ListGenerations(50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"id":          rec.ID,
			"variant_id":  rec.VariantID,
			"status":      rec.Status,
			"violations":  rec.Violations,
			"duration_ms": rec.DurationMS,
			"created_at":  rec.CreatedAt.Format(time.RFC3339),
		})
	}
	counts, err := s.history.CountByVariant()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": out, "counts": counts})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event stream is disabled"})
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade error: %v", err)
		return
	}
	s.hub.serve(conn)
}

func (s *Server) record(variantID string, result *engine.Result, genErr error) {
	if s.history == nil {
		return
	}
	rec := &persist.GenerationRecord{
		VariantID: variantID,
		Status:    persist.StatusOK,
	}
	if result != nil {
		rec.ID = result.RequestID
		rec.PromptDigest = result.PromptDigest
		rec.Violations = len(result.Validation.Violations)
		rec.DurationMS = result.Duration.Milliseconds()
	}
	if genErr != nil {
		rec.Status = persist.StatusFailed
		rec.Error = genErr.Error()
	}
	if rec.ID == "" {
		rec.ID = persist.NewRecordID()
	}
	if err := s.history.RecordGeneration(rec); err != nil {
		logger.Warn("failed to record generation: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
