package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"league-history-service/internal/fetch"
	"league-history-service/internal/loader"
	"league-history-service/internal/logging"
	"league-history-service/internal/selectors"
	"league-history-service/internal/warm"
)

// Handler wires HTTP routes to the loader and the selector engine.
type Handler struct {
	loader   *loader.Service
	engine   *selectors.Engine
	logger   *slog.Logger
	statusFn func() warm.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case
// readiness falls back to the manifest check alone.
func NewHandler(svc *loader.Service, engine *selectors.Engine, logger *slog.Logger, statusFn func() warm.Status) *Handler {
	return &Handler{
		loader:   svc,
		engine:   engine,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness for traffic: the manifest must load and the
// background warmer must not be failing repeatedly.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn != nil {
		if status := h.statusFn(); !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			h.writeError(w, r, nethttp.StatusServiceUnavailable, msg)
			return
		}
	}
	if _, err := h.loader.Manifest(r.Context()); err != nil {
		h.writeError(w, r, nethttp.StatusServiceUnavailable, "manifest unavailable")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

// Seasons lists the years available from the manifest.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireGet(w, r) {
		return
	}
	resp, err := h.loader.Years(r.Context())
	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, resp)
}

// Season serves /seasons/{year} and its derived views.
func (h *Handler) Season(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireGet(w, r) {
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/seasons/"), "/")
	if rest == "" {
		h.Seasons(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		h.writeError(w, r, nethttp.StatusBadRequest, "invalid season year")
		return
	}

	rec, err := h.loader.Season(r.Context(), year)
	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}

	view := ""
	if len(parts) == 2 {
		view = parts[1]
	}

	switch view {
	case "":
		h.writeJSON(w, nethttp.StatusOK, rec)
	case "standings":
		h.writeJSON(w, nethttp.StatusOK, h.engine.Standings(rec))
	case "matchups":
		h.writeJSON(w, nethttp.StatusOK, h.engine.MatchupCards(rec))
	case "rivalries":
		h.writeJSON(w, nethttp.StatusOK, h.engine.Rivalries(rec))
	case "trades":
		h.writeJSON(w, nethttp.StatusOK, h.engine.TradeSummaries(rec))
	case "awards":
		h.writeJSON(w, nethttp.StatusOK, h.engine.AwardCards(rec))
	case "kpis":
		h.writeJSON(w, nethttp.StatusOK, h.engine.KPIs(rec))
	default:
		h.writeError(w, r, nethttp.StatusNotFound, "unknown season view")
	}
}

// PlayerProfile serves /players/{name} aggregated across every season.
func (h *Handler) PlayerProfile(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireGet(w, r) {
		return
	}

	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/players/"), "/")
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		h.writeError(w, r, nethttp.StatusBadRequest, "missing player name")
		return
	}

	seasons, err := h.loader.AllSeasons(r.Context())
	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}

	profile := h.engine.PlayerProfile(seasons, name)
	if profile == nil {
		h.writeError(w, r, nethttp.StatusNotFound, "player not found")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, profile)
}

func (h *Handler) requireGet(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
		h.writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writeLoadError maps loader failures onto response codes: unknown or
// missing documents are 404s, anything else is an upstream failure.
func (h *Handler) writeLoadError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	if errors.Is(err, loader.ErrUnknownSeason) {
		h.writeError(w, r, nethttp.StatusNotFound, "season not found")
		return
	}
	if fe, ok := fetch.AsFetchError(err); ok && fe.NotFound() {
		h.writeError(w, r, nethttp.StatusNotFound, "season data not found")
		return
	}
	logging.Error(logging.FromContext(r.Context(), h.logger), "load failed", err)
	h.writeError(w, r, nethttp.StatusBadGateway, "failed to load league data")
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, r *nethttp.Request, status int, message string) {
	body := map[string]string{"error": message}
	if reqID := RequestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	h.writeJSON(w, status, body)
}
