package web

import (
	"encoding/json"
	"net/http"

	"github.com/kozaktomas/photo-mapper/internal/namematch"
)

type matchPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type matchCandidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id,omitempty"`
}

type matchRequest struct {
	Players    []matchPlayer    `json:"players"`
	Candidates []matchCandidate `json:"candidates"`

	// Optional overrides for the deterministic tier.
	AcceptThreshold *float64 `json:"accept_threshold,omitempty"`
	AmbiguityMargin *float64 `json:"ambiguity_margin,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Players) == 0 {
		writeError(w, http.StatusBadRequest, "players must not be empty")
		return
	}

	cfg := s.config.Matcher.Engine()
	if req.AcceptThreshold != nil {
		cfg.AcceptThreshold = *req.AcceptThreshold
	}
	if req.AmbiguityMargin != nil {
		cfg.AmbiguityMargin = *req.AmbiguityMargin
	}

	players := make([]namematch.PlayerRef, 0, len(req.Players))
	for _, p := range req.Players {
		if p.ID == "" {
			writeError(w, http.StatusBadRequest, "player id must not be empty")
			return
		}
		players = append(players, namematch.NewPlayerRef(p.ID, p.Name))
	}

	candidates := make([]namematch.PhotoCandidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		candidates = append(candidates, namematch.NewPhotoCandidate(c.ID, c.Name, c.ExternalID))
	}

	matcher := namematch.New(cfg, s.comparator)
	report, err := matcher.Run(r.Context(), players, candidates, nil)
	if err != nil {
		// Client went away or the request timed out; the partial report
		// is of no use to anyone at this point.
		writeError(w, http.StatusServiceUnavailable, "matching run cancelled")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
