package api

import (
	"encoding/json"
	"net/http"

	"airport_director/internal/advisor"
	"airport_director/internal/game"
	"airport_director/internal/models"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	engine  *game.Engine
	advisor *advisor.Service
}

// New constructs the HTTP router wired to the game engine. All GET routes
// are read-only projections; POST routes are the command surface.
func New(engine *game.Engine, adv *advisor.Service) http.Handler {
	s := &Server{engine: engine, advisor: adv}
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/state", s.handleState)
	r.Get("/aircraft", s.handleAircraft)
	r.Get("/schedule", s.handleSchedule)
	r.Get("/economy", s.handleEconomy)
	r.Get("/upgrades", s.handleUpgrades)
	r.Get("/log", s.handleLog)
	r.Get("/advisor/tip", s.handleTip)

	r.Post("/tick", s.handleTick)
	r.Post("/sim/pause", s.handlePause)
	r.Post("/sim/speed", s.handleSpeed)
	r.Post("/sim/advisor", s.handleAutoAdvisor)
	r.Post("/aircraft/select", s.handleSelect)
	r.Post("/upgrades/purchase", s.handlePurchase)
	r.Post("/campaign", s.handleCampaign)
	r.Post("/advisor/negotiate", s.handleNegotiate)

	return r
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Snapshot())
}

// AircraftView is the blip projection the presentation layer renders.
type AircraftView struct {
	ID       string                `json:"id"`
	X        float64               `json:"x"`
	Y        float64               `json:"y"`
	Heading  float64               `json:"heading"`
	Status   models.AircraftStatus `json:"status"`
	Category models.FlightCategory `json:"category"`
	Label    string                `json:"label"`
	Gate     string                `json:"gate,omitempty"`
}

func (s *Server) handleAircraft(w http.ResponseWriter, r *http.Request) {
	st := s.engine.Snapshot()
	views := make([]AircraftView, 0, len(st.Aircraft))
	for _, ac := range st.Aircraft {
		views = append(views, AircraftView{
			ID: ac.ID, X: ac.X, Y: ac.Y, Heading: ac.Heading,
			Status: ac.Status, Category: ac.Category,
			Label: ac.Label(), Gate: ac.Gate,
		})
	}
	writeJSON(w, views)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Snapshot().Schedule)
}

func (s *Server) handleEconomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Snapshot().Economy)
}

func (s *Server) handleUpgrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Snapshot().Upgrades)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.LogFeed())
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	s.engine.AdvanceTick()
	writeJSON(w, s.engine.Snapshot())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	paused := s.engine.TogglePause()
	writeJSON(w, map[string]bool{"paused": paused})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed int `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Speed <= 0 {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	s.engine.SetSpeed(req.Speed)
	writeJSON(w, s.engine.Snapshot())
}

func (s *Server) handleAutoAdvisor(w http.ResponseWriter, r *http.Request) {
	on := s.engine.ToggleAutoAdvisor()
	writeJSON(w, map[string]bool{"auto_advisor": on})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := s.engine.SelectAircraft(req.ID); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, map[string]string{"selected": req.ID})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := s.engine.PurchaseUpgrade(req.ID); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, s.engine.Snapshot().Upgrades)
}

func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Kind == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := s.engine.RunCampaign(req.Kind); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, s.engine.Snapshot().Economy)
}

func (s *Server) handleTip(w http.ResponseWriter, r *http.Request) {
	tip := s.advisor.Tip(r.Context(), s.engine.Snapshot())
	writeJSON(w, map[string]string{"tip": tip})
}

func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Offer float64 `json:"offer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Offer <= 0 {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	d := s.advisor.Negotiate(r.Context(), s.engine.Snapshot(), req.Offer)
	writeJSON(w, d)
}

// ===== helpers =====

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
