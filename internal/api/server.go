package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"restock/internal/config"
	"restock/internal/game"
	"restock/internal/leaderboard"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// Server keeps every in-flight run in memory, keyed by a session id
// handed out at creation. Scores outlive the process through the
// leaderboard store.
//
// Engines are not safe for concurrent use, so every engine access,
// reads included, runs under mu via withGame.
type Server struct {
	cfg    config.APIConfig
	log    *slog.Logger
	scores leaderboard.Store
	bal    game.Balance
	mux    *chi.Mux

	mu    sync.Mutex
	games map[string]*game.Engine
}

func New(cfg config.APIConfig, logger *slog.Logger, scores leaderboard.Store, bal game.Balance) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		scores: scores,
		bal:    bal,
		mux:    chi.NewRouter(),
		games:  make(map[string]*game.Engine),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{id}", s.handleGameState)
		r.Post("/games/{id}/turn", s.handleTurn)
		r.Post("/games/{id}/upgrades", s.handleBuyUpgrade)
		r.Get("/games/{id}/upgrades", s.handleListUpgrades)
		r.Post("/games/{id}/advance", s.handleAdvanceLevel)
		r.Get("/games/{id}/history", s.handleHistory)
		r.Get("/games/{id}/summary", s.handleSummary)
		r.Get("/games/{id}/forecast", s.handleForecast)
		r.Get("/games/{id}/quote", s.handleQuote)
		r.Post("/games/{id}/score", s.handleSubmitScore)

		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// withGame runs fn on the request's engine while holding mu. Request
// bodies are decoded before calling it so the lock never waits on a
// slow client.
func (s *Server) withGame(r *http.Request, fn func(*game.Engine) error) error {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return ErrGameNotFound
	}
	return fn(e)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Difficulty string `json:"difficulty"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := game.ParseDifficulty(in.Difficulty)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	e, err := game.NewEngine(d, s.bal, nil, s.log)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.games[id] = e
	state := e.Snapshot()
	hud := e.HUD()
	s.mu.Unlock()

	s.log.Info("game created", "id", id, "difficulty", d)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":    id,
		"state": state,
		"hud":   hud,
	})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	var state game.Snapshot
	var hud game.HUDView
	err := s.withGame(r, func(e *game.Engine) error {
		state = e.Snapshot()
		hud = e.HUD()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state": state,
		"hud":   hud,
	})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var in game.TurnInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var rep game.TurnReport
	var hud game.HUDView
	err := s.withGame(r, func(e *game.Engine) error {
		var rerr error
		rep, rerr = e.ResolveTurn(in)
		if rerr != nil {
			return rerr
		}
		hud = e.HUD()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"report": rep,
		"hud":    hud,
	})
}

func (s *Server) handleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Upgrade string `json:"upgrade"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var bought bool
	var hud game.HUDView
	err := s.withGame(r, func(e *game.Engine) error {
		bought = e.BuyUpgrade(game.UpgradeID(strings.TrimSpace(in.Upgrade)))
		if bought {
			hud = e.HUD()
		}
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !bought {
		writeError(w, http.StatusConflict, "upgrade unavailable: locked, maxed, or unaffordable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"hud": hud,
	})
}

func (s *Server) handleListUpgrades(w http.ResponseWriter, r *http.Request) {
	var offers []game.UpgradeOffer
	err := s.withGame(r, func(e *game.Engine) error {
		offers = e.ListUpgrades()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"upgrades": offers})
}

func (s *Server) handleAdvanceLevel(w http.ResponseWriter, r *http.Request) {
	var state game.Snapshot
	var hud game.HUDView
	err := s.withGame(r, func(e *game.Engine) error {
		if aerr := e.AdvanceLevel(); aerr != nil {
			return aerr
		}
		state = e.Snapshot()
		hud = e.HUD()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state": state,
		"hud":   hud,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var hist game.History
	err := s.withGame(r, func(e *game.Engine) error {
		hist = e.History()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": hist})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var sum game.RunSummary
	err := s.withGame(r, func(e *game.Engine) error {
		sum = e.Summary()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": sum})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	var expected int
	var unlocked bool
	err = s.withGame(r, func(e *game.Engine) error {
		expected, unlocked = e.ForecastDemand(price)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !unlocked {
		writeError(w, http.StatusConflict, "forecasting not unlocked")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"price":           price,
		"expected_demand": expected,
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil || qty < 0 {
		writeError(w, http.StatusBadRequest, "invalid qty")
		return
	}
	expedited := r.URL.Query().Get("expedited") == "1"

	var quote game.OrderQuote
	err = s.withGame(r, func(e *game.Engine) error {
		quote = e.QuoteOrder(qty, expedited)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quote": quote})
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	var entry leaderboard.Entry
	err := s.withGame(r, func(e *game.Engine) error {
		entry = leaderboard.Entry{
			Name:       name,
			Score:      e.FinalScore(),
			Level:      e.Level(),
			Difficulty: string(e.Snapshot().Difficulty),
		}
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Score writes must not hold the request hostage on a slow store.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.scores.Submit(ctx, entry); err != nil {
			s.log.Error("score submit failed", "name", entry.Name, "err", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	rows, err := s.scores.Top(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrUnknownDifficulty), errors.Is(err, game.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrEngineInactive), errors.Is(err, game.ErrLevelNotCleared):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
