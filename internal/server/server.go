// Package server exposes the game over HTTP: the voice skill endpoint, a
// health check, and WebSocket text play.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mysterioushouse/server/internal/config"
	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/skill"
)

// Server serves the skill and text players.
type Server struct {
	cfg      *config.ServerConfig
	player   skill.TurnPlayer
	renderer *narration.Renderer
	skill    *skill.Handler

	seats      *Seats
	httpServer *http.Server
	startTime  time.Time

	// ctx is cancelled on shutdown so in-flight turns stop waiting on storage.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	clients map[Client]struct{}
	wg      sync.WaitGroup
}

// NewServer wires the skill handler and play transport for the engine.
func NewServer(cfg *config.ServerConfig, player skill.TurnPlayer, renderer *narration.Renderer) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		player:   player,
		renderer: renderer,
		skill: skill.NewHandler(player, renderer, skill.Options{
			ApplicationID: cfg.Skill.ApplicationID,
			DefaultLocale: cfg.Skill.DefaultLocale,
		}),
		seats:     NewSeats(cfg.Connections),
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		clients:   make(map[Client]struct{}),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.HTTP.SkillPath, s.skill)
	mux.HandleFunc(s.cfg.HTTP.PlayPath, s.handleWebSocketUpgrade)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.HTTP.Address)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	logger.Info("HTTP server listening",
		"address", ln.Addr().String(),
		"skill_path", s.cfg.HTTP.SkillPath,
		"play_path", s.cfg.HTTP.PlayPath)

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes text players and waits for
// their sessions to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.cancel()

	s.mu.Lock()
	for c := range s.clients {
		c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	logger.Info("Server shutdown complete")
	return err
}

// GetUptime returns how long the server has been running.
func (s *Server) GetUptime() time.Duration {
	return time.Since(s.startTime)
}

type healthResponse struct {
	Status    string   `json:"status"`
	Storage   string   `json:"storage"`
	Uptime    string   `json:"uptime"`
	Players   int      `json:"players"`
	Addresses int      `json:"addresses"`
	Locales   []string `json:"locales"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.seats.Stats()
	resp := healthResponse{
		Status:    "ok",
		Storage:   s.cfg.Storage.Driver,
		Uptime:    s.GetUptime().Truncate(time.Second).String(),
		Players:   stats.Players,
		Addresses: stats.Addresses,
	}
	for _, tag := range s.renderer.Catalog().Locales() {
		resp.Locales = append(resp.Locales, tag.String())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to write health response", "error", err)
	}
}
