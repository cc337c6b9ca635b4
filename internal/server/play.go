package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mysterioushouse/server/internal/house"
	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/throttle"
	"github.com/mysterioushouse/server/internal/utterance"
)

// handleWebSocketUpgrade upgrades a play request and runs the session.
func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r)
	player := r.URL.Query().Get("user")

	seat, err := s.seats.Acquire(clientIP, player)
	if err != nil {
		logger.Warning("WebSocket connection rejected",
			"reason", err,
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP)
		http.Error(w, err.Error(), seatStatus(err))
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		s.seats.Release(seat)
		return
	}
	if s.cfg.WebSocket.MaxMessageSize > 0 {
		wsConn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	userID := player
	if userID == "" {
		userID = uuid.NewString()
	}
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = s.cfg.Skill.DefaultLocale
	}

	client := NewWebSocketClient(wsConn)
	if !s.track(client) {
		client.Close()
		s.seats.Release(seat)
		return
	}

	go func() {
		defer func() {
			s.untrack(client)
			s.seats.Release(seat)
			client.Close()
		}()
		s.play(s.ctx, client, userID, locale)
	}()
}

// track registers a live client; it fails once shutdown has begun.
func (s *Server) track(c Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.clients[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(c Client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	s.wg.Done()
}

// play runs one game session over a text client. Session attributes live
// only for the life of the connection.
func (s *Server) play(ctx context.Context, client Client, userID, locale string) {
	log := logger.With("remote_addr", client.RemoteAddr(), "locale", locale)
	log.Info("Text player connected")

	turns := throttle.NewTracker(throttle.Config{
		Enabled:  s.cfg.Connections.MaxTurns > 0,
		MaxTurns: s.cfg.Connections.MaxTurns,
		Window:   s.cfg.Connections.TurnWindow,
	})

	reply := s.player.HandleTurn(ctx, house.Turn{Intent: house.IntentLaunch, UserID: userID})
	for {
		if err := writeReply(client, s.renderer.Render(locale, reply.Script)); err != nil {
			log.Debug("Text player write failed", "error", err)
			return
		}
		if reply.EndSession {
			log.Info("Text player session ended")
			return
		}

		line, err := client.ReadLine()
		if err != nil {
			log.Info("Text player disconnected", "error", err)
			return
		}

		if result := turns.Check(); !result.Allowed {
			log.Debug("Text player throttled", "wait_seconds", result.WaitSeconds)
			slow := s.renderer.Render(locale, narration.Script{
				Speech: []narration.Segment{narration.Say(narration.KeyThrottled, result.WaitSeconds)},
			})
			if err := client.WriteLine(slow.CardContent); err != nil {
				return
			}
			continue
		}

		intent, slots := utterance.Parse(line)
		log.Debug("Text player turn", "line", line, "intent", intent)
		reply = s.player.HandleTurn(ctx, house.Turn{
			Intent:     intent,
			Slots:      slots,
			Attributes: reply.Attributes(),
			UserID:     userID,
		})
	}
}

// writeReply sends the card text and, when present, the reprompt.
func writeReply(client Client, out narration.Output) error {
	if err := client.WriteLine(out.CardContent); err != nil {
		return err
	}
	if out.Reprompt == "" {
		return nil
	}
	return client.WriteLine(out.Reprompt)
}
