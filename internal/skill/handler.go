package skill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mysterioushouse/server/internal/house"
	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
)

// maxBodyBytes caps a request envelope.
const maxBodyBytes = 64 << 10

// TurnPlayer plays one turn of the game.
type TurnPlayer interface {
	HandleTurn(ctx context.Context, turn house.Turn) house.Reply
}

// Options configures a Handler.
type Options struct {
	// ApplicationID, when set, must match every request.
	ApplicationID string
	// DefaultLocale is used when a request carries none.
	DefaultLocale string
}

// Handler serves skill requests over HTTP.
type Handler struct {
	player   TurnPlayer
	renderer *narration.Renderer
	opts     Options
}

// NewHandler creates a skill handler.
func NewHandler(player TurnPlayer, renderer *narration.Renderer, opts Options) *Handler {
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = narration.Fallback.String()
	}
	return &Handler{player: player, renderer: renderer, opts: opts}
}

var (
	errWrongApplication = errors.New("application id mismatch")
	errUnknownRequest   = errors.New("unknown request type")
)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	var req RequestEnvelope
	if err := dec.Decode(&req); err != nil {
		logger.Warning("Rejected skill request", "error", err, "remote", r.RemoteAddr)
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	resp, err := h.Handle(r.Context(), req)
	switch {
	case errors.Is(err, errWrongApplication):
		logger.Warning("Rejected skill request", "error", err, "application_id", req.Session.Application.ApplicationID)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		logger.Warning("Rejected skill request", "error", err, "type", req.Request.Type)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to write skill response", "error", err)
	}
}

// Handle turns one decoded request into a response envelope.
func (h *Handler) Handle(ctx context.Context, req RequestEnvelope) (ResponseEnvelope, error) {
	if h.opts.ApplicationID != "" && req.Session.Application.ApplicationID != h.opts.ApplicationID {
		return ResponseEnvelope{}, errWrongApplication
	}

	userID := req.Session.User.UserID
	log := logger.With(
		"request_id", req.Request.RequestID,
		"session_id", req.Session.SessionID,
		"user_key", profile.UserKey(userID),
	)
	if req.Session.New {
		log.Info("Session started", "locale", req.Request.Locale)
	}

	turn := house.Turn{UserID: userID, Attributes: req.Session.Attributes}
	switch req.Request.Type {
	case LaunchRequest:
		turn.Intent = house.IntentLaunch
	case IntentRequest:
		if req.Request.Intent == nil || req.Request.Intent.Name == "" {
			return ResponseEnvelope{}, errors.New("intent request without intent")
		}
		turn.Intent = req.Request.Intent.Name
		turn.Slots = req.Request.Intent.slotValues()
	case SessionEndedRequest:
		log.Info("Session ended", "reason", req.Request.Reason)
		return ResponseEnvelope{Version: Version}, nil
	default:
		return ResponseEnvelope{}, errUnknownRequest
	}

	reply := h.player.HandleTurn(ctx, turn)
	if reply.Err != nil {
		log.Warning("Turn failed", "intent", turn.Intent, "error", reply.Err)
	} else {
		log.Debug("Turn played", "intent", turn.Intent, "title", reply.Script.Title, "end", reply.EndSession)
	}

	locale := req.Request.Locale
	if locale == "" {
		locale = h.opts.DefaultLocale
	}
	return Build(reply, h.renderer.Render(locale, reply.Script)), nil
}

// Build assembles the response envelope for a rendered reply.
func Build(reply house.Reply, out narration.Output) ResponseEnvelope {
	end := reply.EndSession
	resp := Response{
		OutputSpeech:     &OutputSpeech{Type: "SSML", SSML: out.SSML},
		Card:             &Card{Type: "Simple", Title: out.CardTitle, Content: out.CardContent},
		ShouldEndSession: &end,
	}
	if out.Reprompt != "" {
		resp.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: "PlainText", Text: out.Reprompt}}
	}

	return ResponseEnvelope{
		Version:           Version,
		SessionAttributes: reply.Attributes(),
		Response:          resp,
	}
}
