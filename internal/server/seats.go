package server

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/mysterioushouse/server/internal/config"
)

var (
	ErrServerFull  = errors.New("server is full")
	ErrAddressFull = errors.New("too many players from this address")
	ErrPlayerBusy  = errors.New("player is already playing")
)

// Seat is one admitted play connection. Player is empty for anonymous
// players.
type Seat struct {
	Addr   string
	Player string
}

// SeatStats summarizes the occupied seats.
type SeatStats struct {
	Players   int
	Addresses int
}

// Seats admits play connections under the total, per-address and
// per-player caps. A zero cap is unlimited.
type Seats struct {
	mu       sync.Mutex
	total    int
	byAddr   map[string]int
	byPlayer map[string]int

	maxTotal     int
	maxPerAddr   int
	maxPerPlayer int
}

// NewSeats creates a seat table from the connection settings.
func NewSeats(cfg config.ConnectionsConfig) *Seats {
	return &Seats{
		byAddr:       make(map[string]int),
		byPlayer:     make(map[string]int),
		maxTotal:     cfg.MaxTotal,
		maxPerAddr:   cfg.MaxPerIP,
		maxPerPlayer: cfg.MaxPerPlayer,
	}
}

// Acquire takes a seat for a player connecting from addr.
func (s *Seats) Acquire(addr, player string) (Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.maxTotal > 0 && s.total >= s.maxTotal:
		return Seat{}, ErrServerFull
	case s.maxPerAddr > 0 && s.byAddr[addr] >= s.maxPerAddr:
		return Seat{}, ErrAddressFull
	case player != "" && s.maxPerPlayer > 0 && s.byPlayer[player] >= s.maxPerPlayer:
		return Seat{}, ErrPlayerBusy
	}

	s.total++
	s.byAddr[addr]++
	if player != "" {
		s.byPlayer[player]++
	}
	return Seat{Addr: addr, Player: player}, nil
}

// Release frees a seat returned by Acquire.
func (s *Seats) Release(seat Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.total > 0 {
		s.total--
	}
	decrement(s.byAddr, seat.Addr)
	if seat.Player != "" {
		decrement(s.byPlayer, seat.Player)
	}
}

func decrement(counts map[string]int, key string) {
	if counts[key] <= 1 {
		delete(counts, key)
		return
	}
	counts[key]--
}

// Stats returns the number of seated players and distinct addresses.
func (s *Seats) Stats() SeatStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SeatStats{Players: s.total, Addresses: len(s.byAddr)}
}

// seatStatus maps an Acquire error to the HTTP rejection.
func seatStatus(err error) int {
	if errors.Is(err, ErrPlayerBusy) {
		return http.StatusConflict
	}
	return http.StatusTooManyRequests
}

// getRealIP extracts the client IP, preferring proxy headers.
func getRealIP(r *http.Request) string {
	// "client, proxy1, proxy2"
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if clientIP := strings.TrimSpace(strings.Split(xff, ",")[0]); clientIP != "" {
			return clientIP
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
