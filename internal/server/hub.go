package server

import (
	"sync"

	"go.uber.org/zap"

	"shop-admin/internal/metrics"
)

type subscriber interface {
	SendJSON(v interface{}) error
	Admin() string
}

// Hub is the registry of connected admin sessions. It is owned by the
// transport layer and injected into services that need to fan out.
type Hub struct {
	mu       sync.RWMutex
	sessions map[subscriber]struct{}
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[subscriber]struct{}),
		logger:   logger,
	}
}

func (h *Hub) Add(s subscriber) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	count := len(h.sessions)
	h.mu.Unlock()

	metrics.ConnectedSessions.Set(float64(count))
	h.logger.Info("admin session connected",
		zap.String("admin", s.Admin()), zap.Int("total_sessions", count))
}

func (h *Hub) Remove(s subscriber) {
	h.mu.Lock()
	if _, ok := h.sessions[s]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s)
	count := len(h.sessions)
	h.mu.Unlock()

	metrics.ConnectedSessions.Set(float64(count))
	h.logger.Info("admin session disconnected",
		zap.String("admin", s.Admin()), zap.Int("total_sessions", count))
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast sends the payload to every connected session. A session whose
// send fails is dropped from the registry; the failure is logged, never
// propagated.
func (h *Hub) Broadcast(v interface{}) {
	h.mu.RLock()
	targets := make([]subscriber, 0, len(h.sessions))
	for s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.SendJSON(v); err != nil {
			h.logger.Warn("broadcast send failed, dropping session",
				zap.String("admin", s.Admin()), zap.Error(err))
			h.Remove(s)
		}
	}
}
