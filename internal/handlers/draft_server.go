// Package handlers exposes the draft to local UI clients over HTTP and
// websocket. Rendering is a one-directional projection: clients receive
// full state events and never write derived data back.
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/snapshot"
	draftsync "github.com/golfdraft-io/golfdraft/internal/sync"
)

// DraftServer holds the coordinator, the live draft registry and the
// set of connected websocket clients.
type DraftServer struct {
	Coordinator *draftsync.Coordinator
	Drafts      *draft.DraftStore

	logger *logrus.Logger
	events chan []byte

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewDraftServer wires the coordinator's state/status hooks into the
// broadcast fan-out.
func NewDraftServer(coord *draftsync.Coordinator, logger *logrus.Logger) *DraftServer {
	s := &DraftServer{
		Coordinator: coord,
		Drafts:      draft.NewDraftStore(),
		logger:      logger,
		events:      make(chan []byte, 64),
		clients:     make(map[*websocket.Conn]bool),
	}
	s.Drafts.SetDefault(coord.Draft())
	go s.writeLoop()

	coord.OnState = func() {
		s.Drafts.SetDefault(coord.Draft())
		s.BroadcastState()
	}
	coord.OnStatus = s.BroadcastStatus
	return s
}

// CurrentDraft returns the session's live aggregate.
func (s *DraftServer) CurrentDraft() *draft.Draft {
	if d := s.Drafts.Default(); d != nil {
		return d
	}
	return s.Coordinator.Draft()
}

func (s *DraftServer) addClient(c *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = true
}

func (s *DraftServer) removeClient(c *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

// BroadcastState pushes the full serialized draft state to every
// connected client.
func (s *DraftServer) BroadcastState() {
	snap := snapshot.Encode(s.CurrentDraft())
	s.broadcast(map[string]interface{}{
		"type":  "draft_state",
		"state": snap,
	})
}

// BroadcastStatus delivers a transient user-facing message, the same
// channel for every business-rule rejection.
func (s *DraftServer) BroadcastStatus(msg string) {
	s.broadcast(map[string]interface{}{
		"type":    "status",
		"message": msg,
	})
}

// broadcast marshals once and queues the event for the single writer
// goroutine, so every client sees events in mutation order and draft
// logic never blocks on a slow socket. When the queue overflows the
// oldest event is evicted; the newest state always goes out.
func (s *DraftServer) broadcast(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Errorf("Failed to marshal broadcast payload: %v", err)
		return
	}

	for {
		select {
		case s.events <- data:
			return
		default:
		}
		select {
		case <-s.events:
			s.logger.Warn("Broadcast queue full. Evicting oldest event.")
		default:
		}
	}
}

// writeLoop drains the event queue and fans each event out to every
// connected client in order.
func (s *DraftServer) writeLoop() {
	for data := range s.events {
		s.mu.Lock()
		conns := make([]*websocket.Conn, 0, len(s.clients))
		for c := range s.clients {
			conns = append(conns, c)
		}
		s.mu.Unlock()

		for _, c := range conns {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := c.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.logger.Warnf("Failed to write broadcast message to client: %v", err)
			}
		}
	}
}
