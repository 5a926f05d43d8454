// Package remote talks to the remote draft authority: an HTTP resource
// serving the current draft and a websocket event channel that accepts
// pick submissions and pushes full draft states back.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/golfdraft-io/golfdraft/internal/snapshot"
)

// wsMessage is the envelope for every event-channel message, outbound
// and inbound.
type wsMessage struct {
	Type     string                `json:"type"`
	DraftID  string                `json:"draftId,omitempty"`
	TeamID   string                `json:"teamId,omitempty"`
	PlayerID string                `json:"playerId,omitempty"`
	UserID   string                `json:"userId,omitempty"`
	Message  string                `json:"message,omitempty"`
	State    *snapshot.RemoteDraft `json:"state,omitempty"`
}

// Client connects to one remote draft. Pushed draft states arrive on
// Pushes(); only the most recent unconsumed push is retained, since
// every application is a total replacement anyway.
type Client struct {
	APIURL  string
	WSURL   string
	DraftID string
	UserID  string

	logger *logrus.Logger
	http   *http.Client

	mu     sync.Mutex
	conn   *websocket.Conn
	pushes chan snapshot.RemoteDraft
}

func NewClient(apiURL, wsURL, draftID, userID string, logger *logrus.Logger) *Client {
	return &Client{
		APIURL:  strings.TrimRight(apiURL, "/"),
		WSURL:   wsURL,
		DraftID: draftID,
		UserID:  userID,
		logger:  logger,
		http:    &http.Client{Timeout: 10 * time.Second},
		pushes:  make(chan snapshot.RemoteDraft, 1),
	}
}

// FetchDraft retrieves the current draft resource. With no configured
// draft id the authority's default draft is fetched.
func (c *Client) FetchDraft(ctx context.Context) (*snapshot.RemoteDraft, error) {
	path := "/api/drafts/default"
	if c.DraftID != "" {
		path = "/api/drafts/" + c.DraftID
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build draft fetch request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch remote draft: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch remote draft: unexpected status %d", resp.StatusCode)
	}
	var rd snapshot.RemoteDraft
	if err := json.NewDecoder(resp.Body).Decode(&rd); err != nil {
		return nil, fmt.Errorf("decode remote draft: %w", err)
	}
	if c.DraftID == "" {
		c.DraftID = rd.ID
	}
	return &rd, nil
}

// Connect dials the event channel, announces which draft this client
// is joining, and starts the push read loop.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, c.WSURL, &websocket.DialOptions{
		Subprotocols: []string{"draft"},
	})
	if err != nil {
		return fmt.Errorf("dial remote event channel: %w", err)
	}

	join := wsMessage{Type: "join_draft", DraftID: c.DraftID, UserID: c.UserID}
	if err := writeJSON(ctx, conn, join); err != nil {
		conn.Close(websocket.StatusInternalError, "join failed")
		return fmt.Errorf("announce draft join: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readPushes(ctx, conn)
	return nil
}

// SubmitPick forwards a pick to the authority instead of applying it
// locally; the resulting state comes back as a push.
func (c *Client) SubmitPick(ctx context.Context, teamID, playerID string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("remote event channel is not connected")
	}
	msg := wsMessage{
		Type:     "submit_pick",
		DraftID:  c.DraftID,
		TeamID:   teamID,
		PlayerID: playerID,
		UserID:   c.UserID,
	}
	if err := writeJSON(ctx, conn, msg); err != nil {
		return fmt.Errorf("submit pick to remote: %w", err)
	}
	return nil
}

// Pushes exposes inbound full-draft-state pushes.
func (c *Client) Pushes() <-chan snapshot.RemoteDraft {
	return c.pushes
}

// Close shuts the event channel down.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		conn.Close(websocket.StatusNormalClosure, "client shutting down")
	}
}

// readPushes consumes the event channel until it closes. Each
// draft_state message replaces any push not yet consumed; error
// messages are logged and dropped.
func (c *Client) readPushes(ctx context.Context, conn *websocket.Conn) {
	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				c.logger.Info("Remote event channel closed.")
			} else if ctx.Err() != nil {
				c.logger.Info("Remote event channel context canceled.")
			} else {
				c.logger.Warnf("Error reading from remote event channel: %v", err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warnf("Invalid JSON on remote event channel: %v", err)
			continue
		}

		switch msg.Type {
		case "draft_state":
			if msg.State == nil {
				c.logger.Warn("Remote draft_state push without state payload. Dropping.")
				continue
			}
			// Keep only the latest push; each apply is a total replace.
			select {
			case <-c.pushes:
			default:
			}
			c.pushes <- *msg.State
		case "error":
			c.logger.Warnf("Remote authority error: %s", msg.Message)
		case "user_joined", "user_left":
			c.logger.Debugf("Remote presence event %s for user %s.", msg.Type, msg.UserID)
		default:
			c.logger.Debugf("Ignoring remote event %q.", msg.Type)
		}
	}
}

func writeJSON(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
