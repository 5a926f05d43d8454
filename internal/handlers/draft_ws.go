package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/middleware"
	"github.com/golfdraft-io/golfdraft/internal/snapshot"
)

// ClientMessage is the envelope for every inbound UI websocket message.
type ClientMessage struct {
	Type string `json:"type"`

	PlayerID  string `json:"playerId,omitempty"`
	TeamNum   int    `json:"teamNum,omitempty"`
	TeamCount int    `json:"teamCount,omitempty"`
	Name      string `json:"name,omitempty"`
	Odds      string `json:"odds,omitempty"`
	Tier      int    `json:"tier,omitempty"`
	Format    string `json:"format,omitempty"`

	RoundIndex int    `json:"roundIndex,omitempty"`
	Value      string `json:"value,omitempty"`
	Scores     string `json:"scores,omitempty"`
}

// DraftWSHandler upgrades the connection, registers the client for
// state broadcasts, sends the current state and then processes draft
// operations until the client disconnects.
func DraftWSHandler(logger *logrus.Logger, s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"draft"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "draft" {
			logger.Warnf("Client connected with invalid subprotocol: %s", c.Subprotocol())
			c.Close(websocket.StatusPolicyViolation, "Client must use the 'draft' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		s.addClient(c)
		defer s.removeClient(c)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Initial render reflects the restored/synced draft, not a
		// blank one.
		sendWsMessage(ctx, c, logger, map[string]interface{}{
			"type":  "draft_state",
			"state": snapshot.Encode(s.CurrentDraft()),
		})

		err = readClientMessages(ctx, c, s, logger)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
	}
}

// readClientMessages dispatches inbound operations until the
// connection drops. Business-rule rejections come back to every client
// as status broadcasts; only transport-level problems are returned.
func readClientMessages(ctx context.Context, c *websocket.Conn, s *DraftServer, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d. Ignoring.", msgType)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from client: %v", err)
			sendWsError(ctx, c, logger, "Invalid JSON format.")
			continue
		}

		logger.Debugf("Received client action '%s'.", msg.Type)

		switch msg.Type {
		case "submit_pick":
			s.Coordinator.SubmitPick(ctx, msg.PlayerID)
		case "start_draft":
			s.CurrentDraft().StartDraft()
		case "reset_board":
			s.CurrentDraft().ResetBoard()
		case "set_format":
			s.CurrentDraft().SetFormat(draft.Format(msg.Format))
		case "set_team_count":
			s.CurrentDraft().SetTeamCount(msg.TeamCount)
		case "rename_team":
			s.CurrentDraft().RenameTeam(msg.TeamNum, msg.Name)
		case "add_player":
			s.CurrentDraft().AddPlayer(msg.Name, msg.Odds, msg.Tier)
		case "set_score":
			s.CurrentDraft().SetRoundScore(msg.PlayerID, msg.RoundIndex, msg.Value)
		case "import_scores":
			s.CurrentDraft().ImportScores(msg.Scores)
		case "ping":
			sendWsMessage(ctx, c, logger, map[string]string{"type": "pong"})
		default:
			logger.Warnf("Unknown client action type '%s'.", msg.Type)
			sendWsError(ctx, c, logger, fmt.Sprintf("Unknown action type: %s", msg.Type))
		}
	}
}

// sendWsMessage marshals a message and sends it to one client with a
// write timeout.
func sendWsMessage(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("Error marshaling WebSocket message: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Write(writeCtx, websocket.MessageText, data); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			logger.Warnf("Error writing WebSocket message: %v", err)
		}
	}
}

// sendWsError sends a structured error message to the client.
func sendWsError(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, errorMsg string) {
	sendWsMessage(ctx, c, logger, map[string]interface{}{
		"type":    "error",
		"message": errorMsg,
	})
}
