package handlers

import (
	"net/http"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/snapshot"
)

// GetStateHandler serves the full serialized draft state.
func GetStateHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, snapshot.Encode(s.CurrentDraft()))
	}
}

// ListPlayersHandler serves the player pool in insertion order.
func ListPlayersHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, s.CurrentDraft().PlayerList())
	}
}

// SubmitPickHandler submits a pick for the team on the clock. Business
// rejections surface as status broadcasts, so the HTTP response is
// always 202 for well-formed requests.
func SubmitPickHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			PlayerID string `json:"playerId"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "playerId is required", http.StatusBadRequest)
			return
		}
		s.Coordinator.SubmitPick(r.Context(), req.PlayerID)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

// StartDraftHandler activates the draft.
func StartDraftHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		s.CurrentDraft().StartDraft()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ResetBoardHandler clears the draft back to not started.
func ResetBoardHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		s.CurrentDraft().ResetBoard()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SetFormatHandler switches between Snake and Linear, resetting the
// board.
func SetFormatHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			Format string `json:"format"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		s.CurrentDraft().SetFormat(draft.Format(req.Format))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SetTeamCountHandler changes the team count (clamped to 2-4),
// discarding in-progress picks.
func SetTeamCountHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			TeamCount int `json:"teamCount"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		s.CurrentDraft().SetTeamCount(req.TeamCount)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// RenameTeamHandler sets a team's display name.
func RenameTeamHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			TeamNum int    `json:"teamNum"`
			Name    string `json:"name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		s.CurrentDraft().RenameTeam(req.TeamNum, req.Name)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// AddPlayerHandler adds a golfer to the pool.
func AddPlayerHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			Name string `json:"name"`
			Odds string `json:"odds"`
			Tier int    `json:"tier"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		id := s.CurrentDraft().AddPlayer(req.Name, req.Odds, req.Tier)
		if id == "" {
			http.Error(w, "invalid player", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// ImportScoresHandler ingests "id,r1,r2,r3,r4" score lines separated
// by ";".
func ImportScoresHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			Scores string `json:"scores"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		s.CurrentDraft().ImportScores(req.Scores)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SetScoreHandler writes one round score for one player. The raw value
// is parsed leniently; invalid input coerces to 0.
func SetScoreHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		var req struct {
			PlayerID   string `json:"playerId"`
			RoundIndex int    `json:"roundIndex"`
			Value      string `json:"value"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "playerId is required", http.StatusBadRequest)
			return
		}
		s.CurrentDraft().SetRoundScore(req.PlayerID, req.RoundIndex, req.Value)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HistoryHandler serves the archived completed drafts, newest first.
func HistoryHandler(s *DraftServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		entries := s.Coordinator.History(r.Context())
		if entries == nil {
			entries = []snapshot.HistoryEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
