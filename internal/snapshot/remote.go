package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/golfdraft-io/golfdraft/internal/draft"
)

// ErrInvalidRemote marks a remote draft payload that cannot be
// normalized. Nothing is applied from such a payload.
var ErrInvalidRemote = errors.New("invalid remote draft payload")

// RemoteDraft is the current-draft resource served by the remote
// authority, keyed by draft identifier.
type RemoteDraft struct {
	ID               string                  `json:"id"`
	Tournament       string                  `json:"tournament"`
	Format           string                  `json:"format"`
	TeamCount        int                     `json:"teamCount"`
	Teams            map[string]RemoteTeam   `json:"teams"`
	Players          map[string]RemotePlayer `json:"players"`
	PickOrder        []string                `json:"pickOrder"`
	CurrentPickIndex int                     `json:"currentPickIndex"`
	IsActive         bool                    `json:"isActive"`
	HasCompleted     bool                    `json:"hasCompleted"`
}

type RemoteTeam struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Owner *string      `json:"owner"`
	Picks []RemotePick `json:"picks"`
}

type RemotePick struct {
	ID        string  `json:"id"`
	PlayerID  string  `json:"player_id"`
	TeamID    string  `json:"team_id"`
	Round     int     `json:"round"`
	CreatedBy *string `json:"created_by"`
}

type RemotePlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Odds string `json:"odds"`
	Tier int    `json:"tier"`
}

// NormalizeRemote maps a remote draft resource into the local Snapshot
// shape. Normalization is all-or-nothing: a payload with no teams,
// unparsable team identifiers or picks referencing unknown players is
// rejected whole, never partially applied.
func NormalizeRemote(rd *RemoteDraft) (Snapshot, error) {
	if rd == nil || len(rd.Teams) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no team data", ErrInvalidRemote)
	}

	byNum := make(map[int]RemoteTeam, len(rd.Teams))
	nums := make([]int, 0, len(rd.Teams))
	for tid, team := range rd.Teams {
		num, err := strconv.Atoi(tid)
		if err != nil || num < 1 {
			return Snapshot{}, fmt.Errorf("%w: team id %q", ErrInvalidRemote, tid)
		}
		byNum[num] = team
		nums = append(nums, num)
	}
	sort.Ints(nums)

	teamCount := rd.TeamCount
	if teamCount == 0 {
		teamCount = len(nums)
	}
	if teamCount < draft.MinTeams || teamCount > draft.MaxTeams {
		return Snapshot{}, fmt.Errorf("%w: team count %d", ErrInvalidRemote, teamCount)
	}

	format := draft.Format(rd.Format)
	if format != draft.FormatSnake && format != draft.FormatLinear {
		format = draft.FormatSnake
	}

	snap := Snapshot{
		Version:      Version,
		Timestamp:    time.Now().UnixMilli(),
		Tournament:   rd.Tournament,
		Format:       string(format),
		TeamCount:    teamCount,
		TeamNames:    make(map[int]string, teamCount),
		Scores:       map[string][]int{},
		IsActive:     rd.IsActive,
		HasCompleted: rd.HasCompleted,
		Rounds:       draft.NumRounds,
	}

	totalPicks := 0
	picked := make(map[string]bool)
	for _, num := range nums {
		team := byNum[num]
		if team.Name != "" {
			snap.TeamNames[num] = team.Name
		}
		ts := TeamSnapshot{TeamNum: num, Name: team.Name, Slots: []SlotSnapshot{}}
		for _, pick := range team.Picks {
			player, ok := rd.Players[pick.PlayerID]
			if !ok {
				return Snapshot{}, fmt.Errorf("%w: pick references unknown player %q", ErrInvalidRemote, pick.PlayerID)
			}
			if picked[pick.PlayerID] {
				return Snapshot{}, fmt.Errorf("%w: player %q picked twice", ErrInvalidRemote, pick.PlayerID)
			}
			picked[pick.PlayerID] = true
			if player.Tier < 1 || player.Tier > draft.NumTiers {
				return Snapshot{}, fmt.Errorf("%w: player %q tier %d", ErrInvalidRemote, pick.PlayerID, player.Tier)
			}
			ts.Slots = append(ts.Slots, SlotSnapshot{
				ID:     pick.PlayerID,
				Tier:   player.Tier,
				Name:   player.Name,
				Odds:   player.Odds,
				Rounds: make([]int, draft.NumRounds),
			})
			snap.DraftedPlayers = append(snap.DraftedPlayers, pick.PlayerID)
			round := pick.Round
			if round < 1 {
				round = 1
			}
			if round > draft.NumRounds {
				round = draft.NumRounds
			}
			snap.Board = append(snap.Board, BoardCell{
				Round:   round,
				TeamNum: num,
				ID:      pick.PlayerID,
				Name:    player.Name,
				Odds:    player.Odds,
				Tier:    player.Tier,
			})
			totalPicks++
		}
		snap.Teams = append(snap.Teams, ts)
	}
	sort.Strings(snap.DraftedPlayers)

	// The remote order may describe a single round; the local order is
	// always the full rounds x teams sequence.
	teams := make([]int, 0, teamCount)
	for i := 1; i <= teamCount; i++ {
		teams = append(teams, i)
	}
	fullOrder := remoteOrder(rd.PickOrder, teamCount)
	if fullOrder == nil {
		fullOrder = draft.ComputeOrder(format, teams, draft.NumRounds)
	}
	snap.PickOrder = fullOrder

	// Every consumed pick corresponds to one drafted player.
	snap.CurrentPick = totalPicks
	if snap.CurrentPick > len(snap.PickOrder) {
		snap.CurrentPick = len(snap.PickOrder)
	}

	return snap, nil
}

// remoteOrder converts the remote pick order to team numbers if it
// already covers the full draft; otherwise nil so the caller
// recomputes locally.
func remoteOrder(order []string, teamCount int) []int {
	if len(order) != teamCount*draft.NumRounds {
		return nil
	}
	out := make([]int, len(order))
	for i, tid := range order {
		num, err := strconv.Atoi(tid)
		if err != nil || num < 1 || num > teamCount {
			return nil
		}
		out[i] = num
	}
	return out
}
