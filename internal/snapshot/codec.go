package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/models"
)

// ErrInvalidSnapshot marks a snapshot missing required structure. The
// caller must treat it as "no snapshot" and leave existing state
// untouched; decoding is all-or-nothing at the top level.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Encode serializes the full draft state. It locks the aggregate, so
// call it from outside any section already holding the draft lock.
func Encode(d *draft.Draft) Snapshot {
	d.Mu.Lock()
	defer d.Mu.Unlock()

	snap := Snapshot{
		Version:      Version,
		Timestamp:    time.Now().UnixMilli(),
		Tournament:   d.Tournament,
		Format:       string(d.Format),
		TeamCount:    d.TeamCount,
		TeamNames:    make(map[int]string, len(d.TeamNames)),
		Scores:       d.Scores.All(),
		CurrentPick:  d.CurrentPick,
		PickOrder:    append([]int(nil), d.PickOrder...),
		IsActive:     d.IsActive,
		HasCompleted: d.HasCompleted,
		Rounds:       d.Rounds,
	}
	for num, name := range d.TeamNames {
		snap.TeamNames[num] = name
	}

	for _, team := range d.Teams {
		ts := TeamSnapshot{TeamNum: team, Name: d.TeamNames[team], Slots: []SlotSnapshot{}}
		for tier := 1; tier <= draft.NumTiers; tier++ {
			id := ""
			if row, ok := d.Slots[team]; ok {
				id = row[tier]
			}
			if id == "" {
				continue
			}
			slot := SlotSnapshot{ID: id, Tier: tier, Rounds: d.Scores.Rounds(id), Total: d.Scores.Total(id)}
			if p, ok := d.Players[id]; ok {
				slot.Name = p.Name
				slot.Odds = p.Odds
			}
			ts.Slots = append(ts.Slots, slot)
		}
		snap.Teams = append(snap.Teams, ts)
	}

	for id := range d.DraftedPlayers {
		snap.DraftedPlayers = append(snap.DraftedPlayers, id)
	}
	sort.Strings(snap.DraftedPlayers)

	for round := 1; round <= d.Rounds; round++ {
		row, ok := d.Board[round]
		if !ok {
			continue
		}
		for _, team := range d.Teams {
			id, ok := row[team]
			if !ok {
				continue
			}
			cell := BoardCell{Round: round, TeamNum: team, ID: id}
			if p, ok := d.Players[id]; ok {
				cell.Name = p.Name
				cell.Odds = p.Odds
				cell.Tier = p.Tier
			}
			snap.Board = append(snap.Board, cell)
		}
	}

	return snap
}

// EncodeJSON is Encode plus JSON marshaling.
func EncodeJSON(d *draft.Draft) ([]byte, error) {
	data, err := json.Marshal(Encode(d))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode reconstructs a draft aggregate from a snapshot. Required
// structure missing (no teams, unusable version) fails with
// ErrInvalidSnapshot; optional sub-fields (team names, board, scores)
// may be absent and default sensibly. The returned draft carries no
// hooks; the caller wires those before installing it.
func Decode(snap Snapshot) (*draft.Draft, error) {
	if snap.Version < 1 || snap.Version > Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snap.Version)
	}
	if len(snap.Teams) == 0 {
		return nil, fmt.Errorf("%w: no team data", ErrInvalidSnapshot)
	}

	teamCount := snap.TeamCount
	if teamCount == 0 {
		teamCount = len(snap.Teams)
	}
	format := draft.Format(snap.Format)
	if format != draft.FormatSnake && format != draft.FormatLinear {
		format = draft.FormatSnake
	}

	d := draft.NewDraft(snap.Tournament, teamCount, format)
	d.Mu.Lock()
	defer d.Mu.Unlock()

	if snap.Rounds > 0 {
		d.Rounds = snap.Rounds
	}

	// Stored names take precedence over synthesized defaults.
	for _, ts := range snap.Teams {
		if ts.Name != "" && ts.TeamNum >= 1 && ts.TeamNum <= d.TeamCount {
			d.TeamNames[ts.TeamNum] = ts.Name
		}
	}
	for num, name := range snap.TeamNames {
		if name != "" && num >= 1 && num <= d.TeamCount {
			d.TeamNames[num] = name
		}
	}

	for id, rounds := range snap.Scores {
		for idx := 0; idx < draft.NumRounds; idx++ {
			if idx < len(rounds) {
				d.Scores.SetRoundValue(id, idx, rounds[idx])
			}
		}
	}

	// Replay roster slots, reviving drafted players into the pool.
	for _, ts := range snap.Teams {
		if ts.TeamNum < 1 || ts.TeamNum > d.TeamCount {
			continue
		}
		for _, slot := range ts.Slots {
			if slot.ID == "" || slot.Tier < 1 || slot.Tier > draft.NumTiers {
				continue
			}
			revivePlayer(d, slot.ID, slot.Name, slot.Odds, slot.Tier)
			if d.Slots[ts.TeamNum] == nil {
				d.Slots[ts.TeamNum] = make(map[int]string)
			}
			d.Slots[ts.TeamNum][slot.Tier] = slot.ID
			d.DraftedPlayers[slot.ID] = true
			if _, scored := snap.Scores[slot.ID]; !scored {
				for idx := 0; idx < draft.NumRounds && idx < len(slot.Rounds); idx++ {
					d.Scores.SetRoundValue(slot.ID, idx, slot.Rounds[idx])
				}
			}
		}
	}

	for _, cell := range snap.Board {
		if cell.Round < 1 || cell.Round > d.Rounds || cell.ID == "" {
			continue
		}
		if cell.TeamNum < 1 || cell.TeamNum > d.TeamCount {
			continue
		}
		revivePlayer(d, cell.ID, cell.Name, cell.Odds, cell.Tier)
		if d.Board[cell.Round] == nil {
			d.Board[cell.Round] = make(map[int]string)
		}
		d.Board[cell.Round][cell.TeamNum] = cell.ID
	}

	for _, id := range snap.DraftedPlayers {
		d.DraftedPlayers[id] = true
	}
	for id := range d.DraftedPlayers {
		if p, ok := d.Players[id]; ok {
			p.Drafted = true
		}
	}

	d.CurrentPick = snap.CurrentPick
	if d.CurrentPick < 0 {
		d.CurrentPick = 0
	}
	if len(snap.PickOrder) > 0 {
		d.PickOrder = append([]int(nil), snap.PickOrder...)
	} else {
		d.PickOrder = draft.ComputeOrder(d.Format, d.Teams, d.Rounds)
	}
	if d.CurrentPick > len(d.PickOrder) {
		d.CurrentPick = len(d.PickOrder)
	}
	d.IsActive = snap.IsActive
	d.HasCompleted = snap.HasCompleted

	// Rebuild the chronological pick log from the board and order.
	d.Picks = nil
	for k := 0; k < d.CurrentPick && k < len(d.PickOrder); k++ {
		team := d.PickOrder[k]
		round := k/d.TeamCount + 1
		row, ok := d.Board[round]
		if !ok {
			continue
		}
		id, ok := row[team]
		if !ok {
			continue
		}
		tier := 0
		if p, ok := d.Players[id]; ok {
			tier = p.Tier
		}
		d.Picks = append(d.Picks, models.Pick{
			ID:       uuid.New(),
			PlayerID: id,
			TeamNum:  team,
			Round:    round,
			Tier:     tier,
		})
	}

	return d, nil
}

// DecodeJSON parses and decodes a persisted snapshot. Corrupt JSON
// degrades to an error rather than a partial apply.
func DecodeJSON(data []byte) (*draft.Draft, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return Decode(snap)
}

// revivePlayer inserts a drafted player back into the pool if absent.
// Assumes the draft lock is held.
func revivePlayer(d *draft.Draft, id, name, odds string, tier int) {
	if name == "" {
		name = id
	}
	if odds == "" {
		odds = "N/A"
	}
	d.InsertPlayer(models.Player{ID: id, Name: name, Odds: odds, Tier: tier, Drafted: true})
}
