package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/golfdraft-io/golfdraft/internal/draft"
)

// HistoryEntry is an immutable record of one completed draft, appended
// to the bounded most-recent-first history archive.
type HistoryEntry struct {
	ID         string        `json:"id"`
	Timestamp  int64         `json:"timestamp"`
	Tournament string        `json:"tournament"`
	Format     string        `json:"format"`
	TeamCount  int           `json:"teamCount"`
	Teams      []HistoryTeam `json:"teams"`
}

type HistoryTeam struct {
	TeamNum    int           `json:"teamNum"`
	Name       string        `json:"name"`
	TotalValue int           `json:"totalValue"`
	Picks      []HistoryPick `json:"picks"`
}

type HistoryPick struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Tier       int    `json:"tier"`
	Odds       string `json:"odds"`
	Rounds     []int  `json:"rounds"`
	TotalValue int    `json:"totalValue"`
}

// BuildHistoryEntry captures a completed draft as a history record,
// picks ordered by round within each team. Locks the aggregate.
func BuildHistoryEntry(d *draft.Draft) HistoryEntry {
	d.Mu.Lock()
	defer d.Mu.Unlock()

	entry := HistoryEntry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UnixMilli(),
		Tournament: d.Tournament,
		Format:     string(d.Format),
		TeamCount:  d.TeamCount,
	}

	for _, team := range d.Teams {
		ht := HistoryTeam{TeamNum: team, Name: d.TeamNames[team], Picks: []HistoryPick{}}
		for round := 1; round <= d.Rounds; round++ {
			row, ok := d.Board[round]
			if !ok {
				continue
			}
			id, ok := row[team]
			if !ok {
				continue
			}
			pick := HistoryPick{
				ID:         id,
				Rounds:     d.Scores.Rounds(id),
				TotalValue: d.Scores.Total(id),
			}
			if p, ok := d.Players[id]; ok {
				pick.Name = p.Name
				pick.Tier = p.Tier
				pick.Odds = p.Odds
			}
			ht.TotalValue += pick.TotalValue
			ht.Picks = append(ht.Picks, pick)
		}
		entry.Teams = append(entry.Teams, ht)
	}

	return entry
}
