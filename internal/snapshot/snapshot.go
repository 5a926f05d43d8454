// Package snapshot converts the live draft aggregate to and from its
// versioned serialized form, used both for key-value persistence and
// for normalizing externally-sourced draft representations. The codec
// only ever reads a draft or replaces one wholesale; it never patches
// live state.
package snapshot

// Version is the current snapshot schema version.
const Version = 1

// Snapshot is the complete serialized representation of one draft
// state. Serialization is total: every live draft maps to exactly one
// snapshot.
type Snapshot struct {
	Version        int              `json:"version"`
	Timestamp      int64            `json:"timestamp"` // epoch milliseconds
	Tournament     string           `json:"tournament"`
	Format         string           `json:"format"`
	TeamCount      int              `json:"teamCount"`
	TeamNames      map[int]string   `json:"teamNames,omitempty"`
	Teams          []TeamSnapshot   `json:"teams"`
	Scores         map[string][]int `json:"scores,omitempty"`
	DraftedPlayers []string         `json:"draftedPlayers,omitempty"`
	CurrentPick    int              `json:"currentPick"`
	PickOrder      []int            `json:"pickOrder,omitempty"`
	IsActive       bool             `json:"isActive"`
	HasCompleted   bool             `json:"hasCompleted"`
	Rounds         int              `json:"rounds"`
	Board          []BoardCell      `json:"board,omitempty"`
}

// TeamSnapshot captures one team and its filled roster slots.
type TeamSnapshot struct {
	TeamNum int            `json:"teamNum"`
	Name    string         `json:"name"`
	Slots   []SlotSnapshot `json:"slots"`
}

// SlotSnapshot is one filled (team, tier) roster slot.
type SlotSnapshot struct {
	ID     string `json:"id"`
	Tier   int    `json:"tier"`
	Name   string `json:"name"`
	Odds   string `json:"odds"`
	Rounds []int  `json:"rounds"`
	Total  int    `json:"total"`
}

// BoardCell places one drafted player on the round-by-team board.
type BoardCell struct {
	Round   int    `json:"round"`
	TeamNum int    `json:"teamNum"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Odds    string `json:"odds"`
	Tier    int    `json:"tier"`
}
