package models

import "github.com/google/uuid"

// Pick assigns one player to one (team, round, tier) cell of the draft.
// Picks are irrevocable once made; only a full board reset removes them.
type Pick struct {
	ID       uuid.UUID `json:"id"`
	PlayerID string    `json:"playerId"`
	TeamNum  int       `json:"teamNum"`
	Round    int       `json:"round"`
	Tier     int       `json:"tier"`
}
