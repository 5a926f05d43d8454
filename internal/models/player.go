package models

// Player is one draftable golfer in the pool. The ID is a stable slug
// derived from the display name; collisions are disambiguated with a
// numeric suffix at add time.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Odds    string `json:"odds"` // opaque display string, e.g. "+900"
	Tier    int    `json:"tier"` // 1..4
	Drafted bool   `json:"drafted"`
}
