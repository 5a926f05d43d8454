package models

import "fmt"

// Team is identified by its number in [1, teamCount]. Total score is
// derived from roster slots, never stored.
type Team struct {
	Num  int    `json:"teamNum"`
	Name string `json:"name"`
}

// DefaultTeamName returns the synthesized name used when a team has no
// user-provided override.
func DefaultTeamName(num int) string {
	return fmt.Sprintf("Team %d", num)
}
