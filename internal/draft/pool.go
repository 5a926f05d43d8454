package draft

import "github.com/golfdraft-io/golfdraft/internal/models"

// DefaultPool returns the seeded golfer roster used when no pool has
// been configured, mirroring what the remote authority serves for a
// fresh draft.
func DefaultPool() []models.Player {
	return []models.Player{
		{ID: "jon-rahm", Name: "Jon Rahm", Odds: "+900", Tier: 1},
		{ID: "rory-mcilroy", Name: "Rory McIlroy", Odds: "+650", Tier: 1},
		{ID: "scottie-scheffler", Name: "Scottie Scheffler", Odds: "+450", Tier: 1},
		{ID: "ludvig-aberg", Name: "Ludvig Aberg", Odds: "+1800", Tier: 2},
		{ID: "brooks-koepka", Name: "Brooks Koepka", Odds: "+1600", Tier: 2},
		{ID: "tommy-fleetwood", Name: "Tommy Fleetwood", Odds: "+2800", Tier: 3},
		{ID: "max-homa", Name: "Max Homa", Odds: "+3000", Tier: 3},
		{ID: "wyndham-clark", Name: "Wyndham Clark", Odds: "+4500", Tier: 4},
		{ID: "collin-morikawa", Name: "Collin Morikawa", Odds: "+4000", Tier: 4},
	}
}
