// internal/snapshot/codec_test.go
package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfdraft-io/golfdraft/internal/draft"
)

// buildMidDraft produces a two-team draft with four picks in and some
// scores recorded, a representative in-progress state.
func buildMidDraft(t *testing.T) *draft.Draft {
	t.Helper()
	d := draft.NewDraft("Riviera Invitational", 2, draft.FormatSnake)
	d.SeedPlayers(draft.DefaultPool())
	d.RenameTeam(1, "Dawn Patrol")
	d.StartDraft()

	// Snake order for two teams: 1, 2, 2, 1, ...
	d.SubmitPick("jon-rahm")
	d.SubmitPick("rory-mcilroy")
	d.SubmitPick("ludvig-aberg")
	d.SubmitPick("brooks-koepka")

	d.SetRoundScore("jon-rahm", 0, "-2")
	d.SetRoundScore("jon-rahm", 1, "+1")
	d.SetRoundScore("rory-mcilroy", 0, "-5")
	return d
}

func TestEncodeCapturesFullState(t *testing.T) {
	d := buildMidDraft(t)

	snap := Encode(d)

	assert.Equal(t, Version, snap.Version)
	assert.NotZero(t, snap.Timestamp)
	assert.Equal(t, "Riviera Invitational", snap.Tournament)
	assert.Equal(t, "Snake", snap.Format)
	assert.Equal(t, 2, snap.TeamCount)
	assert.Equal(t, "Dawn Patrol", snap.TeamNames[1])
	assert.Equal(t, 4, snap.CurrentPick)
	assert.True(t, snap.IsActive)
	assert.False(t, snap.HasCompleted)
	assert.Equal(t, []string{"brooks-koepka", "jon-rahm", "ludvig-aberg", "rory-mcilroy"}, snap.DraftedPlayers)
	assert.Len(t, snap.PickOrder, 2*draft.NumRounds)
	assert.Len(t, snap.Board, 4)

	require.Len(t, snap.Teams, 2)
	team1 := snap.Teams[0]
	require.Len(t, team1.Slots, 2)
	assert.Equal(t, "jon-rahm", team1.Slots[0].ID)
	assert.Equal(t, 1, team1.Slots[0].Tier)
	assert.Equal(t, "Jon Rahm", team1.Slots[0].Name)
	assert.Equal(t, []int{-2, 1, 0, 0}, team1.Slots[0].Rounds)
	assert.Equal(t, -1, team1.Slots[0].Total)
}

func TestDecodeRestoresEncodedState(t *testing.T) {
	d := buildMidDraft(t)
	snap := Encode(d)

	restored, err := Decode(snap)
	require.NoError(t, err)

	assert.Equal(t, "Riviera Invitational", restored.Tournament)
	assert.Equal(t, draft.FormatSnake, restored.Format)
	assert.Equal(t, 2, restored.TeamCount)
	assert.Equal(t, "Dawn Patrol", restored.TeamName(1))
	assert.Equal(t, "Team 2", restored.TeamName(2))
	assert.Equal(t, 4, restored.CurrentPick)
	assert.True(t, restored.IsActive)
	assert.False(t, restored.HasCompleted)
	assert.Equal(t, d.PickOrder, restored.PickOrder)

	assert.Equal(t, "jon-rahm", restored.Slots[1][1])
	assert.Equal(t, "brooks-koepka", restored.Slots[1][2])
	assert.Equal(t, "rory-mcilroy", restored.Slots[2][1])
	assert.Equal(t, "ludvig-aberg", restored.Slots[2][2])
	assert.Equal(t, "jon-rahm", restored.Board[1][1])
	assert.Equal(t, "rory-mcilroy", restored.Board[1][2])

	assert.True(t, restored.DraftedPlayers["jon-rahm"])
	assert.True(t, restored.Players["jon-rahm"].Drafted)
	assert.Equal(t, []int{-2, 1, 0, 0}, restored.Scores.Rounds("jon-rahm"))
	assert.Equal(t, -5, restored.Scores.Total("rory-mcilroy"))
	assert.Equal(t, -1, restored.TeamTotal(1))

	// The rebuilt pick log follows the pick order chronologically.
	require.Len(t, restored.Picks, 4)
	assert.Equal(t, "jon-rahm", restored.Picks[0].PlayerID)
	assert.Equal(t, 1, restored.Picks[0].TeamNum)
	assert.Equal(t, "ludvig-aberg", restored.Picks[2].PlayerID)
	assert.Equal(t, 2, restored.Picks[2].TeamNum)
}

func TestDecodedDraftStaysPlayable(t *testing.T) {
	d := buildMidDraft(t)

	restored, err := Decode(Encode(d))
	require.NoError(t, err)

	// Team 1 is on the clock next and can still fill an open tier.
	assert.Equal(t, 1, restored.CurrentTeam())
	id := restored.AddPlayer("Late Entry", "+6000", 3)
	require.NotEmpty(t, id)

	restored.SubmitPick(id)

	assert.Equal(t, 5, restored.CurrentPick)
	assert.Equal(t, id, restored.Slots[1][3])
}

func TestDecodeRejectsMissingTeams(t *testing.T) {
	_, err := Decode(Snapshot{Version: Version})

	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	teams := []TeamSnapshot{{TeamNum: 1}, {TeamNum: 2}}

	_, err := Decode(Snapshot{Version: 0, Teams: teams})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = Decode(Snapshot{Version: Version + 1, Teams: teams})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestDecodeJSONRejectsCorruptPayload(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"version": 1, "teams": [`))

	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestDecodeMinimalSnapshotDefaultsSensibly(t *testing.T) {
	snap := Snapshot{
		Version: Version,
		Teams:   []TeamSnapshot{{TeamNum: 1}, {TeamNum: 2}, {TeamNum: 3}},
	}

	d, err := Decode(snap)
	require.NoError(t, err)

	assert.Equal(t, 3, d.TeamCount)
	assert.Equal(t, draft.FormatSnake, d.Format)
	assert.Equal(t, "Team 1", d.TeamName(1))
	assert.Equal(t, 0, d.CurrentPick)
	assert.Len(t, d.PickOrder, 3*draft.NumRounds)
	assert.False(t, d.IsActive)
}

func TestDecodeRevivesDraftedPlayers(t *testing.T) {
	snap := Snapshot{
		Version:   Version,
		Format:    "Snake",
		TeamCount: 2,
		Teams: []TeamSnapshot{
			{TeamNum: 1, Slots: []SlotSnapshot{{ID: "phantom", Tier: 2, Name: "Phantom Golfer", Odds: "+7500", Rounds: []int{-1, 0, 0, 0}}}},
			{TeamNum: 2},
		},
		CurrentPick: 1,
	}

	d, err := Decode(snap)
	require.NoError(t, err)

	p, ok := d.Players["phantom"]
	require.True(t, ok)
	assert.Equal(t, "Phantom Golfer", p.Name)
	assert.Equal(t, "+7500", p.Odds)
	assert.Equal(t, 2, p.Tier)
	assert.True(t, p.Drafted)
	assert.True(t, d.DraftedPlayers["phantom"])
	assert.Equal(t, -1, d.Scores.Total("phantom"))
}

func TestDecodeClampsNegativeCursor(t *testing.T) {
	snap := Snapshot{
		Version:     Version,
		Teams:       []TeamSnapshot{{TeamNum: 1}, {TeamNum: 2}},
		CurrentPick: -3,
	}

	d, err := Decode(snap)
	require.NoError(t, err)

	assert.Equal(t, 0, d.CurrentPick)
}

func TestDecodeClampsOversizedCursor(t *testing.T) {
	snap := Snapshot{
		Version:     Version,
		Teams:       []TeamSnapshot{{TeamNum: 1}, {TeamNum: 2}},
		CurrentPick: 999,
	}

	d, err := Decode(snap)
	require.NoError(t, err)

	assert.Equal(t, len(d.PickOrder), d.CurrentPick)
}
