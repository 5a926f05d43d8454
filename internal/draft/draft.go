package draft

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/golfdraft-io/golfdraft/internal/models"
)

// Team count bounds. The board layout and roster tiers are built for
// small pools, so the count is clamped rather than rejected.
const (
	MinTeams = 2
	MaxTeams = 4
)

// NumTiers is the number of roster slots per team; each team holds at
// most one player per tier.
const NumTiers = 4

// Draft is the single authoritative mutable aggregate for one draft
// session: teams, roster slots, pick order, drafted set, cursor and
// lifecycle flags. All mutation goes through its exported operations;
// every other component receives the aggregate by reference and either
// reads it or replaces it wholesale.
type Draft struct {
	ID         uuid.UUID
	Tournament string
	Format     Format
	TeamCount  int
	Teams      []int
	TeamNames  map[int]string

	// Players is the full pool keyed by slug id; playerSeq preserves
	// insertion order for stable listings.
	Players   map[string]*models.Player
	playerSeq []string

	// Slots maps teamNum -> tier -> playerID (one player per tier per
	// team). Board maps round -> teamNum -> playerID for display
	// placement. Picks is the chronological pick log.
	Slots map[int]map[int]string
	Board map[int]map[int]string
	Picks []models.Pick

	DraftedPlayers map[string]bool
	CurrentPick    int
	PickOrder      []int
	Rounds         int
	IsActive       bool
	HasCompleted   bool

	Scores *ScoreLedger

	Mu sync.Mutex

	// AnnounceFn receives transient user-facing status messages. It is
	// the only surface for business-rule rejections; they are never
	// returned as errors.
	AnnounceFn func(msg string)

	// OnChange fires after every state-mutating operation, outside the
	// lock. The owner uses it to persist and broadcast the new state.
	OnChange func()

	// OnComplete fires once when the final pick lands, outside the
	// lock, so the completed draft can be archived.
	OnComplete func()
}

// NewDraft builds a fresh aggregate with the given tournament label,
// team count (clamped) and format. The pool starts empty; seed it with
// SeedPlayers.
func NewDraft(tournament string, teamCount int, format Format) *Draft {
	d := &Draft{
		ID:             uuid.New(),
		Tournament:     tournament,
		Format:         format,
		TeamNames:      make(map[int]string),
		Players:        make(map[string]*models.Player),
		DraftedPlayers: make(map[string]bool),
		Rounds:         NumRounds,
		Scores:         NewScoreLedger(),
	}
	d.rebuildTeams(clampTeamCount(teamCount))
	d.resetLocked()
	return d
}

func clampTeamCount(n int) int {
	if n < MinTeams {
		return MinTeams
	}
	if n > MaxTeams {
		return MaxTeams
	}
	return n
}

// rebuildTeams recreates the team list 1..n, keeping any existing names
// and synthesizing defaults for new teams. Assumes lock is held.
func (d *Draft) rebuildTeams(n int) {
	d.TeamCount = n
	d.Teams = make([]int, n)
	for i := 0; i < n; i++ {
		num := i + 1
		d.Teams[i] = num
		if d.TeamNames[num] == "" {
			d.TeamNames[num] = models.DefaultTeamName(num)
		}
	}
}

// resetLocked clears the cursor, drafted set, roster, board and scores,
// recomputes the pick order and drops the lifecycle back to not
// started. Team names and the player pool survive. Assumes lock held.
func (d *Draft) resetLocked() {
	d.CurrentPick = 0
	d.DraftedPlayers = make(map[string]bool)
	d.Picks = nil
	d.Slots = make(map[int]map[int]string)
	d.Board = make(map[int]map[int]string)
	d.PickOrder = ComputeOrder(d.Format, d.Teams, d.Rounds)
	d.IsActive = false
	d.HasCompleted = false
	d.Scores.Reset()
	for _, p := range d.Players {
		p.Drafted = false
	}
}

// fire delivers the queued announcement and change/complete hooks.
// Must be called after the lock is released.
func (d *Draft) fire(msg string, changed, completed bool) {
	if msg != "" && d.AnnounceFn != nil {
		d.AnnounceFn(msg)
	}
	if changed && d.OnChange != nil {
		d.OnChange()
	}
	if completed && d.OnComplete != nil {
		d.OnComplete()
	}
}

// SetTeamCount clamps n to [MinTeams, MaxTeams], rebuilds the team
// list and performs an implicit reset: changing team count always
// discards in-progress picks.
func (d *Draft) SetTeamCount(n int) {
	d.Mu.Lock()
	d.rebuildTeams(clampTeamCount(n))
	d.resetLocked()
	count := d.TeamCount
	d.Mu.Unlock()

	d.fire(fmt.Sprintf("Team count set to %d. Choose Start Draft to begin.", count), true, false)
}

// SetFormat stores the draft format and performs the same implicit
// reset as a team count change. Unknown formats are rejected with a
// status message and no state change.
func (d *Draft) SetFormat(format Format) {
	if format != FormatSnake && format != FormatLinear {
		d.fire(fmt.Sprintf("Unknown format %q.", string(format)), false, false)
		return
	}
	d.Mu.Lock()
	d.Format = format
	d.resetLocked()
	d.Mu.Unlock()

	d.fire(fmt.Sprintf("Format set to %s. Choose Start Draft to begin.", format), true, false)
}

// StartDraft activates the draft. Called mid-draft it keeps existing
// picks and only reports who is on the clock; called on a fresh or
// reset state it recomputes the pick order and zeroes the cursor.
// A completed draft must be reset before it can start again.
func (d *Draft) StartDraft() {
	d.Mu.Lock()
	if d.HasCompleted {
		d.Mu.Unlock()
		d.fire("Draft complete. Reset the board to start a new draft.", false, false)
		return
	}
	if d.IsActive && d.CurrentPick > 0 {
		team := d.currentTeamLocked()
		d.Mu.Unlock()
		d.fire(fmt.Sprintf("Draft already in progress. %s is on the clock.", d.TeamName(team)), false, false)
		return
	}
	d.CurrentPick = 0
	d.DraftedPlayers = make(map[string]bool)
	d.Picks = nil
	d.Slots = make(map[int]map[int]string)
	d.Board = make(map[int]map[int]string)
	for _, p := range d.Players {
		p.Drafted = false
	}
	d.PickOrder = ComputeOrder(d.Format, d.Teams, d.Rounds)
	d.IsActive = true
	d.HasCompleted = false
	format := d.Format
	team := d.currentTeamLocked()
	d.Mu.Unlock()

	d.fire(fmt.Sprintf("%s draft started. %s is on the clock.", format, d.TeamName(team)), true, false)
}

// SubmitPick assigns the identified player to the team on the clock.
// Every rejection (draft inactive, unknown player, duplicate pick,
// tier already filled) is a no-op reported through AnnounceFn. On the
// final pick the draft transitions to completed and OnComplete fires.
func (d *Draft) SubmitPick(playerID string) {
	d.Mu.Lock()
	if !d.IsActive {
		d.Mu.Unlock()
		d.fire("Start the draft first.", false, false)
		return
	}
	p, ok := d.Players[playerID]
	if !ok {
		d.Mu.Unlock()
		d.fire("Player not found.", false, false)
		return
	}
	if d.DraftedPlayers[playerID] {
		name := p.Name
		d.Mu.Unlock()
		d.fire(fmt.Sprintf("%s already drafted.", name), false, false)
		return
	}

	team := d.currentTeamLocked()
	round := d.currentRoundLocked()
	if d.slotLocked(team, p.Tier) != "" {
		d.Mu.Unlock()
		d.fire(fmt.Sprintf("Team %d already has a Tier %d pick.", team, p.Tier), false, false)
		return
	}

	if d.Slots[team] == nil {
		d.Slots[team] = make(map[int]string)
	}
	d.Slots[team][p.Tier] = playerID
	if d.Board[round] == nil {
		d.Board[round] = make(map[int]string)
	}
	d.Board[round][team] = playerID
	d.Picks = append(d.Picks, models.Pick{
		ID:       uuid.New(),
		PlayerID: playerID,
		TeamNum:  team,
		Round:    round,
		Tier:     p.Tier,
	})
	d.DraftedPlayers[playerID] = true
	p.Drafted = true
	d.CurrentPick++

	if d.CurrentPick >= len(d.PickOrder) {
		d.IsActive = false
		d.HasCompleted = true
		d.Mu.Unlock()
		d.fire("Draft complete.", true, true)
		return
	}
	next := d.currentTeamLocked()
	d.Mu.Unlock()
	d.fire(fmt.Sprintf("%s is on the clock.", d.TeamName(next)), true, false)
}

// ResetBoard clears picks, scores, cursor and lifecycle flags and
// recomputes the pick order. Team names and the player pool survive.
// Calling it twice in a row is the same as calling it once.
func (d *Draft) ResetBoard() {
	d.Mu.Lock()
	d.resetLocked()
	d.Mu.Unlock()

	d.fire("Draft reset. Choose Start Draft to begin.", true, false)
}

// RenameTeam trims and collapses whitespace in the new name; an empty
// result falls back to the synthesized default. Renaming never touches
// the pick order or drafted state.
func (d *Draft) RenameTeam(teamNum int, rawName string) {
	d.Mu.Lock()
	if teamNum < 1 || teamNum > d.TeamCount {
		d.Mu.Unlock()
		d.fire(fmt.Sprintf("Team %d not found.", teamNum), false, false)
		return
	}
	name := strings.Join(strings.Fields(rawName), " ")
	if name == "" {
		name = models.DefaultTeamName(teamNum)
	}
	d.TeamNames[teamNum] = name
	d.Mu.Unlock()

	d.fire("", true, false)
}

// AddPlayer adds a golfer to the pool under a slug id derived from the
// name, suffixing -1, -2, ... on collision. Returns the assigned id,
// or "" if the input was rejected.
func (d *Draft) AddPlayer(name, odds string, tier int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		d.fire("Enter a golfer name.", false, false)
		return ""
	}
	if tier < 1 || tier > NumTiers {
		d.fire("Choose a valid tier.", false, false)
		return ""
	}
	if strings.TrimSpace(odds) == "" {
		odds = "N/A"
	}

	d.Mu.Lock()
	base := slugify(name)
	id := base
	for i := 1; ; i++ {
		if _, exists := d.Players[id]; !exists {
			break
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
	d.Players[id] = &models.Player{ID: id, Name: name, Odds: odds, Tier: tier}
	d.playerSeq = append(d.playerSeq, id)
	d.Mu.Unlock()

	d.fire(fmt.Sprintf("%s added to Tier %d.", name, tier), true, false)
	return id
}

// SeedPlayers loads an initial pool, keeping the given ids verbatim.
// Players whose id is already present are skipped.
func (d *Draft) SeedPlayers(players []models.Player) {
	d.Mu.Lock()
	for _, p := range players {
		if _, exists := d.Players[p.ID]; exists || p.ID == "" {
			continue
		}
		cp := p
		d.Players[p.ID] = &cp
		d.playerSeq = append(d.playerSeq, p.ID)
	}
	d.Mu.Unlock()

	d.fire("", true, false)
}

// InsertPlayer adds a player to the pool keeping insertion order,
// without firing hooks. Assumes the lock is already held; used when a
// decoded snapshot revives drafted players.
func (d *Draft) InsertPlayer(p models.Player) {
	if p.ID == "" {
		return
	}
	if _, exists := d.Players[p.ID]; exists {
		return
	}
	cp := p
	d.Players[p.ID] = &cp
	d.playerSeq = append(d.playerSeq, p.ID)
}

// SetRoundScore writes one round score for a player, coercing invalid
// input to 0 per the ledger contract.
func (d *Draft) SetRoundScore(playerID string, idx int, raw string) {
	d.Mu.Lock()
	d.Scores.SetRound(playerID, idx, raw)
	d.Mu.Unlock()

	d.fire("", true, false)
}

// ImportScores ingests "id,r1,r2,r3,r4" score lines separated by ";".
func (d *Draft) ImportScores(text string) {
	d.Mu.Lock()
	updated := d.Scores.ApplyScoreLines(text)
	d.Mu.Unlock()

	if len(updated) == 0 {
		return
	}
	d.fire(fmt.Sprintf("Scores updated for %d player(s).", len(updated)), true, false)
}

// CurrentTeam returns the team on the clock, or the first team when
// the order is empty or exhausted.
func (d *Draft) CurrentTeam() int {
	d.Mu.Lock()
	defer d.Mu.Unlock()
	return d.currentTeamLocked()
}

func (d *Draft) currentTeamLocked() int {
	if d.CurrentPick >= 0 && d.CurrentPick < len(d.PickOrder) {
		return d.PickOrder[d.CurrentPick]
	}
	if len(d.Teams) > 0 {
		return d.Teams[0]
	}
	return 1
}

// CurrentRound is the 1-based round the cursor sits in. Display only;
// roster slots are constrained by tier, not round.
func (d *Draft) CurrentRound() int {
	d.Mu.Lock()
	defer d.Mu.Unlock()
	return d.currentRoundLocked()
}

func (d *Draft) currentRoundLocked() int {
	if d.TeamCount == 0 {
		return 1
	}
	return d.CurrentPick/d.TeamCount + 1
}

// TeamName returns the display name for a team number.
func (d *Draft) TeamName(teamNum int) string {
	d.Mu.Lock()
	defer d.Mu.Unlock()
	if name := d.TeamNames[teamNum]; name != "" {
		return name
	}
	return models.DefaultTeamName(teamNum)
}

// TeamTotal sums the scores of every player in a team's roster slots.
func (d *Draft) TeamTotal(teamNum int) int {
	d.Mu.Lock()
	defer d.Mu.Unlock()
	sum := 0
	for tier := 1; tier <= NumTiers; tier++ {
		if id := d.slotLocked(teamNum, tier); id != "" {
			sum += d.Scores.Total(id)
		}
	}
	return sum
}

func (d *Draft) slotLocked(teamNum, tier int) string {
	if row, ok := d.Slots[teamNum]; ok {
		return row[tier]
	}
	return ""
}

// PlayerList returns a copy of the pool in insertion order.
func (d *Draft) PlayerList() []models.Player {
	d.Mu.Lock()
	defer d.Mu.Unlock()
	out := make([]models.Player, 0, len(d.playerSeq))
	for _, id := range d.playerSeq {
		if p, ok := d.Players[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}
