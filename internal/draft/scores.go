package draft

import (
	"fmt"
	"strconv"
	"strings"
)

// NumRounds is the fixed number of scored rounds per player.
const NumRounds = 4

// ScoreLedger tracks per-player round scores. Entries are materialized
// lazily on first access and always hold exactly NumRounds values.
// Scores are par-relative: 0 means even.
type ScoreLedger struct {
	rounds map[string][]int
}

func NewScoreLedger() *ScoreLedger {
	return &ScoreLedger{rounds: make(map[string][]int)}
}

// ensure returns the backing round array for a player, creating a
// zeroed one if absent and padding short entries up to NumRounds.
func (l *ScoreLedger) ensure(playerID string) []int {
	arr, ok := l.rounds[playerID]
	if !ok {
		arr = make([]int, NumRounds)
		l.rounds[playerID] = arr
		return arr
	}
	for len(arr) < NumRounds {
		arr = append(arr, 0)
	}
	l.rounds[playerID] = arr
	return arr
}

// Rounds returns a copy of the player's four round scores.
func (l *ScoreLedger) Rounds(playerID string) []int {
	arr := l.ensure(playerID)
	out := make([]int, NumRounds)
	copy(out, arr)
	return out
}

// SetRound parses raw as a number and writes it into the given round
// index. Non-numeric input coerces to 0; out-of-range indexes are
// ignored. Any integer is accepted, no clamping.
func (l *ScoreLedger) SetRound(playerID string, idx int, raw string) {
	if idx < 0 || idx >= NumRounds {
		return
	}
	arr := l.ensure(playerID)
	arr[idx] = parseScore(raw)
}

// SetRoundValue writes an already-parsed score into a round index.
func (l *ScoreLedger) SetRoundValue(playerID string, idx, value int) {
	if idx < 0 || idx >= NumRounds {
		return
	}
	arr := l.ensure(playerID)
	arr[idx] = value
}

// Total is the sum of the player's four round scores.
func (l *ScoreLedger) Total(playerID string) int {
	sum := 0
	for _, v := range l.ensure(playerID) {
		sum += v
	}
	return sum
}

// All returns a copy of every materialized entry, for serialization.
func (l *ScoreLedger) All() map[string][]int {
	out := make(map[string][]int, len(l.rounds))
	for id := range l.rounds {
		out[id] = l.Rounds(id)
	}
	return out
}

// Reset drops every entry.
func (l *ScoreLedger) Reset() {
	l.rounds = make(map[string][]int)
}

// ApplyScoreLines ingests score updates in the compact text form
// "player-id,r1,r2,r3,r4" with multiple players separated by ";",
// e.g. "jon-rahm,-2,-1,0,+3". Missing rounds default to 0. Returns
// the ids that received updates.
func (l *ScoreLedger) ApplyScoreLines(text string) []string {
	var updated []string
	for _, pair := range strings.Split(text, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		id := strings.TrimSpace(parts[0])
		if id == "" {
			continue
		}
		for idx := 0; idx < NumRounds; idx++ {
			val := 0
			if idx+1 < len(parts) {
				val = parseScore(strings.TrimSpace(parts[idx+1]))
			}
			l.SetRoundValue(id, idx, val)
		}
		updated = append(updated, id)
	}
	return updated
}

// parseScore coerces raw input to an integer score; anything that does
// not parse counts as 0. A leading "+" is accepted ("+3" -> 3).
func parseScore(raw string) int {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "+")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// FormatPar renders a score in golf par notation: 0 is "E", positive
// values carry an explicit "+".
func FormatPar(n int) string {
	if n == 0 {
		return "E"
	}
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return strconv.Itoa(n)
}
