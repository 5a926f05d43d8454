// internal/draft/scores_test.go
package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLedgerDefaultsToEvenPar(t *testing.T) {
	l := NewScoreLedger()

	assert.Equal(t, []int{0, 0, 0, 0}, l.Rounds("jon-rahm"))
	assert.Equal(t, 0, l.Total("jon-rahm"))
}

func TestScoreLedgerSetRoundParsesRawInput(t *testing.T) {
	l := NewScoreLedger()

	l.SetRound("jon-rahm", 0, "-2")
	l.SetRound("jon-rahm", 1, "+3")
	l.SetRound("jon-rahm", 2, "0")
	l.SetRound("jon-rahm", 3, "birdies") // non-numeric coerces to 0

	assert.Equal(t, []int{-2, 3, 0, 0}, l.Rounds("jon-rahm"))
	assert.Equal(t, 1, l.Total("jon-rahm"))
}

func TestScoreLedgerIgnoresOutOfRangeRounds(t *testing.T) {
	l := NewScoreLedger()

	l.SetRound("jon-rahm", -1, "5")
	l.SetRound("jon-rahm", NumRounds, "5")

	assert.Equal(t, []int{0, 0, 0, 0}, l.Rounds("jon-rahm"))
}

func TestScoreLedgerLastWriteWins(t *testing.T) {
	l := NewScoreLedger()

	l.SetRoundValue("jon-rahm", 2, -4)
	l.SetRoundValue("jon-rahm", 2, 1)

	assert.Equal(t, 1, l.Rounds("jon-rahm")[2])
}

func TestScoreLedgerRoundsReturnsCopy(t *testing.T) {
	l := NewScoreLedger()
	l.SetRoundValue("jon-rahm", 0, -2)

	rounds := l.Rounds("jon-rahm")
	rounds[0] = 99

	assert.Equal(t, -2, l.Rounds("jon-rahm")[0])
}

func TestScoreLedgerApplyScoreLines(t *testing.T) {
	l := NewScoreLedger()

	updated := l.ApplyScoreLines("jon-rahm,-2,-1,0,+3; rory-mcilroy,1 ;;")

	assert.ElementsMatch(t, []string{"jon-rahm", "rory-mcilroy"}, updated)
	assert.Equal(t, []int{-2, -1, 0, 3}, l.Rounds("jon-rahm"))
	// Missing rounds default to 0.
	assert.Equal(t, []int{1, 0, 0, 0}, l.Rounds("rory-mcilroy"))
}

func TestScoreLedgerApplyScoreLinesEmptyInput(t *testing.T) {
	l := NewScoreLedger()

	assert.Empty(t, l.ApplyScoreLines(""))
	assert.Empty(t, l.ApplyScoreLines(" ; ; "))
}

func TestScoreLedgerReset(t *testing.T) {
	l := NewScoreLedger()
	l.SetRoundValue("jon-rahm", 0, -5)

	l.Reset()

	assert.Equal(t, 0, l.Total("jon-rahm"))
	assert.Empty(t, l.All()["rory-mcilroy"])
}

func TestFormatPar(t *testing.T) {
	assert.Equal(t, "E", FormatPar(0))
	assert.Equal(t, "+3", FormatPar(3))
	assert.Equal(t, "-4", FormatPar(-4))
}
