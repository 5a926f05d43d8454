// internal/draft/pick_order_test.go
package draft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundOrderSnakeReversesOddRounds(t *testing.T) {
	teams := []int{1, 2, 3}

	assert.Equal(t, []int{1, 2, 3}, RoundOrder(FormatSnake, teams, 0))
	assert.Equal(t, []int{3, 2, 1}, RoundOrder(FormatSnake, teams, 1))
	assert.Equal(t, []int{1, 2, 3}, RoundOrder(FormatSnake, teams, 2))
	assert.Equal(t, []int{3, 2, 1}, RoundOrder(FormatSnake, teams, 3))
}

func TestRoundOrderLinearNeverReverses(t *testing.T) {
	teams := []int{1, 2, 3}

	for round := 0; round < NumRounds; round++ {
		assert.Equal(t, []int{1, 2, 3}, RoundOrder(FormatLinear, teams, round))
	}
}

func TestRoundOrderDoesNotMutateInput(t *testing.T) {
	teams := []int{1, 2, 3}

	RoundOrder(FormatSnake, teams, 1)

	assert.Equal(t, []int{1, 2, 3}, teams)
}

func TestComputeOrderLength(t *testing.T) {
	for _, format := range []Format{FormatSnake, FormatLinear} {
		for n := MinTeams; n <= MaxTeams; n++ {
			t.Run(fmt.Sprintf("%s_%d_teams", format, n), func(t *testing.T) {
				teams := make([]int, n)
				for i := range teams {
					teams[i] = i + 1
				}
				order := ComputeOrder(format, teams, NumRounds)
				assert.Len(t, order, n*NumRounds)
			})
		}
	}
}

func TestComputeOrderSnakeSequence(t *testing.T) {
	order := ComputeOrder(FormatSnake, []int{1, 2, 3}, NumRounds)

	assert.Equal(t, []int{1, 2, 3, 3, 2, 1, 1, 2, 3, 3, 2, 1}, order)
}

func TestComputeOrderLinearSequence(t *testing.T) {
	order := ComputeOrder(FormatLinear, []int{1, 2}, NumRounds)

	assert.Equal(t, []int{1, 2, 1, 2, 1, 2, 1, 2}, order)
}
