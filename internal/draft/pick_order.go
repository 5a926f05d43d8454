package draft

// Format selects how the pick order runs across rounds.
type Format string

const (
	// FormatSnake reverses the team order every other round.
	FormatSnake Format = "Snake"
	// FormatLinear repeats the same forward order every round.
	FormatLinear Format = "Linear"
)

// RoundOrder returns the team sequence for a single round index
// (0-based). Snake reverses odd round indexes; everything else is the
// forward order.
func RoundOrder(format Format, teams []int, roundIdx int) []int {
	out := make([]int, len(teams))
	copy(out, teams)
	if format == FormatSnake && roundIdx%2 == 1 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// ComputeOrder builds the flat pick order for the whole draft: rounds
// consecutive round sequences, length rounds*len(teams). Pure function
// of its inputs; callers recompute rather than patch when the format or
// team list changes.
func ComputeOrder(format Format, teams []int, rounds int) []int {
	order := make([]int, 0, rounds*len(teams))
	for r := 0; r < rounds; r++ {
		order = append(order, RoundOrder(format, teams, r)...)
	}
	return order
}
