package evaluation

import (
	"fmt"
	"strings"

	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/tools"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FunctionSelectionGoodness scores a turn 1 when the model called exactly the
// expected function (or none, for FunctionUnknown) and 0 otherwise. Turns that
// failed score 0.
func FunctionSelectionGoodness(expected map[string]tools.Function) GoodnessFunction[string, *agents.Turn] {
	return func(input string, turn *agents.Turn, err error) float64 {
		if err != nil || turn == nil {
			return 0
		}
		want := expected[input]
		if want == tools.FunctionUnknown {
			if len(turn.FunctionCalls) == 0 {
				return 1
			}
			return 0
		}
		if len(turn.FunctionCalls) != 1 {
			return 0
		}
		if tools.ParseFunction(turn.FunctionCalls[0].Name) != want {
			return 0
		}
		return 1
	}
}

// Report renders per-input scores, one line per input, ordered by input.
func Report(scores map[string]float64) string {
	inputs := maps.Keys(scores)
	slices.Sort(inputs)
	var b strings.Builder
	for _, input := range inputs {
		fmt.Fprintf(&b, "%5.1f%%  %s\n", scores[input]*100, input)
	}
	return b.String()
}
