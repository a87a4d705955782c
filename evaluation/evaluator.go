package evaluation

import (
	"context"
	"fmt"

	"github.com/samber/mo"
)

// GoodnessFunction scores one output. err is the error the tester returned
// for the input, if any.
type GoodnessFunction[Input, Output any] func(input Input, output Output, err error) float64

type Options[Input, Output any] struct {
	GoodnessFunction GoodnessFunction[Input, Output]
	Repetitions      int
}

type Tester[Input, Output any] interface {
	Test(ctx context.Context, test Input) (Output, error)
}

type Evaluator[Input, Output any] struct {
	options *Options[Input, Output]
	tester  Tester[Input, Output]
}

func NewEvaluator[Input, Output any](tester Tester[Input, Output], options *Options[Input, Output]) *Evaluator[Input, Output] {
	if options.Repetitions < 1 {
		options.Repetitions = 1
	}
	return &Evaluator[Input, Output]{
		options: options,
		tester:  tester,
	}
}

// Evaluate runs the test pack Repetitions times in parallel and returns the
// mean score of every input.
func (e *Evaluator[Input, Output]) Evaluate(ctx context.Context, testPack []Input) ([]float64, error) {
	channels := make([]chan mo.Result[[]float64], e.options.Repetitions)

	for i := 0; i < e.options.Repetitions; i++ {
		channels[i] = make(chan mo.Result[[]float64], 1)
		go func(i int) {
			channels[i] <- mo.TupleToResult(e.evaluate(ctx, testPack))
		}(i)
	}

	responses := make([][]float64, e.options.Repetitions)
	for i := 0; i < e.options.Repetitions; i++ {
		report, err := (<-channels[i]).Get()
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", i, err)
		}
		responses[i] = report
	}

	report := make([]float64, len(testPack))
	for i := 0; i < len(testPack); i++ {
		sum := 0.0
		for j := 0; j < e.options.Repetitions; j++ {
			sum += responses[j][i]
		}
		report[i] = sum / float64(e.options.Repetitions)
	}

	return report, nil
}

func (e *Evaluator[Input, Output]) evaluate(ctx context.Context, testPack []Input) ([]float64, error) {
	responses, err := e.test(ctx, testPack)
	if err != nil {
		return nil, fmt.Errorf("failed to test: %w", err)
	}

	report := make([]float64, len(testPack))
	for i, response := range responses {
		res, resErr := response.Get()
		report[i] = e.options.GoodnessFunction(testPack[i], res, resErr)
	}

	return report, nil
}

func (e *Evaluator[Input, Output]) test(ctx context.Context, testPack []Input) ([]mo.Result[Output], error) {
	responses := make([]mo.Result[Output], len(testPack))

	for i, test := range testPack {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		responses[i] = mo.TupleToResult(e.tester.Test(ctx, test))
	}

	return responses, nil
}
