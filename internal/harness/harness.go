package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/metrics"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/store"
	"github.com/roach88/researchhub/internal/testutil"
	"github.com/roach88/researchhub/internal/tracker"
)

// Harness executes one scenario against its own tracker.
type Harness struct {
	tracker *tracker.Store
	clock   *testutil.FixedClock
	metrics *metrics.Recorder
	seq     int64
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory slot. Setup steps must all
// succeed; a failing setup step aborts the run with an error. Flow steps
// are checked against their expect clause. A flow step without one must
// complete with outcome ok.
func Run(scenario *Scenario) (*Result, error) {
	now := testutil.DefaultTime
	if scenario.Today != "" {
		day, err := time.Parse(model.DateLayout, scenario.Today)
		if err != nil {
			return nil, fmt.Errorf("invalid today %q: %w", scenario.Today, err)
		}
		now = day.Add(9*time.Hour + 30*time.Minute)
	}

	h := &Harness{
		clock:   testutil.NewFixedClock(now),
		metrics: metrics.New(),
	}
	h.tracker = tracker.New(store.NewMemory(), ids.NewSequenceGenerator(),
		tracker.WithClock(h.clock.Now),
		tracker.WithLogger(slog.New(slog.DiscardHandler)),
		tracker.WithMetrics(h.metrics),
	)

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Setup {
		_, err := h.execute(ctx, step.Op, step.Args, result)
		if errors.Is(err, ErrBadArgs) {
			return nil, fmt.Errorf("setup step %d (%s): %w", i, step.Op, err)
		}
		if err != nil {
			return nil, fmt.Errorf("setup step %d (%s) failed: %w", i, step.Op, err)
		}
	}

	for i, step := range scenario.Flow {
		got, err := h.execute(ctx, step.Op, step.Args, result)
		if errors.Is(err, ErrBadArgs) {
			return nil, fmt.Errorf("flow step %d (%s): %w", i, step.Op, err)
		}
		for _, msg := range checkExpect(i, step, got, err) {
			result.AddError(msg)
		}
	}

	doc, err := h.tracker.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load final document: %w", err)
	}
	state, err := normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot final document: %w", err)
	}
	if m, ok := state.(map[string]any); ok {
		result.State = m
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// execute traces one call and its completion. The returned value is the
// operation result in generic JSON form.
func (h *Harness) execute(ctx context.Context, op string, args map[string]any, result *Result) (any, error) {
	fn, ok := Ops[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", ErrBadArgs, op)
	}

	h.seq++
	result.AddInvocationTrace(op, args, h.seq)

	out, err := fn(ctx, h.tracker, args)
	if errors.Is(err, ErrBadArgs) {
		return nil, err
	}

	h.seq++
	outcome := metrics.Classify(err)
	if err != nil {
		result.AddCompletionTrace(op, outcome, nil, err.Error(), h.seq)
		return nil, err
	}

	value, nerr := normalize(out)
	if nerr != nil {
		return nil, fmt.Errorf("%w: result of %s: %v", ErrBadArgs, op, nerr)
	}
	result.AddCompletionTrace(op, outcome, value, "", h.seq)
	return value, nil
}

func checkExpect(index int, step FlowStep, got any, err error) []string {
	want := metrics.ResultOK
	if step.Expect != nil {
		want = step.Expect.Outcome
	}
	outcome := metrics.Classify(err)
	if outcome != want {
		msg := fmt.Sprintf("flow[%d] %s: expected outcome %s, got %s", index, step.Op, want, outcome)
		if err != nil {
			msg += ": " + err.Error()
		}
		return []string{msg}
	}
	if step.Expect == nil || len(step.Expect.Result) == 0 {
		return nil
	}

	actual, _ := got.(map[string]any)
	var errs []string
	for _, field := range sortedKeys(step.Expect.Result) {
		if !valuesEqual(actual[field], step.Expect.Result[field]) {
			errs = append(errs, fmt.Sprintf("flow[%d] %s: result.%s = %v, want %v",
				index, step.Op, field, actual[field], step.Expect.Result[field]))
		}
	}
	return errs
}

// normalize converts v to its generic JSON form so values decoded from
// YAML and values produced by the tracker compare equal.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
