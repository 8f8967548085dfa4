package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, event := range e.Trace {
			if event.Type == EventInvocation {
				fmt.Fprintf(&buf, "  [%d] %s %v\n", i+1, event.Op, event.Args)
			}
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the result and returns
// the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %s", i, err.Error()))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		return assertTraceContains(result.Trace, a)
	case AssertTraceOrder:
		return assertTraceOrder(result.Trace, a)
	case AssertTraceCount:
		return assertTraceCount(result.Trace, a)
	case AssertFinalState:
		return assertFinalState(result.State, a)
	case AssertFinalCount:
		return assertFinalCount(result.State, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertTraceContains checks if the trace contains an invocation matching
// the specified op and args (subset match).
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Type == EventInvocation && event.Op == a.Op && matchSubset(event.Args, a.Args) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("op %s with args %v", a.Op, a.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that ops were first invoked in the given order.
// Intervening calls are allowed.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if event.Type != EventInvocation {
			continue
		}
		if _, seen := positions[event.Op]; !seen {
			positions[event.Op] = i + 1
		}
	}

	for _, op := range a.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", a.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Ops); i++ {
		prev, curr := a.Ops[i-1], a.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", a.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks if the op was invoked exactly Count times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == EventInvocation && event.Op == a.Op {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState selects exactly one entity of a.Kind matching a.Where
// and checks a.Expect against it.
func assertFinalState(state map[string]any, a Assertion) error {
	var matches []map[string]any
	for _, entity := range entities(state, a.Kind) {
		if matchSubset(entity, a.Where) {
			matches = append(matches, entity)
		}
	}
	if len(matches) != 1 {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one %s where %v", a.Kind, a.Where),
			Actual:   fmt.Sprintf("%d matches", len(matches)),
		}
	}

	entity := matches[0]
	for _, field := range sortedKeys(a.Expect) {
		if !valuesEqual(entity[field], a.Expect[field]) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s.%s = %v", a.Kind, field, a.Expect[field]),
				Actual:   fmt.Sprintf("%v", entity[field]),
			}
		}
	}
	return nil
}

// assertFinalCount checks the number of entities in a collection.
func assertFinalCount(state map[string]any, a Assertion) error {
	if n := len(entities(state, a.Kind)); n != a.Count {
		return &AssertionError{
			Type:     AssertFinalCount,
			Expected: fmt.Sprintf("%d %s", a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d %s", n, a.Kind),
		}
	}
	return nil
}

func entities(state map[string]any, kind string) []map[string]any {
	list, _ := state[kind].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// matchSubset reports whether every key in want is present in got with an
// equal value.
func matchSubset(got, want map[string]any) bool {
	for k, v := range want {
		actual, ok := got[k]
		if !ok || !valuesEqual(actual, v) {
			return false
		}
	}
	return true
}

// valuesEqual compares after JSON normalization, so YAML ints and JSON
// float64s are equal.
func valuesEqual(a, b any) bool {
	na, err := normalize(a)
	if err != nil {
		return false
	}
	nb, err := normalize(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
