package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/researchhub/internal/metrics"
	"github.com/roach88/researchhub/internal/model"
)

// Scenario defines a scripted run against a fresh tracker.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Today pins the clock (YYYY-MM-DD). Empty means testutil.DefaultTime.
	Today string `yaml:"today,omitempty"`

	// Setup steps run first and must all succeed. They are traced like
	// flow steps.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the operations under test.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace and document.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one tracker operation.
type Step struct {
	// Op names the operation, e.g. "create_task". See Ops.
	Op string `yaml:"op"`

	// Args are the operation arguments.
	Args map[string]any `yaml:"args"`
}

// FlowStep is a Step with an optional expectation.
type FlowStep struct {
	Op     string         `yaml:"op"`
	Args   map[string]any `yaml:"args"`
	Expect *ExpectClause  `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected completion.
type ExpectClause struct {
	// Outcome is the expected result label ("ok", "validation", ...).
	Outcome string `yaml:"outcome"`

	// Result is a subset match against the returned value, decoded as
	// JSON. Only meaningful when Outcome is "ok".
	Result map[string]any `yaml:"result,omitempty"`
}

// Assertion validates the trace or the final document.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op is the operation name (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Args are matched as a subset (trace_contains).
	Args map[string]any `yaml:"args,omitempty"`

	// Ops is the expected call order (trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Count is the expected number of calls or entities.
	Count int `yaml:"count,omitempty"`

	// Kind is the collection: projects, tasks or papers (final_*).
	Kind string `yaml:"kind,omitempty"`

	// Where selects exactly one entity by field values (final_state).
	Where map[string]any `yaml:"where,omitempty"`

	// Expect is matched as a subset against the selected entity (final_state).
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
	AssertFinalCount    = "final_count"
)

var (
	outcomes = map[string]bool{
		metrics.ResultOK: true, metrics.ResultValidation: true, metrics.ResultReferential: true,
		metrics.ResultNotFound: true, metrics.ResultImport: true, metrics.ResultStorage: true,
		metrics.ResultError: true,
	}
	collections = map[string]bool{"projects": true, "tasks": true, "papers": true}
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Today != "" {
		if _, err := time.Parse(model.DateLayout, s.Today); err != nil {
			return fmt.Errorf("today %q is not YYYY-MM-DD", s.Today)
		}
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateOp(step.Op); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateOp(step.Op); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		if step.Expect != nil && !outcomes[step.Expect.Outcome] {
			return fmt.Errorf("flow[%d].expect: unknown outcome %q", i, step.Expect.Outcome)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateOp(op string) error {
	if op == "" {
		return fmt.Errorf("op is required")
	}
	if _, ok := Ops[op]; !ok {
		return fmt.Errorf("unknown op %q", op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if !collections[a.Kind] {
			return fmt.Errorf("assertions[%d]: kind must be projects, tasks or papers for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertFinalCount:
		if !collections[a.Kind] {
			return fmt.Errorf("assertions[%d]: kind must be projects, tasks or papers for final_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for final_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
