// Package harness runs scripted tracker scenarios.
//
// A scenario drives a fresh tracker (in-memory slot, sequential ids, a
// clock pinned to one day) through a list of operations, records every
// call and its outcome in a trace, and checks assertions against the trace
// and the final document.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: cascade_delete
//	description: "Deleting a project removes its tasks"
//	today: "2026-01-28"
//	setup:
//	  - op: create_project
//	    args: { title: Thesis }
//	flow:
//	  - op: delete_project
//	    args: { id: prj_0001 }
//	    expect:
//	      outcome: ok
//	      result: { tasks_removed: 0 }
//	assertions:
//	  - type: final_count
//	    kind: projects
//	    count: 0
//
// Outcomes are the result labels of the metrics package: ok, validation,
// referential, not_found, import_format, storage, error.
//
// # Assertion Types
//
//   - trace_contains: an operation was called with matching args
//   - trace_order: operations were called in this order
//   - trace_count: an operation was called exactly N times
//   - final_state: one entity of a collection has the expected fields
//   - final_count: a collection holds exactly N entities
//
// # Deterministic Testing
//
// Ids come from ids.SequenceGenerator (prj_0001, tsk_0001, ...) and the
// clock never moves, so two runs of a scenario produce identical traces.
// RunWithGolden compares the trace against testdata/golden/<name>.golden.
package harness
