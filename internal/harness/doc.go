// Package harness runs check scenarios against record collections.
//
// A scenario is a YAML file of steps, each step one operation plus its
// expectations:
//
//	name: basic_example
//	description: "Insert two records, filter every column, delete one"
//	min_index_sizes: [1, 3, 100]
//	steps:
//	  - insert: { id: 1, text_a: "data", number: 10, text_b: "test" }
//	    expect_size: 1
//	  - filter: { column: column1, value: "345", expect_ids: [2] }
//	  - delete: 1
//	    expect_applied: true
//	  - expect_size: 1
//
// The same scenario runs against every target: the naive baseline and one
// store per min index size. Targets can be narrowed with "targets" for
// scenarios that depend on store-only behaviour such as duplicate IDs.
//
// Each expectation becomes a Check, printed as "Check if: <text> --> OK".
// When the collection can verify its own indexes (CheckConsistency), the
// harness calls it after every insert and delete and records a failed
// check for any violation.
//
// # Golden Files
//
// RunWithGolden compares the canonical JSON trace of a run against
// testdata/golden/<scenario>__<target>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
