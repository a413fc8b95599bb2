// Package harness runs conformance suites against the function registry.
//
// # Suite Format
//
// Suites are YAML files:
//
//	name: numeric_promotion
//	description: "integer + float promotes to xs:float"
//	cases:
//	  - name: int-plus-float
//	    call: op:numeric-add
//	    args: ["2", "xs:float('3')"]
//	    expect: "xs:float('5')"
//	  - name: avg-of-empty
//	    call: xfn:avg
//	    args:
//	      - {items: [], length: 0}
//	    error: FOAR0001
//
// An argument is either a literal (see package literal) or a sequence given
// as {items, length}; length defaults to the number of items and may be
// smaller to exercise partial sequences. Each case names either the
// expected result literal or the expected error code.
//
// # Deterministic Traces
//
// Every case is stamped with a logical seq from testutil.DeterministicClock,
// arguments and results are rendered in canonical lexical form, and traces
// serialize through package canonical. Identical suites produce
// byte-identical traces, which are compared against golden files.
package harness
