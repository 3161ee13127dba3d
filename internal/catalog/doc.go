// Package catalog describes the simulated contracts: which contracts exist,
// which actions each one exposes, and the positional argument signature of
// every action.
//
// The catalog is declared in CUE (contracts.cue, embedded) and compiled with
// the CUE Go API at startup. The dispatcher uses it for routing and for
// argument checks before any handler runs.
//
// # Catalog Format
//
//	contract: "facility-registration": {
//	    purpose: "..."
//	    action: "get-facility": {
//	        readonly: true
//	        args: [{name: "facility-id", type: int}]
//	    }
//	}
//
// Argument types are CUE type kinds: string, int, bool, and [...string].
// Floats are rejected at compile time.
package catalog
