// Package ballotengine implements the ballot engine inside the
// audience-voting context.
//
// The module owns voter identity resolution, ballot validation, the
// uniqueness-enforcing vote ledger, tally computation, and the time-based
// reveal gate. It keeps business rules in application/domain layers and
// isolates infrastructure concerns behind ports and adapters.
package ballotengine
