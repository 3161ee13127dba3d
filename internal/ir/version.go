package ir

// Version constants for the journal schema and simulator.
const (
	// JournalVersion is the call-journal row format version.
	JournalVersion = "1"

	// SimulatorVersion is the chainsim release version.
	SimulatorVersion = "0.1.0"
)
