package ir

// Version constants for IR schema and the generator.
const (
	// IRVersion is the IR schema version.
	IRVersion = "1"

	// ToolVersion is the guilty generator version.
	ToolVersion = "0.1.0"
)
