package models

// RunResult summarizes one list or remove invocation
type RunResult struct {
	Pattern string  // Glob pattern the run enumerated
	Entries []Entry // Entries processed, in enumeration order
	Removed []Entry // Entries whose directories the run deleted
}
