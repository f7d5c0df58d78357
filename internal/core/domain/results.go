package domain

// GenerationOutcome tells whether GenerateLines wrote anything.
type GenerationOutcome string

const (
	GenerationCreated GenerationOutcome = "created"
	GenerationNoop    GenerationOutcome = "noop"
)

// GenerateLinesResult is returned by a successful line generation.
type GenerateLinesResult struct {
	EntryID string
	Outcome GenerationOutcome
	Lines   []JournalLine
}

// SaveEditResult is returned by a committed ledger edit.
// AuditRecorded and SyncWarnings report best-effort follow-ups that do not undo the edit.
type SaveEditResult struct {
	Entry         JournalEntry
	Lines         []JournalLine
	AuditRecorded bool
	SyncWarnings  []SyncWarning
}
