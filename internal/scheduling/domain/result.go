package domain

// AlgorithmVersion tags results with the engine revision that produced them.
const AlgorithmVersion = "constrained-greedy-v2.0"

// Explanation is the human-readable justification attached to one slot.
type Explanation struct {
	Primary  string
	Factors  []string
	Warnings []string
}

// SuggestedSlot is one emitted slot for one contact.
type SuggestedSlot struct {
	Slot               Slot
	Score              int
	Reasoning          []string
	Explanation        Explanation
	UserDisplayTime    string // organizer-zone display
	ContactDisplayTime string // contact-zone display
	BelowThreshold     bool
}

// AlternativeAction advises the organizer when defaults could not be met.
type AlternativeAction struct {
	Reason     string
	Suggestion string
}

// ContactResult bundles a contact with its suggested slots.
type ContactResult struct {
	Contact           Contact
	SuggestedSlots    []SuggestedSlot
	AlternativeAction *AlternativeAction
}

// BatchMetadata summarizes one engine run.
type BatchMetadata struct {
	RunID              string // correlation ID for logs, not serialized
	TotalSlotsAnalyzed int
	AverageQuality     float64
	FairnessScore      float64
	ProcessingTimeMS   int64
	Algorithm          string
	Warnings           []Warning
	SpecialHandling    []SpecialHandling
}

// BatchResult is the engine's pure output for one batch.
type BatchResult struct {
	Results  []ContactResult
	Metadata BatchMetadata
}
