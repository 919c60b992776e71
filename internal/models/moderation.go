package models

// ModerationCategory is the classification assigned to a piece of submitted
// text, ordered here from most to least severe. The ordering matters: the
// classifier rubric instructs the model to pick the first category that
// applies.
type ModerationCategory string

const (
	// CategoryUrgentRisk: the author expresses first-person, immediate
	// intent toward self-harm.
	CategoryUrgentRisk ModerationCategory = "urgent_risk"
	// CategoryHarmfulInstruction: the text instructs or encourages another
	// person toward self-harm or dangerous action, possibly only in
	// combination with the parent context.
	CategoryHarmfulInstruction ModerationCategory = "harmful_instruction"
	// CategorySupportNeeded: not an emergency, but significant distress.
	CategorySupportNeeded ModerationCategory = "support_needed"
	// CategorySafe: none of the above.
	CategorySafe ModerationCategory = "safe"
)

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	switch ModerationCategory(s) {
	case CategoryUrgentRisk, CategoryHarmfulInstruction, CategorySupportNeeded, CategorySafe:
		return true
	}
	return false
}

// ModerationAnalysis is the structured verdict computed for one submission,
// stored as JSON on the Post/Comment row it was computed for. Exactly one of
// the variant pointers matching Category is set.
type ModerationAnalysis struct {
	Category ModerationCategory `json:"category"`
	Reason   string             `json:"reason"`

	UrgentRisk         *UrgentRiskAnalysis         `json:"urgent_risk,omitempty"`
	HarmfulInstruction *HarmfulInstructionAnalysis `json:"harmful_instruction,omitempty"`
	SupportNeeded      *SupportNeededAnalysis      `json:"support_needed,omitempty"`
	Safe               *SafeAnalysis               `json:"safe,omitempty"`
}

type UrgentRiskAnalysis struct {
	Severity int `json:"severity"` // 1-5 as estimated by the classifier
}

type HarmfulInstructionAnalysis struct {
	// UsedContext is true when the text alone looked neutral and the
	// verdict was reached by weighing it against the parent content.
	UsedContext bool `json:"used_context"`
}

type SupportNeededAnalysis struct {
	Severity int `json:"severity"`
	// SupportMessage is filled in by the submission flow once the
	// empathetic acknowledgment has been generated.
	SupportMessage string `json:"support_message,omitempty"`
}

type SafeAnalysis struct {
	// CheckCompleted is false when the verdict is a fail-open default
	// because the classification call itself failed.
	CheckCompleted bool `json:"check_completed"`
}
