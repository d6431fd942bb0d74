package domain

// Phase is the coarse display stage derived from job progress.
// It is a UI hint only; a server-supplied message always wins.
type Phase string

// Display phases mapped from progress thresholds.
const (
	PhaseExtracting  Phase = "extracting"
	PhaseTranslating Phase = "translating"
	PhaseGenerating  Phase = "generating"
	PhaseFinalizing  Phase = "finalizing"
)

// PhaseForProgress maps a progress value to a display phase.
// The thresholds are a fallback table, not a product contract.
func PhaseForProgress(progress int) Phase {
	switch {
	case progress < 30:
		return PhaseExtracting
	case progress < 70:
		return PhaseTranslating
	case progress < 90:
		return PhaseGenerating
	default:
		return PhaseFinalizing
	}
}

// DisplayPhase returns the text to show for a progress/message pair.
// A non-empty server message is ground truth and overrides the table.
func DisplayPhase(progress int, message string) string {
	if message != "" {
		return message
	}
	return string(PhaseForProgress(progress))
}
