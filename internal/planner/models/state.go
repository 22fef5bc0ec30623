package models

import "time"

// ============================================================
// Generation State
// ============================================================

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseDone       Phase = "done"
)

// ImageRef points at a generated floor plan image.
type ImageRef struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
}

type GenerationState struct {
	Busy  bool      `json:"busy"`
	Image *ImageRef `json:"image,omitempty"`
}

// Phase derives the state machine position from the busy flag and image.
// A finished image stays visible while a new generation runs.
func (s GenerationState) Phase() Phase {
	switch {
	case s.Busy:
		return PhaseGenerating
	case s.Image != nil:
		return PhaseDone
	default:
		return PhaseIdle
	}
}

// ============================================================
// Notifications
// ============================================================

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient, user-facing message shown by the page.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"createdAt"`
}
