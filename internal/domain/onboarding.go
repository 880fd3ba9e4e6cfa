package domain

import "time"

// OnboardingDraft holds a user's partially completed onboarding flow. The
// data blob is a shallow merge of every step submitted so far, and
// StepCompleted only moves forward.
type OnboardingDraft struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	StepCompleted int            `json:"step_completed"`
	Data          map[string]any `json:"data"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
