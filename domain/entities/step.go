package entities

import "time"

// StepStatus represents the outcome of a step
type StepStatus string

const (
	StepPassed StepStatus = "passed"
	StepFailed StepStatus = "failed"
)

// Step is the reportable record of one named action
type Step struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    StepStatus    `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}
