package interfaces

import "context"

// StepReporter runs fn as a named, reportable step
type StepReporter interface {
	Step(ctx context.Context, title string, fn func(ctx context.Context) error) error
}
