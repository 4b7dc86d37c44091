// Package report records wrapped actions as named steps and persists them.
package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

// StepRecorder implements interfaces.StepReporter by timing each step,
// logging its outcome and keeping it for the final report.
type StepRecorder struct {
	logger  logrus.FieldLogger
	storage interfaces.ReportStorage
	now     func() time.Time

	flushMu sync.Mutex
	mu      sync.Mutex
	steps   []entities.Step
}

// NewStepRecorder - creates new step recorder. storage may be nil, in which
// case Flush only clears the in-memory steps.
func NewStepRecorder(logger logrus.FieldLogger, storage interfaces.ReportStorage) *StepRecorder {
	return &StepRecorder{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// Step runs fn as a named step and records the result. The error from fn is
// returned unchanged.
func (r *StepRecorder) Step(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	step := entities.Step{
		ID:        uuid.NewString(),
		Title:     title,
		StartedAt: r.now(),
	}
	log := r.logger.WithFields(logrus.Fields{"step": title, "step_id": step.ID})
	log.Debug("Step started")

	err := fn(ctx)

	step.Duration = r.now().Sub(step.StartedAt)
	if err != nil {
		step.Status = entities.StepFailed
		step.Error = err.Error()
		log.WithField("duration", step.Duration).Warn("Step failed")
	} else {
		step.Status = entities.StepPassed
		log.WithField("duration", step.Duration).Debug("Step passed")
	}

	r.mu.Lock()
	r.steps = append(r.steps, step)
	r.mu.Unlock()
	return err
}

// Steps returns a copy of the recorded steps in completion order
func (r *StepRecorder) Steps() []entities.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Step(nil), r.steps...)
}

// Flush appends the recorded steps to storage and clears them. Steps stay
// recorded when storage fails so a later Flush can retry.
func (r *StepRecorder) Flush() error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	steps := append([]entities.Step(nil), r.steps...)
	r.mu.Unlock()

	if len(steps) == 0 {
		return nil
	}

	if r.storage != nil {
		existing, err := r.storage.LoadSteps()
		if err != nil {
			return fmt.Errorf("failed to load step report: %w", err)
		}
		if err := r.storage.SaveSteps(append(existing, steps...)); err != nil {
			return fmt.Errorf("failed to save step report: %w", err)
		}
		r.logger.WithField("steps", len(steps)).Info("Step report saved")
	}

	// steps recorded while saving stay for the next flush
	r.mu.Lock()
	r.steps = append([]entities.Step(nil), r.steps[len(steps):]...)
	r.mu.Unlock()
	return nil
}

var _ interfaces.StepReporter = (*StepRecorder)(nil)
