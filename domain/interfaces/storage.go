package interfaces

import "page_automation/domain/entities"

// ReportStorage persists recorded steps
type ReportStorage interface {
	// SaveSteps saves the step report
	SaveSteps(steps []entities.Step) error

	// LoadSteps loads the step report
	LoadSteps() ([]entities.Step, error)
}
