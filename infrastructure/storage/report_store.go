package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

type reportStore struct {
	reportPath string
}

// NewReportStore - creates new step report storage backed by a JSON file
func NewReportStore(path string) (interfaces.ReportStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("report path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &reportStore{reportPath: path}, nil
}

// SaveSteps - saves step report to file
func (s *reportStore) SaveSteps(steps []entities.Step) error {
	if steps == nil {
		steps = []entities.Step{}
	}
	data, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.reportPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.reportPath)
}

// LoadSteps - loads step report from file
func (s *reportStore) LoadSteps() ([]entities.Step, error) {
	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.Step{}, nil
		}
		return nil, err
	}

	var steps []entities.Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", s.reportPath, err)
	}

	return steps, nil
}
