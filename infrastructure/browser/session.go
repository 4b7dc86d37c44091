package browser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"page_automation/domain/interfaces"
	"page_automation/infrastructure/config"
)

// NewSession opens a browser session on the configured engine
func NewSession(cfg *config.Config, logger logrus.FieldLogger) (interfaces.Session, error) {
	switch cfg.Engine {
	case config.EnginePlaywright:
		session, err := NewPlaywrightSession(cfg, logger)
		if err != nil {
			return nil, err
		}
		return session, nil
	case config.EngineSelenium:
		session, err := NewSeleniumSession(cfg, logger)
		if err != nil {
			return nil, err
		}
		return session, nil
	default:
		return nil, fmt.Errorf("unsupported browser engine %q", cfg.Engine)
	}
}
