package security

import (
	"strings"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const redacted = "[REDACTED]"

var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token",
	"apikey", "api_key", "api-key", "cvv",
}

// SecurityLayer masks values typed into sensitive fields before they are logged
type SecurityLayer struct {
	logger   *logrus.Logger
	keywords []string
}

// NewSecurityLayer - creates new security layer, extra keywords extend the defaults
func NewSecurityLayer(logger *logrus.Logger, extra ...string) *SecurityLayer {
	keywords := append([]string{}, sensitiveKeywords...)
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &SecurityLayer{
		logger:   logger,
		keywords: keywords,
	}
}

// IsSensitive reports whether the element name or locator looks like a secret field
func (s *SecurityLayer) IsSensitive(action entities.Action) bool {
	if action.Type != entities.ActionFill {
		return false
	}

	lowerName := strings.ToLower(action.ElementName)
	lowerLocator := strings.ToLower(action.Locator)

	// type=password is the strongest signal
	if strings.Contains(lowerLocator, "type='password'") || strings.Contains(lowerLocator, `type="password"`) || strings.Contains(lowerLocator, "type=password") {
		return true
	}

	for _, keyword := range s.keywords {
		if strings.Contains(lowerName, keyword) || strings.Contains(lowerLocator, keyword) {
			return true
		}
	}
	return false
}

// RedactValue returns the value that may be written to logs for action
func (s *SecurityLayer) RedactValue(action entities.Action) string {
	if !s.IsSensitive(action) {
		return action.Value
	}
	if s.logger != nil {
		s.logger.WithField("element", action.ElementName).Debug("Masking value for sensitive element")
	}
	return redacted
}

// Ensure SecurityLayer implements Redactor interface
var _ interfaces.Redactor = (*SecurityLayer)(nil)
