// Package actions wraps primitive element interactions with a bounded
// visibility wait, step reporting, logging and uniform error translation.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"page_automation/domain/entities"
	"page_automation/domain/errs"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Option overrides per-call behaviour
type Option func(*callOptions)

type callOptions struct {
	wait entities.WaitPolicy
}

// WithTimeout overrides the visibility wait for a single call. Non-positive
// values fall back to the wrapper default.
func WithTimeout(d time.Duration) Option {
	return func(o *callOptions) {
		o.wait.Timeout = d
	}
}

// ActionWrapper performs one UI action after confirming the target is visible
type ActionWrapper struct {
	reporter       interfaces.StepReporter
	redactor       interfaces.Redactor
	logger         logrus.FieldLogger
	defaultTimeout time.Duration
}

// NewActionWrapper - creates new action wrapper. reporter and redactor may be nil.
func NewActionWrapper(reporter interfaces.StepReporter, redactor interfaces.Redactor, logger logrus.FieldLogger, defaultTimeout time.Duration) *ActionWrapper {
	if reporter == nil {
		reporter = inlineReporter{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ActionWrapper{
		reporter:       reporter,
		redactor:       redactor,
		logger:         logger,
		defaultTimeout: entities.WaitPolicy{Timeout: defaultTimeout}.Resolve(entities.DefaultActionTimeout),
	}
}

// DefaultTimeout returns the visibility wait used when no override is given
func (w *ActionWrapper) DefaultTimeout() time.Duration {
	return w.defaultTimeout
}

// Click - waits for the element to be visible and clicks it
func (w *ActionWrapper) Click(ctx context.Context, el interfaces.Element, name string, opts ...Option) error {
	action := entities.Action{Type: entities.ActionClick, ElementName: name, Locator: el.Describe()}
	log := w.entry(action)
	timeout := w.timeout(opts)

	err := w.reporter.Step(ctx, fmt.Sprintf("Click on element [%s]", name), func(ctx context.Context) error {
		log.Infof("Attempting to click on element [%s]", name)
		if err := w.waitVisible(ctx, el, action, timeout); err != nil {
			return err
		}
		if err := el.Click(ctx); err != nil {
			return errs.Wrap(errs.ActionFailure, action.Type, name,
				fmt.Sprintf("Error clicking on element [%s]", name), err)
		}
		log.Infof("Successfully clicked on [%s]", name)
		return nil
	})
	if err != nil {
		log.WithError(err).Errorf("Failed to click on element [%s], with locator [%s]", name, action.Locator)
		return normalize(err, action, fmt.Sprintf("Error clicking on element [%s]", name))
	}
	return nil
}

// Fill - waits for the element to be visible and replaces its value with text
func (w *ActionWrapper) Fill(ctx context.Context, el interfaces.Element, text, name string, opts ...Option) error {
	action := entities.Action{Type: entities.ActionFill, ElementName: name, Locator: el.Describe(), Value: text}
	log := w.entry(action)
	timeout := w.timeout(opts)

	err := w.reporter.Step(ctx, fmt.Sprintf("Enter text in element [%s]", name), func(ctx context.Context) error {
		log.Infof("Attempting to enter text in element [%s]", name)
		if err := w.waitVisible(ctx, el, action, timeout); err != nil {
			return err
		}
		log.Infof("Entering [%s] into [%s] element", w.loggedValue(action), name)
		if err := el.Fill(ctx, text); err != nil {
			return errs.Wrap(errs.ActionFailure, action.Type, name,
				fmt.Sprintf("Error entering text in element [%s]", name), err)
		}
		log.Infof("Successfully entered text into [%s]", name)
		return nil
	})
	if err != nil {
		log.WithError(err).Errorf("Failed to enter text into element [%s] with locator [%s]", name, action.Locator)
		return normalize(err, action, fmt.Sprintf("Error entering text in element [%s]", name))
	}
	return nil
}

// SelectOption - waits for the dropdown to be visible and selects the option
// whose value attribute equals value
func (w *ActionWrapper) SelectOption(ctx context.Context, el interfaces.Element, value string, opts ...Option) error {
	action := entities.Action{Type: entities.ActionSelectOption, Locator: el.Describe(), Value: value}
	log := w.entry(action)
	timeout := w.timeout(opts)

	err := w.reporter.Step(ctx, fmt.Sprintf("Select option [%s] from dropdown with locator [%s]", value, action.Locator), func(ctx context.Context) error {
		log.Infof("Attempting to select option [%s] from dropdown", value)
		if err := w.waitVisible(ctx, el, action, timeout); err != nil {
			return err
		}
		if err := el.SelectOption(ctx, value); err != nil {
			return errs.Wrap(errs.ActionFailure, action.Type, action.Locator,
				fmt.Sprintf("Error selecting option [%s] from dropdown", value), err)
		}
		log.Infof("Successfully selected option [%s]", value)
		return nil
	})
	if err != nil {
		log.WithError(err).Errorf("Failed to select option [%s]", value)
		return normalize(err, action, fmt.Sprintf("Error selecting option [%s] from dropdown", value))
	}
	return nil
}

// ReadText - waits for the element to be visible and returns its trimmed text
func (w *ActionWrapper) ReadText(ctx context.Context, el interfaces.Element, opts ...Option) (string, error) {
	action := entities.Action{Type: entities.ActionReadText, Locator: el.Describe()}
	log := w.entry(action)
	timeout := w.timeout(opts)

	var text string
	err := w.reporter.Step(ctx, fmt.Sprintf("Read text from element with locator [%s]", action.Locator), func(ctx context.Context) error {
		if err := w.waitVisible(ctx, el, action, timeout); err != nil {
			return err
		}
		raw, err := el.Text(ctx)
		if err != nil {
			return errs.Wrap(errs.ActionFailure, action.Type, action.Locator,
				fmt.Sprintf("Error retrieving text from element with locator [%s]", action.Locator), err)
		}
		text = strings.TrimSpace(raw)
		if text == "" {
			return errs.New(errs.EmptyContent, action.Type, action.Locator,
				fmt.Sprintf("Text content not found for element with locator [%s]", action.Locator))
		}
		log.Infof("Returned text from element with locator [%s]: [%s]", action.Locator, text)
		return nil
	})
	if err != nil {
		log.WithError(err).Errorf("Failed to get text from element with locator [%s]", action.Locator)
		return "", normalize(err, action, fmt.Sprintf("Error retrieving text from element with locator [%s]", action.Locator))
	}
	return text, nil
}

func (w *ActionWrapper) waitVisible(ctx context.Context, el interfaces.Element, action entities.Action, timeout time.Duration) error {
	err := el.WaitVisible(ctx, timeout)
	if err == nil {
		return nil
	}
	label := elementLabel(action)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errs.Wrap(errs.ActionFailure, action.Type, label,
			fmt.Sprintf("Wait for element [%s] aborted", label), errors.Join(ctxErr, err))
	}
	return errs.Wrap(errs.VisibilityTimeout, action.Type, label,
		fmt.Sprintf("Element [%s] not visible within %s", label, timeout), err)
}

func (w *ActionWrapper) timeout(opts []Option) time.Duration {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o.wait.Resolve(w.defaultTimeout)
}

func (w *ActionWrapper) loggedValue(action entities.Action) string {
	if w.redactor == nil {
		return action.Value
	}
	return w.redactor.RedactValue(action)
}

func (w *ActionWrapper) entry(action entities.Action) logrus.FieldLogger {
	fields := logrus.Fields{
		"action":  string(action.Type),
		"locator": action.Locator,
	}
	if action.ElementName != "" {
		fields["element"] = action.ElementName
	}
	return w.logger.WithFields(fields)
}

// normalize keeps classified errors as they are and wraps anything a step
// reporter produced on its own.
func normalize(err error, action entities.Action, message string) error {
	var coded *errs.Error
	if errors.As(err, &coded) {
		return err
	}
	return errs.Wrap(errs.ActionFailure, action.Type, elementLabel(action), message, err)
}

func elementLabel(action entities.Action) string {
	if action.ElementName != "" {
		return action.ElementName
	}
	return action.Locator
}

type inlineReporter struct{}

func (inlineReporter) Step(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
