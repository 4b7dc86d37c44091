package actions

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"page_automation/domain/entities"
)

type fakeElement struct {
	locator string
	visible bool
	options []string
	text    string

	clickErr error
	fillErr  error
	textErr  error

	calls       []string
	lastTimeout time.Duration
}

func (f *fakeElement) Describe() string { return f.locator }

func (f *fakeElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	f.calls = append(f.calls, "wait")
	f.lastTimeout = timeout
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.visible {
		return fmt.Errorf("Timeout %dms exceeded waiting for %s to be visible", timeout.Milliseconds(), f.locator)
	}
	return nil
}

func (f *fakeElement) Click(ctx context.Context) error {
	f.calls = append(f.calls, "click")
	return f.clickErr
}

func (f *fakeElement) Fill(ctx context.Context, text string) error {
	f.calls = append(f.calls, "fill")
	if f.fillErr != nil {
		return f.fillErr
	}
	f.text = text
	return nil
}

func (f *fakeElement) SelectOption(ctx context.Context, value string) error {
	f.calls = append(f.calls, "select")
	if !slices.Contains(f.options, value) {
		return errors.New("did not find some options")
	}
	f.text = value
	return nil
}

func (f *fakeElement) Text(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "text")
	return f.text, f.textErr
}

type recordingReporter struct {
	titles []string
	err    error
}

func (r *recordingReporter) Step(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	r.titles = append(r.titles, title)
	if r.err != nil {
		return r.err
	}
	return fn(ctx)
}

type maskAll struct{}

func (maskAll) RedactValue(entities.Action) string { return "[REDACTED]" }

func (maskAll) IsSensitive(entities.Action) bool { return true }
