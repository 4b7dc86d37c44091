package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

type playwrightElement struct {
	selector string
	locator  playwright.Locator
}

func newPlaywrightElement(selector string, locator playwright.Locator) *playwrightElement {
	return &playwrightElement{selector: selector, locator: locator}
}

func (e *playwrightElement) Describe() string {
	return e.selector
}

func (e *playwrightElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(playwrightMillis(boundedTimeout(ctx, timeout))),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("element not found or not visible: %w", err)
	}
	return nil
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.locator.Click()
}

func (e *playwrightElement) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.locator.Fill(text)
}

func (e *playwrightElement) SelectOption(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	values := []string{value}
	selected, err := e.locator.SelectOption(playwright.SelectOptionValues{Values: &values})
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no option with value [%s] was selected", value)
	}
	return nil
}

// Text returns textContent, or the current value for form controls whose
// textContent never reflects user input.
func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tag, err := e.locator.Evaluate("el => el.tagName", nil)
	if err != nil {
		return "", fmt.Errorf("failed to inspect element: %w", err)
	}
	if name, ok := tag.(string); ok && isFormControl(name) {
		return e.locator.InputValue()
	}
	return e.locator.TextContent()
}

func isFormControl(tagName string) bool {
	switch strings.ToUpper(tagName) {
	case "INPUT", "TEXTAREA", "SELECT":
		return true
	}
	return false
}
