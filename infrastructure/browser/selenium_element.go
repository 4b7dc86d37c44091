package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tebeka/selenium"
)

const seleniumPollInterval = 100 * time.Millisecond

type seleniumElement struct {
	wd       selenium.WebDriver
	selector string
}

func (e *seleniumElement) Describe() string {
	return e.selector
}

func (e *seleniumElement) find() (selenium.WebElement, error) {
	el, err := e.wd.FindElement(selenium.ByCSSSelector, e.selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %w", err)
	}
	return el, nil
}

func (e *seleniumElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	condition := func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		el, err := wd.FindElement(selenium.ByCSSSelector, e.selector)
		if err != nil {
			return false, nil
		}
		displayed, err := el.IsDisplayed()
		if err != nil {
			return false, nil
		}
		return displayed, nil
	}
	if err := e.wd.WaitWithTimeoutAndInterval(condition, boundedTimeout(ctx, timeout), seleniumPollInterval); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("element not found or not visible: %w", err)
	}
	return nil
}

func (e *seleniumElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := e.find()
	if err != nil {
		return err
	}
	return el.Click()
}

func (e *seleniumElement) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := e.find()
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear element: %w", err)
	}
	return el.SendKeys(text)
}

func (e *seleniumElement) SelectOption(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := e.find()
	if err != nil {
		return err
	}
	option, err := el.FindElement(selenium.ByCSSSelector, "option[value="+strconv.Quote(value)+"]")
	if err != nil {
		return fmt.Errorf("option [%s] not found: %w", value, err)
	}
	return option.Click()
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	el, err := e.find()
	if err != nil {
		return "", err
	}
	tag, err := el.TagName()
	if err != nil {
		return "", fmt.Errorf("failed to inspect element: %w", err)
	}
	if isFormControl(strings.ToUpper(tag)) {
		return el.GetAttribute("value")
	}
	return el.Text()
}
