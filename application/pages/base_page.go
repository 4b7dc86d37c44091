// Package pages provides page objects built on the action wrapper.
package pages

import (
	"context"
	"time"

	"page_automation/application/actions"
	"page_automation/domain/interfaces"
)

// BasePage is the per-page entry point for test code. Every method delegates
// to the action wrapper unchanged.
type BasePage struct {
	session interfaces.Session
	actions *actions.ActionWrapper
}

// NewBasePage - creates new base page bound to a browser session
func NewBasePage(session interfaces.Session, wrapper *actions.ActionWrapper) *BasePage {
	return &BasePage{
		session: session,
		actions: wrapper,
	}
}

// Element resolves a selector into an element reference
func (p *BasePage) Element(selector string) interfaces.Element {
	return p.session.Element(selector)
}

// Open navigates to path, relative to the session base URL
func (p *BasePage) Open(ctx context.Context, path string) error {
	return p.session.Navigate(ctx, path)
}

// ClickOnElement clicks a visible element. A zero timeout uses the wrapper default.
func (p *BasePage) ClickOnElement(ctx context.Context, el interfaces.Element, name string, timeout time.Duration) error {
	return p.actions.Click(ctx, el, name, actions.WithTimeout(timeout))
}

// EnterTextInElement fills a visible element with text.
func (p *BasePage) EnterTextInElement(ctx context.Context, el interfaces.Element, text, name string, timeout time.Duration) error {
	return p.actions.Fill(ctx, el, text, name, actions.WithTimeout(timeout))
}

// SelectOptionFromDropdown selects the option whose value attribute is option.
func (p *BasePage) SelectOptionFromDropdown(ctx context.Context, el interfaces.Element, option string, timeout time.Duration) error {
	return p.actions.SelectOption(ctx, el, option, actions.WithTimeout(timeout))
}

// GetElementText returns the trimmed text of a visible element.
func (p *BasePage) GetElementText(ctx context.Context, el interfaces.Element, timeout time.Duration) (string, error) {
	return p.actions.ReadText(ctx, el, actions.WithTimeout(timeout))
}
