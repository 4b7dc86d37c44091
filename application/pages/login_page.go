package pages

import (
	"context"
	"fmt"

	"page_automation/domain/interfaces"
)

const (
	loginPath = "/login/"

	usernameSelector = "input#id_username"
	passwordSelector = "input#id_password"
	submitSelector   = "button[type='submit']"
	userMenuSelector = "#navbarDropdown"
)

// LoginPage is the NetBox sign-in form
type LoginPage struct {
	*BasePage

	Username interfaces.Element
	Password interfaces.Element
	Submit   interfaces.Element
	UserMenu interfaces.Element
}

// NewLoginPage - creates new login page object
func NewLoginPage(base *BasePage) *LoginPage {
	return &LoginPage{
		BasePage: base,
		Username: base.Element(usernameSelector),
		Password: base.Element(passwordSelector),
		Submit:   base.Element(submitSelector),
		UserMenu: base.Element(userMenuSelector),
	}
}

// Login opens the login form, signs in and returns the name shown in the user menu
func (p *LoginPage) Login(ctx context.Context, username, password string) (string, error) {
	if err := p.Open(ctx, loginPath); err != nil {
		return "", fmt.Errorf("failed to open login page: %w", err)
	}
	if err := p.EnterTextInElement(ctx, p.Username, username, "Username", 0); err != nil {
		return "", err
	}
	if err := p.EnterTextInElement(ctx, p.Password, password, "Password", 0); err != nil {
		return "", err
	}
	if err := p.ClickOnElement(ctx, p.Submit, "Sign In", 0); err != nil {
		return "", err
	}
	return p.GetElementText(ctx, p.UserMenu, 0)
}
