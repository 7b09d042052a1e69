package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// returns a new login form
func NewLogin() *LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128
	password.Width = 40

	return &LoginModel{
		email:    email,
		password: password,
	}
}

// focuses the email field
func (m *LoginModel) Focus() tea.Cmd {
	m.focused = 0
	m.password.Blur()
	return m.email.Focus()
}

func (m *LoginModel) Email() string {
	return strings.TrimSpace(m.email.Value())
}

func (m *LoginModel) Password() string {
	return m.password.Value()
}

// returns the updated form, a command, and whether the form was
// submitted
func (m *LoginModel) Update(msg tea.Msg) (*LoginModel, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			if m.focused == 0 {
				m.focused = 1
				m.email.Blur()
				return m, m.password.Focus(), false
			}

			m.focused = 0
			m.password.Blur()
			return m, m.email.Focus(), false

		case "enter":
			if m.focused == 0 {
				m.focused = 1
				m.email.Blur()
				return m, m.password.Focus(), false
			}

			if m.Email() != "" && m.Password() != "" {
				return m, nil, true
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}

	return m, cmd, false
}

func (m *LoginModel) View(err error) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sign in to framegen"))
	b.WriteString("\n\n")

	if err != nil {
		b.WriteString(errorStyle.Render("error: " + err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("  email"))
	b.WriteString("\n  ")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("  password"))
	b.WriteString("\n  ")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("tab switches fields. enter submits. esc goes back."))

	return b.String()
}
