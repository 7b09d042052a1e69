package tui

import (
	"fmt"

	"codeberg.org/framegen/client/internal/billing"
	"codeberg.org/framegen/client/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// creates the account panel over an initialized session manager
func NewApp(sessions *session.Manager, billingSvc *billing.Service, mode string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	return &Model{
		state:           StateWelcome,
		mode:            mode,
		sessions:        sessions,
		billing:         billingSvc,
		welcome:         NewWelcome(mode),
		login:           NewLogin(),
		spinner:         s,
		glamourRenderer: renderer,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.state == StateWelcome {
				return m, tea.Quit
			}

			// anywhere else, ctrl+c backs out to the welcome screen
			m.state = StateWelcome
			m.err = nil
			return m, nil

		case "esc":
			if m.state != StateWelcome && m.state != StateLoading {
				m.state = StateWelcome
				m.err = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case ErrorMsg:
		m.err = msg.err
		m.state = StateWelcome
		return m, nil

	case EnterLoginMsg:
		m.state = StateLogin
		m.err = nil
		return m, m.login.Focus()

	case SignedInMsg:
		m.state = StateAccount
		m.err = nil
		m.status = "signed in"
		return m, nil

	case ProfileMsg:
		if msg.User == nil {
			m.state = StateLogin
			m.status = "not signed in"
			return m, m.login.Focus()
		}

		m.state = StateAccount
		m.status = ""
		return m, nil

	case PlansMsg:
		m.plans = msg.Plans
		m.state = StatePlans
		return m, nil

	case SignedOutMsg:
		m.state = StateWelcome
		m.status = "signed out"
		return m, nil
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcome(msg)

	case StateLogin:
		return m.updateLogin(msg)

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	switch m.state {
	case StateWelcome:
		return m.welcome.View(m.err, m.status)

	case StateLogin:
		return m.login.View(m.err)

	case StateAccount:
		return m.accountView()

	case StatePlans:
		return m.plansView()

	case StateLoading:
		return fmt.Sprintf("\n  %s working...\n", m.spinner.View())

	default:
		return "Unknown state"
	}
}

func (m *Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.welcome, cmd = m.welcome.Update(msg, m)

	return m, cmd
}

func (m *Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	login, cmd, submitted := m.login.Update(msg)
	m.login = login

	if submitted {
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, signIn(m.sessions, m.login.Email(), m.login.Password()))
	}

	return m, cmd
}
