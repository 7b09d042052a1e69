package tui

import (
	"codeberg.org/framegen/client/internal/api"
	"codeberg.org/framegen/client/internal/billing"
	"codeberg.org/framegen/client/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateLogin
	StateAccount
	StatePlans
	StateLoading
)

// main TUI application model
type Model struct {
	state  AppState
	mode   string
	width  int
	height int
	err    error

	sessions *session.Manager
	billing  *billing.Service

	welcome *Welcome
	login   *LoginModel
	plans   []billing.Plan

	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	status          string
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

// login form with email and password fields
type LoginModel struct {
	email    textinput.Model
	password textinput.Model
	focused  int
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the login form
type EnterLoginMsg struct{}

// sent after a sign-in attempt resolves
type SignedInMsg struct {
	User *api.User
}

// sent after the profile snapshot is refreshed
type ProfileMsg struct {
	User *api.User
}

// sent when the plan catalog arrives
type PlansMsg struct {
	Plans []billing.Plan
}

// sent after signing out
type SignedOutMsg struct{}
