package tui

import (
	"context"
	"time"

	"codeberg.org/framegen/client/internal/billing"
	"codeberg.org/framegen/client/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// signs in with the entered credentials and reports the outcome
func signIn(sessions *session.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := sessions.SignIn(ctx, email, password); err != nil {
			return ErrorMsg{err: err}
		}

		return SignedInMsg{User: sessions.Snapshot().User}
	}
}

// re-validates the stored credential and refreshes the snapshot
func refreshProfile(sessions *session.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sessions.Revalidate(ctx)

		return ProfileMsg{User: sessions.Snapshot().User}
	}
}

// fetches the plan catalog
func loadPlans(svc *billing.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		plans, err := svc.Plans(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return PlansMsg{Plans: plans}
	}
}

// clears the stored credential
func signOut(sessions *session.Manager) tea.Cmd {
	return func() tea.Msg {
		sessions.SignOut()
		return SignedOutMsg{}
	}
}
