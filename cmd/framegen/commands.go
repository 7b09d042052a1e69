package main

import (
	"context"
	"fmt"

	"codeberg.org/framegen/client/internal/session"
	"codeberg.org/framegen/client/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func cmdSignup(ctx context.Context, app *App, email, password, name string) error {
	result, err := app.sessions.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	if result.PendingVerification {
		if result.Message != "" {
			fmt.Println(result.Message)
		} else {
			fmt.Println("Check your inbox to verify your email address.")
		}
		return nil
	}

	snap := app.sessions.Snapshot()
	if snap.User != nil {
		fmt.Printf("Welcome, %s! You have %d credits.\n", snap.User.DisplayName, snap.User.Credits)
	}

	return nil
}

func cmdLogin(ctx context.Context, app *App, email, password, provider string) error {
	if provider != "" {
		return runOAuthFlow(ctx, app, provider)
	}

	if err := app.sessions.SignIn(ctx, email, password); err != nil {
		return err
	}

	snap := app.sessions.Snapshot()
	if snap.User != nil {
		fmt.Printf("Signed in as %s\n", snap.User.Email)
	}

	return nil
}

func cmdLogout(app *App) error {
	app.sessions.SignOut()
	fmt.Println("Signed out.")
	return nil
}

func cmdWhoami(ctx context.Context, app *App) error {
	app.sessions.Initialize(ctx)

	snap := app.sessions.Snapshot()

	if snap.State != session.StateAuthenticated {
		fmt.Println("Not signed in.")
		return nil
	}

	user := snap.User
	fmt.Printf("%s <%s>\n", user.DisplayName, user.Email)
	fmt.Printf("plan: %s  credits: %d\n", planName(user.PlanName), user.Credits)

	return nil
}

func cmdPlans(ctx context.Context, app *App) error {
	plans, err := app.billing.Plans(ctx)
	if err != nil {
		return err
	}

	for _, plan := range plans {
		fmt.Printf("%-10s $%d.%02d/%s  %d credits\n",
			plan.DisplayName,
			plan.PriceCents/100, plan.PriceCents%100,
			plan.Interval,
			plan.MonthlyCredits,
		)
	}

	return nil
}

func cmdCheckout(ctx context.Context, app *App, plan string) error {
	checkoutURL, err := app.billing.CreateCheckoutSession(ctx, plan)
	if err != nil {
		return err
	}

	fmt.Printf("Checkout: %s\n", checkoutURL)
	return (&browserNavigator{}).OpenURL(checkoutURL)
}

func cmdResetPassword(ctx context.Context, app *App, email string) error {
	if err := app.sessions.ResetPassword(ctx, email); err != nil {
		return err
	}

	fmt.Println("If that address is registered, a reset email is on its way.")
	return nil
}

func cmdTUI(ctx context.Context, app *App) error {
	app.sessions.Initialize(ctx)
	app.sessions.StartReconciler(ctx)

	model := tui.NewApp(app.sessions, app.billing, app.cfg.Environment)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}

func planName(name string) string {
	if name == "" {
		return "free"
	}
	return name
}
