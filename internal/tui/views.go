package tui

import (
	"fmt"
	"strings"
)

// renders the signed-in account panel
func (m *Model) accountView() string {
	snap := m.sessions.Snapshot()

	var b strings.Builder

	b.WriteString(titleStyle.Render("account"))
	b.WriteString("\n\n")

	if snap.User == nil {
		b.WriteString(infoStyle.Render("not signed in"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc goes back."))
		return b.String()
	}

	user := snap.User

	rows := []struct {
		label string
		value string
	}{
		{"name", user.DisplayName},
		{"email", user.Email},
		{"plan", planLabel(user.PlanName, user.PlanInterval)},
		{"credits", fmt.Sprintf("%d", user.Credits)},
	}

	if user.MonthlyCredits > 0 {
		rows = append(rows, struct {
			label string
			value string
		}{"monthly credits", fmt.Sprintf("%d", user.MonthlyCredits)})
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-16s", row.label)),
			valueStyle.Render(row.value),
		))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc goes back."))

	return b.String()
}

// renders the plan catalog with glamour-formatted descriptions
func (m *Model) plansView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("plans"))
	b.WriteString("\n")

	for _, plan := range m.plans {
		price := fmt.Sprintf("$%d.%02d/%s", plan.PriceCents/100, plan.PriceCents%100, plan.Interval)

		b.WriteString(fmt.Sprintf("  %s %s\n",
			commandStyle.Render(plan.DisplayName),
			commandDescStyle.Render(price),
		))

		if plan.Description != "" && m.glamourRenderer != nil {
			rendered, err := m.glamourRenderer.Render(plan.Description)
			if err == nil {
				b.WriteString(rendered)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc goes back."))

	return b.String()
}

func planLabel(name, interval string) string {
	if name == "" {
		return "free"
	}

	if interval == "" {
		return name
	}

	return name + " (" + interval + ")"
}
