package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitsync/internal/constants"
)

func (m Model) View() string {
	sections := []string{
		titleStyle.Render("habitsync"),
		tipStyle.Render("💡 " + m.tip),
		m.viewWater(),
		m.viewStreak(),
		m.viewReminders(),
	}

	if m.popup != "" {
		sections = append(sections, popupStyle.Render("🔔 "+m.popup))
	}
	if m.flash != "" {
		sections = append(sections, flashStyle.Render(m.flash))
	}
	if m.errMsg != "" {
		sections = append(sections, dangerStyle.Render("Error: "+m.errMsg))
	}

	sections = append(sections, m.help.View(m.keys))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// viewWater renders today's glasses as a row of filled and empty circles.
func (m Model) viewWater() string {
	goalGlasses := constants.GoalGlasses
	var row strings.Builder
	for i := 0; i < goalGlasses; i++ {
		if i < m.status.Glasses {
			row.WriteString("🥛")
		} else {
			row.WriteString(mutedStyle.Render("○ "))
		}
	}

	body := fmt.Sprintf("%s\n%d / %d ml", row.String(), m.status.TotalMl, m.status.GoalMl)
	if m.status.GoalReached {
		body += "  🎉 goal reached"
	}
	return panelStyle.Render(headingStyle.Render("Water") + "\n" + body)
}

func (m Model) viewStreak() string {
	body := fmt.Sprintf("🔥 Streak: %d day(s)   Best: %d   ⭐ Points: %d",
		m.profile.CurrentStreak, m.profile.BestStreak, m.profile.Points)
	return panelStyle.Render(headingStyle.Render("Activity") + "\n" + body)
}

func (m Model) viewReminders() string {
	meds := m.sched.MedicineReminders()
	waters := m.sched.WaterReminders()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Reminders"))
	b.WriteString("\n")

	if len(meds) == 0 && len(waters) == 0 {
		b.WriteString(mutedStyle.Render("No reminders configured. Add one with 'habitsync reminder add'."))
		return panelStyle.Render(b.String())
	}

	for _, r := range meds {
		b.WriteString(fmt.Sprintf("💊 %s  %s  %s\n", r.DisplayTime(), r.Label, mutedStyle.Render(r.FormatRecurrence())))
	}
	for _, r := range waters {
		b.WriteString(fmt.Sprintf("💧 %s  %s\n", r.DisplayTime(), mutedStyle.Render(r.FormatRecurrence())))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
