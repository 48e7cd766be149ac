package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ruleguard/internal/engine"
	"ruleguard/internal/storage"
	"ruleguard/internal/ui"
)

// RunBoard opens the dashboard. The store subscription feeds cross-
// context changes into the model as messages.
func RunBoard(ctx context.Context, eng *engine.Engine, store storage.Store, out io.Writer) error {
	m := newBoardModel(ctx, eng)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))

	cancel := store.Subscribe(func(key string) {
		p.Send(storeChangedMsg{key: key})
	})
	defer cancel()

	_, err := p.Run()
	return err
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading…"
	}
	if m.err != nil {
		return ui.Bad.Render("Error: " + m.err.Error())
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconChart, "Ruleguard") + "\n\n")

	b.WriteString(m.progressPanel() + "\n")
	b.WriteString(m.rulesPanel() + "\n")
	b.WriteString(m.activityPanel() + "\n")

	b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("r refresh · q quit"))
	return b.String()
}

func (m boardModel) progressPanel() string {
	growth := engine.GrowthPercent(m.progress.CurrentBalance, m.settings.StartingValue)
	lines := []string{
		ui.PanelTitle.Render("Progress"),
		ui.ProgressBar(m.progress.Completions, m.settings.TargetCompletions, 30),
		joinNonEmpty([]string{
			ui.LabelValue("Balance", fmt.Sprintf("%.2f (%+.1f%%)", m.progress.CurrentBalance, growth)),
			ui.LabelValue("Discipline", ui.Discipline(m.progress.DisciplineScore)),
			ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFlame, m.progress.Streak)),
		}, "   "),
	}
	if m.progress.Completions >= float64(m.settings.TargetCompletions) {
		lines = append(lines, ui.BadgeGoal)
	}
	earned := 0
	for _, bd := range m.badges {
		if bd.Earned {
			earned++
		}
	}
	lines = append(lines, ui.LabelValue("Badges", fmt.Sprintf("%s %d/%d", ui.IconMedal, earned, len(m.badges))))
	return ui.Panel.Render(strings.Join(lines, "\n"))
}

func (m boardModel) rulesPanel() string {
	lines := []string{ui.PanelTitle.Render(ui.IconRule + " Rules")}
	if len(m.rules) == 0 {
		lines = append(lines, ui.Muted.Render("No rules yet. Add one with: rg rules add"))
	}
	for _, r := range m.rules {
		state := ui.Good.Render("active")
		if !r.Active {
			state = ui.Muted.Render("paused")
		}
		viol := ""
		if r.Violations > 0 {
			viol = ui.Bad.Render(fmt.Sprintf(" %d✗", r.Violations))
		}
		lines = append(lines, fmt.Sprintf("%s  %s%s  %s", state, trimTo(r.Text, 48), viol, ui.Muted.Render(r.Category)))
	}
	return ui.Panel.Render(strings.Join(lines, "\n"))
}

func (m boardModel) activityPanel() string {
	lines := []string{ui.PanelTitle.Render(ui.IconScroll + " Recent activity")}
	if len(m.recent) == 0 {
		lines = append(lines, ui.Muted.Render("Nothing yet."))
	}
	for i := len(m.recent) - 1; i >= 0; i-- {
		e := m.recent[i]
		var desc string
		switch e.Type {
		case engine.ActivityCompletion:
			desc = fmt.Sprintf("+%.2f completions (%.2f%% gain)", e.Increment, e.GainPercent)
		case engine.ActivityViolation:
			desc = "rule violation"
		case engine.ActivityJournal:
			desc = trimTo(e.Text, 48)
		case engine.ActivityGrowth:
			desc = fmt.Sprintf("new goal, baseline %.2f", e.Baseline)
		default:
			desc = e.Type
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", ui.ActivityIcon(e.Type), ui.Muted.Render(e.TS.Format("Jan 2 15:04")), desc))
	}
	return ui.Panel.Render(strings.Join(lines, "\n"))
}
