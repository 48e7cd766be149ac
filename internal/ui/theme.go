package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ruleguard theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconChart   = "📈"
	IconSparkle = "✨"
	IconShield  = "🛡️"
	IconFlame   = "🔥"
	IconTrophy  = "🏆"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconRule    = "📏"
	IconScroll  = "📜"
	IconJournal = "📝"
	IconMedal   = "🏅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeGoal = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("GOAL REACHED")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Discipline colors the score by health band.
func Discipline(score int) string {
	s := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return Good.Render(s)
	case score >= 50:
		return Warn.Render(s)
	default:
		return Bad.Render(s)
	}
}

// ProgressBar renders a width-character completion bar.
func ProgressBar(completions float64, target int, width int) string {
	if width < 4 {
		width = 4
	}
	ratio := 0.0
	if target > 0 {
		ratio = completions / float64(target)
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled)) + fmt.Sprintf(" %.1f/%d", completions, target)
}

// RankText styles a leaderboard rank, medaling the podium.
func RankText(rank int) string {
	switch rank {
	case 1:
		return Gold.Render("🥇 #1")
	case 2:
		return Muted.Render("🥈 #2")
	case 3:
		return Warn.Render("🥉 #3")
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// ActivityIcon maps an activity log entry type to its icon.
func ActivityIcon(entryType string) string {
	switch entryType {
	case "completion":
		return IconChart
	case "violation":
		return IconWarn
	case "journal":
		return IconJournal
	case "growth":
		return IconSparkle
	default:
		return IconScroll
	}
}
