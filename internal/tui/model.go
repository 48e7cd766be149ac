package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ruleguard/internal/engine"
	"ruleguard/internal/storage"
)

type boardModel struct {
	ctx context.Context
	eng *engine.Engine

	width  int
	height int

	progress storage.Progress
	settings storage.Settings
	rules    []storage.Rule
	recent   []storage.ActivityEntry
	badges   []engine.Badge

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	progress storage.Progress
	settings storage.Settings
	rules    []storage.Rule
	recent   []storage.ActivityEntry
	badges   []engine.Badge
}

type storeChangedMsg struct{ key string }

func newBoardModel(ctx context.Context, eng *engine.Engine) boardModel {
	return boardModel{
		ctx:     ctx,
		eng:     eng,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		entries := m.eng.ActivityLog(m.ctx)
		if len(entries) > 8 {
			entries = entries[len(entries)-8:]
		}
		return loadedMsg{
			progress: m.eng.Progress(),
			settings: m.eng.Settings(),
			rules:    m.eng.Rules(),
			recent:   entries,
			badges:   m.eng.Badges(m.ctx),
		}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.progress = msg.progress
		m.settings = msg.settings
		m.rules = msg.rules
		m.recent = msg.recent
		m.badges = msg.badges
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case storeChangedMsg:
		// Another context wrote the store: re-read, never trust the event.
		m.eng.Reload(m.ctx, msg.key)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func trimTo(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
