package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdial/internal/preset"
)

// applyPresetMsg asks the root model to prefill the form from a preset.
type applyPresetMsg struct {
	preset preset.Preset
}

// deletePresetMsg requests deletion of a preset.
type deletePresetMsg struct {
	name string
}

// presetsModel displays saved presets in a scrollable list.
type presetsModel struct {
	presets []preset.Preset
	cursor  int
	flash   string
}

func newPresetsModel(ps []preset.Preset) presetsModel {
	return presetsModel{presets: ps}
}

func (m presetsModel) Init() tea.Cmd {
	return nil
}

func (m presetsModel) Update(msg tea.Msg) (presetsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m presetsModel) handleKey(msg tea.KeyMsg) (presetsModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.presets) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		p := m.presets[m.cursor]
		return m, func() tea.Msg { return applyPresetMsg{preset: p} }
	}

	if msg.String() == "d" {
		name := m.presets[m.cursor].Name
		return m, func() tea.Msg { return deletePresetMsg{name: name} }
	}

	return m, nil
}

func (m presetsModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zdialAccent).Bold(true)

	s := "\n"

	if len(m.presets) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved presets") + "\n"
		s += "\n"
		// reserved flash line (empty for empty state)
		s += "\n"
		return s
	}

	for i, p := range m.presets {
		line := fmt.Sprintf("%-16s %-14s count=%-6d length=%d",
			truncate(p.Name, 16), truncate(p.Country, 14), p.Count, p.LocalLength)
		if p.Serial.Enabled {
			line += "  " + zstyle.MutedText.Render("serial")
		}

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
