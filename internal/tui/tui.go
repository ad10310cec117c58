// Package tui implements the root Bubble Tea model for zdial.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdial/internal/preset"
)

// zdialAccent is the accent color used across views.
var zdialAccent = lipgloss.Color("39")

type viewID int

const (
	viewMenu viewID = iota
	viewForm
	viewRunning
	viewResult
	viewExport
	viewPresets
)

// Model is the root TUI model.
type Model struct {
	version string
	store   *preset.Store

	active  viewID
	menu    menuModel
	form    formModel
	run     runModel
	result  resultModel
	export  exportModel
	presets presetsModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version string, store *preset.Store) Model {
	return Model{
		version: version,
		store:   store,
		active:  viewMenu,
		menu:    newMenuModel(version),
		form:    newFormModel(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case startRunMsg:
		m.run = newRunModel(msg.plan)
		m.active = viewRunning
		return m, m.run.Init()

	case runProgressMsg:
		m.run, _ = m.run.Update(msg)
		return m, m.run.wait()

	case runDoneMsg:
		m.result = newResultModel(m.run.plan, msg)
		m.active = viewResult
		return m, nil

	case savePresetMsg:
		return m.handleSavePreset(msg.preset)

	case applyPresetMsg:
		m.form = newFormModelFromPreset(msg.preset)
		m.active = viewForm
		return m, tea.Batch(m.form.Init(), tea.ClearScreen)

	case deletePresetMsg:
		return m.handleDeletePreset(msg.name)
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// the menu includes the logo and renders directly
	if m.active == viewMenu {
		return m.menu.View()
	}

	// all other views: header + separator + content + footer
	var content string
	switch m.active {
	case viewForm:
		content = m.form.View()
	case viewRunning:
		content = m.run.View()
	case viewResult:
		content = m.result.View()
	case viewExport:
		content = m.export.View()
	case viewPresets:
		content = m.presets.View()
	}

	header := zstyle.RenderHeader("zdial", viewTitle(m.active), zdialAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewForm:
		return "Generate Numbers"
	case viewRunning:
		return "Generating"
	case viewResult:
		return "Result"
	case viewExport:
		return "Export Numbers"
	case viewPresets:
		return "Saved Presets"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "space", Desc: "cycle"},
			{Key: "enter", Desc: "generate"},
			{Key: "ctrl+s", Desc: "save preset"},
			{Key: "esc", Desc: "back"},
		}
	case viewRunning:
		return []zstyle.HelpPair{
			{Key: "q", Desc: "quit"},
		}
	case viewResult:
		return []zstyle.HelpPair{
			{Key: "c", Desc: "copy numbers"},
			{Key: "n", Desc: "new run"},
			{Key: "esc", Desc: "menu"},
			{Key: "q", Desc: "quit"},
		}
	case viewExport:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "export"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewPresets:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "apply"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewForm:
		m.form, cmd = m.form.Update(msg)
	case viewRunning:
		m.run, cmd = m.run.Update(msg)
	case viewResult:
		m.result, cmd = m.result.Update(msg)
	case viewExport:
		m.export, cmd = m.export.Update(msg)
	case viewPresets:
		m.presets, cmd = m.presets.Update(msg)
	}

	return m, cmd
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		if m.store != nil {
			if ps, err := m.store.List(); err == nil {
				mm.presetCount = len(ps)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewForm:
		// keep the form state so a new run starts from the last config
		m.active = viewForm
		return m, tea.Batch(m.form.Init(), tea.ClearScreen)

	case viewExport:
		m.export = newExportModel()
		m.active = viewExport
		return m, tea.Batch(m.export.Init(), tea.ClearScreen)

	case viewPresets:
		return m.loadPresets()
	}

	return m, nil
}

func (m Model) loadPresets() (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.presets = newPresetsModel(nil)
		m.presets.flash = "preset store unavailable"
		m.active = viewPresets
		return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)
	}

	ps, err := m.store.List()
	if err != nil {
		m.presets = newPresetsModel(nil)
		m.presets.flash = "load: " + err.Error()
		m.active = viewPresets
		return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)
	}

	m.presets = newPresetsModel(ps)
	m.active = viewPresets
	return m, tea.ClearScreen
}

func (m Model) handleSavePreset(p preset.Preset) (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.form.flash = "preset store unavailable"
		return m, clearFlashAfter()
	}

	if err := m.store.Save(p); err != nil {
		m.form.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.form.flash = "saved preset " + p.Name
	return m, clearFlashAfter()
}

func (m Model) handleDeletePreset(name string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}

	if err := m.store.Delete(name); err != nil {
		m.presets.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	// reload the list after delete
	return m.loadPresets()
}
