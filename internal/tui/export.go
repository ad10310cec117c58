package tui

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdial/internal/extract"
)

const (
	exportFieldInput = iota
	exportFieldOutput
	exportFieldTotal
)

var exportFieldLabels = [exportFieldTotal]string{
	"csv file",
	"output file",
}

// exportModel pulls the e164_number column out of a CSV file.
type exportModel struct {
	inputs   [exportFieldTotal]textinput.Model
	focus    int
	flash    string
	flashErr bool
}

func newExportModel() exportModel {
	var inputs [exportFieldTotal]textinput.Model
	for i := range exportFieldTotal {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[exportFieldOutput].Placeholder = extract.DefaultOutput + " beside the input"

	m := exportModel{inputs: inputs}
	m.inputs[m.focus].Focus()
	return m
}

func (m exportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exportModel) Update(msg tea.Msg) (exportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		m.flashErr = false
		return m, nil
	}

	return m.updateInput(msg)
}

func (m exportModel) handleKey(msg tea.KeyMsg) (exportModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % exportFieldTotal
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.run()
	}

	return m.updateInput(msg)
}

func (m exportModel) updateInput(msg tea.Msg) (exportModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m exportModel) run() (exportModel, tea.Cmd) {
	csvPath := strings.TrimSpace(m.inputs[exportFieldInput].Value())
	if csvPath == "" {
		m.flash = "csv path is required"
		m.flashErr = true
		return m, clearFlashAfter()
	}

	in, err := os.Open(csvPath)
	if err != nil {
		m.flash = err.Error()
		m.flashErr = true
		return m, clearFlashAfter()
	}
	defer in.Close()

	// extract into memory first so a failure leaves no output file behind
	var buf bytes.Buffer
	n, err := extract.Extract(in, &buf)
	if err != nil {
		m.flash = err.Error()
		m.flashErr = true
		return m, clearFlashAfter()
	}

	outPath := extract.OutputPath(csvPath, strings.TrimSpace(m.inputs[exportFieldOutput].Value()))
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		m.flash = err.Error()
		m.flashErr = true
		return m, clearFlashAfter()
	}

	m.flash = fmt.Sprintf("exported %d numbers to %s", n, outPath)
	return m, clearFlashAfter()
}

func (m exportModel) View() string {
	s := "\n"

	for i := range exportFieldTotal {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-12s", exportFieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.flash != "" && m.flashErr:
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	case m.flash != "":
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	default:
		s += "\n"
	}

	return s
}
