package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdial/internal/country"
	"github.com/zarlcorp/zdial/internal/generate"
	"github.com/zarlcorp/zdial/internal/numplan"
	"github.com/zarlcorp/zdial/internal/preset"
	"github.com/zarlcorp/zdial/internal/serial"
)

const (
	fieldCountry = iota
	fieldCount
	fieldLength
	fieldMode
	fieldPlacement
	fieldStart
	fieldStep
	fieldStrict
	fieldFilePrefix
	fieldPresetName
	fieldTotal
)

var fieldLabels = [fieldTotal]string{
	"country",
	"count",
	"local length",
	"mode",
	"placement",
	"serial start",
	"serial step",
	"strict length",
	"file prefix",
	"preset name",
}

// genMode selects how the local part is built.
type genMode int

const (
	modeRandom genMode = iota
	modeSerial
	modeSequential
	modeFixed
	modeTotal
)

var modeNames = [modeTotal]string{
	"random",
	"serial + random",
	"sequential only",
	"fixed prefix",
}

// runPlan is a fully validated generation request ready to execute.
type runPlan struct {
	country        country.Country
	req            generate.Request
	filenamePrefix string
	warning        string
}

// startRunMsg asks the root model to execute a validated plan.
type startRunMsg struct {
	plan runPlan
}

// savePresetMsg asks the root model to persist the form as a preset.
type savePresetMsg struct {
	preset preset.Preset
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

// formModel collects the generation settings.
type formModel struct {
	inputs    [fieldTotal]textinput.Model
	focus     int
	mode      genMode
	placement serial.Placement
	strict    bool
	flash     string
	flashErr  bool
}

func newFormModel() formModel {
	var inputs [fieldTotal]textinput.Model
	for i := range fieldTotal {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = 30
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldStep].SetValue("1")
	inputs[fieldFilePrefix].SetValue("numbers")

	m := formModel{
		inputs:    inputs,
		placement: serial.PlaceSuffix,
	}
	m.inputs[m.focus].Focus()
	return m
}

// newFormModelFromPreset prefills the form from a saved preset.
func newFormModelFromPreset(p preset.Preset) formModel {
	m := newFormModel()

	m.inputs[fieldCountry].SetValue(p.Country)
	m.inputs[fieldCount].SetValue(strconv.Itoa(p.Count))
	m.inputs[fieldLength].SetValue(strconv.Itoa(p.LocalLength))
	m.inputs[fieldPresetName].SetValue(p.Name)
	if p.FilenamePrefix != "" {
		m.inputs[fieldFilePrefix].SetValue(p.FilenamePrefix)
	}
	m.strict = p.Strict

	switch {
	case !p.Serial.Enabled:
		m.mode = modeRandom
	case p.Serial.FixedPrefixLen > 0:
		m.mode = modeFixed
		m.inputs[fieldStart].SetValue(p.Serial.FixedPrefix())
	case p.Serial.SequentialOnly:
		m.mode = modeSequential
	default:
		m.mode = modeSerial
	}

	if p.Serial.Enabled && p.Serial.FixedPrefixLen == 0 {
		m.inputs[fieldStart].SetValue(strconv.FormatUint(p.Serial.Start, 10))
		m.inputs[fieldStep].SetValue(strconv.FormatUint(p.Serial.Step, 10))
		if p.Serial.Placement != "" {
			m.placement = p.Serial.Placement
		}
	}

	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

// isSelector reports whether a field cycles values instead of taking text.
func isSelector(i int) bool {
	return i == fieldMode || i == fieldPlacement || i == fieldStrict
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
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

func (m formModel) handleKey(msg tea.KeyMsg) (formModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "tab":
		return m.moveFocus(1), textinput.Blink

	case "shift+tab":
		return m.moveFocus(-1), textinput.Blink

	case "ctrl+s":
		return m.savePreset()
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.submit()
	}

	if msg.String() == " " && isSelector(m.focus) {
		return m.cycleSelector(), nil
	}

	if isSelector(m.focus) {
		return m, nil
	}

	return m.updateInput(msg)
}

func (m formModel) moveFocus(delta int) formModel {
	if !isSelector(m.focus) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus + delta + fieldTotal) % fieldTotal
	if !isSelector(m.focus) {
		m.inputs[m.focus].Focus()
	}
	return m
}

func (m formModel) cycleSelector() formModel {
	switch m.focus {
	case fieldMode:
		m.mode = (m.mode + 1) % modeTotal
	case fieldPlacement:
		if m.placement == serial.PlaceSuffix {
			m.placement = serial.PlacePrefix
		} else {
			m.placement = serial.PlaceSuffix
		}
	case fieldStrict:
		m.strict = !m.strict
	}
	return m
}

func (m formModel) updateInput(msg tea.Msg) (formModel, tea.Cmd) {
	if isSelector(m.focus) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) failFlash(text string) (formModel, tea.Cmd) {
	m.flash = text
	m.flashErr = true
	return m, clearFlashAfter()
}

// serialConfig builds the serial configuration from the form state.
func (m formModel) serialConfig() (serial.Config, error) {
	startText := strings.TrimSpace(m.inputs[fieldStart].Value())
	stepText := strings.TrimSpace(m.inputs[fieldStep].Value())

	if m.mode == modeRandom {
		return serial.Config{}, nil
	}

	var start uint64
	if startText != "" {
		v, err := strconv.ParseUint(startText, 10, 64)
		if err != nil {
			return serial.Config{}, fmt.Errorf("serial start must be digits")
		}
		start = v
	}

	if m.mode == modeFixed {
		if startText == "" {
			return serial.Config{}, fmt.Errorf("fixed prefix digits are required")
		}
		return serial.Config{
			Enabled:        true,
			Start:          start,
			FixedPrefixLen: len(startText),
		}, nil
	}

	step := uint64(1)
	if stepText != "" {
		v, err := strconv.ParseUint(stepText, 10, 64)
		if err != nil {
			return serial.Config{}, fmt.Errorf("serial step must be digits")
		}
		step = v
	}

	return serial.Config{
		Enabled:        true,
		Placement:      m.placement,
		Start:          start,
		Step:           step,
		SequentialOnly: m.mode == modeSequential,
	}, nil
}

func (m formModel) submit() (formModel, tea.Cmd) {
	countryText := strings.TrimSpace(m.inputs[fieldCountry].Value())
	if countryText == "" {
		return m.failFlash("country is required")
	}

	c, err := country.Resolve(countryText)
	if err != nil {
		return m.failFlash(err.Error())
	}

	count, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldCount].Value()))
	if err != nil || count <= 0 {
		return m.failFlash("count must be a positive integer")
	}

	length, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldLength].Value()))
	if err != nil || length <= 0 {
		return m.failFlash("local length must be a positive integer")
	}

	cfg, err := m.serialConfig()
	if err != nil {
		return m.failFlash(err.Error())
	}
	if err := cfg.Validate(length); err != nil {
		return m.failFlash(err.Error())
	}

	var warning string
	if adv := numplan.AdviseLength(c.Region, length); adv.Atypical {
		if m.strict {
			return m.failFlash(adv.Err(c.Region, length).Error())
		}
		warning = fmt.Sprintf("length %d looks atypical for %s", length, c.Region)
		if adv.Hint != "" {
			warning += "; " + adv.Hint
		}
	}

	plan := runPlan{
		country: c,
		req: generate.Request{
			Region:      c.Region,
			CallingCode: c.CallingCode,
			Count:       count,
			LocalLength: length,
			Serial:      cfg,
		},
		filenamePrefix: strings.TrimSpace(m.inputs[fieldFilePrefix].Value()),
		warning:        warning,
	}

	return m, func() tea.Msg { return startRunMsg{plan: plan} }
}

func (m formModel) savePreset() (formModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldPresetName].Value())
	if name == "" {
		return m.failFlash("preset name is required")
	}

	countryText := strings.TrimSpace(m.inputs[fieldCountry].Value())
	if countryText == "" {
		return m.failFlash("country is required")
	}

	count, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldCount].Value()))
	length, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldLength].Value()))

	cfg, err := m.serialConfig()
	if err != nil {
		return m.failFlash(err.Error())
	}

	p := preset.Preset{
		Name:           name,
		Country:        countryText,
		Count:          count,
		LocalLength:    length,
		Serial:         cfg,
		Strict:         m.strict,
		FilenamePrefix: strings.TrimSpace(m.inputs[fieldFilePrefix].Value()),
		CreatedAt:      time.Now().UTC(),
	}

	return m, func() tea.Msg { return savePresetMsg{preset: p} }
}

// selectorValue renders the current value of a cycle field.
func (m formModel) selectorValue(i int) string {
	switch i {
	case fieldMode:
		return modeNames[m.mode]
	case fieldPlacement:
		return string(m.placement)
	case fieldStrict:
		if m.strict {
			return "on"
		}
		return "off"
	}
	return ""
}

func (m formModel) View() string {
	s := "\n"

	for i := range fieldTotal {
		// placement, start and step only matter in serial modes
		if m.mode == modeRandom && (i == fieldPlacement || i == fieldStart || i == fieldStep) {
			continue
		}
		if m.mode == modeFixed && (i == fieldPlacement || i == fieldStep) {
			continue
		}

		label := zstyle.MutedText.Render(fmt.Sprintf("  %-14s", fieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}

		var fieldView string
		if isSelector(i) {
			fieldView = m.selectorValue(i) + " " + zstyle.MutedText.Render("[space to cycle]")
		} else {
			fieldView = m.inputs[i].View()
		}

		s += fmt.Sprintf("  %s%s %s\n", cursor, label, fieldView)
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
