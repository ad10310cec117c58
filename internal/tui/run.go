package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdial/internal/export"
	"github.com/zarlcorp/zdial/internal/generate"
	"github.com/zarlcorp/zdial/internal/numplan"
)

// runProgressMsg reports generation progress.
type runProgressMsg struct {
	valid    int
	attempts int
}

// runDoneMsg carries the outcome of a finished run.
type runDoneMsg struct {
	result generate.Result
	path   string
	err    error
}

// runModel shows a spinner while generation executes in the background.
type runModel struct {
	plan     runPlan
	spinner  spinner.Model
	valid    int
	attempts int
	ch       chan tea.Msg
}

func newRunModel(plan runPlan) runModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(zdialAccent)

	return runModel{
		plan:    plan,
		spinner: sp,
		ch:      make(chan tea.Msg),
	}
}

func (m runModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start(), m.wait())
}

// start executes the plan and streams progress over the channel. The
// final runDoneMsg also travels the channel so no waiter is left
// blocked after completion.
func (m runModel) start() tea.Cmd {
	plan := m.plan
	ch := m.ch
	return func() tea.Msg {
		res, err := generate.Run(plan.req, numplan.Plan{}, func(valid, attempts int) {
			ch <- runProgressMsg{valid: valid, attempts: attempts}
		})
		if err != nil {
			ch <- runDoneMsg{err: err}
			return nil
		}

		name := export.Filename(plan.filenamePrefix, plan.req.Region, plan.req.CallingCode, time.Now())
		fsys := zfilesystem.NewOSFileSystem(".")
		if err := export.Write(fsys, name, res.Records); err != nil {
			ch <- runDoneMsg{result: res, err: err}
			return nil
		}

		ch <- runDoneMsg{result: res, path: name}
		return nil
	}
}

// wait delivers the next message from the run channel. The root model
// re-issues it after every progress message.
func (m runModel) wait() tea.Cmd {
	ch := m.ch
	return func() tea.Msg { return <-ch }
}

func (m runModel) Update(msg tea.Msg) (runModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		return m, nil

	case runProgressMsg:
		m.valid = msg.valid
		m.attempts = msg.attempts
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m runModel) View() string {
	s := "\n"
	s += fmt.Sprintf("  %s generating %d numbers for %s (+%d)\n",
		m.spinner.View(), m.plan.req.Count, m.plan.country.Name, m.plan.country.CallingCode)
	s += "\n"
	s += "  " + zstyle.MutedText.Render(
		fmt.Sprintf("valid: %d/%d  attempts: %d", m.valid, m.plan.req.Count, m.attempts)) + "\n"

	if m.plan.warning != "" {
		s += "\n  " + zstyle.StatusWarn.Render("warning: "+m.plan.warning) + "\n"
	}

	return s
}

// resultModel shows the outcome of a completed run.
type resultModel struct {
	plan   runPlan
	result generate.Result
	path   string
	err    error
	flash  string
}

func newResultModel(plan runPlan, done runDoneMsg) resultModel {
	return resultModel{
		plan:   plan,
		result: done.result,
		path:   done.path,
		err:    done.err,
	}
}

func (m resultModel) Init() tea.Cmd {
	return nil
}

func (m resultModel) Update(msg tea.Msg) (resultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m resultModel) handleKey(msg tea.KeyMsg) (resultModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "c":
		if err := copyToClipboard(m.numbersText()); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()

	case "n":
		return m, func() tea.Msg { return navigateMsg{view: viewForm} }
	}

	return m, nil
}

func (m resultModel) numbersText() string {
	var b strings.Builder
	for _, r := range m.result.Records {
		b.WriteString(r.E164 + "\n")
	}
	return b.String()
}

func (m resultModel) View() string {
	s := "\n"

	if m.err != nil {
		s += "  " + zstyle.StatusErr.Render("generation failed: "+m.err.Error()) + "\n"
		s += "\n\n"
		return s
	}

	if m.result.Partial {
		s += "  " + zstyle.StatusWarn.Render(fmt.Sprintf(
			"attempt limit reached: %d of %d numbers generated", len(m.result.Records), m.plan.req.Count)) + "\n"
	} else {
		s += "  " + zstyle.StatusOK.Render(fmt.Sprintf(
			"generated %d numbers", len(m.result.Records))) + "\n"
	}

	s += "\n"
	label := zstyle.MutedText.Render

	s += fmt.Sprintf("    %s %s (%s, +%d)\n", label("country "), m.plan.country.Name, m.plan.country.Region, m.plan.country.CallingCode)
	s += fmt.Sprintf("    %s %d\n", label("attempts"), m.result.Attempts)
	s += fmt.Sprintf("    %s %s\n", label("csv file"), m.path)

	// preview the first few numbers
	n := len(m.result.Records)
	if n > 5 {
		n = 5
	}
	if n > 0 {
		s += "\n"
		for _, r := range m.result.Records[:n] {
			s += "      " + r.E164 + "\n"
		}
		if len(m.result.Records) > n {
			s += "      " + zstyle.MutedText.Render(fmt.Sprintf("… and %d more", len(m.result.Records)-n)) + "\n"
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
