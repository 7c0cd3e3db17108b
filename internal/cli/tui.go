package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/slidelinker/pkg/pipeline"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const defaultBarWidth = 40

type progressMsg progress.Event

type exportDoneMsg struct {
	res *pipeline.Result
	err error
}

// exportModel is the bubbletea model showing export progress.
type exportModel struct {
	title     string
	events    <-chan progress.Event
	done      <-chan exportDoneMsg
	current   progress.Event
	result    *pipeline.Result
	err       error
	cancelled bool
	width     int
}

func newExportModel(title string, events <-chan progress.Event, done <-chan exportDoneMsg) exportModel {
	return exportModel{title: title, events: events, done: done, width: defaultBarWidth}
}

func (m exportModel) Init() tea.Cmd {
	return tea.Batch(waitEvent(m.events), waitDone(m.done))
}

func waitEvent(ch <-chan progress.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(e)
	}
}

func waitDone(ch <-chan exportDoneMsg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func (m exportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.current = progress.Event(msg)
		return m, waitEvent(m.events)
	case exportDoneMsg:
		m.result, m.err = msg.res, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 20
		if m.width > defaultBarWidth {
			m.width = defaultBarWidth
		}
		if m.width < 10 {
			m.width = 10
		}
	}
	return m, nil
}

func (m exportModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(renderBar(m.current.Fraction(), m.width))
	if m.current.Total > 0 {
		b.WriteString(StyleNumber.Render(fmt.Sprintf(" %d/%d", m.current.Current, m.current.Total)))
	}
	b.WriteString("\n")
	if m.current.Message != "" {
		b.WriteString(StyleDim.Render("  " + m.current.Message))
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("q cancel"))
	b.WriteString("\n")
	return b.String()
}

// renderBar draws a fixed-width bar for a fraction in [0, 1].
func renderBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// runExportTUI executes the export while a progress view runs in the
// terminal. Quitting the view cancels the export.
func runExportTUI(ctx context.Context, runner *pipeline.Runner, p *project.Project, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := progress.NewChan(64)
	done := make(chan exportDoneMsg, 1)
	runner.Progress = events

	go func() {
		res, err := runner.Execute(ctx, p, opts)
		close(events)
		done <- exportDoneMsg{res, err}
	}()

	title := fmt.Sprintf("Exporting %s", opts.Format)
	final, err := tea.NewProgram(newExportModel(title, events, done), tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}

	m := final.(exportModel)
	if m.cancelled {
		return nil, context.Canceled
	}
	return m.result, m.err
}
