// Package tui is an interactive todo browser. Its Update loop owns the
// receiving half of a result channel and polls it once per frame; with a
// cooperative dispatcher the same loop is the host that runs dispatch work.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/dispatch"
	"todos/internal/output"
	"todos/internal/service"
)

// FrameInterval is how often the model polls for results.
const FrameInterval = 100 * time.Millisecond

type mode int

const (
	browsing mode = iota
	enteringTitle
	enteringContent
)

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Model is the bubbletea model.
type Model struct {
	d    dispatch.Dispatcher
	pump dispatch.Pumper // nil unless d runs on this loop
	tx   *dispatch.Sender
	rx   *dispatch.Receiver

	todos    []service.Todo
	inflight int
	banner   string // last error
	notice   string // last success message

	mode       mode
	draftTitle string
	input      textinput.Model
	spinner    spinner.Model
}

// New creates a model and dispatches the initial fetch.
func New(d dispatch.Dispatcher) Model {
	tx, rx := dispatch.NewChannel()
	m := Model{
		d:       d,
		tx:      tx,
		rx:      rx,
		input:   textinput.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if p, ok := d.(dispatch.Pumper); ok {
		m.pump = p
	}
	m.input.Prompt = "> "
	m.input.CharLimit = 200
	m.spinner.Style = pendingStyle

	m.d.FetchTodos(m.tx)
	m.inflight++
	return m
}

// Run starts the program on out and blocks until the user quits.
func Run(ctx context.Context, d dispatch.Dispatcher, out io.Writer) error {
	m := New(d)
	defer m.rx.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(nextFrame(), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m = m.poll()
		return m, nextFrame()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.mode != browsing {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// poll runs ready dispatch work and applies every queued result.
func (m Model) poll() Model {
	if m.pump != nil {
		m.pump.RunPending()
	}
	for {
		res, ok := m.rx.TryRecv()
		if !ok {
			return m
		}
		m = m.apply(res)
	}
}

func (m Model) apply(res dispatch.Result) Model {
	if m.inflight > 0 {
		m.inflight--
	}
	switch r := res.(type) {
	case dispatch.ListResult:
		if r.Err != nil {
			m.banner = describe(r.Err)
			return m
		}
		m.todos = r.Todos
		m.banner = ""
	case dispatch.CreateResult:
		if r.Err != nil {
			m.banner = describe(r.Err)
			return m
		}
		m.todos = append(m.todos, r.Todo)
		m.banner = ""
		m.notice = "created " + output.NormalizeTitle(r.Todo.Title)
	}
	return m
}

func describe(err error) string {
	switch service.KindOf(err) {
	case service.KindBadRequest:
		return "rejected by server: " + err.Error()
	default:
		return "network error: " + err.Error()
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.d.FetchTodos(m.tx)
		m.inflight++
		m.notice = ""
		return m, nil
	case "a":
		m.mode = enteringTitle
		m.notice = ""
		m.input.SetValue("")
		m.input.Placeholder = "Title..."
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = browsing
		m.draftTitle = ""
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.mode == enteringTitle {
			if value == "" {
				m.banner = "title cannot be empty"
				return m, nil
			}
			m.draftTitle = value
			m.mode = enteringContent
			m.input.SetValue("")
			m.input.Placeholder = "Content..."
			m.banner = ""
			return m, nil
		}
		if value == "" {
			m.banner = "content cannot be empty"
			return m, nil
		}
		m.d.CreateTodo(service.NewTodo(m.draftTitle, value), m.tx)
		m.inflight++
		m.mode = browsing
		m.draftTitle = ""
		m.banner = ""
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	done := 0
	for _, t := range m.todos {
		if t.IsCompleted() {
			done++
		}
	}
	fmt.Fprintf(&b, "%s   %s %d  %s %d\n",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(m.todos)-done,
	)
	if m.inflight > 0 {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), mutedStyle.Render(fmt.Sprintf("%d request(s) in flight", m.inflight)))
	}
	b.WriteString("\n")

	if len(m.todos) == 0 && m.inflight == 0 {
		b.WriteString(mutedStyle.Render("no todos found") + "\n")
	}
	for _, t := range m.todos {
		title := output.NormalizeTitle(t.Title)
		if t.IsCompleted() {
			title = doneStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s %s\n", output.Box(t), title)
	}

	if m.banner != "" {
		b.WriteString("\n" + errorStyle.Render("✖ "+m.banner) + "\n")
	} else if m.notice != "" {
		b.WriteString("\n" + successStyle.Render("✔ "+m.notice) + "\n")
	}

	switch m.mode {
	case enteringTitle:
		b.WriteString("\n" + panelStyle.Render("New todo: title\n"+m.input.View()) + "\n")
	case enteringContent:
		b.WriteString("\n" + panelStyle.Render("New todo: content for "+m.draftTitle+"\n"+m.input.View()) + "\n")
	default:
		b.WriteString("\n" + helpStyle.Render("a add • r refresh • q quit") + "\n")
	}
	return panelStyle.Render(b.String())
}
