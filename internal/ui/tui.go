// Package ui provides an optional terminal interface for browsing tasks.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskcli/taskcli/internal/store"
	"github.com/taskcli/taskcli/internal/task"
)

// RunTUI starts the read-only task browser over the given store. The label
// is shown in the footer, normally the task file path.
func RunTUI(ctx context.Context, st store.Store, label string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(st, label)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	store        store.Store
	label        string
	tasks        []task.Task
	loadErr      error
	filter       task.Status
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(st store.Store, label string) *tuiModel {
	return &tuiModel{
		store:        st,
		label:        label,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = task.StatusTodo
			return m, nil
		case "2":
			m.filter = task.StatusInProgress
			return m, nil
		case "3":
			m.filter = task.StatusDone
			return m, nil
		case "0":
			m.filter = ""
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.label, m.tickInterval)
		return b.String()
	}

	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.label, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.tasks)
	writeTasks(&b, task.FilterByStatus(m.tasks, m.filter))
	writeFooter(&b, m.label, m.tickInterval)
	return b.String()
}

func (m *tuiModel) refresh() {
	tasks, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	task.SortByID(tasks)
	m.tasks = tasks
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder) {
	title := "taskcli"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []task.Task) {
	counts := map[task.Status]int{}
	for _, t := range tasks {
		counts[t.Status]++
	}
	fmt.Fprintf(b, "Todo: %d  In Progress: %d  Done: %d\n\n",
		counts[task.StatusTodo],
		counts[task.StatusInProgress],
		counts[task.StatusDone],
	)
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, label string, interval time.Duration) {
	fmt.Fprintf(b, "%s | h for help | q to quit | refreshing every %s\n", label, interval)
}

func formatTask(t task.Task) string {
	statusIcon := " "
	switch t.Status {
	case task.StatusInProgress:
		statusIcon = ">"
	case task.StatusDone:
		statusIcon = "x"
	}
	return fmt.Sprintf("  [%s] %d. %s (updated %s)", statusIcon, t.ID, t.Description, t.UpdatedAt.Display())
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
