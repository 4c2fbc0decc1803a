// Package ui implements the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoterm/internal/config"
	"todoterm/internal/notify"
	"todoterm/internal/service"
	"todoterm/internal/tasksync"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	finishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeSignedOut
)

// syncedMsg carries the outcome of a remote operation back into the
// update loop.
type syncedMsg struct {
	outcome tasksync.Outcome
}

// noticeExpiredMsg clears the status notice after its display time.
type noticeExpiredMsg struct{}

// Model is the bubbletea model. All remote work runs in tea.Cmd
// closures; the model only ever changes state on confirmed messages.
type Model struct {
	ctx context.Context
	syn *tasksync.Syncer
	cfg *config.Config

	view    tasksync.ViewState
	cursor  int
	mode    mode
	input   textinput.Model
	spin    spinner.Model
	loading bool

	notice    notify.Notice
	hasNotice bool

	editID     string
	pendingDel *service.Task
}

// Run starts the interactive interface and blocks until the user quits
// or the session expires.
func Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer) error {
	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = 256
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:   ctx,
		syn:   syn,
		cfg:   cfg,
		input: ti,
		spin:  sp,
		mode:  modeList,
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

// Init triggers the activation refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.sync(func() tasksync.Outcome {
		return m.syn.Refresh(m.ctx)
	}))
}

// sync wraps a remote operation in a tea.Cmd.
func (m Model) sync(fn func() tasksync.Outcome) tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{outcome: fn()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncedMsg:
		return m.handleSynced(msg)
	case noticeExpiredMsg:
		m.hasNotice = false
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleSynced(msg syncedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.view = m.syn.View()
	m.cursor = clampCursor(m.cursor, len(m.view.Tasks))

	if msg.outcome.Kind == tasksync.OutcomeUnauthorized {
		m.mode = modeSignedOut
	}

	var cmd tea.Cmd
	if n, show := notify.Render(msg.outcome); show {
		m.notice = n
		m.hasNotice = true
		cmd = tea.Tick(n.Duration, func(time.Time) tea.Msg {
			return noticeExpiredMsg{}
		})
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.mode {
	case modeSignedOut:
		if key == "q" || key == "ctrl+c" || key == "enter" {
			return m, tea.Quit
		}
		return m, nil
	case modeAdd, modeEdit:
		return m.updateInputMode(key, msg)
	case modeConfirmDelete:
		return m.updateDeleteConfirm(key)
	}

	if m.view.PendingCategoryEdit != "" {
		return m.updateCategoryPicker(key)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if len(m.view.Tasks) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.view.Tasks))
	case "up", "k":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.view.Tasks))
		}
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Focus()
	case "e":
		if len(m.view.Tasks) == 0 {
			return m, nil
		}
		task := m.view.Tasks[m.cursor]
		m.mode = modeEdit
		m.editID = task.ID
		m.input.SetValue(task.Description)
		m.input.Focus()
	case " ":
		if len(m.view.Tasks) == 0 {
			return m, nil
		}
		id := m.view.Tasks[m.cursor].ID
		return m.begin(func() tasksync.Outcome {
			return m.syn.ToggleFinished(m.ctx, id)
		})
	case "d":
		if len(m.view.Tasks) == 0 {
			return m, nil
		}
		t := m.view.Tasks[m.cursor]
		m.pendingDel = &t
		m.mode = modeConfirmDelete
	case "c":
		if len(m.view.Tasks) == 0 {
			return m, nil
		}
		m.syn.StartCategoryEdit(m.view.Tasks[m.cursor].ID)
		m.view = m.syn.View()
	case "s":
		m.syn.ToggleSort()
		m.view = m.syn.View()
	case "r":
		return m.begin(func() tasksync.Outcome {
			return m.syn.Refresh(m.ctx)
		})
	case "left", "h":
		if m.view.Page > 1 {
			page := m.view.Page - 1
			return m.begin(func() tasksync.Outcome {
				return m.syn.SetPage(m.ctx, page)
			})
		}
	case "right", "l":
		if m.view.Meta.TotalPages > m.view.Page {
			page := m.view.Page + 1
			return m.begin(func() tasksync.Outcome {
				return m.syn.SetPage(m.ctx, page)
			})
		}
	}
	return m, nil
}

// begin marks the model as loading and schedules the remote operation.
func (m Model) begin(fn func() tasksync.Outcome) (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spin.Tick, m.sync(fn))
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		editing := m.mode == modeEdit
		editID := m.editID
		m.mode = modeList
		m.input.Blur()
		if editing {
			return m.begin(func() tasksync.Outcome {
				return m.syn.Rename(m.ctx, editID, text)
			})
		}
		return m.begin(func() tasksync.Outcome {
			return m.syn.Create(m.ctx, text)
		})
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.pendingDel == nil {
			m.mode = modeList
			return m, nil
		}
		id := m.pendingDel.ID
		m.pendingDel = nil
		m.mode = modeList
		return m.begin(func() tasksync.Outcome {
			return m.syn.Delete(m.ctx, id)
		})
	case "n", "N", "esc":
		m.pendingDel = nil
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

func (m Model) updateCategoryPicker(key string) (tea.Model, tea.Cmd) {
	id := m.view.PendingCategoryEdit
	switch key {
	case "esc", "c":
		m.syn.CancelCategoryEdit()
		m.view = m.syn.View()
		return m, nil
	case "1", "2", "3":
		category := int(key[0] - '0')
		return m.begin(func() tasksync.Outcome {
			return m.syn.AssignCategory(m.ctx, id, category)
		})
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.mode == modeSignedOut {
		return titleStyle.Render("todoterm") + "\n\n" +
			errorStyle.Render("session expired, please sign in again") + "\n\n" +
			helpStyle.Render("run: todoterm login\npress q to exit") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("todoterm"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("pending %d · finished %d\n\n",
		m.view.Summary.Unfinished, m.view.Summary.Finished))

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" syncing...\n")
	} else if len(m.view.Tasks) == 0 {
		b.WriteString(helpStyle.Render("no tasks"))
		b.WriteString("\n")
	} else {
		for i, t := range m.view.Tasks {
			b.WriteString(m.renderTask(i, t))
			b.WriteString("\n")
			if m.view.PendingCategoryEdit == t.ID {
				b.WriteString(categoryStyle.Render("      1 low  2 medium  3 high  esc cancel"))
				b.WriteString("\n")
			}
		}
	}

	if m.view.Meta.TotalPages > 1 {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(fmt.Sprintf("page %d of %d (%d tasks)",
			m.view.Meta.CurrentPage, m.view.Meta.TotalPages, m.view.Meta.TotalItems)))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\nNew task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("\nEdit task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeConfirmDelete:
		if m.pendingDel != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("delete %q? (y/n)", m.pendingDel.Description)))
			b.WriteString("\n")
		}
	}

	if m.hasNotice {
		b.WriteString("\n")
		if m.notice.Severity == notify.Error {
			b.WriteString(errorStyle.Render(m.notice.Message))
		} else {
			b.WriteString(infoStyle.Render(m.notice.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add · e edit · space done · d delete · c category · s sort · h/l page · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTask(i int, t service.Task) string {
	prefix := "  "
	if i == m.cursor {
		prefix = cursorStyle.Render("> ")
	}

	box := "[ ]"
	if t.Finished {
		box = "[x]"
	}
	desc := t.Description
	if strings.TrimSpace(desc) == "" {
		desc = "(untitled)"
	}
	line := fmt.Sprintf("%s %s", box, desc)
	if t.Finished {
		line = finishedStyle.Render(line)
	}
	if t.CategoryID != nil {
		name := service.CategoryName(t.CategoryID)
		line += " " + categoryStyle.Render("("+name+")")
	}
	if t.Attachment {
		line += " *"
	}
	return prefix + line
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
