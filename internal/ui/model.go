package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todomaster/internal/accounts"
	"todomaster/internal/service"
	"todomaster/internal/tasks"
)

const barWidth = 30

type screen int

const (
	authScreen screen = iota
	taskScreen
)

// Model is the bubbletea model for the two-screen app. Every key event runs
// its facade call synchronously and replaces the held State with the result.
type Model struct {
	ctx    context.Context
	svc    service.Service
	st     service.State
	styles Styles

	screen   screen
	register bool // auth screen mode; false means login
	focus    int  // 0 username, 1 password

	username textinput.Model
	password textinput.Model
	newTask  textinput.Model

	cursor int
	alert  string
}

// New returns a Model showing the task screen when st is logged in and the
// auth screen otherwise.
func New(ctx context.Context, svc service.Service, st service.State) *Model {
	styles := DefaultStyles()

	username := textinput.New()
	username.Placeholder = "Username"
	username.Prompt = "> "
	username.PromptStyle = styles.Cursor

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = "> "
	password.PromptStyle = styles.Cursor
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	newTask := textinput.New()
	newTask.Placeholder = "What needs to be done?"
	newTask.Prompt = "+ "
	newTask.PromptStyle = styles.Cursor
	newTask.CharLimit = 512

	m := &Model{
		ctx:      ctx,
		svc:      svc,
		styles:   styles,
		username: username,
		password: password,
		newTask:  newTask,
	}
	m.setState(st)
	return m
}

// State returns the session state the model currently holds.
func (m *Model) State() service.State { return m.st }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInputs(msg)
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.screen == authScreen {
		return m, m.updateAuth(key)
	}
	return m, m.updateTasks(key)
}

func (m *Model) updateAuth(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyTab:
		m.register = !m.register
		m.resetAuthForm()
		return nil
	case tea.KeyUp, tea.KeyShiftTab:
		m.focusField(0)
		return nil
	case tea.KeyDown:
		m.focusField(1)
		return nil
	case tea.KeyEnter:
		if m.focus == 0 {
			m.focusField(1)
			return nil
		}
		m.submitAuth()
		return nil
	}
	return m.updateInputs(key)
}

func (m *Model) submitAuth() {
	var (
		st  service.State
		err error
	)
	if m.register {
		st, err = m.svc.Register(m.ctx, m.username.Value(), m.password.Value())
	} else {
		st, err = m.svc.Login(m.ctx, m.username.Value(), m.password.Value())
	}
	if err != nil {
		m.alert = alertText(err)
		return
	}
	m.setState(st)
}

func (m *Model) updateTasks(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEnter:
		m.apply(m.svc.AddTask(m.ctx, m.st, m.newTask.Value()))
		if m.alert == "" {
			m.newTask.Reset()
		}
		return nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case tea.KeyDown:
		if m.cursor < len(m.st.Tasks)-1 {
			m.cursor++
		}
		return nil
	case tea.KeySpace:
		// Space belongs to the input while a task is being typed.
		if m.newTask.Value() != "" {
			break
		}
		if t, ok := m.selected(); ok {
			m.apply(m.svc.ToggleTask(m.ctx, m.st, t.ID))
		}
		return nil
	case tea.KeyCtrlD:
		if t, ok := m.selected(); ok {
			m.apply(m.svc.DeleteTask(m.ctx, m.st, t.ID))
		}
		return nil
	case tea.KeyCtrlL:
		st, err := m.svc.Logout(m.ctx, m.st)
		if err != nil {
			m.alert = alertText(err)
			return nil
		}
		m.setState(st)
		return nil
	}
	return m.updateInputs(key)
}

func (m *Model) apply(st service.State, err error) {
	if err != nil {
		m.alert = alertText(err)
		return
	}
	m.alert = ""
	m.st = st
	m.clampCursor()
}

func (m *Model) setState(st service.State) {
	m.st = st
	m.alert = ""
	m.cursor = 0
	if st.LoggedIn() {
		m.screen = taskScreen
		m.username.Blur()
		m.password.Blur()
		m.newTask.Reset()
		m.newTask.Focus()
		return
	}
	m.screen = authScreen
	m.newTask.Blur()
	m.register = false
	m.resetAuthForm()
}

func (m *Model) resetAuthForm() {
	m.username.Reset()
	m.password.Reset()
	m.alert = ""
	m.focusField(0)
}

func (m *Model) focusField(i int) {
	m.focus = i
	if i == 0 {
		m.password.Blur()
		m.username.Focus()
		return
	}
	m.username.Blur()
	m.password.Focus()
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds [2]tea.Cmd
	if m.screen == authScreen {
		m.username, cmds[0] = m.username.Update(msg)
		m.password, cmds[1] = m.password.Update(msg)
	} else {
		m.newTask, cmds[0] = m.newTask.Update(msg)
	}
	return tea.Batch(cmds[:]...)
}

func (m *Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.st.Tasks) {
		return service.Task{}, false
	}
	return m.st.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.st.Tasks) {
		m.cursor = len(m.st.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func alertText(err error) string {
	switch {
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return "Invalid credentials!"
	case errors.Is(err, accounts.ErrUsernameTaken):
		return "Username already exists!"
	default:
		return err.Error()
	}
}

func (m *Model) View() string {
	if m.screen == authScreen {
		return m.authView()
	}
	return m.taskView()
}

func (m *Model) authView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("✨ TodoMaster"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Organize your tasks"))
	b.WriteString("\n\n")

	login, register := m.styles.ActiveTab, m.styles.Tab
	if m.register {
		login, register = register, login
	}
	b.WriteString(login.Render("Login") + " " + register.Render("Register"))
	b.WriteString("\n\n")

	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.alert != "" {
		b.WriteString(m.styles.Alert.Render(m.alert))
		b.WriteString("\n\n")
	}

	action := "login"
	if m.register {
		action = "register"
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("enter: %s • tab: switch mode • ctrl+c: quit", action)))
	return m.styles.Box.Render(b.String()) + "\n"
}

func (m *Model) taskView() string {
	var b strings.Builder
	stats := tasks.Summarize(m.st.Tasks)

	b.WriteString(m.styles.Title.Render("Vibrant"))
	b.WriteString("  ")
	fmt.Fprintf(&b, "Welcome, %s!", m.st.User)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%d of %d tasks completed", stats.Completed, stats.Total)
	b.WriteString("\n")
	b.WriteString(m.progressBar(stats))
	b.WriteString("\n\n")

	b.WriteString(m.newTask.View())
	b.WriteString("\n\n")

	if len(m.st.Tasks) == 0 {
		b.WriteString(m.styles.Title.Render("No tasks yet!"))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Add a task above to get started."))
		b.WriteString("\n")
	}
	for i, t := range m.st.Tasks {
		pointer := "  "
		if i == m.cursor {
			pointer = m.styles.Cursor.Render("> ")
		}
		box, text := "[ ]", t.Text
		if t.Completed {
			box, text = "[x]", m.styles.Done.Render(t.Text)
		}
		b.WriteString(pointer + box + " " + text + "\n")
	}

	if len(m.st.Tasks) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Stat.Render(fmt.Sprintf("%d Total", stats.Total)))
		b.WriteString(m.styles.Stat.Render(fmt.Sprintf("%d Completed", stats.Completed)))
		b.WriteString(m.styles.Stat.Render(fmt.Sprintf("%d Pending", stats.Pending)))
		b.WriteString("\n")
	}

	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Alert.Render(m.alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter: add • ↑/↓: move • space: toggle • ctrl+d: delete • ctrl+l: logout • ctrl+c: quit"))
	return m.styles.Box.Render(b.String()) + "\n"
}

func (m *Model) progressBar(stats service.Stats) string {
	filled := int(stats.Percent() / 100 * barWidth)
	return m.styles.BarFill.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}
