package ui

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todomaster/internal/service"
	"todomaster/internal/store"
	"todomaster/internal/testutil"
)

func typeText(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func newLoggedIn(t *testing.T, texts ...string) (*Model, service.Service) {
	t.Helper()
	ctx := context.Background()
	svc := testutil.NewService(nil)
	st, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	for _, text := range texts {
		st, err = svc.AddTask(ctx, st, text)
		require.NoError(t, err)
	}
	return New(ctx, svc, st), svc
}

func TestAuthScreen_RegisterFlow(t *testing.T) {
	svc := testutil.NewService(nil)
	m := New(context.Background(), svc, service.State{})
	assert.Contains(t, m.View(), "Login")
	assert.Contains(t, m.View(), "TodoMaster")
	assert.NotContains(t, m.View(), "Vibrant")

	press(m, tea.KeyTab)
	assert.True(t, m.register)

	typeText(m, "alice")
	press(m, tea.KeyEnter) // moves to password
	typeText(m, "pw1")
	press(m, tea.KeyEnter)

	assert.Equal(t, taskScreen, m.screen)
	assert.Equal(t, "alice", m.State().User)
	assert.Contains(t, m.View(), "Welcome, alice!")
	assert.Contains(t, m.View(), "Vibrant")
	assert.Contains(t, m.View(), "No tasks yet!")
}

func TestAuthScreen_InvalidCredentialsAlert(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewService(nil)
	_, err := svc.Register(ctx, "bob", "x")
	require.NoError(t, err)

	m := New(ctx, svc, service.State{})
	typeText(m, "bob")
	press(m, tea.KeyEnter)
	typeText(m, "y")
	press(m, tea.KeyEnter)

	assert.Equal(t, authScreen, m.screen)
	assert.Contains(t, m.View(), "Invalid credentials!")
}

func TestAuthScreen_DuplicateAlert(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewService(nil)
	_, err := svc.Register(ctx, "bob", "x")
	require.NoError(t, err)

	m := New(ctx, svc, service.State{})
	press(m, tea.KeyTab)
	typeText(m, "bob")
	press(m, tea.KeyEnter)
	typeText(m, "y")
	press(m, tea.KeyEnter)

	assert.Contains(t, m.View(), "Username already exists!")
}

func TestAuthScreen_TabClearsInputs(t *testing.T) {
	m := New(context.Background(), testutil.NewService(nil), service.State{})
	typeText(m, "alice")
	press(m, tea.KeyTab)

	assert.Empty(t, m.username.Value())
	assert.Empty(t, m.password.Value())
	assert.Equal(t, 0, m.focus)
}

func TestTaskScreen_AddToggleDelete(t *testing.T) {
	m, _ := newLoggedIn(t)

	typeText(m, "Buy milk")
	press(m, tea.KeyEnter)
	require.Len(t, m.State().Tasks, 1)
	assert.Equal(t, "Buy milk", m.State().Tasks[0].Text)
	assert.Empty(t, m.newTask.Value())
	assert.Contains(t, m.View(), "0 of 1 tasks completed")

	press(m, tea.KeySpace)
	assert.True(t, m.State().Tasks[0].Completed)
	assert.Contains(t, m.View(), "1 of 1 tasks completed")
	assert.Contains(t, m.View(), "1 Completed")

	press(m, tea.KeyCtrlD)
	assert.Empty(t, m.State().Tasks)
	assert.Contains(t, m.View(), "No tasks yet!")
}

func TestTaskScreen_BlankAddIgnored(t *testing.T) {
	m, _ := newLoggedIn(t)
	typeText(m, "   ")
	press(m, tea.KeyEnter)
	assert.Empty(t, m.State().Tasks)
}

func TestTaskScreen_CursorMovesAndClamps(t *testing.T) {
	m, _ := newLoggedIn(t, "one", "two")

	press(m, tea.KeyUp)
	assert.Equal(t, 0, m.cursor)
	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	assert.Equal(t, 1, m.cursor)

	press(m, tea.KeySpace)
	assert.True(t, m.State().Tasks[1].Completed)
	assert.False(t, m.State().Tasks[0].Completed)

	press(m, tea.KeyCtrlD)
	require.Len(t, m.State().Tasks, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestTaskScreen_Logout(t *testing.T) {
	m, svc := newLoggedIn(t, "one")
	press(m, tea.KeyCtrlL)

	assert.Equal(t, authScreen, m.screen)
	assert.False(t, m.State().LoggedIn())

	st, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, st.LoggedIn())
}

func TestTaskScreen_StoreErrorShownInline(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewFailingStore(store.NewMemory())
	svc := testutil.NewService(kv)
	st, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	m := New(ctx, svc, st)
	kv.FailSet("todos_alice")
	typeText(m, "Buy milk")
	press(m, tea.KeyEnter)

	assert.Empty(t, m.State().Tasks)
	assert.Equal(t, "Buy milk", m.newTask.Value(), "input kept for retry")
	assert.Contains(t, m.View(), testutil.ErrInjected.Error())
}

func TestCtrlCQuits(t *testing.T) {
	m := New(context.Background(), testutil.NewService(nil), service.State{})
	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRun_RejectsNonTerminalOutput(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), testutil.NewService(nil), service.State{}, &out)
	assert.ErrorIs(t, err, ErrNotTTY)
	assert.Empty(t, out.String())
}
