package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/e6viu/internal/state"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPromptModel_Transitions(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want state.LoopState
		quit bool
	}{
		{"n", runes("n"), state.Fetching, true},
		{"N", runes("N"), state.Fetching, true},
		{"q", runes("q"), state.Terminated, true},
		{"Q", runes("Q"), state.Terminated, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, state.Terminated, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, state.Terminated, true},
		{"x", runes("x"), state.AwaitingInput, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, state.AwaitingInput, false},
		{"alt+n", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n"), Alt: true}, state.AwaitingInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := newPromptModel(GetTheme("")).Update(tt.msg)
			assert.Equal(t, tt.want, model.(promptModel).next)
			assert.Equal(t, tt.quit, cmd != nil)
		})
	}
}

func TestPromptModel_IgnoresNonKeyMessages(t *testing.T) {
	model, cmd := newPromptModel(GetTheme("")).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, state.AwaitingInput, model.(promptModel).next)
	assert.Nil(t, cmd)
}

func TestPromptModel_View(t *testing.T) {
	m := newPromptModel(GetTheme(""))
	assert.Contains(t, m.View(), "Press N for a new image, or Q to quit")

	escaped, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, escaped.View(), escapeFarewell)

	quit, _ := m.Update(runes("q"))
	assert.Empty(t, quit.View())
}

func TestPrompt_AwaitReadsKeys(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	next, err := NewPrompt(strings.NewReader("q"), &out, GetTheme("")).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Terminated, next)
}
