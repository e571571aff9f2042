package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/e6viu/internal/state"
)

const escapeFarewell = "Escape pressed, exiting."

// promptModel waits for a single recognized key and then quits.
type promptModel struct {
	keys     keyMap
	styles   Styles
	next     state.LoopState
	farewell string
}

func newPromptModel(theme Theme) promptModel {
	return promptModel{
		keys:   defaultKeyMap(),
		styles: theme.Styles(),
		next:   state.AwaitingInput,
	}
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch next := state.OnKey(keyMsg.String()); next {
	case state.Fetching:
		m.next = next
		return m, tea.Quit
	case state.Terminated:
		m.next = next
		if keyMsg.Type == tea.KeyEsc {
			m.farewell = escapeFarewell
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.next != state.AwaitingInput {
		if m.farewell == "" {
			return ""
		}
		return m.styles.MutedText.Render(m.farewell) + "\n"
	}
	return fmt.Sprintf("%s %s %s %s %s\n",
		m.styles.MutedText.Render("Press"),
		m.styles.Key.Render(m.keys.Next.Help().Key),
		m.styles.MutedText.Render("for a "+m.keys.Next.Help().Desc+", or"),
		m.styles.Key.Render(m.keys.Quit.Help().Key),
		m.styles.MutedText.Render("to "+m.keys.Quit.Help().Desc),
	)
}

// Prompt blocks on the keyboard until the user chooses to continue or quit.
type Prompt struct {
	in    io.Reader
	out   io.Writer
	theme Theme
}

// NewPrompt builds a Prompt reading keys from in and drawing to out.
func NewPrompt(in io.Reader, out io.Writer, theme Theme) *Prompt {
	return &Prompt{in: in, out: out, theme: theme}
}

// Await shows the prompt and returns state.Fetching or state.Terminated.
// When in is a terminal it is switched to raw mode for the duration of the
// call and restored before Await returns, on every path.
func (p *Prompt) Await(ctx context.Context) (state.LoopState, error) {
	program := tea.NewProgram(newPromptModel(p.theme),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithoutSignalHandler(),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return state.Terminated, ctx.Err()
		}
		return state.Terminated, fmt.Errorf("read key: %w", err)
	}
	model, ok := final.(promptModel)
	if !ok || model.next == state.AwaitingInput {
		return state.Terminated, nil
	}
	return model.next, nil
}
