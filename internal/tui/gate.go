package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/waabox/snatch/internal/domain"
)

// NewGate returns a KeyGate when in is an interactive terminal and a LineGate otherwise.
func NewGate(in io.Reader, out io.Writer) domain.Gate {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return &KeyGate{in: in, out: out}
	}
	return NewLineGate(in, out)
}

// LineGate waits for one line on its reader.
type LineGate struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLineGate creates a LineGate reading from in and writing prompts to out.
func NewLineGate(in io.Reader, out io.Writer) *LineGate {
	return &LineGate{r: bufio.NewReader(in), out: out}
}

// Wait prints prompt and blocks until a line is read or ctx is done.
// A closed input with nothing left to read counts as an abort.
func (g *LineGate) Wait(ctx context.Context, prompt string) error {
	fmt.Fprint(g.out, prompt)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := g.r.ReadString('\n')
		done <- result{line, err}
	}()

	select {
	case res := <-done:
		if errors.Is(res.err, io.EOF) {
			fmt.Fprintln(g.out)
			if res.line == "" {
				return domain.ErrAborted
			}
			return nil
		}
		if res.err != nil {
			return fmt.Errorf("reading confirmation: %w", res.err)
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(g.out)
		return ctx.Err()
	}
}

// KeyGate runs a small Bubbletea program that returns on the first key press.
type KeyGate struct {
	in  io.Reader
	out io.Writer
}

// Wait shows prompt and blocks until a key is pressed. ctrl+c aborts.
func (g *KeyGate) Wait(ctx context.Context, prompt string) error {
	p := tea.NewProgram(NewConfirmModel(prompt),
		tea.WithInput(g.in),
		tea.WithOutput(g.out),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("waiting for confirmation: %w", err)
	}
	if m, ok := final.(ConfirmModel); ok && m.Aborted() {
		return domain.ErrAborted
	}
	return nil
}

// ConfirmModel is the Bubbletea model behind KeyGate.
type ConfirmModel struct {
	prompt    string
	confirmed bool
	aborted   bool
}

// NewConfirmModel creates a ConfirmModel showing prompt.
func NewConfirmModel(prompt string) ConfirmModel {
	return ConfirmModel{prompt: prompt}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update confirms on any key except ctrl+c, which aborts.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		m.aborted = true
	} else {
		m.confirmed = true
	}
	return m, tea.Quit
}

// View renders the prompt; once answered it ends the line.
func (m ConfirmModel) View() string {
	if m.confirmed || m.aborted {
		return m.prompt + "\n"
	}
	return m.prompt
}

// Aborted reports whether the user pressed ctrl+c.
func (m ConfirmModel) Aborted() bool {
	return m.aborted
}
