package tui_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/snatch/internal/domain"
	"github.com/waabox/snatch/internal/tui"
)

func TestLineGate_ReturnsAfterOneLine(t *testing.T) {
	var out bytes.Buffer
	g := tui.NewLineGate(strings.NewReader("\nleftover\n"), &out)

	if err := g.Wait(context.Background(), "press enter "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "press enter " {
		t.Errorf("unexpected prompt output: %q", out.String())
	}
}

func TestLineGate_AcceptsUnterminatedLine(t *testing.T) {
	g := tui.NewLineGate(strings.NewReader("y"), io.Discard)

	if err := g.Wait(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineGate_ClosedInputAborts(t *testing.T) {
	g := tui.NewLineGate(strings.NewReader(""), io.Discard)

	err := g.Wait(context.Background(), "")
	if !errors.Is(err, domain.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestLineGate_CancelledContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	g := tui.NewLineGate(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := g.Wait(ctx, "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNewGate_NonTerminalInputUsesLineGate(t *testing.T) {
	g := tui.NewGate(strings.NewReader("\n"), io.Discard)
	if _, ok := g.(*tui.LineGate); !ok {
		t.Errorf("expected *tui.LineGate, got %T", g)
	}
}

func TestConfirmModel_AnyKeyConfirms(t *testing.T) {
	m := tui.NewConfirmModel("[+] Once done, press any key to continue... ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	got := updated.(tui.ConfirmModel)

	if got.Aborted() {
		t.Error("expected confirmed, got aborted")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from command")
	}
	if !strings.HasSuffix(got.View(), "\n") {
		t.Errorf("expected answered view to end the line, got %q", got.View())
	}
}

func TestConfirmModel_EnterConfirms(t *testing.T) {
	m := tui.NewConfirmModel("prompt")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(tui.ConfirmModel)

	if got.Aborted() || cmd == nil {
		t.Error("expected enter to confirm and quit")
	}
	if got.View() != "prompt\n" {
		t.Errorf("expected answered view, got %q", got.View())
	}
}

func TestConfirmModel_CtrlCAborts(t *testing.T) {
	m := tui.NewConfirmModel("prompt")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	got := updated.(tui.ConfirmModel)

	if !got.Aborted() {
		t.Error("expected aborted")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestConfirmModel_IgnoresNonKeyMessages(t *testing.T) {
	m := tui.NewConfirmModel("prompt")

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	got := updated.(tui.ConfirmModel)

	if got.Aborted() {
		t.Error("expected model to keep waiting")
	}
	if cmd != nil {
		t.Error("expected no command")
	}
	if got.View() != "prompt" {
		t.Errorf("unexpected view: %q", got.View())
	}
}
