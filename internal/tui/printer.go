package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/waabox/snatch/internal/domain"
)

// Color modes accepted by NewPrinter.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const ruleWidth = 80

// Printer writes styled lines to a terminal or a plain stream.
type Printer struct {
	w      io.Writer
	styles map[domain.Tone]lipgloss.Style
}

// Ensure Printer implements domain.Printer.
var _ domain.Printer = (*Printer)(nil)

// NewPrinter creates a Printer writing to w. With ColorAuto, colors are only
// emitted when w is a terminal that supports them.
func NewPrinter(w io.Writer, colorMode string) *Printer {
	r := lipgloss.NewRenderer(w)
	switch colorMode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	green := r.NewStyle().Foreground(lipgloss.Color("2"))
	return &Printer{
		w: w,
		styles: map[domain.Tone]lipgloss.Style{
			domain.TonePlain:   r.NewStyle(),
			domain.ToneOK:      green,
			domain.ToneRule:    green,
			domain.ToneError:   r.NewStyle().Foreground(lipgloss.Color("1")),
			domain.ToneHeading: green.Bold(true),
			domain.ToneCode:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			domain.ToneLink:    r.NewStyle().Foreground(lipgloss.Color("4")),
			domain.ToneSecret:  r.NewStyle().Foreground(lipgloss.Color("5")),
		},
	}
}

// Println writes one line. ToneOK and ToneError lines get a [+] / [!] marker,
// ToneRule ignores text and draws a horizontal rule.
func (p *Printer) Println(tone domain.Tone, text string) {
	var line string
	switch tone {
	case domain.ToneOK, domain.ToneError:
		line = p.Marker(tone) + " " + text
	case domain.ToneRule:
		line = p.Highlight(tone, strings.Repeat("-", ruleWidth))
	case domain.TonePlain:
		line = text
	default:
		line = p.Highlight(tone, text)
	}
	fmt.Fprintln(p.w, line)
}

// Highlight renders text in the style of tone.
func (p *Printer) Highlight(tone domain.Tone, text string) string {
	style, ok := p.styles[tone]
	if !ok {
		return text
	}
	return style.Render(text)
}

// Marker returns the styled line prefix for tone, or an empty string.
func (p *Printer) Marker(tone domain.Tone) string {
	switch tone {
	case domain.ToneOK:
		return p.Highlight(tone, "[+]")
	case domain.ToneError:
		return p.Highlight(tone, "[!]")
	default:
		return ""
	}
}
