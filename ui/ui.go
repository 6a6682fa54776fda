package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"skconsole/kontext"
)

type View interface {
	Update(msg tea.Msg) tea.Cmd

	View(ktx *kontext.ProgramKtx, renderer *Renderer) string
}

type RegainedFocusMsg struct{}

// PublishMsg wraps msg in a tea.Cmd so it is fed back into the update loop.
func PublishMsg(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// JoinVertical joins the non-empty views.
func JoinVertical(pos lipgloss.Position, views ...string) string {
	var nonEmpty []string
	for _, v := range views {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	return lipgloss.JoinVertical(pos, nonEmpty...)
}

// Renderer renders views and accounts for the height they consume.
type Renderer struct {
	ktx *kontext.ProgramKtx
}

func (r *Renderer) Render(view string) string {
	r.ktx.HeightUsed(lipgloss.Height(view))
	return view
}

func (r *Renderer) RenderWithStyle(view string, style lipgloss.Style) string {
	return r.Render(style.Render(view))
}

func (r *Renderer) RenderLines(lines []string) string {
	return r.Render(strings.Join(lines, "\n"))
}

func NewRenderer(ktx *kontext.ProgramKtx) *Renderer {
	return &Renderer{ktx}
}
