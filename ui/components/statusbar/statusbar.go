package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skconsole/kontext"
	"skconsole/styles"
	"skconsole/ui"
)

type Shortcut struct {
	Name       string
	Keybinding string
}

type Provider interface {
	Shortcuts() []Shortcut
	Title() string
}

type Model struct {
	provider      Provider
	showShortcuts bool
}

func (m *Model) View(ktx *kontext.ProgramKtx, renderer *ui.Renderer) string {
	if m.provider == nil {
		return ""
	}

	title := styles.Statusbar.Title.Render(m.provider.Title())

	var registry string
	if ktx.Config() != nil {
		if active := ktx.Config().ActiveRegistry(); active != nil {
			registry = styles.Statusbar.Title.Render(active.Name)
		}
	}

	help := styles.Statusbar.Shortcut.Render(" ≪ F1 » help")
	bar := lipgloss.JoinHorizontal(lipgloss.Top, title, registry, help)

	if !m.showShortcuts {
		return renderer.Render(bar)
	}

	shortcuts := lipgloss.NewStyle().
		Width(ktx.WindowWidth).
		Render(m.renderShortcuts())
	return renderer.Render(lipgloss.JoinVertical(lipgloss.Left, shortcuts, bar))
}

func (m *Model) renderShortcuts() string {
	var b strings.Builder
	for _, s := range m.provider.Shortcuts() {
		b.WriteString("  ")
		b.WriteString(styles.Statusbar.Shortcut.Render(s.Name + ":"))
		b.WriteString(styles.Statusbar.Key.Render(" ≪ " + s.Keybinding + " »"))
	}
	return b.String()
}

func (m *Model) SetProvider(provider Provider) {
	m.provider = provider
}

func (m *Model) ToggleShortcuts() {
	m.showShortcuts = !m.showShortcuts
}

func New() *Model {
	return &Model{}
}
