package tab

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	lg "github.com/charmbracelet/lipgloss"
	"skconsole/kontext"
	"skconsole/styles"
	"skconsole/ui"
)

// SwitchedMsg is published when another tab became active.
type SwitchedMsg struct {
	Name string
}

type Model struct {
	names []string
	// zero indexed
	activeTab int
}

func (m *Model) View(ktx *kontext.ProgramKtx, renderer *ui.Renderer) string {
	if len(m.names) < 2 {
		return ""
	}
	tabsToRender := make([]string, 0, len(m.names))
	for i, name := range m.names {
		if i == m.activeTab {
			tabsToRender = append(tabsToRender, styles.Tab.Active.Render(name))
		} else {
			tabsToRender = append(tabsToRender, styles.Tab.Tab.Render(name))
		}
	}
	renderedTabs := lg.JoinHorizontal(lg.Top, tabsToRender...)
	leftOverSpace := ktx.WindowWidth - lg.Width(renderedTabs)
	if leftOverSpace > 0 {
		renderedTabs += strings.Repeat("─", leftOverSpace)
	}
	return renderer.Render(renderedTabs)
}

// Update cycles through the tabs with ctrl+left and ctrl+right.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.names) < 2 {
		return nil
	}
	previous := m.activeTab
	switch keyMsg.Type {
	case tea.KeyCtrlLeft:
		m.Prev()
	case tea.KeyCtrlRight:
		m.Next()
	}
	if previous == m.activeTab {
		return nil
	}
	return ui.PublishMsg(SwitchedMsg{m.ActiveTab()})
}

func (m *Model) Next() {
	if m.activeTab < len(m.names)-1 {
		m.activeTab++
	}
}

func (m *Model) Prev() {
	if m.activeTab > 0 {
		m.activeTab--
	}
}

func (m *Model) GoToTab(name string) {
	for i, n := range m.names {
		if n == name {
			m.activeTab = i
		}
	}
}

func (m *Model) ActiveTab() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.activeTab]
}

func New(names ...string) *Model {
	return &Model{names: names}
}
