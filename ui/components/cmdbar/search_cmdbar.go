package cmdbar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"skconsole/kontext"
	"skconsole/styles"
	"skconsole/ui"
	"skconsole/ui/components/statusbar"
)

type SearchCmdBar struct {
	input  textinput.Model
	active bool
}

func (s *SearchCmdBar) View(ktx *kontext.ProgramKtx, renderer *ui.Renderer) string {
	if !s.active && s.input.Value() == "" {
		return ""
	}
	return renderer.RenderWithStyle(s.input.View(), styles.CmdBarWithWidth(ktx.WindowWidth-BorderedPadding))
}

func (s *SearchCmdBar) Update(msg tea.Msg) (bool, tea.Msg, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if !s.active {
		if isKey && keyMsg.String() == "/" {
			s.active = true
			return true, nil, s.input.Focus()
		}
		return false, msg, nil
	}

	if isKey {
		switch keyMsg.String() {
		case "esc":
			s.Reset()
			return false, nil, nil
		case "enter":
			s.active = false
			s.input.Blur()
			return false, nil, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return true, nil, cmd
}

func (s *SearchCmdBar) Shortcuts() []statusbar.Shortcut {
	if !s.active {
		return nil
	}
	return []statusbar.Shortcut{
		{Name: "Confirm", Keybinding: "enter"},
		{Name: "Clear", Keybinding: "esc"},
	}
}

func (s *SearchCmdBar) IsFocussed() bool {
	return s.active
}

func (s *SearchCmdBar) SearchTerm() string {
	return s.input.Value()
}

func (s *SearchCmdBar) Reset() {
	s.active = false
	s.input.Reset()
	s.input.Blur()
}

func NewSearchCmdBar(placeholder string) *SearchCmdBar {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = placeholder
	return &SearchCmdBar{input: input}
}
