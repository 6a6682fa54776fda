package notifier

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"skconsole/kontext"
	"skconsole/styles"
	"skconsole/ui"
)

type state int

const (
	idle state = iota
	spinning
	showingSuccess
	showingError
)

const autoHideDelay = 5 * time.Second

// HideNotificationMsg is sent by AutoHideCmd once the delay has passed.
type HideNotificationMsg struct {
	Tag string
}

type Model struct {
	state   state
	msg     string
	spinner spinner.Model
}

func (m *Model) View(_ *kontext.ProgramKtx, renderer *ui.Renderer) string {
	switch m.state {
	case spinning:
		return renderer.Render(m.spinner.View() + " " + m.msg)
	case showingSuccess:
		return renderer.Render(styles.Notifier.Success.Render("🎉 " + m.msg))
	case showingError:
		return renderer.Render(styles.Notifier.Error.Render("🚨 " + m.msg))
	default:
		return ""
	}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok && m.state == spinning {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return cmd
	}
	return nil
}

func (m *Model) SpinWithLoadingMsg(msg string) tea.Cmd {
	m.state = spinning
	m.msg = msg
	return m.spinner.Tick
}

func (m *Model) ShowSuccessMsg(msg string) tea.Cmd {
	m.state = showingSuccess
	m.msg = msg
	return nil
}

func (m *Model) ShowErrorMsg(msg string, err error) tea.Cmd {
	m.state = showingError
	if err != nil {
		m.msg = msg + ": " + err.Error()
	} else {
		m.msg = msg
	}
	return nil
}

func (m *Model) ShowError(err error) tea.Cmd {
	m.state = showingError
	m.msg = err.Error()
	return nil
}

func (m *Model) Idle() {
	m.state = idle
	m.msg = ""
}

// HasPriority reports whether a background operation is in progress.
func (m *Model) HasPriority() bool {
	return m.state == spinning
}

func (m *Model) IsShowingError() bool {
	return m.state == showingError
}

func (m *Model) Msg() string {
	return m.msg
}

func (m *Model) AutoHideCmd(tag string) tea.Cmd {
	return tea.Tick(autoHideDelay, func(time.Time) tea.Msg {
		return HideNotificationMsg{Tag: tag}
	})
}

func New() *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Notifier.Spinner
	return &Model{
		state:   idle,
		spinner: s,
	}
}
