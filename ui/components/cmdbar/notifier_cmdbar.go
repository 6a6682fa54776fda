package cmdbar

import (
	"reflect"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"skconsole/kontext"
	"skconsole/ui"
	"skconsole/ui/components/notifier"
	"skconsole/ui/components/statusbar"
)

type NotificationHandler[T any] func(msg T, m *notifier.Model) (bool, tea.Cmd)

type NotifierCmdBar struct {
	tag      string
	active   bool
	Notifier *notifier.Model
	handlers map[reflect.Type]func(tea.Msg, *notifier.Model) (bool, tea.Cmd)
}

func (n *NotifierCmdBar) View(ktx *kontext.ProgramKtx, renderer *ui.Renderer) string {
	if !n.active {
		return ""
	}
	return n.Notifier.View(ktx, renderer)
}

func (n *NotifierCmdBar) Update(msg tea.Msg) (bool, tea.Msg, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return n.active, nil, n.Notifier.Update(msg)
	case notifier.HideNotificationMsg:
		if msg.Tag != n.tag {
			return n.active, msg, nil
		}
		// a spinner started after the notification was scheduled to hide wins
		if !n.Notifier.HasPriority() {
			n.Notifier.Idle()
			n.active = false
		}
		return n.active, nil, nil
	}

	handler, ok := n.handlers[reflect.TypeOf(msg)]
	if !ok {
		return n.active, msg, nil
	}
	active, cmd := handler(msg, n.Notifier)
	n.active = active
	if !active {
		n.Notifier.Idle()
	}
	return n.active, nil, cmd
}

func (n *NotifierCmdBar) Shortcuts() []statusbar.Shortcut {
	return nil
}

func (n *NotifierCmdBar) IsFocussed() bool {
	return false
}

func NewNotifierCmdBar(tag string) *NotifierCmdBar {
	return &NotifierCmdBar{
		tag:      tag,
		Notifier: notifier.New(),
		handlers: map[reflect.Type]func(tea.Msg, *notifier.Model) (bool, tea.Cmd){},
	}
}

// WithMsgHandler registers handler for msgs of type T.
func WithMsgHandler[T any](bar *NotifierCmdBar, handler NotificationHandler[T]) {
	var zero T
	bar.handlers[reflect.TypeOf(zero)] = func(msg tea.Msg, m *notifier.Model) (bool, tea.Cmd) {
		return handler(msg.(T), m)
	}
}
