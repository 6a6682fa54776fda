package subjects_page

import (
	tea "github.com/charmbracelet/bubbletea"
)

type requestKind int

const (
	loadRequest requestKind = iota
	selectRequest
	// actionRequest is never superseded, its responses only need to reach
	// the page that issued them.
	actionRequest
)

// awaiter is implemented by the StartedMsgs of the registry client.
type awaiter interface {
	AwaitCompletion() tea.Msg
}

// trackedMsg carries a response together with the generation of the
// request it answers. owner tells apart pages that coexist, e.g. after
// switching registries.
type trackedMsg struct {
	owner *generations
	kind  requestKind
	gen   int
	msg   tea.Msg
}

// generations hands out a counter per request kind, only responses to
// the last issued request of a kind are current.
type generations struct {
	issued map[requestKind]int
}

func (g *generations) next(kind requestKind) int {
	if g.issued == nil {
		g.issued = map[requestKind]int{}
	}
	g.issued[kind]++
	return g.issued[kind]
}

func (g *generations) current(kind requestKind) int {
	return g.issued[kind]
}

func (g *generations) isCurrent(msg trackedMsg) bool {
	if msg.owner != g {
		return false
	}
	return msg.kind == actionRequest || g.issued[msg.kind] == msg.gen
}

// issue supersedes every outstanding request of kind and runs call as its successor.
func (g *generations) issue(kind requestKind, call func() tea.Msg) tea.Cmd {
	return g.track(kind, g.next(kind), call)
}

// track runs call as part of the already issued request gen.
func (g *generations) track(kind requestKind, gen int, call func() tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return trackedMsg{g, kind, gen, call()}
	}
}

// own runs call as an action of this page.
func (g *generations) own(call func() tea.Msg) tea.Cmd {
	return g.track(actionRequest, 0, call)
}

// await blocks on the started msg wrapped by msg, keeping its generation.
func await(msg trackedMsg, started awaiter) tea.Cmd {
	return func() tea.Msg {
		return trackedMsg{msg.owner, msg.kind, msg.gen, started.AwaitCompletion()}
	}
}
