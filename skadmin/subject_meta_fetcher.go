package skadmin

import (
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type SubjectMetaFetchedMsg struct {
	Subject Subject
}

type SubjectMetaFetchErrMsg struct {
	Subject string
	Err     error
}

type SubjectMetaFetchStartedMsg struct {
	Subject string
	meta    chan Subject
	err     chan error
}

func (msg SubjectMetaFetchStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case meta := <-msg.meta:
		return SubjectMetaFetchedMsg{meta}
	case err := <-msg.err:
		log.Error("Failed to fetch subject metadata", "subject", msg.Subject, "err", err)
		return SubjectMetaFetchErrMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) GetSubjectMeta(subject string) tea.Msg {
	meta, err := async(func() (Subject, error) {
		var meta Subject
		err := s.do(http.MethodGet, subjectPath(subject), nil, nil, &meta)
		if meta.Name == "" {
			meta.Name = subject
		}
		return meta, err
	})
	return SubjectMetaFetchStartedMsg{subject, meta, err}
}
