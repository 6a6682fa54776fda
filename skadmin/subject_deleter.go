package skadmin

import (
	"encoding/json"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
)

type SubjectDeletedMsg struct {
	SubjectName string
}

type SubjectDeletionErrorMsg struct {
	Subject string
	Err     error
}

type SubjectDeletionStartedMsg struct {
	Subject string
	Deleted chan bool
	Err     chan error
}

func (msg SubjectDeletionStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case <-msg.Deleted:
		return SubjectDeletedMsg{msg.Subject}
	case err := <-msg.Err:
		return SubjectDeletionErrorMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) DeleteSubject(subject string) tea.Msg {
	deleted, err := async(func() (bool, error) {
		var ack json.RawMessage
		err := s.do(http.MethodDelete, subjectPath(subject), nil, nil, &ack)
		return err == nil, err
	})
	return SubjectDeletionStartedMsg{subject, deleted, err}
}

type SubjectVersionDeletedMsg struct {
	Subject string
	Version int
}

type SubjectVersionDeletionErrMsg struct {
	Subject string
	Version int
	Err     error
}

type SubjectVersionDeletionStartedMsg struct {
	Subject string
	Version int
	deleted chan bool
	err     chan error
}

func (msg SubjectVersionDeletionStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case <-msg.deleted:
		return SubjectVersionDeletedMsg{msg.Subject, msg.Version}
	case err := <-msg.err:
		return SubjectVersionDeletionErrMsg{msg.Subject, msg.Version, err}
	}
}

func (s *DefaultSkClient) DeleteSubjectVersion(subject string, version int) tea.Msg {
	deleted, err := async(func() (bool, error) {
		var ack json.RawMessage
		err := s.do(http.MethodDelete, versionPath(subject, version), nil, nil, &ack)
		return err == nil, err
	})
	return SubjectVersionDeletionStartedMsg{subject, version, deleted, err}
}
