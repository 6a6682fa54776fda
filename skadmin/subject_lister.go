package skadmin

import (
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type SubjectsListedMsg struct {
	Subjects []string
}

type SubjectListingErrorMsg struct {
	Err error
}

type SubjectListingStartedMsg struct {
	subjects chan []string
	err      chan error
}

// AwaitCompletion return
// a SubjectsListedMsg upon success
// or SubjectListingErrorMsg upon failure.
func (msg SubjectListingStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case subjects := <-msg.subjects:
		return SubjectsListedMsg{subjects}
	case err := <-msg.err:
		log.Error("Failed to fetch subjects", "err", err)
		return SubjectListingErrorMsg{err}
	}
}

func (s *DefaultSkClient) ListSubjects() tea.Msg {
	subjects, err := async(func() ([]string, error) {
		var names []string
		if err := s.do(http.MethodGet, "/v1/subjects", nil, nil, &names); err != nil {
			return nil, err
		}
		if names == nil {
			names = []string{}
		}
		return names, nil
	})
	return SubjectListingStartedMsg{subjects, err}
}
