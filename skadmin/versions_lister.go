package skadmin

import (
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
)

type VersionsListedMsg struct {
	Subject  string
	Versions []int
}

type VersionsListingErrMsg struct {
	Subject string
	Err     error
}

type VersionsListingStartedMsg struct {
	Subject  string
	versions chan []int
	err      chan error
}

func (msg VersionsListingStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case versions := <-msg.versions:
		return VersionsListedMsg{msg.Subject, versions}
	case err := <-msg.err:
		return VersionsListingErrMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) ListVersions(subject string) tea.Msg {
	versions, err := async(func() ([]int, error) {
		var versions []int
		err := s.do(http.MethodGet, subjectPath(subject)+"/versions", nil, nil, &versions)
		return versions, err
	})
	return VersionsListingStartedMsg{subject, versions, err}
}
