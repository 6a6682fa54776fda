package skadmin

import (
	"encoding/json"
	"net/http"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type schemaVersionRequest struct {
	Schema     string     `json:"schema"`
	SchemaType SchemaType `json:"schemaType"`
}

type subjectRequest struct {
	Schema            string            `json:"schema"`
	SchemaType        SchemaType        `json:"schemaType"`
	CompatibilityType CompatibilityType `json:"compatibilityType"`
}

type schemaId struct {
	Id int `json:"id"`
}

type SchemaVersionRegisteredMsg struct {
	Subject string
	Id      int
}

type SchemaVersionRegistrationErrMsg struct {
	Subject string
	Err     error
}

type SchemaVersionRegistrationStartedMsg struct {
	Subject string
	id      chan int
	err     chan error
}

func (msg SchemaVersionRegistrationStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case id := <-msg.id:
		return SchemaVersionRegisteredMsg{msg.Subject, id}
	case err := <-msg.err:
		log.Error("Failed to register schema version", "subject", msg.Subject, "err", err)
		return SchemaVersionRegistrationErrMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) RegisterSchemaVersion(details SchemaVersionDetails) tea.Msg {
	schemaType := details.SchemaType
	if schemaType == "" {
		schemaType = Avro
	}
	id, err := async(func() (int, error) {
		var created schemaId
		err := s.do(
			http.MethodPost,
			"/v1/subjects/versions/"+url.PathEscape(details.Subject),
			nil,
			schemaVersionRequest{details.Schema, schemaType},
			&created,
		)
		return created.Id, err
	})
	return SchemaVersionRegistrationStartedMsg{details.Subject, id, err}
}

type SubjectRegisteredMsg struct {
	Details SubjectCreationDetails
}

type SubjectRegistrationErrMsg struct {
	Details SubjectCreationDetails
	Err     error
}

type SubjectRegistrationStartedMsg struct {
	Details    SubjectCreationDetails
	registered chan bool
	err        chan error
}

func (msg SubjectRegistrationStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case <-msg.registered:
		return SubjectRegisteredMsg{msg.Details}
	case err := <-msg.err:
		log.Error("Failed to register subject", "subject", msg.Details.Subject, "err", err)
		return SubjectRegistrationErrMsg{msg.Details, err}
	}
}

func (s *DefaultSkClient) RegisterSubject(details SubjectCreationDetails) tea.Msg {
	if details.SchemaType == "" {
		details.SchemaType = Avro
	}
	if details.CompatibilityType == "" {
		details.CompatibilityType = CompatibilityBackward
	}
	registered, err := async(func() (bool, error) {
		var ack json.RawMessage
		err := s.do(
			http.MethodPost,
			subjectPath(details.Subject),
			nil,
			subjectRequest{details.Schema, details.SchemaType, details.CompatibilityType},
			&ack,
		)
		return err == nil, err
	})
	return SubjectRegistrationStartedMsg{details, registered, err}
}
