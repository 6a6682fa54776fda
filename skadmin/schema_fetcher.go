package skadmin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// schemaBody accepts the shapes the registry uses for a schema body:
// a bare JSON string or an object carrying the text in schemaText or schema.
type schemaBody struct {
	Text string
}

func (b *schemaBody) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &b.Text)
	}
	var wrapped struct {
		SchemaText string `json:"schemaText"`
		Schema     string `json:"schema"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return errors.Wrap(err, "unexpected schema body")
	}
	b.Text = wrapped.SchemaText
	if b.Text == "" {
		b.Text = wrapped.Schema
	}
	return nil
}

type versionRecord struct {
	Subject    string     `json:"subject"`
	Id         int        `json:"id"`
	Version    int        `json:"version"`
	SchemaText string     `json:"schemaText"`
	Schema     string     `json:"schema"`
	SchemaType SchemaType `json:"schemaType"`
}

func (r versionRecord) toSchemaVersion() SchemaVersion {
	schema := r.SchemaText
	if schema == "" {
		schema = r.Schema
	}
	schemaType := r.SchemaType
	if schemaType == "" {
		schemaType = Avro
	}
	return SchemaVersion{
		Subject:    r.Subject,
		Id:         r.Id,
		Version:    r.Version,
		Schema:     schema,
		SchemaType: schemaType,
	}
}

type SchemaFetchedMsg struct {
	Id     int
	Schema string
}

type SchemaFetchErrMsg struct {
	Id  int
	Err error
}

type SchemaFetchStartedMsg struct {
	Id     int
	schema chan string
	err    chan error
}

func (msg SchemaFetchStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case schema := <-msg.schema:
		return SchemaFetchedMsg{msg.Id, schema}
	case err := <-msg.err:
		return SchemaFetchErrMsg{msg.Id, err}
	}
}

func (s *DefaultSkClient) GetSchemaById(id int) tea.Msg {
	schema, err := async(func() (string, error) {
		var body schemaBody
		err := s.do(http.MethodGet, "/v1/schema/"+strconv.Itoa(id), nil, nil, &body)
		return body.Text, err
	})
	return SchemaFetchStartedMsg{id, schema, err}
}

type SubjectVersionFetchedMsg struct {
	Version SchemaVersion
}

type SubjectVersionFetchErrMsg struct {
	Subject string
	Version int
	Err     error
}

type SubjectVersionFetchStartedMsg struct {
	Subject string
	Version int
	record  chan SchemaVersion
	err     chan error
}

func (msg SubjectVersionFetchStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case record := <-msg.record:
		return SubjectVersionFetchedMsg{record}
	case err := <-msg.err:
		return SubjectVersionFetchErrMsg{msg.Subject, msg.Version, err}
	}
}

func (s *DefaultSkClient) GetSubjectVersion(subject string, version int) tea.Msg {
	record, err := async(func() (SchemaVersion, error) {
		var record versionRecord
		if err := s.do(http.MethodGet, versionPath(subject, version), nil, nil, &record); err != nil {
			return SchemaVersion{}, err
		}
		if record.Subject == "" {
			record.Subject = subject
		}
		if record.Version == 0 {
			record.Version = version
		}
		return record.toSchemaVersion(), nil
	})
	return SubjectVersionFetchStartedMsg{subject, version, record, err}
}

type SubjectVersionSchemaFetchedMsg struct {
	Subject string
	Version int
	Schema  string
}

type SubjectVersionSchemaFetchErrMsg struct {
	Subject string
	Version int
	Err     error
}

type SubjectVersionSchemaFetchStartedMsg struct {
	Subject string
	Version int
	schema  chan string
	err     chan error
}

func (msg SubjectVersionSchemaFetchStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case schema := <-msg.schema:
		return SubjectVersionSchemaFetchedMsg{msg.Subject, msg.Version, schema}
	case err := <-msg.err:
		return SubjectVersionSchemaFetchErrMsg{msg.Subject, msg.Version, err}
	}
}

func (s *DefaultSkClient) GetSubjectVersionSchema(subject string, version int) tea.Msg {
	schema, err := async(func() (string, error) {
		var body schemaBody
		err := s.do(http.MethodGet, versionPath(subject, version)+"/schema", nil, nil, &body)
		return body.Text, err
	})
	return SubjectVersionSchemaFetchStartedMsg{subject, version, schema, err}
}
