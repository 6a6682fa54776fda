package skadmin

import (
	tea "github.com/charmbracelet/bubbletea"
	"skconsole/config"
	"slices"
	"strings"
)

type CompatibilityType string

const (
	CompatibilityNone               CompatibilityType = "none"
	CompatibilityBackward           CompatibilityType = "backward"
	CompatibilityForward            CompatibilityType = "forward"
	CompatibilityFull               CompatibilityType = "full"
	CompatibilityBackwardTransitive CompatibilityType = "backward_transitive"
	CompatibilityForwardTransitive  CompatibilityType = "forward_transitive"
	CompatibilityFullTransitive     CompatibilityType = "full_transitive"
)

var CompatibilityTypes = []CompatibilityType{
	CompatibilityNone,
	CompatibilityBackward,
	CompatibilityForward,
	CompatibilityFull,
	CompatibilityBackwardTransitive,
	CompatibilityForwardTransitive,
	CompatibilityFullTransitive,
}

// ParseCompatibilityType maps a token case-insensitively,
// unknown tokens fall back to backward like the registry does.
func ParseCompatibilityType(token string) CompatibilityType {
	c := CompatibilityType(strings.ToLower(strings.TrimSpace(token)))
	if slices.Contains(CompatibilityTypes, c) {
		return c
	}
	return CompatibilityBackward
}

type SchemaType string

const (
	Avro     SchemaType = "avro"
	Thrift   SchemaType = "thrift"
	Protobuf SchemaType = "protobuf"
)

var SchemaTypes = []SchemaType{Avro, Thrift, Protobuf}

// ParseSchemaType maps a token case-insensitively, unknown tokens fall back to avro.
func ParseSchemaType(token string) SchemaType {
	s := SchemaType(strings.ToLower(strings.TrimSpace(token)))
	if slices.Contains(SchemaTypes, s) {
		return s
	}
	return Avro
}

// Subject is the metadata the registry keeps for a subject.
type Subject struct {
	Name              string            `json:"subject"`
	Versions          []int             `json:"versions"`
	CompatibilityType CompatibilityType `json:"compatibilityType"`
	SchemaType        SchemaType        `json:"schemaType"`
}

// LatestVersion returns the highest registered version or 0 when there is none.
func (s *Subject) LatestVersion() int {
	if len(s.Versions) == 0 {
		return 0
	}
	return slices.Max(s.Versions)
}

// SchemaVersion is a single registered version of a subject.
type SchemaVersion struct {
	Subject    string
	Id         int
	Version    int
	Schema     string
	SchemaType SchemaType
}

type SubjectCreationDetails struct {
	Subject           string
	Schema            string
	SchemaType        SchemaType
	CompatibilityType CompatibilityType
}

type SchemaVersionDetails struct {
	Subject    string
	Schema     string
	SchemaType SchemaType
}

type SubjectLister interface {
	// ListSubjects returns a skadmin.SubjectListingStartedMsg
	ListSubjects() tea.Msg
}

type SubjectMetaFetcher interface {
	GetSubjectMeta(subject string) tea.Msg
}

type SchemaFetcher interface {
	GetSchemaById(id int) tea.Msg
}

type VersionLister interface {
	ListVersions(subject string) tea.Msg
}

// SubjectVersionFetcher fetches either the full version record or only its schema.
type SubjectVersionFetcher interface {
	GetSubjectVersion(subject string, version int) tea.Msg

	GetSubjectVersionSchema(subject string, version int) tea.Msg
}

type CompatibilityChecker interface {
	CheckCompatibility(subject string, schema string) tea.Msg
}

type SubjectDeleter interface {
	DeleteSubject(subject string) tea.Msg
}

type SubjectVersionDeleter interface {
	DeleteSubjectVersion(subject string, version int) tea.Msg
}

// SchemaVersionRegistrar registers a new schema version for an existing subject
type SchemaVersionRegistrar interface {
	RegisterSchemaVersion(details SchemaVersionDetails) tea.Msg
}

// SubjectRegistrar registers a new subject together with its first schema
type SubjectRegistrar interface {
	RegisterSubject(details SubjectCreationDetails) tea.Msg
}

// CompatibilityConfigurer reads and updates compatibility configuration,
// an empty subject addresses the global configuration.
type CompatibilityConfigurer interface {
	GetCompatibilityConfig(subject string) tea.Msg

	SetCompatibilityConfig(subject string, compatibilityType CompatibilityType) tea.Msg
}

type Client interface {
	SubjectLister
	SubjectMetaFetcher
	SchemaFetcher
	VersionLister
	SubjectVersionFetcher
	CompatibilityChecker
	SubjectDeleter
	SubjectVersionDeleter
	SchemaVersionRegistrar
	SubjectRegistrar
	CompatibilityConfigurer
}

type Instantiator func(registry *config.RegistryConfig) (Client, error)

func HttpInstantiator() Instantiator {
	return func(registry *config.RegistryConfig) (Client, error) {
		client, err := New(registry)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
