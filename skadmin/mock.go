package skadmin

import (
	tea "github.com/charmbracelet/bubbletea"
	"skconsole/config"
)

// MockClient is a Client whose operations return the msg produced by the
// matching func field, or nil when the field is not set.
type MockClient struct {
	ListSubjectsFunc            func() tea.Msg
	GetSubjectMetaFunc          func(subject string) tea.Msg
	GetSchemaByIdFunc           func(id int) tea.Msg
	ListVersionsFunc            func(subject string) tea.Msg
	GetSubjectVersionFunc       func(subject string, version int) tea.Msg
	GetSubjectVersionSchemaFunc func(subject string, version int) tea.Msg
	CheckCompatibilityFunc      func(subject string, schema string) tea.Msg
	DeleteSubjectFunc           func(subject string) tea.Msg
	DeleteSubjectVersionFunc    func(subject string, version int) tea.Msg
	RegisterSchemaVersionFunc   func(details SchemaVersionDetails) tea.Msg
	RegisterSubjectFunc         func(details SubjectCreationDetails) tea.Msg
	GetCompatibilityConfigFunc  func(subject string) tea.Msg
	SetCompatibilityConfigFunc  func(subject string, compatibilityType CompatibilityType) tea.Msg
}

func (m *MockClient) ListSubjects() tea.Msg {
	if m.ListSubjectsFunc != nil {
		return m.ListSubjectsFunc()
	}
	return nil
}

func (m *MockClient) GetSubjectMeta(subject string) tea.Msg {
	if m.GetSubjectMetaFunc != nil {
		return m.GetSubjectMetaFunc(subject)
	}
	return nil
}

func (m *MockClient) GetSchemaById(id int) tea.Msg {
	if m.GetSchemaByIdFunc != nil {
		return m.GetSchemaByIdFunc(id)
	}
	return nil
}

func (m *MockClient) ListVersions(subject string) tea.Msg {
	if m.ListVersionsFunc != nil {
		return m.ListVersionsFunc(subject)
	}
	return nil
}

func (m *MockClient) GetSubjectVersion(subject string, version int) tea.Msg {
	if m.GetSubjectVersionFunc != nil {
		return m.GetSubjectVersionFunc(subject, version)
	}
	return nil
}

func (m *MockClient) GetSubjectVersionSchema(subject string, version int) tea.Msg {
	if m.GetSubjectVersionSchemaFunc != nil {
		return m.GetSubjectVersionSchemaFunc(subject, version)
	}
	return nil
}

func (m *MockClient) CheckCompatibility(subject string, schema string) tea.Msg {
	if m.CheckCompatibilityFunc != nil {
		return m.CheckCompatibilityFunc(subject, schema)
	}
	return nil
}

func (m *MockClient) DeleteSubject(subject string) tea.Msg {
	if m.DeleteSubjectFunc != nil {
		return m.DeleteSubjectFunc(subject)
	}
	return nil
}

func (m *MockClient) DeleteSubjectVersion(subject string, version int) tea.Msg {
	if m.DeleteSubjectVersionFunc != nil {
		return m.DeleteSubjectVersionFunc(subject, version)
	}
	return nil
}

func (m *MockClient) RegisterSchemaVersion(details SchemaVersionDetails) tea.Msg {
	if m.RegisterSchemaVersionFunc != nil {
		return m.RegisterSchemaVersionFunc(details)
	}
	return nil
}

func (m *MockClient) RegisterSubject(details SubjectCreationDetails) tea.Msg {
	if m.RegisterSubjectFunc != nil {
		return m.RegisterSubjectFunc(details)
	}
	return nil
}

func (m *MockClient) GetCompatibilityConfig(subject string) tea.Msg {
	if m.GetCompatibilityConfigFunc != nil {
		return m.GetCompatibilityConfigFunc(subject)
	}
	return nil
}

func (m *MockClient) SetCompatibilityConfig(subject string, compatibilityType CompatibilityType) tea.Msg {
	if m.SetCompatibilityConfigFunc != nil {
		return m.SetCompatibilityConfigFunc(subject, compatibilityType)
	}
	return nil
}

func NewMock() *MockClient {
	return &MockClient{}
}

func NewMockInstantiator(client *MockClient) Instantiator {
	return func(registry *config.RegistryConfig) (Client, error) {
		return client, nil
	}
}
