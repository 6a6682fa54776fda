package skadmin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

type compatibilityConfig struct {
	CompatibilityType CompatibilityType `json:"compatibilityType"`
}

// verdict accepts a bare boolean or an object with an isCompatible or compatible field.
type verdict struct {
	Compatible bool
}

func (v *verdict) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
		return json.Unmarshal(trimmed, &v.Compatible)
	}
	var wrapped struct {
		IsCompatible *bool `json:"isCompatible"`
		Compatible   *bool `json:"compatible"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return errors.Wrap(err, "unexpected compatibility verdict")
	}
	switch {
	case wrapped.IsCompatible != nil:
		v.Compatible = *wrapped.IsCompatible
	case wrapped.Compatible != nil:
		v.Compatible = *wrapped.Compatible
	default:
		return errors.Errorf("compatibility verdict without result: %s", string(trimmed))
	}
	return nil
}

type CompatibilityCheckedMsg struct {
	Subject    string
	Compatible bool
}

type CompatibilityCheckErrMsg struct {
	Subject string
	Err     error
}

type CompatibilityCheckStartedMsg struct {
	Subject string
	verdict chan bool
	err     chan error
}

func (msg CompatibilityCheckStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case compatible := <-msg.verdict:
		return CompatibilityCheckedMsg{msg.Subject, compatible}
	case err := <-msg.err:
		return CompatibilityCheckErrMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) CheckCompatibility(subject string, schema string) tea.Msg {
	result, err := async(func() (bool, error) {
		var v verdict
		err := s.do(
			http.MethodGet,
			compatibilityPath(subject),
			url.Values{"schema": []string{schema}},
			nil,
			&v,
		)
		return v.Compatible, err
	})
	return CompatibilityCheckStartedMsg{subject, result, err}
}

type CompatibilityConfigFetchedMsg struct {
	// Subject is empty for the global configuration
	Subject           string
	CompatibilityType CompatibilityType
}

type CompatibilityConfigFetchErrMsg struct {
	Subject string
	Err     error
}

type CompatibilityConfigFetchStartedMsg struct {
	Subject           string
	compatibilityType chan CompatibilityType
	err               chan error
}

func (msg CompatibilityConfigFetchStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case c := <-msg.compatibilityType:
		return CompatibilityConfigFetchedMsg{msg.Subject, c}
	case err := <-msg.err:
		return CompatibilityConfigFetchErrMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) GetCompatibilityConfig(subject string) tea.Msg {
	result, err := async(func() (CompatibilityType, error) {
		var c compatibilityConfig
		err := s.do(http.MethodGet, compatibilityPath(subject), nil, nil, &c)
		return c.CompatibilityType, err
	})
	return CompatibilityConfigFetchStartedMsg{subject, result, err}
}

type CompatibilityConfigUpdatedMsg struct {
	Subject           string
	CompatibilityType CompatibilityType
}

type CompatibilityConfigUpdateErrMsg struct {
	Subject string
	Err     error
}

type CompatibilityConfigUpdateStartedMsg struct {
	Subject           string
	compatibilityType chan CompatibilityType
	err               chan error
}

func (msg CompatibilityConfigUpdateStartedMsg) AwaitCompletion() tea.Msg {
	select {
	case c := <-msg.compatibilityType:
		return CompatibilityConfigUpdatedMsg{msg.Subject, c}
	case err := <-msg.err:
		return CompatibilityConfigUpdateErrMsg{msg.Subject, err}
	}
}

func (s *DefaultSkClient) SetCompatibilityConfig(subject string, compatibilityType CompatibilityType) tea.Msg {
	result, err := async(func() (CompatibilityType, error) {
		var ack json.RawMessage
		err := s.do(
			http.MethodPut,
			compatibilityPath(subject),
			nil,
			compatibilityConfig{compatibilityType},
			&ack,
		)
		if err != nil {
			return "", err
		}
		var updated compatibilityConfig
		if json.Unmarshal(ack, &updated) == nil && updated.CompatibilityType != "" {
			return updated.CompatibilityType, nil
		}
		return compatibilityType, nil
	})
	return CompatibilityConfigUpdateStartedMsg{subject, result, err}
}
