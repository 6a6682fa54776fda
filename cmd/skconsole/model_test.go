package main

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skconsole/config"
	"skconsole/kontext"
	"skconsole/skadmin"
	"skconsole/tests"
	"skconsole/ui/clipper"
	"skconsole/ui/pages/nav"
)

func registryConfig() *config.Config {
	return &config.Config{
		Registries: []config.RegistryConfig{
			{Name: "prd", Url: "http://registry:8080", Active: true},
		},
	}
}

func mockRegistry() *skadmin.MockClient {
	client := skadmin.NewMock()
	client.ListSubjectsFunc = func() tea.Msg {
		return skadmin.SubjectsListedMsg{Subjects: []string{"orders", "payments"}}
	}
	client.GetCompatibilityConfigFunc = func(subject string) tea.Msg {
		return skadmin.CompatibilityConfigFetchedMsg{CompatibilityType: skadmin.CompatibilityFull}
	}
	return client
}

func newTestModel(client *skadmin.MockClient, cfg *config.Config, url string) *Model {
	model := NewModel(
		skadmin.NewMockInstantiator(client),
		config.NewInMemoryConfigIO(cfg),
		clipper.NewMock(),
		url,
	)
	model.ktx = &kontext.ProgramKtx{
		WindowWidth:     160,
		WindowHeight:    60,
		AvailableHeight: 60,
	}
	return model
}

// started loads the config and feeds the initial registry calls back into the model.
func started(t *testing.T, model *Model, cfg *config.Config) {
	cmd := model.Update(config.LoadedMsg{Config: cfg})
	require.NotNil(t, cmd)
	for _, msg := range tests.ExecuteBatchCmd(cmd) {
		model.Update(msg)
	}
}

func TestModel(t *testing.T) {

	t.Run("Startup", func(t *testing.T) {
		t.Run("shows the subjects of the active registry", func(t *testing.T) {
			cfg := registryConfig()
			model := newTestModel(mockRegistry(), cfg, "")

			started(t, model, cfg)
			view := model.View()

			assert.Contains(t, view, "Subjects")
			assert.Contains(t, view, "prd")
			assert.Contains(t, view, "orders")
			assert.Contains(t, view, "payments")
			assert.Contains(t, view, "Global Compatibility: full")
		})

		t.Run("reports a missing registry", func(t *testing.T) {
			model := newTestModel(mockRegistry(), &config.Config{}, "")

			cmd := model.Update(config.LoadedMsg{Config: &config.Config{}})

			assert.Nil(t, cmd)
			assert.Contains(t, model.View(), "no registry configured")
		})

		t.Run("reports an unreadable config", func(t *testing.T) {
			model := newTestModel(mockRegistry(), &config.Config{}, "")

			model.Update(config.LoadingErrMsg{Err: fmt.Errorf("bad yaml")})

			assert.Contains(t, model.View(), "Unable to start: bad yaml")
		})

		t.Run("url override wins over the configured registry", func(t *testing.T) {
			var used *config.RegistryConfig
			model := newTestModel(mockRegistry(), registryConfig(), "http://localhost:9000")
			model.instantiator = func(registry *config.RegistryConfig) (skadmin.Client, error) {
				used = registry
				return mockRegistry(), nil
			}

			started(t, model, registryConfig())

			require.NotNil(t, used)
			assert.Equal(t, "http://localhost:9000", used.Url)
			assert.Contains(t, model.View(), "command-line")
		})

		t.Run("reports a client that cannot be created", func(t *testing.T) {
			model := newTestModel(mockRegistry(), registryConfig(), "")
			model.instantiator = func(registry *config.RegistryConfig) (skadmin.Client, error) {
				return nil, fmt.Errorf("unable to read CA certificate")
			}

			model.Update(config.LoadedMsg{Config: registryConfig()})

			assert.Contains(t, model.View(), "unable to read CA certificate")
		})
	})

	t.Run("Navigation", func(t *testing.T) {
		t.Run("opens the new subject form and goes back", func(t *testing.T) {
			cfg := registryConfig()
			model := newTestModel(mockRegistry(), cfg, "")
			started(t, model, cfg)

			cmd := model.Update(tests.Key(tea.KeyCtrlN))
			msg := cmd()
			require.IsType(t, nav.LoadCreateSubjectPageMsg{}, msg)
			model.Update(msg)

			assert.Contains(t, model.View(), "Register Subject")

			cmd = model.Update(tests.Key(tea.KeyEsc))
			model.Update(cmd())

			view := model.View()
			assert.NotContains(t, view, "Register Subject")
			assert.Contains(t, view, "orders")
		})

		t.Run("submitted subjects are registered by the subjects page", func(t *testing.T) {
			cfg := registryConfig()
			client := mockRegistry()
			var registered skadmin.SubjectCreationDetails
			client.RegisterSubjectFunc = func(details skadmin.SubjectCreationDetails) tea.Msg {
				registered = details
				return skadmin.SubjectRegisteredMsg{Details: details}
			}
			model := newTestModel(client, cfg, "")
			started(t, model, cfg)
			model.Update(nav.LoadCreateSubjectPageMsg{Subjects: []string{"orders", "payments"}})

			details := skadmin.SubjectCreationDetails{
				Subject:           "users",
				Schema:            `"string"`,
				SchemaType:        skadmin.Avro,
				CompatibilityType: skadmin.CompatibilityBackward,
			}
			cmd := model.Update(nav.RegisterSubjectMsg{Details: details})
			require.NotNil(t, cmd)
			model.Update(cmd())

			assert.Equal(t, details, registered)
			assert.Equal(t, []string{"orders", "payments", "users"}, model.subjectsPage.State().Subjects)
			assert.Contains(t, model.View(), "Subject users registered")
		})

		t.Run("refresh reloads the subjects", func(t *testing.T) {
			cfg := registryConfig()
			client := mockRegistry()
			calls := 0
			client.ListSubjectsFunc = func() tea.Msg {
				calls++
				return skadmin.SubjectsListedMsg{Subjects: []string{"orders"}}
			}
			model := newTestModel(client, cfg, "")
			started(t, model, cfg)

			cmd := model.Update(nav.LoadSubjectsPageMsg{Refresh: true})
			for _, msg := range tests.ExecuteBatchCmd(cmd) {
				model.Update(msg)
			}

			assert.Equal(t, 2, calls)
		})
	})

	t.Run("Registries", func(t *testing.T) {
		t.Run("switches between configured registries", func(t *testing.T) {
			io := config.NewInMemoryConfigIO(&config.Config{
				Registries: []config.RegistryConfig{
					{Name: "prd", Url: "http://prd:8080", Active: true},
					{Name: "tst", Url: "http://tst:8080"},
				},
			})
			cfg := config.New(io)
			tst := skadmin.NewMock()
			tst.ListSubjectsFunc = func() tea.Msg {
				return skadmin.SubjectsListedMsg{Subjects: []string{"invoices"}}
			}
			model := newTestModel(mockRegistry(), cfg, "")
			model.instantiator = func(registry *config.RegistryConfig) (skadmin.Client, error) {
				if registry.Name == "tst" {
					return tst, nil
				}
				return mockRegistry(), nil
			}
			started(t, model, cfg)

			cmd := model.Update(tests.Key(tea.KeyCtrlRight))
			require.NotNil(t, cmd)
			for _, msg := range tests.ExecuteBatchCmd(model.Update(cmd())) {
				model.Update(msg)
			}

			view := model.View()
			assert.Contains(t, view, "invoices")
			assert.NotContains(t, view, "payments")
			assert.Equal(t, "tst", cfg.ActiveRegistry().Name)
		})

		t.Run("results of the previous registry are discarded", func(t *testing.T) {
			cfg := config.New(config.NewInMemoryConfigIO(&config.Config{
				Registries: []config.RegistryConfig{
					{Name: "prd", Url: "http://prd:8080", Active: true},
					{Name: "tst", Url: "http://tst:8080"},
				},
			}))
			prd := mockRegistry()
			prd.RegisterSubjectFunc = func(details skadmin.SubjectCreationDetails) tea.Msg {
				return skadmin.SubjectRegisteredMsg{Details: details}
			}
			prd.SetCompatibilityConfigFunc = func(subject string, c skadmin.CompatibilityType) tea.Msg {
				return skadmin.CompatibilityConfigUpdatedMsg{Subject: subject, CompatibilityType: c}
			}
			tst := mockRegistry()
			tst.ListSubjectsFunc = func() tea.Msg {
				return skadmin.SubjectsListedMsg{Subjects: []string{"invoices"}}
			}
			model := newTestModel(prd, cfg, "")
			model.instantiator = func(registry *config.RegistryConfig) (skadmin.Client, error) {
				if registry.Name == "tst" {
					return tst, nil
				}
				return prd, nil
			}
			started(t, model, cfg)

			registration := model.Update(nav.RegisterSubjectMsg{Details: skadmin.SubjectCreationDetails{
				Subject:    "only-in-prd",
				Schema:     `"string"`,
				SchemaType: skadmin.Avro,
			}})
			require.NotNil(t, registration)
			compatibility := model.subjectsPage.ChangeCompatibility("", skadmin.CompatibilityNone)

			cmd := model.Update(tests.Key(tea.KeyCtrlRight))
			require.NotNil(t, cmd)
			for _, msg := range tests.ExecuteBatchCmd(model.Update(cmd())) {
				model.Update(msg)
			}
			model.Update(registration())
			model.Update(compatibility())

			assert.Equal(t, []string{"invoices"}, model.subjectsPage.State().Subjects)
			view := model.View()
			assert.NotContains(t, view, "only-in-prd")
			assert.Contains(t, view, "Global Compatibility: full")
		})

		t.Run("hides the tabs for a url override", func(t *testing.T) {
			model := newTestModel(mockRegistry(), registryConfig(), "http://localhost:9000")

			started(t, model, registryConfig())

			assert.Nil(t, model.tabs)
		})
	})

	t.Run("F1 toggles the shortcuts", func(t *testing.T) {
		cfg := registryConfig()
		model := newTestModel(mockRegistry(), cfg, "")
		started(t, model, cfg)

		assert.NotContains(t, model.View(), "Search:")

		model.Update(tests.Key(tea.KeyF1))
		assert.Contains(t, model.View(), "Search:")

		model.Update(tests.Key(tea.KeyF1))
		assert.NotContains(t, model.View(), "Search:")
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		model := newTestModel(mockRegistry(), registryConfig(), "")

		cmd := model.Update(tests.Key(tea.KeyCtrlC))

		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestProgram(t *testing.T) {
	model := NewModel(
		skadmin.NewMockInstantiator(mockRegistry()),
		config.NewInMemoryConfigIO(registryConfig()),
		clipper.NewMock(),
		"",
	)

	tm := teatest.NewTestModel(t, program{model}, teatest.WithInitialTermSize(120, 40))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("payments"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(program)
	require.True(t, ok)
	assert.Equal(t, []string{"orders", "payments"}, final.model.subjectsPage.State().Subjects)
}
