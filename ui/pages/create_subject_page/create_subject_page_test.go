package create_subject_page

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skconsole/skadmin"
	"skconsole/tests"
	"skconsole/ui/components/statusbar"
	"skconsole/ui/pages/nav"
)

func TestCreateSubjectPage(t *testing.T) {

	t.Run("esc goes back to the subjects page", func(t *testing.T) {
		m := New([]string{"orders"})
		// make sure form has been initialized
		m.View(tests.NewKontext(), tests.Renderer)

		cmd := m.Update(tests.Key(tea.KeyEsc))

		assert.IsType(t, nav.LoadSubjectsPageMsg{}, cmd())
	})

	t.Run("ignores updates before the form is rendered", func(t *testing.T) {
		m := New(nil)

		assert.Nil(t, m.Update(tests.Key(tea.KeyEsc)))
	})

	t.Run("renders subject, type and compatibility fields", func(t *testing.T) {
		m := New(nil)

		render := m.View(tests.NewKontext(), tests.Renderer)

		assert.Contains(t, render, "Subject")
		assert.Contains(t, render, "Schema Type")
		assert.Contains(t, render, "avro")
		assert.Contains(t, render, "Compatibility")
		assert.Contains(t, render, "backward")
	})

	t.Run("submitting publishes the registration with defaults", func(t *testing.T) {
		m := New(nil)
		m.formValues.subject = " users "
		m.formValues.schema = `"string"`

		msg := m.submit()()

		require.IsType(t, nav.RegisterSubjectMsg{}, msg)
		assert.Equal(t, skadmin.SubjectCreationDetails{
			Subject:           "users",
			Schema:            `"string"`,
			SchemaType:        skadmin.Avro,
			CompatibilityType: skadmin.CompatibilityBackward,
		}, msg.(nav.RegisterSubjectMsg).Details)
	})

	t.Run("shortcuts", func(t *testing.T) {
		m := New(nil)

		assert.Equal(t, "Register Subject", m.Title())
		assert.Contains(t, m.Shortcuts(), statusbar.Shortcut{Name: "Go Back", Keybinding: "esc"})
	})
}

func TestValidation(t *testing.T) {

	t.Run("subject name is required", func(t *testing.T) {
		err := validateSubject(nil)("  ")

		assert.EqualError(t, err, "subject name cannot be empty")
	})

	t.Run("subject name must be unknown", func(t *testing.T) {
		validate := validateSubject([]string{"orders", "payments"})

		assert.EqualError(t, validate("orders"), "subject orders already exists")
		assert.NoError(t, validate("Orders"))
		assert.NoError(t, validate("users"))
	})

	t.Run("schema is required", func(t *testing.T) {
		assert.EqualError(t, validateSchema("\n "), "schema cannot be empty")
		assert.NoError(t, validateSchema(`{"type":"int"}`))
	})
}
