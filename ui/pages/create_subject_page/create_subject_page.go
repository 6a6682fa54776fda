package create_subject_page

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"skconsole/kontext"
	"skconsole/skadmin"
	"skconsole/styles"
	"skconsole/ui"
	"skconsole/ui/components/statusbar"
	"skconsole/ui/pages/nav"
)

type Model struct {
	form          *huh.Form
	formValues    *formValues
	existing      []string
	windowResized bool
	submitted     bool
}

type formValues struct {
	subject           string
	schema            string
	schemaType        skadmin.SchemaType
	compatibilityType skadmin.CompatibilityType
}

func (m *Model) View(ktx *kontext.ProgramKtx, renderer *ui.Renderer) string {
	if m.form == nil || m.windowResized {
		m.windowResized = false
		m.form = m.newForm(ktx)
	}
	return renderer.RenderWithStyle(m.form.View(), styles.Form)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		return nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowResized = true
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return ui.PublishMsg(nav.LoadSubjectsPageMsg{})
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.submitted {
		m.submitted = true
		return m.submit()
	}
	return cmd
}

func (m *Model) submit() tea.Cmd {
	return ui.PublishMsg(nav.RegisterSubjectMsg{
		Details: skadmin.SubjectCreationDetails{
			Subject:           strings.TrimSpace(m.formValues.subject),
			Schema:            m.formValues.schema,
			SchemaType:        m.formValues.schemaType,
			CompatibilityType: m.formValues.compatibilityType,
		},
	})
}

func (m *Model) Shortcuts() []statusbar.Shortcut {
	return []statusbar.Shortcut{
		{Name: "Confirm", Keybinding: "enter"},
		{Name: "Next Field", Keybinding: "tab"},
		{Name: "Prev. Field", Keybinding: "s-tab"},
		{Name: "New Line", Keybinding: "alt+enter"},
		{Name: "Go Back", Keybinding: "esc"},
	}
}

func (m *Model) Title() string {
	return "Register Subject"
}

func (m *Model) newForm(ktx *kontext.ProgramKtx) *huh.Form {
	var typeOptions []huh.Option[skadmin.SchemaType]
	for _, t := range skadmin.SchemaTypes {
		typeOptions = append(typeOptions, huh.NewOption(string(t), t))
	}
	var compatOptions []huh.Option[skadmin.CompatibilityType]
	for _, c := range skadmin.CompatibilityTypes {
		compatOptions = append(compatOptions, huh.NewOption(string(c), c))
	}

	schemaHeight := ktx.AvailableHeight - 12
	if schemaHeight < 5 {
		schemaHeight = 5
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&m.formValues.subject).
				Validate(validateSubject(m.existing)),
			huh.NewSelect[skadmin.SchemaType]().
				Title("Schema Type").
				Inline(true).
				Value(&m.formValues.schemaType).
				Options(typeOptions...),
			huh.NewSelect[skadmin.CompatibilityType]().
				Title("Compatibility").
				Value(&m.formValues.compatibilityType).
				Options(compatOptions...),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Schema").
				Lines(schemaHeight).
				ShowLineNumbers(true).
				Value(&m.formValues.schema).
				Validate(validateSchema),
		),
	)
	form.WithWidth(ktx.WindowWidth - 4)
	form.Init()
	return form
}

func validateSubject(existing []string) func(string) error {
	return func(name string) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return errors.New("subject name cannot be empty")
		}
		if slices.Contains(existing, name) {
			return fmt.Errorf("subject %s already exists", name)
		}
		return nil
	}
}

func validateSchema(schema string) error {
	if strings.TrimSpace(schema) == "" {
		return errors.New("schema cannot be empty")
	}
	return nil
}

// New builds the form, existing holds the subject names that are already taken.
func New(existing []string) *Model {
	return &Model{
		existing: existing,
		formValues: &formValues{
			schemaType:        skadmin.Avro,
			compatibilityType: skadmin.CompatibilityBackward,
		},
	}
}
