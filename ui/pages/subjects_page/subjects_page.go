package subjects_page

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"skconsole/skadmin"
	"skconsole/ui"
	"skconsole/ui/clipper"
	"skconsole/ui/components/border"
	"skconsole/ui/components/cmdbar"
	"skconsole/ui/components/notifier"
	"skconsole/ui/components/statusbar"
	"skconsole/ui/pages/nav"
)

const notifierTag = "subjects-page"

type mode int

const (
	browsing mode = iota
	editing
	choosingCompatibility
)

type schemaCopiedMsg struct{}

type schemaCopyErrMsg struct {
	Err error
}

type Model struct {
	client       skadmin.Client
	clipper      clipper.Writer
	state        ViewState
	gens         generations
	loaded       bool
	loadErr      error
	cursor       int
	mode         mode
	globalCompat skadmin.CompatibilityType
	searchBar    *cmdbar.SearchCmdBar
	notifierBar  *cmdbar.NotifierCmdBar
	editor       textarea.Model
	compatForm   *huh.Form
	compatChoice skadmin.CompatibilityType
	listBorder   *border.Model
	detailBorder *border.Model
}

// State returns the current ViewState.
func (m *Model) State() ViewState {
	return m.state
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	log.Debug("Received Update", "msg", reflect.TypeOf(msg))

	switch msg := msg.(type) {
	case trackedMsg:
		return m.handleTracked(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case nav.RegisterSubjectMsg:
		return m.RegisterSubject(msg.Details)
	}

	cmd := m.notify(msg)
	if m.mode == editing {
		var editorCmd tea.Cmd
		m.editor, editorCmd = m.editor.Update(msg)
		return tea.Batch(cmd, editorCmd)
	}
	if m.searchBar.IsFocussed() {
		_, _, searchCmd := m.searchBar.Update(msg)
		return tea.Batch(cmd, searchCmd)
	}
	return cmd
}

func (m *Model) handleTracked(msg trackedMsg) tea.Cmd {
	if !m.gens.isCurrent(msg) {
		log.Debug("Discarding stale response",
			"kind", msg.kind,
			"gen", msg.gen,
			"current", m.gens.current(msg.kind),
			"msg", reflect.TypeOf(msg.msg),
		)
		return nil
	}

	cmd := m.notify(msg.msg)
	if started, ok := msg.msg.(awaiter); ok {
		return tea.Batch(cmd, await(msg, started))
	}

	switch inner := msg.msg.(type) {
	case skadmin.SubjectsListedMsg:
		m.state = NewViewState(inner.Subjects)
		m.searchBar.Reset()
		m.loaded = true
		m.loadErr = nil
		m.cursor = 0
		m.gens.next(selectRequest)
		m.leaveSelection()
	case skadmin.SubjectListingErrorMsg:
		m.loadErr = inner.Err
	case skadmin.CompatibilityConfigFetchedMsg:
		if inner.Subject == "" {
			m.globalCompat = inner.CompatibilityType
		}
	case skadmin.SubjectMetaFetchedMsg:
		if !slices.Contains(m.state.Subjects, inner.Subject.Name) {
			log.Debug("Discarding metadata of unlisted subject", "subject", inner.Subject.Name)
			return cmd
		}
		m.state = m.state.Select(inner.Subject)
		if version := inner.Subject.LatestVersion(); version > 0 {
			subject := inner.Subject.Name
			return tea.Batch(cmd, m.gens.track(selectRequest, msg.gen, func() tea.Msg {
				return m.client.GetSubjectVersionSchema(subject, version)
			}))
		}
	case skadmin.SubjectVersionSchemaFetchedMsg:
		m.state = m.state.ResolveLastSchema(inner.Subject, inner.Version, inner.Schema)

	case skadmin.SchemaVersionRegisteredMsg:
		m.mode = browsing
		m.editor.Blur()
		return tea.Batch(cmd, m.reload())
	case skadmin.SubjectRegisteredMsg:
		m.state = m.state.AddSubject(inner.Details.Subject)
		m.clampCursor()
	case skadmin.CompatibilityConfigUpdatedMsg:
		if inner.Subject == "" {
			m.globalCompat = inner.CompatibilityType
		} else if m.state.IsSelected(inner.Subject) {
			return tea.Batch(cmd, m.fetchSelection(inner.Subject))
		}
	}
	return cmd
}

// leaveSelection drops the editor and the compatibility form, both act on the selection.
func (m *Model) leaveSelection() {
	m.editor.Blur()
	m.closeCompatForm()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case choosingCompatibility:
		return m.updateCompatForm(msg)
	case editing:
		return m.updateEditor(msg)
	}

	if m.searchBar.IsFocussed() {
		_, _, cmd := m.searchBar.Update(msg)
		m.Search(m.searchBar.SearchTerm())
		return cmd
	}

	switch msg.String() {
	case "/":
		_, _, cmd := m.searchBar.Update(msg)
		return cmd
	case "esc":
		if m.state.SearchQuery != "" {
			m.searchBar.Reset()
			m.Search("")
		}
	case "left", "h":
		m.Navigate(m.state.CurrentPage - 1)
	case "right", "l":
		m.Navigate(m.state.CurrentPage + 1)
	case "home":
		m.Navigate(1)
	case "end":
		m.Navigate(m.state.LastPage())
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		page, _ := strconv.Atoi(msg.String())
		m.Navigate(page)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Window())-1 {
			m.cursor++
		}
	case "enter":
		if window := m.state.Window(); m.cursor < len(window) {
			return m.SelectSubject(window[m.cursor])
		}
	case "ctrl+n":
		return ui.PublishMsg(nav.LoadCreateSubjectPageMsg{Subjects: m.state.Subjects})
	case "ctrl+e":
		return m.startEditing()
	case "ctrl+o":
		return m.startChoosingCompatibility()
	case "c":
		return m.copyLastSchema()
	case "f5":
		return m.Initialize()
	}
	return nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	if m.state.Selected == nil {
		m.leaveSelection()
		return nil
	}
	subject := m.state.Selected.Meta.Name
	switch msg.String() {
	case "esc":
		m.mode = browsing
		m.editor.Blur()
		return nil
	case "ctrl+s":
		return m.RegisterSchemaVersion(subject, m.editor.Value())
	case "ctrl+t":
		return m.CheckCompatibility(subject, m.editor.Value())
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) startEditing() tea.Cmd {
	if m.state.Selected == nil {
		return nil
	}
	m.mode = editing
	if m.state.Selected.LastSchemaResolved {
		m.editor.SetValue(m.state.Selected.LastSchema)
	} else {
		m.editor.Reset()
	}
	return m.editor.Focus()
}

func (m *Model) startChoosingCompatibility() tea.Cmd {
	if m.state.Selected == nil {
		return nil
	}
	subject := m.state.Selected.Meta.Name
	m.compatChoice = m.state.Selected.Meta.CompatibilityType

	var options []huh.Option[skadmin.CompatibilityType]
	for _, c := range skadmin.CompatibilityTypes {
		options = append(options, huh.NewOption(string(c), c))
	}
	m.compatForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[skadmin.CompatibilityType]().
				Title("Compatibility of " + subject).
				Options(options...).
				Value(&m.compatChoice),
		),
	)
	m.mode = choosingCompatibility
	return m.compatForm.Init()
}

func (m *Model) updateCompatForm(msg tea.Msg) tea.Cmd {
	if m.state.Selected == nil {
		m.closeCompatForm()
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.closeCompatForm()
		return nil
	}

	form, cmd := m.compatForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.compatForm = f
	}
	if m.compatForm.State == huh.StateCompleted {
		subject := m.state.Selected.Meta.Name
		m.closeCompatForm()
		return m.ChangeCompatibility(subject, m.compatChoice)
	}
	return cmd
}

func (m *Model) closeCompatForm() {
	m.compatForm = nil
	m.mode = browsing
}

func (m *Model) copyLastSchema() tea.Cmd {
	selected := m.state.Selected
	if selected == nil || !selected.LastSchemaResolved {
		return nil
	}
	schema := selected.LastSchema
	return func() tea.Msg {
		if err := m.clipper.Write(schema); err != nil {
			return schemaCopyErrMsg{err}
		}
		return schemaCopiedMsg{}
	}
}

// Initialize (re)loads the subject list and the global compatibility.
func (m *Model) Initialize() tea.Cmd {
	gen := m.gens.next(loadRequest)
	return tea.Batch(
		m.gens.track(loadRequest, gen, m.client.ListSubjects),
		m.gens.track(loadRequest, gen, func() tea.Msg {
			return m.client.GetCompatibilityConfig("")
		}),
	)
}

// reload drops the current state, including outstanding selections, and initializes again.
func (m *Model) reload() tea.Cmd {
	m.state = ViewState{}
	m.loaded = false
	m.cursor = 0
	m.gens.next(selectRequest)
	return m.Initialize()
}

func (m *Model) Navigate(target int) {
	state, ok := m.state.Navigate(target)
	if !ok {
		log.Debug("Ignoring navigation out of bounds", "target", target, "last", m.state.LastPage())
		return
	}
	if state.CurrentPage != m.state.CurrentPage {
		m.cursor = 0
	}
	m.state = state
}

func (m *Model) Search(query string) {
	if query == m.state.SearchQuery {
		return
	}
	m.state = m.state.Search(query)
	m.cursor = 0
}

// SelectSubject fetches the metadata of name, superseding any earlier selection.
func (m *Model) SelectSubject(name string) tea.Cmd {
	if !m.state.IsActive(name) {
		log.Debug("Ignoring selection of unknown subject", "subject", name)
		return nil
	}
	return m.fetchSelection(name)
}

func (m *Model) fetchSelection(name string) tea.Cmd {
	return m.gens.issue(selectRequest, func() tea.Msg {
		return m.client.GetSubjectMeta(name)
	})
}

// RegisterSchemaVersion registers schema as a new version of the selected subject.
func (m *Model) RegisterSchemaVersion(subject string, schema string) tea.Cmd {
	if !m.state.IsSelected(subject) {
		log.Debug("Ignoring schema registration for unselected subject", "subject", subject)
		return nil
	}
	schemaType := m.state.Selected.Meta.SchemaType
	return m.gens.own(func() tea.Msg {
		return m.client.RegisterSchemaVersion(skadmin.SchemaVersionDetails{
			Subject:    subject,
			Schema:     schema,
			SchemaType: schemaType,
		})
	})
}

func (m *Model) RegisterSubject(details skadmin.SubjectCreationDetails) tea.Cmd {
	if details.Subject == "" {
		return m.notify(registrationRefusedMsg{"Subject name is required"})
	}
	if slices.Contains(m.state.Subjects, details.Subject) {
		return m.notify(registrationRefusedMsg{"Subject " + details.Subject + " already exists"})
	}
	return m.gens.own(func() tea.Msg {
		return m.client.RegisterSubject(details)
	})
}

func (m *Model) ChangeCompatibility(subject string, compatibilityType skadmin.CompatibilityType) tea.Cmd {
	return m.gens.own(func() tea.Msg {
		return m.client.SetCompatibilityConfig(subject, compatibilityType)
	})
}

func (m *Model) CheckCompatibility(subject string, schema string) tea.Cmd {
	return m.gens.own(func() tea.Msg {
		return m.client.CheckCompatibility(subject, schema)
	})
}

func (m *Model) notify(msg tea.Msg) tea.Cmd {
	_, _, cmd := m.notifierBar.Update(msg)
	return cmd
}

func (m *Model) clampCursor() {
	if last := len(m.state.Window()) - 1; m.cursor > last {
		m.cursor = max(0, last)
	}
}

func (m *Model) Shortcuts() []statusbar.Shortcut {
	switch m.mode {
	case editing:
		return []statusbar.Shortcut{
			{Name: "Register Version", Keybinding: "C-s"},
			{Name: "Check Compatibility", Keybinding: "C-t"},
			{Name: "Cancel", Keybinding: "esc"},
		}
	case choosingCompatibility:
		return []statusbar.Shortcut{
			{Name: "Confirm", Keybinding: "enter"},
			{Name: "Cancel", Keybinding: "esc"},
		}
	}

	if shortcuts := m.searchBar.Shortcuts(); shortcuts != nil {
		return shortcuts
	}

	shortcuts := []statusbar.Shortcut{
		{Name: "Search", Keybinding: "/"},
		{Name: "Select", Keybinding: "enter"},
	}
	pagination := m.state.PaginationView()
	if !pagination.IsFirst {
		shortcuts = append(shortcuts, statusbar.Shortcut{Name: "Prev Page", Keybinding: "←/h"})
	}
	if !pagination.IsLast {
		shortcuts = append(shortcuts, statusbar.Shortcut{Name: "Next Page", Keybinding: "→/l"})
	}
	shortcuts = append(shortcuts, statusbar.Shortcut{Name: "Register New Subject", Keybinding: "C-n"})
	if m.state.Selected != nil {
		shortcuts = append(shortcuts,
			statusbar.Shortcut{Name: "Evolve Schema", Keybinding: "C-e"},
			statusbar.Shortcut{Name: "Change Compatibility", Keybinding: "C-o"},
			statusbar.Shortcut{Name: "Copy Schema", Keybinding: "c"},
		)
	}
	return append(shortcuts, statusbar.Shortcut{Name: "Refresh", Keybinding: "F5"})
}

func (m *Model) Title() string {
	return "Subjects"
}

// registrationRefusedMsg reports a new subject that was not sent to the registry.
type registrationRefusedMsg struct {
	Reason string
}

func (m *Model) registerNotifications() {
	bar := m.notifierBar
	autoHide := func(nm *notifier.Model) tea.Cmd {
		return nm.AutoHideCmd(notifierTag)
	}

	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectListingStartedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		return true, nm.SpinWithLoadingMsg("Loading subjects")
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectsListedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.Idle()
		return false, nil
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectListingErrorMsg, nm *notifier.Model) (bool, tea.Cmd) {
		return true, nm.ShowErrorMsg("Error listing subjects", msg.Err)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectMetaFetchStartedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		return true, nm.SpinWithLoadingMsg("Loading " + msg.Subject)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectMetaFetchedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.Idle()
		return false, nil
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectMetaFetchErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Failed to load "+msg.Subject, msg.Err)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectVersionSchemaFetchErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Failed to load latest schema of "+msg.Subject, msg.Err)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SchemaVersionRegistrationStartedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		return true, nm.SpinWithLoadingMsg("Registering schema for " + msg.Subject)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SchemaVersionRegisteredMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowSuccessMsg("Schema registered for " + msg.Subject + " with id " + strconv.Itoa(msg.Id))
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SchemaVersionRegistrationErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Failed to register schema", msg.Err)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectRegistrationStartedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		return true, nm.SpinWithLoadingMsg("Registering subject " + msg.Details.Subject)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectRegisteredMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowSuccessMsg("Subject " + msg.Details.Subject + " registered")
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.SubjectRegistrationErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Failed to register subject", msg.Err)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg registrationRefusedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg(msg.Reason, nil)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.CompatibilityConfigUpdatedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowSuccessMsg("Compatibility set to " + string(msg.CompatibilityType))
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.CompatibilityConfigUpdateErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Failed to update compatibility", msg.Err)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.CompatibilityCheckStartedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		return true, nm.SpinWithLoadingMsg("Checking compatibility")
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.CompatibilityCheckedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		if msg.Compatible {
			nm.ShowSuccessMsg("Schema is compatible with " + msg.Subject)
		} else {
			nm.ShowErrorMsg("Schema is not compatible with "+msg.Subject, nil)
		}
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg skadmin.CompatibilityCheckErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Failed to check compatibility", msg.Err)
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg schemaCopiedMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowSuccessMsg("Schema copied")
		return true, autoHide(nm)
	})
	cmdbar.WithMsgHandler(bar, func(msg schemaCopyErrMsg, nm *notifier.Model) (bool, tea.Cmd) {
		nm.ShowErrorMsg("Copy failed", msg.Err)
		return true, autoHide(nm)
	})
}

func New(client skadmin.Client, clip clipper.Writer) (*Model, tea.Cmd) {
	editor := textarea.New()
	editor.Placeholder = "Schema"
	editor.ShowLineNumbers = true
	editor.CharLimit = 0

	m := &Model{
		client:      client,
		clipper:     clip,
		searchBar:   cmdbar.NewSearchCmdBar("Search subjects by name"),
		notifierBar: cmdbar.NewNotifierCmdBar(notifierTag),
		editor:      editor,
	}
	m.registerNotifications()

	m.listBorder = border.New(
		border.WithInnerPaddingTop(),
		border.WithTitleFn(m.listTitle),
		border.WithText(border.TopLeftBorder, m.compatTitle),
	)
	m.detailBorder = border.New(
		border.WithInnerPaddingTop(),
		border.WithText(border.TopLeftBorder, m.detailTitle),
	)

	return m, m.Initialize()
}
