package main

import (
	"fmt"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"skconsole/config"
	"skconsole/kontext"
	"skconsole/skadmin"
	"skconsole/styles"
	"skconsole/ui"
	"skconsole/ui/clipper"
	"skconsole/ui/components/statusbar"
	"skconsole/ui/components/tab"
	"skconsole/ui/pages"
	"skconsole/ui/pages/create_subject_page"
	"skconsole/ui/pages/nav"
	"skconsole/ui/pages/subjects_page"
)

type Model struct {
	ktx          *kontext.ProgramKtx
	statusbar    *statusbar.Model
	tabs         *tab.Model
	activePage   pages.Page
	subjectsPage *subjects_page.Model
	instantiator skadmin.Instantiator
	configIO     config.IO
	clipper      clipper.Writer
	urlOverride  string
	startupErr   error
}

func (m *Model) Init() tea.Cmd {
	return config.Load(m.configIO)
}

func (m *Model) View() string {
	ktx := kontext.WithNewAvailableDimensions(m.ktx)
	renderer := ui.NewRenderer(ktx)

	if m.startupErr != nil {
		return styles.Notifier.Error.Render(fmt.Sprintf("Unable to start: %v", m.startupErr))
	}
	if m.activePage == nil {
		return "Loading configuration"
	}

	statusBarView := m.statusbar.View(ktx, renderer)
	var tabsView string
	if m.tabs != nil {
		tabsView = m.tabs.View(ktx, renderer)
	}
	return ui.JoinVertical(lipgloss.Top, statusBarView, tabsView, m.activePage.View(ktx, renderer))
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	log.Debug("Received Update", "msg", reflect.TypeOf(msg))

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ktx.WindowWidth = msg.Width
		m.ktx.WindowHeight = msg.Height
		m.ktx.AvailableHeight = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return tea.Quit
		case "f1":
			m.statusbar.ToggleShortcuts()
			return nil
		}
		if m.activePage == nil {
			return nil
		}
		if m.tabs != nil {
			if cmd := m.tabs.Update(msg); cmd != nil {
				return cmd
			}
		}
		return m.activePage.Update(msg)
	case config.LoadedMsg:
		return m.start(msg.Config)
	case config.LoadingErrMsg:
		log.Error("Unable to load config", "err", msg.Err)
		m.startupErr = msg.Err
		return nil
	case tab.SwitchedMsg:
		return m.switchRegistry(msg.Name)
	case nav.LoadSubjectsPageMsg:
		m.activate(m.subjectsPage)
		if msg.Refresh {
			return m.subjectsPage.Initialize()
		}
		return nil
	case nav.LoadCreateSubjectPageMsg:
		m.activate(create_subject_page.New(msg.Subjects))
		return nil
	case nav.RegisterSubjectMsg:
		m.activate(m.subjectsPage)
		return m.subjectsPage.Update(msg)
	}

	if m.activePage == nil {
		return nil
	}

	// results of the subjects page may arrive while another page is active
	cmds := []tea.Cmd{m.activePage.Update(msg)}
	if m.activePage != pages.Page(m.subjectsPage) {
		cmds = append(cmds, m.subjectsPage.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) start(cfg *config.Config) tea.Cmd {
	if m.urlOverride != "" {
		cfg.Override(m.urlOverride)
	}
	m.ktx.RegisterConfig(cfg)

	registry := cfg.ActiveRegistry()
	if registry == nil {
		m.startupErr = fmt.Errorf("no registry configured, pass --url or add one to the config file")
		return nil
	}

	if m.urlOverride == "" {
		var names []string
		for _, r := range cfg.Registries {
			names = append(names, r.Name)
		}
		m.tabs = tab.New(names...)
		m.tabs.GoToTab(registry.Name)
	}

	return m.connect(registry)
}

func (m *Model) switchRegistry(name string) tea.Cmd {
	registry, err := m.ktx.Config().SwitchRegistry(name)
	if err != nil {
		log.Error("Unable to switch registry", "registry", name, "err", err)
		if registry == nil {
			return nil
		}
	}
	return m.connect(registry)
}

func (m *Model) connect(registry *config.RegistryConfig) tea.Cmd {
	client, err := m.instantiator(registry)
	if err != nil {
		log.Error("Unable to create registry client", "registry", registry.Name, "err", err)
		m.startupErr = err
		return nil
	}

	log.Info("Connecting to registry", "registry", registry.Name, "url", registry.Url)
	page, cmd := subjects_page.New(client, m.clipper)
	m.subjectsPage = page
	m.activate(page)
	return cmd
}

func (m *Model) activate(page pages.Page) {
	m.activePage = page
	m.statusbar.SetProvider(page)
}

func NewModel(
	instantiator skadmin.Instantiator,
	configIO config.IO,
	clip clipper.Writer,
	urlOverride string,
) *Model {
	return &Model{
		ktx:          kontext.New(),
		statusbar:    statusbar.New(),
		instantiator: instantiator,
		configIO:     configIO,
		clipper:      clip,
		urlOverride:  urlOverride,
	}
}

// program adapts Model to tea.Model.
type program struct {
	model *Model
}

func (p program) Init() tea.Cmd {
	return p.model.Init()
}

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return p, p.model.Update(msg)
}

func (p program) View() string {
	return p.model.View()
}
