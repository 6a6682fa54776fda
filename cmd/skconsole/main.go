package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"skconsole/config"
	"skconsole/skadmin"
	"skconsole/ui/clipper"
)

const envPrefix = "SKCONSOLE"

func init() {
	// query the background color before the program owns stdin
	_ = lipgloss.HasDarkBackground()
}

type app struct {
	v            *viper.Viper
	instantiator skadmin.Instantiator
	logFile      io.Closer
}

func newRootCmd(instantiator skadmin.Instantiator) *cobra.Command {
	a := &app{
		v:            viper.New(),
		instantiator: instantiator,
	}

	root := &cobra.Command{
		Use:   "skconsole",
		Short: "A terminal console for schemakeeper registries",
		Long: `Browse, search and register subjects of a schemakeeper registry.

Without a subcommand the interactive console is started, the subcommands
talk to the registry directly and print their result.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runConsole,
	}

	root.PersistentFlags().String("config", "",
		"config file (default: <user config dir>/skconsole/config.yaml)")
	root.PersistentFlags().String("url", "",
		"registry url, overrides the active registry of the config file")
	root.PersistentFlags().Bool("debug", false,
		"write debug logs to debug.log")

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	for _, flag := range []string{"config", "url", "debug"} {
		_ = a.v.BindPFlag(flag, root.PersistentFlags().Lookup(flag))
	}

	root.AddCommand(
		a.subjectsCmd(),
		a.subjectCmd(),
		a.versionsCmd(),
		a.schemaCmd(),
		a.versionCmd(),
		a.compatCmd(),
		a.checkCmd(),
		a.deleteCmd(),
		a.registriesCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if !a.v.GetBool("debug") {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile("debug.log", "debug")
	if err != nil {
		return errors.Wrap(err, "unable to open debug log")
	}
	a.logFile = f
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func (a *app) configIO() (config.IO, error) {
	return config.NewFileIO(a.v.GetString("config"))
}

// registryClient resolves the registry to talk to from the config file and the url override.
func (a *app) registryClient() (skadmin.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if url := a.v.GetString("url"); url != "" {
		cfg.Override(url)
	}
	registry := cfg.ActiveRegistry()
	if registry == nil {
		return nil, errors.New("no registry configured, pass --url or add one to the config file")
	}
	log.Debug("Using registry", "name", registry.Name, "url", registry.Url)
	return a.instantiator(registry)
}

func (a *app) runConsole(cmd *cobra.Command, args []string) error {
	configIO, err := a.configIO()
	if err != nil {
		return err
	}
	model := NewModel(a.instantiator, configIO, clipper.New(), a.v.GetString("url"))
	p := tea.NewProgram(program{model}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running console")
	}
	return nil
}

func main() {
	if err := newRootCmd(skadmin.HttpInstantiator()).Execute(); err != nil {
		os.Exit(1)
	}
}
