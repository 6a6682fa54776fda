package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"skconsole/config"
	"skconsole/skadmin"
	"skconsole/ui/components/highlight"
)

type subjectOutput struct {
	Subject       string `yaml:"subject"`
	Versions      []int  `yaml:"versions,flow"`
	Compatibility string `yaml:"compatibility"`
	SchemaType    string `yaml:"schemaType"`
}

type versionOutput struct {
	Subject    string `yaml:"subject"`
	Id         int    `yaml:"id"`
	Version    int    `yaml:"version"`
	SchemaType string `yaml:"schemaType"`
	Schema     string `yaml:"schema"`
}

// await blocks on the result of a started registry call.
func await(msg tea.Msg) tea.Msg {
	if started, ok := msg.(interface{ AwaitCompletion() tea.Msg }); ok {
		return started.AwaitCompletion()
	}
	return msg
}

func failure(msg tea.Msg) error {
	switch msg := msg.(type) {
	case skadmin.SubjectListingErrorMsg:
		return msg.Err
	case skadmin.SubjectMetaFetchErrMsg:
		return errors.Wrapf(msg.Err, "subject %s", msg.Subject)
	case skadmin.SchemaFetchErrMsg:
		return errors.Wrapf(msg.Err, "schema %d", msg.Id)
	case skadmin.VersionsListingErrMsg:
		return errors.Wrapf(msg.Err, "subject %s", msg.Subject)
	case skadmin.SubjectVersionFetchErrMsg:
		return errors.Wrapf(msg.Err, "version %d of %s", msg.Version, msg.Subject)
	case skadmin.SubjectVersionSchemaFetchErrMsg:
		return errors.Wrapf(msg.Err, "version %d of %s", msg.Version, msg.Subject)
	case skadmin.CompatibilityCheckErrMsg:
		return errors.Wrapf(msg.Err, "checking %s", msg.Subject)
	case skadmin.CompatibilityConfigFetchErrMsg:
		return msg.Err
	case skadmin.CompatibilityConfigUpdateErrMsg:
		return msg.Err
	case skadmin.SubjectDeletionErrorMsg:
		return errors.Wrapf(msg.Err, "deleting %s", msg.Subject)
	case skadmin.SubjectVersionDeletionErrMsg:
		return errors.Wrapf(msg.Err, "deleting version %d of %s", msg.Version, msg.Subject)
	}
	return nil
}

// call runs a registry operation to completion and returns its success msg.
func call[T any](msg tea.Msg) (T, error) {
	var zero T
	msg = await(msg)
	if err := failure(msg); err != nil {
		return zero, err
	}
	result, ok := msg.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected registry response %T", msg)
	}
	return result, nil
}

func printYaml(out io.Writer, value any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return errors.Wrap(err, "unable to print result")
	}
	return encoder.Close()
}

func parseVersion(arg string) (int, error) {
	version, err := strconv.Atoi(arg)
	if err != nil || version < 1 {
		return 0, fmt.Errorf("invalid version %q", arg)
	}
	return version, nil
}

func (a *app) subjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List all subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.registryClient()
			if err != nil {
				return err
			}
			listed, err := call[skadmin.SubjectsListedMsg](client.ListSubjects())
			if err != nil {
				return err
			}
			for _, subject := range listed.Subjects {
				fmt.Fprintln(cmd.OutOrStdout(), subject)
			}
			return nil
		},
	}
}

func (a *app) subjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subject <name>",
		Short: "Show the metadata of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.registryClient()
			if err != nil {
				return err
			}
			fetched, err := call[skadmin.SubjectMetaFetchedMsg](client.GetSubjectMeta(args[0]))
			if err != nil {
				return err
			}
			return printYaml(cmd.OutOrStdout(), subjectOutput{
				Subject:       fetched.Subject.Name,
				Versions:      fetched.Subject.Versions,
				Compatibility: string(fetched.Subject.CompatibilityType),
				SchemaType:    string(fetched.Subject.SchemaType),
			})
		},
	}
}

func (a *app) versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <subject>",
		Short: "List the versions of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.registryClient()
			if err != nil {
				return err
			}
			listed, err := call[skadmin.VersionsListedMsg](client.ListVersions(args[0]))
			if err != nil {
				return err
			}
			for _, version := range listed.Versions {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			}
			return nil
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <id>",
		Short: "Print the schema with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid schema id %q", args[0])
			}
			client, err := a.registryClient()
			if err != nil {
				return err
			}
			fetched, err := call[skadmin.SchemaFetchedMsg](client.GetSchemaById(id))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), highlight.Indent(fetched.Schema))
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	var schemaOnly bool
	cmd := &cobra.Command{
		Use:   "version <subject> <version>",
		Short: "Show a version of a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[1])
			if err != nil {
				return err
			}
			client, err := a.registryClient()
			if err != nil {
				return err
			}

			if schemaOnly {
				fetched, err := call[skadmin.SubjectVersionSchemaFetchedMsg](
					client.GetSubjectVersionSchema(args[0], version))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), highlight.Indent(fetched.Schema))
				return nil
			}

			fetched, err := call[skadmin.SubjectVersionFetchedMsg](client.GetSubjectVersion(args[0], version))
			if err != nil {
				return err
			}
			return printYaml(cmd.OutOrStdout(), versionOutput{
				Subject:    fetched.Version.Subject,
				Id:         fetched.Version.Id,
				Version:    fetched.Version.Version,
				SchemaType: string(fetched.Version.SchemaType),
				Schema:     fetched.Version.Schema,
			})
		},
	}
	cmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "print only the schema")
	return cmd
}

func (a *app) compatCmd() *cobra.Command {
	var set string
	cmd := &cobra.Command{
		Use:   "compat [subject]",
		Short: "Show or change the compatibility of a subject or of the registry",
		Long: `Show or change the compatibility type.

Without a subject the global compatibility is addressed. Valid types are
none, backward, forward, full, backward_transitive, forward_transitive and
full_transitive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var subject string
			if len(args) == 1 {
				subject = args[0]
			}

			var target skadmin.CompatibilityType
			if cmd.Flags().Changed("set") {
				target = skadmin.CompatibilityType(strings.ToLower(set))
				if !slices.Contains(skadmin.CompatibilityTypes, target) {
					return fmt.Errorf("unknown compatibility type %q", set)
				}
			}

			client, err := a.registryClient()
			if err != nil {
				return err
			}

			if target != "" {
				updated, err := call[skadmin.CompatibilityConfigUpdatedMsg](
					client.SetCompatibilityConfig(subject, target))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), updated.CompatibilityType)
				return nil
			}

			fetched, err := call[skadmin.CompatibilityConfigFetchedMsg](client.GetCompatibilityConfig(subject))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fetched.CompatibilityType)
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "compatibility type to apply")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <subject> <schema-file>",
		Short: "Check whether a schema is compatible with a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Wrapf(err, "unable to read %s", args[1])
			}
			client, err := a.registryClient()
			if err != nil {
				return err
			}
			checked, err := call[skadmin.CompatibilityCheckedMsg](client.CheckCompatibility(args[0], string(schema)))
			if err != nil {
				return err
			}
			if !checked.Compatible {
				return fmt.Errorf("schema is not compatible with %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is compatible with %s\n", args[0])
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <subject> [version]",
		Short: "Delete a subject or a single version of it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := args[0]
			version := 0
			if len(args) == 2 {
				v, err := parseVersion(args[1])
				if err != nil {
					return err
				}
				version = v
			}

			client, err := a.registryClient()
			if err != nil {
				return err
			}

			if version == 0 {
				if _, err := call[skadmin.SubjectDeletedMsg](client.DeleteSubject(subject)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", subject)
				return nil
			}

			if _, err := call[skadmin.SubjectVersionDeletedMsg](client.DeleteSubjectVersion(subject, version)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted version %d of %s\n", version, subject)
			return nil
		},
	}
}

func (a *app) loadConfig() (*config.Config, error) {
	configIO, err := a.configIO()
	if err != nil {
		return nil, err
	}
	return config.New(configIO), nil
}

func (a *app) registriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registries",
		Short: "List the configured registries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			active := cfg.ActiveRegistry()
			for _, registry := range cfg.Registries {
				marker := " "
				if active != nil && active.Name == registry.Name {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, registry.Name, registry.Url)
			}
			return nil
		},
	}
	cmd.AddCommand(a.addRegistryCmd(), a.useRegistryCmd())
	return cmd
}

func (a *app) addRegistryCmd() *cobra.Command {
	var registry config.RegistryConfig
	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add or update a registry and make it the active one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			registry.Name = args[0]
			registry.Url = args[1]
			if err := cfg.RegisterRegistry(registry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registry %s added\n", registry.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&registry.Username, "username", "", "basic auth username")
	cmd.Flags().StringVar(&registry.Password, "password", "", "basic auth password")
	cmd.Flags().BoolVar(&registry.TLSConfig.SkipVerify, "insecure-skip-verify", false, "skip TLS certificate verification")
	cmd.Flags().StringVar(&registry.TLSConfig.CACertPath, "ca-cert", "", "CA certificate to trust")
	return cmd
}

func (a *app) useRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a configured registry the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if _, err := cfg.SwitchRegistry(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "using registry %s\n", args[0])
			return nil
		},
	}
}
