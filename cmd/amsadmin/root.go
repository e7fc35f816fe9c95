package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/brandonyach/amsadmin/internal/ams/client"
	"github.com/brandonyach/amsadmin/internal/ams/config"
	"github.com/brandonyach/amsadmin/internal/ams/model"
	"github.com/brandonyach/amsadmin/internal/ams/service"
	"github.com/brandonyach/amsadmin/internal/ams/table"
	"github.com/brandonyach/amsadmin/internal/ams/util"
	"github.com/spf13/cobra"
)

// errRowFailures signals a completed run whose report is non-empty, so the
// process can exit 1 instead of the exit 2 used for invocation errors.
var errRowFailures = errors.New("one or more updates failed")

type rootFlags struct {
	url      string
	username string
	password string
	mapping  string
	key      string
	output   string
	workers  int
	yes      bool
	jsonLogs bool
	noCache  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "amsadmin",
		Short:         "Bulk user administration for an AMS instance",
		Long:          "Bulk-mutate user records on an AMS instance from a CSV or Excel mapping of user identifiers to new field values.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.url, "url", "", "AMS instance URL, e.g. https://example.smartabase.com/site (or AMS_URL)")
	pf.StringVarP(&flags.username, "username", "u", "", "username for authentication (or AMS_USERNAME)")
	pf.StringVarP(&flags.password, "password", "p", "", "password for authentication (or AMS_PASSWORD)")
	pf.StringVarP(&flags.mapping, "mapping", "m", "", "path to the mapping table (.csv or .xlsx)")
	pf.StringVarP(&flags.key, "key", "k", "username", "identifier column: username, email, about or uuid")
	pf.StringVarP(&flags.output, "output", "o", "", "also write the failure report to this file (.csv or .xlsx)")
	pf.IntVar(&flags.workers, "workers", 1, "concurrent save calls")
	pf.BoolVarP(&flags.yes, "yes", "y", false, "skip the confirmation prompt")
	pf.BoolVar(&flags.jsonLogs, "json-logs", false, "emit logs as JSON")
	pf.BoolVar(&flags.noCache, "no-cache", false, "disable the API response cache")

	root.AddCommand(
		newFieldCmd(flags, model.ActiveField, "update-active",
			"Set the active flag for each mapped user", []string{"deactivate"}),
		newFieldCmd(flags, model.PasswordField, "update-password",
			"Change the password for each mapped user", nil),
		newFieldCmd(flags, model.DOBField, "update-dob",
			"Update the date of birth (DD/MM/YYYY) for each mapped user", nil),
		newFieldCmd(flags, model.EmailField, "update-email",
			"Update the email address for each mapped user", nil),
		newFieldCmd(flags, model.UUIDField, "update-uuid",
			"Update the UUID for each mapped user", nil),
	)
	return root
}

func newFieldCmd(flags *rootFlags, field model.Field, use, short string, aliases []string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Aliases: aliases,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, flags, field)
		},
	}
}

func runUpdate(cmd *cobra.Command, flags *rootFlags, field model.Field) error {
	util.InitLogger(flags.jsonLogs)
	logger := util.GetLogger()

	key, err := model.ParseUserKey(flags.key)
	if err != nil {
		return err
	}
	if flags.mapping == "" {
		return errors.New("a mapping file is required: pass --mapping")
	}
	mapping, err := table.ReadMapping(flags.mapping)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.url, flags.username, flags.password)
	if err != nil {
		return err
	}
	cfg.Workers = flags.workers
	cfg.Interactive = !flags.yes
	cfg.Cache = !flags.noCache
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Interactive && !confirm(cmd, fmt.Sprintf(
		"Are you sure you want to update %s for %d users on %s? (y/n): ",
		field.Column, len(mapping.Rows), cfg.URL)) {
		logger.Info("update cancelled by user")
		return nil
	}

	cli, err := client.New(cfg)
	if err != nil {
		return err
	}

	svc := service.NewService(cli, cli, cfg.Workers)
	report, err := svc.Run(cmd.Context(), service.Request{
		Mapping: mapping,
		Key:     key,
		Field:   field,
	})
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := table.WriteReport(flags.output, report); err != nil {
			return err
		}
	}
	if report.Empty() {
		logger.Info("all updates applied", "users", len(mapping.Rows), "field", string(field.Kind))
		return nil
	}

	logger.Warn("some updates failed", "failed", len(report), "rows", len(mapping.Rows))
	if err := table.Render(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	return errRowFailures
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
