package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dmitrijs2005/alphastock/internal/buildinfo"
	"github.com/dmitrijs2005/alphastock/internal/client/config"
	"github.com/dmitrijs2005/alphastock/internal/logging"
	"github.com/spf13/cobra"
)

// state is shared by the commands of one tree. In the shell the App is
// created once and reused by every line, so shared is set and commands
// must not close it.
type state struct {
	app    *App
	shared bool
}

const annotationNoApp = "alpha/no-app"

// NewRootCommand creates the alpha command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&state{})
}

func newRootCommand(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "alpha",
		Short:         "Command-line client for the Alpha inventory API",
		Long:          "Manage products, bills of materials, raw materials, units of measure and production suggestions of the Alpha inventory service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if st.app != nil || !needsApp(cmd) {
				return nil
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}

			app, err := NewApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			app.reader = bufio.NewReader(cmd.InOrStdin())
			app.out = cmd.OutOrStdout()
			st.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.shared || st.app == nil {
				return nil
			}
			err := st.app.Close()
			st.app = nil
			return err
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCommand(st),
		newRegisterCommand(st),
		newLogoutCommand(st),
		newWhoAmICommand(st),
		newSessionCommand(st),
		newPasswordCommand(st),
		newProductsCommand(st),
		newMaterialsCommand(st),
		newUnitsCommand(st),
		newProductionCommand(st),
		newShellCommand(st),
		newVersionCommand(),
	)
	return root
}

// needsApp reports whether cmd talks to the API or the local database.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoApp] != "" || c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoApp: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
