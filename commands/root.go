// Package commands is the kisan terminal front end. Each subcommand drives
// one account flow, prompts for its fields and renders its errors.
package commands

import (
	"fmt"
	"io"
	"os"

	"kisansaarthi/config"
	"kisansaarthi/services/session"
	"kisansaarthi/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	Version = "0.1.0"
	appName = "kisan"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	in  io.Reader
	out io.Writer

	// Flag overrides.
	apiURL         string
	timeoutSeconds int
	logLevel       string

	cfg    config.Config
	logger *zap.Logger
	// memory backs SESSION_STORE=memory for the life of the process.
	memory session.Store
}

// NewRootCommand builds the kisan command tree on stdin and stdout.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{in: os.Stdin, out: os.Stdout})
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "KisanSaarthi account tool",
		Long: `kisan creates and signs in to KisanSaarthi farmer accounts.

It walks through signup with phone verification, login and password
recovery against the KisanSaarthi API, and keeps the resulting session
for later commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)

	cmd.PersistentFlags().StringVar(&a.apiURL, "api", "", "Backend base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().IntVar(&a.timeoutSeconds, "timeout", 0, "Per-request timeout in seconds (overrides REQUEST_TIMEOUT_SECONDS)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		signupCmd(a),
		loginCmd(a),
		forgotPasswordCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		stubServerCmd(a),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = a.apiURL
	}
	if a.timeoutSeconds > 0 {
		cfg.RequestTimeoutSeconds = a.timeoutSeconds
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.AppConfig = cfg
	a.cfg = cfg

	if a.logger == nil {
		utils.InitializeLogger()
		a.logger = utils.GetLogger()
	}
	return nil
}
