package root

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	bmErrors "github.com/buildmon/cli/internal/errors"
	versionInternal "github.com/buildmon/cli/internal/version"
	endCmd "github.com/buildmon/cli/pkg/cmd/end"
	"github.com/buildmon/cli/pkg/cmd/factory"
	startCmd "github.com/buildmon/cli/pkg/cmd/start"
	versionCmd "github.com/buildmon/cli/pkg/cmd/version"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewCmdRoot(f *factory.Factory) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "bm <command> [flags]",
		Short: "CI build timing and health checks",
		Long: heredoc.Doc(`
			Record build timings, health-check deployments and report results
			from GitHub Actions jobs.

			Run "bm start" at the top of a job and "bm end" at the bottom; the
			elapsed duration and health check results are appended to the job's
			output file.
		`),
		Example: heredoc.Doc(`
			$ bm start --project-name widgets
			$ bm end --project-name widgets --job-status success --health-check-url https://widgets.example.com/healthz --health-wait-seconds 60
		`),
		// arguments are validated in RunE so an unknown command surfaces
		// as a usage error with the right exit code
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			"versionInfo": versionInternal.Format(f.Version),
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return bmErrors.NewUsageError(nil,
				fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath()),
				fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Show debugging output")
	cmd.PersistentFlags().Bool("quiet", false, "Only print errors")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return bmErrors.NewUsageError(err, "")
	})

	cmd.AddCommand(startCmd.NewCmdStart(f))
	cmd.AddCommand(endCmd.NewCmdEnd(f))
	cmd.AddCommand(versionCmd.NewCmdVersion(f))

	return cmd, nil
}

// configureLogging routes diagnostics to stderr, keeping stdout for command
// output. The default level only surfaces warnings; --debug turns on the
// per-attempt health check traces.
func configureLogging(cmd *cobra.Command) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
