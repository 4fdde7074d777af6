package start

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/buildmon/cli/internal/actions"
	bmErrors "github.com/buildmon/cli/internal/errors"
	"github.com/buildmon/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

func NewCmdStart(f *factory.Factory) *cobra.Command {
	var projectName string

	cmd := cobra.Command{
		Use:   "start [flags]",
		Args:  cobra.NoArgs,
		Short: "Record the build start time",
		Long: heredoc.Doc(`
			Records the wall-clock start time of the current build job.

			The start time and project name are written to the job's environment
			file so a later "bm end" step can compute the elapsed build duration.
		`),
		Example: heredoc.Doc(`
			# at the top of a job
			$ bm start --project-name widgets
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := actions.NewRunner(f.Fs, os.Getenv)
			return run(cmd, f, runner, projectName, time.Now())
		},
	}

	cmd.Flags().StringVar(&projectName, "project-name", "", "Name of the project being built")

	return &cmd
}

func run(cmd *cobra.Command, f *factory.Factory, runner *actions.Runner, projectName string, now time.Time) error {
	name := resolveProjectName(projectName, f)

	if _, ok := runner.EnvFilePath(); !ok {
		return bmErrors.NewConfigurationError(nil,
			fmt.Sprintf("%s is not set; are you running outside GitHub Actions?", actions.EnvFileVar),
			"Run bm as a step inside a GitHub Actions job")
	}

	err := runner.AppendEnv(
		actions.KV{Key: actions.KeyStartTime, Value: strconv.FormatInt(now.Unix(), 10)},
		actions.KV{Key: actions.KeyStartTimeMS, Value: strconv.FormatInt(now.UnixMilli(), 10)},
		actions.KV{Key: actions.KeyProjectName, Value: name},
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Build monitoring started for %s\n", name)

	return nil
}

// resolveProjectName prefers the flag, then the configured default. Blank
// values collapse to "unknown".
func resolveProjectName(flagValue string, f *factory.Factory) string {
	if name := strings.TrimSpace(flagValue); name != "" {
		return name
	}
	if name := strings.TrimSpace(f.Config.ProjectName()); name != "" {
		return name
	}
	return "unknown"
}
