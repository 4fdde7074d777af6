package end

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/buildmon/cli/internal/actions"
	bmErrors "github.com/buildmon/cli/internal/errors"
	"github.com/buildmon/cli/internal/healthcheck"
	"github.com/buildmon/cli/internal/report"
	"github.com/buildmon/cli/internal/scm"
	"github.com/buildmon/cli/internal/timing"
	"github.com/buildmon/cli/internal/ui"
	"github.com/buildmon/cli/internal/webhook"
	"github.com/buildmon/cli/pkg/cmd/factory"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	projectName           string
	jobStatus             string
	webhookURL            string
	healthCheckURL        string
	healthWaitSeconds     float64
	healthIntervalSeconds float64
}

func NewCmdEnd(f *factory.Factory) *cobra.Command {
	var opts options

	cmd := cobra.Command{
		Use:   "end [flags]",
		Args:  cobra.NoArgs,
		Short: "Compute the build duration and emit results",
		Long: heredoc.Doc(`
			Finishes build monitoring for the current job.

			Reads back the start time recorded by "bm start", computes the elapsed
			build duration, optionally waits for a health-check URL to answer
			HTTP 200 and optionally posts a JSON summary to a webhook. The results
			are appended to the job's output file for later steps to consume:
			build_time_ms, build_status, health_status, health_http_status and
			health_latency_ms.

			Webhook delivery is best effort and never fails the job.
		`),
		Example: heredoc.Doc(`
			# finish and report, waiting up to a minute for the app to come up
			$ bm end --project-name widgets --job-status "$JOB_STATUS" \
			    --health-check-url https://widgets.example.com/healthz \
			    --health-wait-seconds 60

			# timing only, no health check and no webhook
			$ bm end --job-status success
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := actions.NewRunner(f.Fs, os.Getenv)
			return run(cmd, f, runner, opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectName, "project-name", "", "Name of the project being built")
	cmd.Flags().StringVar(&opts.jobStatus, "job-status", "", "Status of the build job, e.g. success or failure")
	cmd.Flags().StringVar(&opts.webhookURL, "webhook-url", "", "URL to POST the JSON build report to")
	cmd.Flags().StringVar(&opts.healthCheckURL, "health-check-url", "", "URL to health check after the build")
	cmd.Flags().Float64Var(&opts.healthWaitSeconds, "health-wait-seconds", 0,
		"Wait up to this many seconds for the health check to return HTTP 200 (0 = single attempt)")
	cmd.Flags().Float64Var(&opts.healthIntervalSeconds, "health-interval-seconds", 1,
		"Pause between health check attempts in seconds")

	return &cmd
}

func run(cmd *cobra.Command, f *factory.Factory, runner *actions.Runner, opts options) error {
	if _, ok := runner.OutputFilePath(); !ok {
		return bmErrors.NewConfigurationError(nil,
			fmt.Sprintf("%s is not set; are you running outside GitHub Actions?", actions.OutputFileVar),
			"Run bm as a step inside a GitHub Actions job")
	}

	now := time.Now()
	msValue, secondsValue := runner.StartMark()
	startMS := timing.ResolveStartMS(msValue, secondsValue, now)
	buildTimeMS := timing.BuildTimeMS(startMS, now.UnixMilli())

	status := strings.TrimSpace(opts.jobStatus)
	if status == "" {
		status = "unknown"
	}

	project := resolveProjectName(runner, opts.projectName, f)

	healthURL := opts.healthCheckURL
	if healthURL == "" {
		healthURL = f.Config.HealthCheckURL()
	}
	wait := secondsFlag(cmd, "health-wait-seconds", opts.healthWaitSeconds, f.Config.HealthWaitSeconds())
	interval := secondsFlag(cmd, "health-interval-seconds", opts.healthIntervalSeconds, f.Config.HealthIntervalSeconds())

	poller := healthcheck.NewPoller(healthcheck.NewChecker(f.HttpClient), interval)
	health := poller.Poll(cmd.Context(), healthURL, wait)

	jobContext := runner.Context()
	scm.FillContext(&jobContext, f.GitRepository)

	rep := report.New(project, buildTimeMS, status, health, time.Now(), jobContext)

	webhookURL := opts.webhookURL
	if webhookURL == "" {
		webhookURL = f.Config.WebhookURL()
	}
	if webhookURL != "" {
		sender := webhook.NewSender(
			webhook.WithHTTPClient(f.HttpClient),
			webhook.WithUserAgent(factory.UserAgent(f.Version)),
		)
		if err := sender.Send(cmd.Context(), webhookURL, rep); err != nil {
			log.Warn().Err(err).Str("url", webhookURL).Msg("webhook delivery failed")
		}
	}

	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Build completed in %d milliseconds with status: %s\n",
			ui.RenderStatus(status), buildTimeMS, status)
	}

	return runner.AppendOutput(
		actions.KV{Key: "build_time_ms", Value: strconv.FormatInt(buildTimeMS, 10)},
		actions.KV{Key: "build_status", Value: status},
		actions.KV{Key: "health_status", Value: health.Status},
		actions.KV{Key: "health_http_status", Value: health.HTTPStatus},
		actions.KV{Key: "health_latency_ms", Value: health.LatencyMS},
	)
}

// resolveProjectName prefers the name persisted by the start step, then the
// flag, then the configured default. Blank values collapse to "unknown".
func resolveProjectName(runner *actions.Runner, flagValue string, f *factory.Factory) string {
	for _, candidate := range []string{runner.ProjectName(), flagValue, f.Config.ProjectName()} {
		if name := strings.TrimSpace(candidate); name != "" {
			return name
		}
	}
	return "unknown"
}

// secondsFlag converts a seconds flag to a duration, preferring the flag when
// it was set on the command line and the config value otherwise
func secondsFlag(cmd *cobra.Command, name string, flagValue, configValue float64) time.Duration {
	seconds := configValue
	if cmd.Flags().Changed(name) {
		seconds = flagValue
	}
	return time.Duration(seconds * float64(time.Second))
}
