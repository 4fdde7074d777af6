// Package actions adapts the CLI to the GitHub Actions job environment.
//
// It is the only package that knows about the runner's file-based command
// protocol (the GITHUB_ENV and GITHUB_OUTPUT append-only files) and the
// environment variables a job exposes. Everything else in the CLI works with
// plain values handed out by a Runner, so commands never read the ambient
// process environment directly.
package actions

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Environment variables holding the paths to the runner's command files.
const (
	EnvFileVar    = "GITHUB_ENV"
	OutputFileVar = "GITHUB_OUTPUT"
)

// Keys threaded from the start step to the end step through the environment
// file. The runner exports entries written to GITHUB_ENV as environment
// variables for every subsequent step in the job.
const (
	KeyStartTime   = "BUILD_START_TIME"
	KeyStartTimeMS = "BUILD_START_TIME_MS"
	KeyProjectName = "PROJECT_NAME"
)

// KV is a single key=value entry destined for one of the runner files
type KV struct {
	Key   string
	Value string
}

// Context carries the job metadata a workflow run exposes. Fields are empty
// strings when the corresponding variable is unset.
type Context struct {
	Repository string
	Workflow   string
	RunID      string
	RunNumber  string
	Job        string
	SHA        string
}

// Runner is the boundary to a GitHub Actions job: its environment variables
// and its append-only command files
type Runner struct {
	fs  afero.Fs
	env func(string) string
}

// NewRunner returns a Runner reading the environment through env and touching
// files through fs. Pass os.Getenv outside of tests.
func NewRunner(fs afero.Fs, env func(string) string) *Runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if env == nil {
		env = os.Getenv
	}
	return &Runner{fs: fs, env: env}
}

// EnvFilePath returns the path to the environment file, or ok=false when the
// job did not provide one
func (r *Runner) EnvFilePath() (path string, ok bool) {
	path = r.env(EnvFileVar)
	return path, path != ""
}

// OutputFilePath returns the path to the output file, or ok=false when the
// job did not provide one
func (r *Runner) OutputFilePath() (path string, ok bool) {
	path = r.env(OutputFileVar)
	return path, path != ""
}

// AppendEnv appends key=value lines to the environment file
func (r *Runner) AppendEnv(pairs ...KV) error {
	path, ok := r.EnvFilePath()
	if !ok {
		return fmt.Errorf("%s is not set", EnvFileVar)
	}
	return r.appendLines(path, pairs)
}

// AppendOutput appends key=value lines to the output file
func (r *Runner) AppendOutput(pairs ...KV) error {
	path, ok := r.OutputFilePath()
	if !ok {
		return fmt.Errorf("%s is not set", OutputFileVar)
	}
	return r.appendLines(path, pairs)
}

// StartMark returns the persisted start time values, milliseconds first.
// Either may be empty when the start step did not run.
func (r *Runner) StartMark() (msValue, secondsValue string) {
	return r.env(KeyStartTimeMS), r.env(KeyStartTime)
}

// ProjectName returns the project name persisted by the start step, if any
func (r *Runner) ProjectName() string {
	return r.env(KeyProjectName)
}

// Context loads the pass-through job metadata from the environment
func (r *Runner) Context() Context {
	return Context{
		Repository: r.env("GITHUB_REPOSITORY"),
		Workflow:   r.env("GITHUB_WORKFLOW"),
		RunID:      r.env("GITHUB_RUN_ID"),
		RunNumber:  r.env("GITHUB_RUN_NUMBER"),
		Job:        r.env("GITHUB_JOB"),
		SHA:        r.env("GITHUB_SHA"),
	}
}

// appendLines writes one key=value line per pair. The runner file protocol is
// plain UTF-8 with no quoting or escaping.
func (r *Runner) appendLines(path string, pairs []KV) error {
	f, err := r.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	for _, kv := range pairs {
		if _, err := fmt.Fprintf(f, "%s=%s\n", kv.Key, kv.Value); err != nil {
			return fmt.Errorf("failed to append to %s: %w", path, err)
		}
	}
	return nil
}
