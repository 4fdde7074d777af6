// Package report assembles the build summary delivered to the webhook.
package report

import (
	"encoding/json"
	"time"

	"github.com/buildmon/cli/internal/actions"
	"github.com/buildmon/cli/internal/healthcheck"
)

// TimestampLayout matches the runner-local timestamps the receiving side
// already parses, e.g. 2024-03-01T12:34:56+0100
const TimestampLayout = "2006-01-02T15:04:05-0700"

// Report is the JSON payload describing one finished build
type Report struct {
	Project          string `json:"project"`
	BuildTimeMS      int64  `json:"build_time_ms"`
	Status           string `json:"status"`
	HealthStatus     string `json:"health_status"`
	HealthHTTPStatus string `json:"health_http_status"`
	HealthLatencyMS  string `json:"health_latency_ms"`
	Timestamp        string `json:"timestamp"`
	Repository       string `json:"repository"`
	Workflow         string `json:"workflow"`
	RunID            string `json:"run_id"`
	RunNumber        string `json:"run_number"`
	Job              string `json:"job"`
	SHA              string `json:"sha"`
}

// New builds a Report for a finished build
func New(project string, buildTimeMS int64, status string, health healthcheck.Result, at time.Time, ctx actions.Context) Report {
	return Report{
		Project:          project,
		BuildTimeMS:      buildTimeMS,
		Status:           status,
		HealthStatus:     health.Status,
		HealthHTTPStatus: health.HTTPStatus,
		HealthLatencyMS:  health.LatencyMS,
		Timestamp:        at.Format(TimestampLayout),
		Repository:       ctx.Repository,
		Workflow:         ctx.Workflow,
		RunID:            ctx.RunID,
		RunNumber:        ctx.RunNumber,
		Job:              ctx.Job,
		SHA:              ctx.SHA,
	}
}

// JSON serializes the report as compact JSON, the webhook wire format
func (r Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}
