// Package healthcheck probes a deployment URL and optionally waits, bounded
// by a deadline, for it to come up healthy.
//
// A check is healthy only when it answers HTTP 200 exactly. Redirects and
// every other status code count as failures.
package healthcheck

import "fmt"

// Status values a check can produce
const (
	StatusOK      = "ok"
	StatusFail    = "fail"
	StatusSkipped = "skipped"
)

// SkippedValue is the sentinel written in place of a status code and latency
// when no health-check URL was configured
const SkippedValue = "skipped"

// Result is the outcome of a single health check attempt. All fields are
// strings because they are emitted verbatim as step outputs.
type Result struct {
	// Status is one of ok, fail or skipped
	Status string
	// HTTPStatus is the three digit status code, "000" for transport
	// failures, or "skipped"
	HTTPStatus string
	// LatencyMS is the attempt round-trip time in whole milliseconds, or
	// "skipped"
	LatencyMS string
}

// OK reports whether the attempt got the one status code that counts as
// healthy
func (r Result) OK() bool {
	return r.HTTPStatus == "200"
}

// SkippedResult returns the result used when no URL is configured
func SkippedResult() Result {
	return Result{
		Status:     StatusSkipped,
		HTTPStatus: SkippedValue,
		LatencyMS:  SkippedValue,
	}
}

// resultFor classifies a response code. Code 0 means the request never got a
// response (DNS failure, refused connection, timeout).
func resultFor(code int, latencyMS int64) Result {
	status := StatusFail
	if code == 200 {
		status = StatusOK
	}
	return Result{
		Status:     status,
		HTTPStatus: fmt.Sprintf("%03d", code),
		LatencyMS:  fmt.Sprintf("%d", latencyMS),
	}
}
