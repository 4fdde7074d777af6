// Package factory wires the shared dependencies every command receives.
package factory

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/buildmon/cli/internal/config"
	"github.com/buildmon/cli/internal/scm"
	git "github.com/go-git/go-git/v5"
	"github.com/spf13/afero"
)

// requestTimeout bounds every outbound request the CLI makes
const requestTimeout = 10 * time.Second

// Factory holds the dependencies commands need to run
type Factory struct {
	Config        *config.Config
	Fs            afero.Fs
	HttpClient    *http.Client
	GitRepository *git.Repository
	Version       string
}

// New builds the production Factory
func New(version string) *Factory {
	fs := afero.NewOsFs()

	return &Factory{
		Config:        config.New(fs),
		Fs:            fs,
		HttpClient:    httpClient(version),
		GitRepository: scm.Open("."),
		Version:       version,
	}
}

// UserAgent identifies the CLI in outbound requests
func UserAgent(version string) string {
	return fmt.Sprintf("buildmon/%s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

func httpClient(version string) *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: headerRoundTripper{
			headers: map[string]string{
				"User-Agent": UserAgent(version),
			},
			next: http.DefaultTransport,
		},
	}
}

type headerRoundTripper struct {
	headers map[string]string
	next    http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (hrt headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range hrt.headers {
		req.Header.Set(k, v)
	}

	return hrt.next.RoundTrip(req)
}
