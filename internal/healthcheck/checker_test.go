package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("empty URL is skipped", func(t *testing.T) {
		t.Parallel()

		checker := NewChecker(nil)
		got := checker.Check(context.Background(), "")

		want := Result{Status: StatusSkipped, HTTPStatus: SkippedValue, LatencyMS: SkippedValue}
		if got != want {
			t.Errorf("Check() = %+v, want %+v", got, want)
		}
	})

	t.Run("HTTP 200 is ok", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		checker := NewChecker(server.Client())
		got := checker.Check(context.Background(), server.URL)

		if got.Status != StatusOK {
			t.Errorf("Status = %q, want %q", got.Status, StatusOK)
		}
		if got.HTTPStatus != "200" {
			t.Errorf("HTTPStatus = %q, want %q", got.HTTPStatus, "200")
		}
		if _, err := strconv.ParseInt(got.LatencyMS, 10, 64); err != nil {
			t.Errorf("LatencyMS = %q, want a base-10 integer", got.LatencyMS)
		}
	})

	t.Run("non-200 codes fail", func(t *testing.T) {
		t.Parallel()

		codes := []int{201, 204, 301, 404, 503}
		for _, code := range codes {
			code := code
			t.Run(strconv.Itoa(code), func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(code)
				}))
				defer server.Close()

				client := server.Client()
				// Keep redirects observable instead of following them
				client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
					return http.ErrUseLastResponse
				}

				checker := NewChecker(client)
				got := checker.Check(context.Background(), server.URL)

				if got.Status != StatusFail {
					t.Errorf("Status = %q, want %q", got.Status, StatusFail)
				}
				want := strconv.Itoa(code)
				if got.HTTPStatus != want {
					t.Errorf("HTTPStatus = %q, want %q", got.HTTPStatus, want)
				}
			})
		}
	})

	t.Run("transport failure becomes 000", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		checker := NewChecker(nil)
		got := checker.Check(context.Background(), url)

		if got.Status != StatusFail {
			t.Errorf("Status = %q, want %q", got.Status, StatusFail)
		}
		if got.HTTPStatus != "000" {
			t.Errorf("HTTPStatus = %q, want %q", got.HTTPStatus, "000")
		}
	})

	t.Run("status codes are zero padded to three digits", func(t *testing.T) {
		t.Parallel()

		for code, want := range map[int]string{0: "000", 99: "099", 200: "200"} {
			if got := resultFor(code, 0).HTTPStatus; got != want {
				t.Errorf("resultFor(%d).HTTPStatus = %q, want %q", code, got, want)
			}
		}
	})
}
