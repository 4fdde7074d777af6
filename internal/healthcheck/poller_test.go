package healthcheck

import (
	"context"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock shared by the poller and fake timer
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeTimer fires immediately and records every requested pause, advancing
// the fake clock by the slept duration so time passes without real sleeps
type fakeTimer struct {
	clock  *fakeClock
	starts []time.Duration
	ch     chan time.Time
}

func newFakeTimer(clock *fakeClock) *fakeTimer {
	return &fakeTimer{clock: clock, ch: make(chan time.Time, 1)}
}

func (t *fakeTimer) Start(d time.Duration) {
	t.starts = append(t.starts, d)
	t.clock.Advance(d)
	t.ch <- t.clock.Now()
}

func (t *fakeTimer) C() <-chan time.Time { return t.ch }

func (t *fakeTimer) Stop() {}

// scriptedCheck returns the scripted results in order, repeating the final
// one, and counts attempts
func scriptedCheck(results ...Result) (CheckFunc, *int) {
	attempts := new(int)
	return func(ctx context.Context, url string) Result {
		i := *attempts
		*attempts++
		if i >= len(results) {
			i = len(results) - 1
		}
		return results[i]
	}, attempts
}

func failing(code string) Result {
	return Result{Status: StatusFail, HTTPStatus: code, LatencyMS: "5"}
}

func passing() Result {
	return Result{Status: StatusOK, HTTPStatus: "200", LatencyMS: "5"}
}

func newTestPoller(check CheckFunc, interval time.Duration) (*Poller, *fakeTimer) {
	clock := &fakeClock{now: time.UnixMilli(1700000000000)}
	timer := newFakeTimer(clock)
	return &Poller{
		Check:    check,
		Interval: interval,
		Now:      clock.Now,
		Timer:    timer,
	}, timer
}

func TestPoll(t *testing.T) {
	t.Parallel()

	t.Run("empty URL is skipped without any attempt", func(t *testing.T) {
		t.Parallel()

		check, attempts := scriptedCheck(passing())
		poller, _ := newTestPoller(check, time.Second)

		got := poller.Poll(context.Background(), "", 30*time.Second)

		if got != SkippedResult() {
			t.Errorf("Poll() = %+v, want skipped result", got)
		}
		if *attempts != 0 {
			t.Errorf("attempts = %d, want 0", *attempts)
		}
	})

	t.Run("zero wait performs exactly one attempt", func(t *testing.T) {
		t.Parallel()

		check, attempts := scriptedCheck(failing("503"))
		poller, _ := newTestPoller(check, time.Second)

		got := poller.Poll(context.Background(), "http://localhost/health", 0)

		if *attempts != 1 {
			t.Errorf("attempts = %d, want 1", *attempts)
		}
		if got != failing("503") {
			t.Errorf("Poll() = %+v, want the single attempt's result verbatim", got)
		}
	})

	t.Run("negative wait performs exactly one attempt", func(t *testing.T) {
		t.Parallel()

		check, attempts := scriptedCheck(failing("000"))
		poller, _ := newTestPoller(check, time.Second)

		poller.Poll(context.Background(), "http://localhost/health", -5*time.Second)

		if *attempts != 1 {
			t.Errorf("attempts = %d, want 1", *attempts)
		}
	})

	t.Run("retries until HTTP 200", func(t *testing.T) {
		t.Parallel()

		check, attempts := scriptedCheck(failing("503"), failing("503"), passing())
		poller, timer := newTestPoller(check, time.Second)

		got := poller.Poll(context.Background(), "http://localhost/health", 30*time.Second)

		if got.Status != StatusOK || got.HTTPStatus != "200" {
			t.Errorf("Poll() = %+v, want ok/200", got)
		}
		if *attempts != 3 {
			t.Errorf("attempts = %d, want 3", *attempts)
		}
		for i, d := range timer.starts {
			if d != time.Second {
				t.Errorf("pause %d = %v, want %v", i, d, time.Second)
			}
		}
	})

	t.Run("deadline exhaustion returns the last result verbatim", func(t *testing.T) {
		t.Parallel()

		check, attempts := scriptedCheck(failing("503"))
		poller, _ := newTestPoller(check, time.Second)

		got := poller.Poll(context.Background(), "http://localhost/health", 3*time.Second)

		if got != failing("503") {
			t.Errorf("Poll() = %+v, want the last attempt's result unchanged", got)
		}
		if *attempts < 2 {
			t.Errorf("attempts = %d, want more than one before giving up", *attempts)
		}
	})

	t.Run("never pauses past the deadline", func(t *testing.T) {
		t.Parallel()

		check, _ := scriptedCheck(failing("503"))
		poller, timer := newTestPoller(check, time.Second)

		poller.Poll(context.Background(), "http://localhost/health", 2500*time.Millisecond)

		want := []time.Duration{time.Second, time.Second, 500 * time.Millisecond}
		if len(timer.starts) != len(want) {
			t.Fatalf("pauses = %v, want %v", timer.starts, want)
		}
		for i := range want {
			if timer.starts[i] != want[i] {
				t.Errorf("pause %d = %v, want %v", i, timer.starts[i], want[i])
			}
		}
	})

	t.Run("interval is floored at 100ms", func(t *testing.T) {
		t.Parallel()

		check, _ := scriptedCheck(failing("503"), passing())
		poller, timer := newTestPoller(check, 10*time.Millisecond)

		poller.Poll(context.Background(), "http://localhost/health", time.Minute)

		if len(timer.starts) != 1 {
			t.Fatalf("pauses = %v, want exactly one", timer.starts)
		}
		if timer.starts[0] != MinInterval {
			t.Errorf("pause = %v, want %v", timer.starts[0], MinInterval)
		}
	})
}
