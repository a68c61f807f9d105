package cache

import (
	"testing"
	"time"
)

func TestTimeUntilNextMidnightEastern(t *testing.T) {
	t.Parallel()

	duration := TimeUntilNextMidnightEastern()

	// Duration should always be positive and no more than 24 hours
	if duration <= 0 {
		t.Errorf("expected positive duration, got %v", duration)
	}
	if duration > 24*time.Hour {
		t.Errorf("expected duration no more than 24 hours, got %v", duration)
	}
}

func TestTimeUntilNextMidnightEastern_ReturnsValidDuration(t *testing.T) {
	t.Parallel()

	duration := TimeUntilNextMidnightEastern()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load America/New_York timezone: %v", err)
	}
	now := time.Now().In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).Add(24 * time.Hour)

	expected := next.Sub(now)
	diff := duration - expected
	if diff < 0 {
		diff = -diff
	}

	// Allow 1 second tolerance for test execution time
	if diff > time.Second {
		t.Errorf("duration %v differs from expected %v by more than 1 second", duration, expected)
	}
}
