package engine

import (
	"testing"
	"time"
)

func TestTimeManagerUnlimited(t *testing.T) {
	tm := NewTimeManager()
	tm.Start(0)

	if tm.Budget() != 0 {
		t.Errorf("expected zero budget, got %s", tm.Budget())
	}
	if tm.SoftExpired() || tm.HardExpired() {
		t.Error("zero budget means unlimited time")
	}
}

func TestTimeManagerFreshBudget(t *testing.T) {
	tm := NewTimeManager()
	tm.Start(time.Hour)

	if tm.SoftExpired() {
		t.Error("soft limit should not trip on a fresh budget")
	}
	if tm.HardExpired() {
		t.Error("hard limit should not trip on a fresh budget")
	}
}

func TestTimeManagerExpiry(t *testing.T) {
	tm := NewTimeManager()
	tm.Start(5 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if !tm.SoftExpired() {
		t.Error("soft limit should have expired")
	}
	if !tm.HardExpired() {
		t.Error("budget should be exhausted")
	}
	if tm.Elapsed() < 5*time.Millisecond {
		t.Errorf("elapsed %s should cover the budget", tm.Elapsed())
	}
}
