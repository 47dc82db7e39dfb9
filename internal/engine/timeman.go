package engine

import "time"

// softBudgetNum/softBudgetDen: a new depth iteration only starts while
// elapsed time is under 90% of the budget. Finishing a depth that was
// started near the deadline would be wasted work since interrupted
// depths are discarded.
const (
	softBudgetNum = 9
	softBudgetDen = 10
)

// TimeManager tracks the time budget of a single search.
type TimeManager struct {
	budget    time.Duration
	softLimit time.Duration
	startTime time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Start begins timing with the given budget. A zero budget means
// unlimited time.
func (tm *TimeManager) Start(budget time.Duration) {
	tm.startTime = time.Now()
	tm.budget = budget
	tm.softLimit = budget * softBudgetNum / softBudgetDen
}

// Elapsed returns the time elapsed since the search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Budget returns the full time budget, or zero for unlimited.
func (tm *TimeManager) Budget() time.Duration {
	return tm.budget
}

// SoftExpired reports whether a new depth iteration should be skipped.
func (tm *TimeManager) SoftExpired() bool {
	return tm.budget > 0 && tm.Elapsed() >= tm.softLimit
}

// HardExpired reports whether the full budget has run out.
func (tm *TimeManager) HardExpired() bool {
	return tm.budget > 0 && tm.Elapsed() >= tm.budget
}
