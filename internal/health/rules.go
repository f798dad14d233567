package health

import "ttlstore/internal/metrics"

// minReadsForMissRatio keeps the miss-ratio rule quiet on tiny samples.
const minReadsForMissRatio = 100

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

// More than half of all reads missing usually means keys expire before
// callers get to them.
func MissRatioRule(snapshot map[string]int64) RuleResult {
	reads := snapshot[string(metrics.StoreReadsTotal)]
	misses := snapshot[string(metrics.StoreMissesTotal)]

	if reads >= minReadsForMissRatio && misses*2 > reads {
		return RuleResult{
			Triggered:      true,
			Signal:         "More than half of reads miss",
			Recommendation: "Check TTLs against caller access patterns",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Expired keys are being found by reads while the sweeper never ran:
// keys that are never read again stay in memory.
func LazyOnlyExpiryRule(snapshot map[string]int64) RuleResult {
	expired := snapshot[string(metrics.StoreExpiredTotal)]
	sweeps := snapshot[string(metrics.SweepRunsTotal)]

	if expired > 0 && sweeps == 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Expired keys are reclaimed only on read",
			Recommendation: "Enable the background sweeper to bound memory held by expired keys",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// A negative key gauge means removal and insertion accounting diverged.
func KeyGaugeRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.StoreKeys)] < 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Key gauge is negative",
			Recommendation: "Inspect store removal paths for double accounting",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}
