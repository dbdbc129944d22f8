package service

import (
	"time"

	"littlestar/internal/models"
)

// DenialReason says why entry into child mode was denied.
type DenialReason string

const (
	DenialQuietHours    DenialReason = "quiet_hours"
	DenialQuotaExceeded DenialReason = "quota_exceeded"
)

// GateDecision is the outcome of a usage-gate check.
type GateDecision struct {
	Allowed bool
	Reason  DenialReason
}

// UsageGate decides whether an interaction may proceed at all, from the
// current wall-clock time and the usage ledger. Pure functions of their
// inputs; the clock is always passed in.
type UsageGate struct{}

// NewUsageGate creates a new usage gate
func NewUsageGate() *UsageGate {
	return &UsageGate{}
}

// Check runs the quiet-hours check and then the quota check. Quiet hours
// take precedence so a child never sees a quota message during quiet time.
func (g *UsageGate) Check(now time.Time, ledger models.UsageLedger, settings models.Settings) GateDecision {
	if g.inQuietHours(now, settings) {
		return GateDecision{Allowed: false, Reason: DenialQuietHours}
	}
	if ledger.MinutesOn(now) >= settings.DailyLimitMinutes {
		return GateDecision{Allowed: false, Reason: DenialQuotaExceeded}
	}
	return GateDecision{Allowed: true}
}

// inQuietHours reports whether now falls inside the configured window.
// When start <= end the window is same-day inclusive; when start > end it
// wraps overnight (e.g. 21:00-07:00).
func (g *UsageGate) inQuietHours(now time.Time, settings models.Settings) bool {
	start, err := time.Parse("15:04", settings.QuietHoursStart)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", settings.QuietHoursEnd)
	if err != nil {
		return false
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()

	if startMinutes <= endMinutes {
		return nowMinutes >= startMinutes && nowMinutes <= endMinutes
	}
	return nowMinutes >= startMinutes || nowMinutes <= endMinutes
}
