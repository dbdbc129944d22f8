package models

import "time"

// UsageLedger tracks minutes used per calendar date.
type UsageLedger map[string]int

// MinutesOn returns the minutes charged to the day of t.
func (l UsageLedger) MinutesOn(t time.Time) int {
	return l[DateKey(t)]
}

// Add charges minutes to the day of t. Non-positive amounts are ignored.
func (l UsageLedger) Add(t time.Time, minutes int) {
	if minutes <= 0 {
		return
	}
	l[DateKey(t)] += minutes
}

// ResetDay clears the entry for the day of t.
func (l UsageLedger) ResetDay(t time.Time) {
	delete(l, DateKey(t))
}
