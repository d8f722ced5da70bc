package assessment

import (
	"fmt"
	"time"
)

// Status is the retake status of an instrument. It is one of NeverTaken,
// Available, or LockedUntil.
type Status interface {
	// Actionable reports whether the instrument can be taken now.
	Actionable() bool

	// String names the status for display and logs.
	String() string

	isStatus()
}

// NeverTaken means the instrument has no recorded attempt.
type NeverTaken struct{}

// Available means the instrument may be taken now. LastTaken is nil when
// the status was derived without a previous attempt.
type Available struct {
	LastTaken *time.Time
}

// LockedUntil means a free-tier retake is blocked until Until.
type LockedUntil struct {
	Until time.Time
}

func (NeverTaken) Actionable() bool  { return true }
func (Available) Actionable() bool   { return true }
func (LockedUntil) Actionable() bool { return false }

func (NeverTaken) String() string { return "never_taken" }
func (Available) String() string  { return "available" }
func (l LockedUntil) String() string {
	return fmt.Sprintf("locked_until %s", l.Until.Format(time.RFC3339))
}

func (NeverTaken) isStatus()  {}
func (Available) isStatus()   {}
func (LockedUntil) isStatus() {}

// Interval is a calendar interval applied with AddDate, so week arithmetic
// follows local dates across DST changes.
type Interval struct {
	Weeks int `json:"weeks"`
	Days  int `json:"days"`
}

// DefaultRetakeInterval is the free-tier cooldown for every built-in
// instrument.
var DefaultRetakeInterval = Interval{Weeks: 8}

// After returns t advanced by the interval.
func (i Interval) After(t time.Time) time.Time {
	return t.AddDate(0, 0, i.Weeks*7+i.Days)
}

// Eligibility decides whether an instrument can be taken at reference.
// Premium users are never locked; free users wait interval after their last
// attempt.
func Eligibility(lastTaken *time.Time, tier Tier, reference time.Time, interval Interval) Status {
	if lastTaken == nil {
		return NeverTaken{}
	}
	last := *lastTaken
	if tier == TierPremium {
		return Available{LastTaken: &last}
	}
	next := interval.After(last)
	if reference.Before(next) {
		return LockedUntil{Until: next}
	}
	return Available{LastTaken: &last}
}

// Status applies Eligibility with the instrument's own retake interval.
func (in *Instrument) Status(lastTaken *time.Time, tier Tier, reference time.Time) Status {
	return Eligibility(lastTaken, tier, reference, in.RetakeInterval)
}

// StatusWithin applies Eligibility with interval, or the instrument's own
// retake interval when interval is nil. A zero interval means no cooldown.
func (in *Instrument) StatusWithin(lastTaken *time.Time, tier Tier, reference time.Time, interval *Interval) Status {
	if interval == nil {
		return in.Status(lastTaken, tier, reference)
	}
	return Eligibility(lastTaken, tier, reference, *interval)
}

// PendingInstruments returns, in catalog order, the instruments that can be
// taken at reference given the last attempt per instrument code.
func PendingInstruments(latest map[string]time.Time, tier Tier, reference time.Time) []*Instrument {
	return PendingWithin(latest, tier, reference, nil)
}

// PendingWithin is PendingInstruments with a cooldown override. A nil
// interval keeps each instrument's own retake interval.
func PendingWithin(latest map[string]time.Time, tier Tier, reference time.Time, interval *Interval) []*Instrument {
	var pending []*Instrument
	for _, in := range Instruments() {
		var last *time.Time
		if t, ok := latest[in.Code]; ok {
			last = &t
		}
		if in.StatusWithin(last, tier, reference, interval).Actionable() {
			pending = append(pending, in)
		}
	}
	return pending
}

// ParseTier validates a tier name.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree, TierPremium:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown tier %q (want free or premium)", s)
	}
}
