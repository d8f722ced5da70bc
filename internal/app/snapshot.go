package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/assessment"
	"github.com/blackwell-systems/mindcoach/internal/coach"
)

// moodMaxAge is how old a mood sample may be and still count as current.
const moodMaxAge = 24 * time.Hour

// goalHorizon is how far ahead recommend looks for an upcoming competition.
const goalHorizon = 60 * 24 * time.Hour

// snapshot is the coach context for one request plus the data loaded
// alongside it.
type snapshot struct {
	coach   coach.Context
	bounds  agenda.DayBounds
	pending []*assessment.Instrument
}

// loadSnapshot builds a coach context for s.now. The four store reads are
// independent and run concurrently. When clipToNow is set, free time before
// the current instant is not offered.
func (s *session) loadSnapshot(ctx context.Context, clipToNow bool) (*snapshot, error) {
	bounds := s.bounds(s.now)

	var (
		events  []agenda.CalendarEvent
		energy  *int
		stress  *int
		goal    *coach.Goal
		pending []*assessment.Instrument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.eventsOn(gctx, s.now, bounds)
		return err
	})
	g.Go(func() error {
		m, err := s.db.LatestMood(gctx, s.now)
		if err != nil || m == nil {
			return err
		}
		if s.now.Sub(m.LoggedAt) > moodMaxAge {
			slog.Debug("ignoring stale mood", "logged_at", m.LoggedAt)
			return nil
		}
		energy, stress = m.Energy, m.Stress
		return nil
	})
	g.Go(func() error {
		var err error
		goal, err = s.upcomingGoal(gctx)
		return err
	})
	g.Go(func() error {
		latest, err := s.db.LatestTaken(gctx)
		if err != nil {
			return err
		}
		tier, err := assessment.ParseTier(s.cfg.Assessments.Tier)
		if err != nil {
			return err
		}
		pending = assessment.PendingWithin(latest, tier, s.now, s.cfg.RetakeInterval())
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slotBounds := bounds
	if clipToNow && s.now.After(slotBounds.StartOfDay) {
		slotBounds.StartOfDay = s.now
		if slotBounds.StartOfDay.After(slotBounds.EndOfDay) {
			slotBounds.StartOfDay = slotBounds.EndOfDay
		}
	}
	free := agenda.FreeSlots(events, slotBounds, s.cfg.FreeSlots.MinMinutes)

	snap := &snapshot{
		bounds:  slotBounds,
		pending: pending,
		coach: coach.Context{
			Now:          s.now,
			Location:     s.loc,
			TodayEvents:  events,
			FreeWindows:  free,
			Energy:       energy,
			Stress:       stress,
			UpcomingGoal: goal,
		},
	}
	if prefs, err := s.cfg.SleepPrefs(); err == nil {
		snap.coach.Sleep = &prefs
	}

	slog.Debug("snapshot loaded",
		"events", len(events), "free_windows", len(free),
		"energy", energy != nil, "goal", goal != nil, "pending", len(pending))
	return snap, nil
}

// upcomingGoal returns the next competition after today within goalHorizon.
func (s *session) upcomingGoal(ctx context.Context) (*coach.Goal, error) {
	from := agenda.StartOfDay(s.now, s.loc).AddDate(0, 0, 1)
	to := from.Add(goalHorizon)
	stored, err := s.db.ListEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	all, err := s.expand(stored)
	if err != nil {
		return nil, err
	}

	var next *agenda.CalendarEvent
	for i := range all {
		ev := &all[i]
		if ev.Kind != agenda.KindCompetition || ev.Start.Before(from) || !ev.Start.Before(to) {
			continue
		}
		if next == nil || ev.Start.Before(next.Start) {
			next = ev
		}
	}
	if next == nil {
		return nil, nil
	}
	return &coach.Goal{Title: next.Title, Date: next.Start}, nil
}
