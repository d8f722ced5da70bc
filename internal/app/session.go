package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/config"
	"github.com/blackwell-systems/mindcoach/internal/output"
	"github.com/blackwell-systems/mindcoach/internal/store"
)

// nowFunc is the clock for every command. Core packages never read it.
var nowFunc = time.Now

// session bundles what a command needs: config, the open store, and the
// configured location and current instant.
type session struct {
	cfg *config.Config
	db  *store.DB
	loc *time.Location
	now time.Time
}

// openSession loads config, applies output settings, and opens the store.
func openSession() (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	output.SetNoColor(output.ShouldDisableColor(cfg.Output.Color, flagNoColor))
	output.SetWidth(cfg.Output.Width)

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving timezone: %w", err)
	}

	db, err := store.Open(cfg.Database())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	slog.Debug("session opened", "db", cfg.Database(), "timezone", loc.String())

	return &session{cfg: cfg, db: db, loc: loc, now: nowFunc().In(loc)}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func (s *session) weekStart() time.Weekday {
	wd, err := s.cfg.Weekday()
	if err != nil {
		return time.Monday
	}
	return wd
}

// bounds returns the configured planning day for the local date of day.
func (s *session) bounds(day time.Time) agenda.DayBounds {
	start, end, err := s.cfg.DayClocks()
	if err != nil {
		return agenda.FullDay(day, s.loc)
	}
	return agenda.DayBoundsFor(day, s.loc, start, end)
}

// eventsOn loads the events of the local date of day, expanding recurring
// masters, restricted to bounds.
func (s *session) eventsOn(ctx context.Context, day time.Time, bounds agenda.DayBounds) ([]agenda.CalendarEvent, error) {
	full := agenda.FullDay(day, s.loc)
	stored, err := s.db.ListEvents(ctx, full.StartOfDay, full.EndOfDay)
	if err != nil {
		return nil, err
	}
	all, err := s.expand(stored)
	if err != nil {
		return nil, err
	}
	events := agenda.EventsOn(all, bounds)
	slog.Debug("events loaded", "day", full.StartOfDay.Format(time.DateOnly), "stored", len(stored), "on_day", len(events))
	return events, nil
}

// expand moves stored events into the configured zone, so weekday rules
// match local dates, and appends recurring occurrences.
func (s *session) expand(stored []agenda.CalendarEvent) ([]agenda.CalendarEvent, error) {
	local := make([]agenda.CalendarEvent, len(stored))
	for i, ev := range stored {
		ev.Start = ev.Start.In(s.loc)
		ev.End = ev.End.In(s.loc)
		if ev.Recurrence != nil && ev.Recurrence.Until != nil {
			rec := *ev.Recurrence
			until := rec.Until.In(s.loc)
			rec.Until = &until
			ev.Recurrence = &rec
		}
		local[i] = ev
	}
	return agenda.ExpandAll(local, s.cfg.Recurrence.HorizonMonths, s.weekStart())
}

// writeJSON encodes v indented, the way every --json output is written.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}
