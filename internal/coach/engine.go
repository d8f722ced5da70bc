package coach

import "github.com/blackwell-systems/mindcoach/internal/agenda"

// Engine evaluates an ordered rule chain. The first rule that applies wins;
// when none applies the fallback is returned.
type Engine struct {
	rules    []Rule
	fallback func(ctx *Context) Recommendation
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	journalSlot SlotPolicy
}

// WithJournalSlot sets the slot policy for the journaling rule.
func WithJournalSlot(p SlotPolicy) Option {
	return func(o *engineOptions) { o.journalSlot = p }
}

// NewEngine creates an engine with the built-in rules registered in
// priority order.
func NewEngine(opts ...Option) *Engine {
	o := engineOptions{journalSlot: SlotFirst}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		rules: []Rule{
			PreCompetition,
			LowEnergy,
			Journaling(o.journalSlot),
			MicroReset,
		},
		fallback: Fallback,
	}
}

// Recommend returns exactly one recommendation for the given free slots.
// It never fails.
func (e *Engine) Recommend(ctx *Context, slots []agenda.TimeWindow) Recommendation {
	for _, rule := range e.rules {
		if rec, ok := rule(ctx, slots); ok {
			return rec
		}
	}
	return e.fallback(ctx)
}
