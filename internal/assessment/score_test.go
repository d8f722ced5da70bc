package assessment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(n int, a Answer) []Answer {
	out := make([]Answer, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestScore_AllMidpointIsFifty(t *testing.T) {
	for _, in := range Instruments() {
		t.Run(in.Code, func(t *testing.T) {
			r, err := in.Score(fill(len(in.Items), 3))
			require.NoError(t, err)
			require.Len(t, r.Subscales, len(in.Subscales))
			for _, s := range r.Subscales {
				assert.InDelta(t, 50.0, s.Normalized, 1e-9, s.SubscaleID)
			}
			assert.InDelta(t, 50.0, r.Overall, 1e-9)
			assert.Len(t, r.PerItem, len(in.Items))
		})
	}
}

func TestScore_Extremes(t *testing.T) {
	items := []Item{
		{ID: "a1", SubscaleID: "a"},
		{ID: "a2", SubscaleID: "a"},
		{ID: "b1", SubscaleID: "b"},
	}
	r, err := Score([]Answer{5, 5, 1}, items)
	require.NoError(t, err)

	a, ok := r.Subscale("a")
	require.True(t, ok)
	assert.Equal(t, 100.0, a.Normalized)
	assert.Equal(t, 10, a.RawSum)
	assert.Equal(t, 2, a.Items)

	b, ok := r.Subscale("b")
	require.True(t, ok)
	assert.Equal(t, 0.0, b.Normalized)
	assert.Equal(t, 50.0, r.Overall)
}

func TestScore_ReversedItemMirrorsNormal(t *testing.T) {
	normal := []Item{{ID: "x", SubscaleID: "s"}}
	reversed := []Item{{ID: "x", SubscaleID: "s", Reversed: true}}

	rn, err := Score([]Answer{5}, normal)
	require.NoError(t, err)
	rr, err := Score([]Answer{1}, reversed)
	require.NoError(t, err)

	assert.Equal(t, rn.Subscales, rr.Subscales)
	assert.Equal(t, 5, rr.PerItem[0].Raw)
	assert.Equal(t, 100.0, rr.PerItem[0].Normalized)
}

func TestScore_SelfEsteemReversedItems(t *testing.T) {
	in, err := Lookup(CodeSelfEsteem)
	require.NoError(t, err)

	// Agreeing with every positive statement and disagreeing with every
	// negative one is the top score.
	answers := make([]Answer, len(in.Items))
	for i, item := range in.Items {
		if item.Reversed {
			answers[i] = 1
		} else {
			answers[i] = 5
		}
	}
	r, err := in.Score(answers)
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.Overall)
}

func TestScore_UnansweredSkipped(t *testing.T) {
	items := []Item{
		{ID: "a1", SubscaleID: "a"},
		{ID: "a2", SubscaleID: "a"},
		{ID: "b1", SubscaleID: "b"},
	}
	r, err := Score([]Answer{4, Unanswered, Unanswered}, items)
	require.NoError(t, err)
	require.Len(t, r.Subscales, 1)
	assert.Equal(t, 1, r.Subscales[0].Items)
	assert.Equal(t, 75.0, r.Subscales[0].Normalized)
	assert.Equal(t, 75.0, r.Overall)
	assert.Len(t, r.PerItem, 1)
}

func TestScore_NothingAnswered(t *testing.T) {
	r, err := Score(fill(2, Unanswered), []Item{{ID: "a", SubscaleID: "a"}, {ID: "b", SubscaleID: "b"}})
	require.NoError(t, err)
	assert.Empty(t, r.Subscales)
	assert.Equal(t, 0.0, r.Overall)
}

func TestScore_Errors(t *testing.T) {
	items := []Item{{ID: "a", SubscaleID: "s"}, {ID: "b", SubscaleID: "s"}}

	_, err := Score([]Answer{3}, items)
	assert.True(t, errors.Is(err, ErrMisalignedInput))

	_, err = Score([]Answer{3, 6}, items)
	assert.ErrorIs(t, err, ErrAnswerOutOfRange)

	_, err = Score([]Answer{-1, 3}, items)
	assert.ErrorIs(t, err, ErrAnswerOutOfRange)
}

func TestScore_SubscalesSortedByTitle(t *testing.T) {
	in, err := Lookup(CodePOMS)
	require.NoError(t, err)
	r, err := in.Score(fill(len(in.Items), 4))
	require.NoError(t, err)

	var titles []string
	for _, s := range r.Subscales {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Calm", "Fatigue", "Tension", "Vigor"}, titles)
}

func TestScore_TitleFallsBackToCapitalizedID(t *testing.T) {
	r, err := Score([]Answer{2}, []Item{{ID: "q", SubscaleID: "focus"}})
	require.NoError(t, err)
	assert.Equal(t, "Focus", r.Subscales[0].Title)
	assert.Equal(t, "q", r.PerItem[0].ItemCode)
}

func TestInstrument_ItemCodes(t *testing.T) {
	in, err := Lookup("idep")
	require.NoError(t, err)
	r, err := in.Score(fill(len(in.Items), 2))
	require.NoError(t, err)
	assert.Equal(t, "IDEP_01", r.PerItem[0].ItemCode)
	assert.Equal(t, "IDEP_28", r.PerItem[27].ItemCode)
}

func TestCatalog_Shape(t *testing.T) {
	want := map[string]int{CodePOMS: 20, CodeIDEP: 28, CodeSelfEsteem: 10}
	for _, in := range Instruments() {
		assert.Len(t, in.Items, want[in.Code], in.Code)
		subscales := make(map[string]bool)
		for _, s := range in.Subscales {
			subscales[s.ID] = true
		}
		for _, item := range in.Items {
			assert.True(t, subscales[item.SubscaleID], "%s: item %s has unknown subscale %s", in.Code, item.ID, item.SubscaleID)
		}
	}

	_, err := Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownInstrument)
}

func TestCatalog_CallersGetCopies(t *testing.T) {
	in, err := Lookup(CodePOMS)
	require.NoError(t, err)
	in.Title = "changed"
	in.Items[0].Prompt = "changed"
	in.Subscales[0].Title = "changed"
	in.RetakeInterval = Interval{}

	again, err := Lookup(CodePOMS)
	require.NoError(t, err)
	assert.Equal(t, "POMS", again.Title)
	assert.NotEqual(t, "changed", again.Items[0].Prompt)
	assert.NotEqual(t, "changed", again.Subscales[0].Title)
	assert.Equal(t, DefaultRetakeInterval, again.RetakeInterval)
}

func TestNewSummary_CopiesSubscales(t *testing.T) {
	r, err := Score([]Answer{5}, []Item{{ID: "a", SubscaleID: "a"}})
	require.NoError(t, err)
	s := NewSummary(CodePOMS, TierFree, today, false, r)
	r.Subscales[0].Normalized = -1
	assert.Equal(t, 100.0, s.Subscales[0].Normalized)
	assert.Equal(t, 100.0, s.Overall)
}
