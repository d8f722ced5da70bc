package assessment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMisalignedInput is returned when answers and items differ in length.
	ErrMisalignedInput = errors.New("misaligned input")

	// ErrAnswerOutOfRange is returned for an answer outside [1, 5].
	ErrAnswerOutOfRange = errors.New("answer out of range")
)

// Score converts ordered answers into per-subscale and overall scores.
// Reversed items score 6 - answer. Unanswered items contribute nothing.
// Each subscale is normalized to 0-100 and the overall score is the plain
// mean of subscale scores. Item codes are the item IDs and subscale titles
// fall back to the capitalized subscale ID.
func Score(answers []Answer, items []Item) (*Result, error) {
	return score(answers, items, nil, func(i int, item Item) string { return item.ID })
}

// scoredValue applies item reversal.
func scoredValue(a Answer, item Item) int {
	if item.Reversed {
		return int(MaxAnswer+MinAnswer) - int(a)
	}
	return int(a)
}

func score(answers []Answer, items []Item, titles map[string]string, itemCode func(int, Item) string) (*Result, error) {
	if len(answers) != len(items) {
		return nil, fmt.Errorf("%w: %d answers for %d items", ErrMisalignedInput, len(answers), len(items))
	}

	type acc struct {
		id    string
		sum   int
		count int
	}
	var order []*acc
	byID := make(map[string]*acc)

	result := &Result{}
	for i, a := range answers {
		if a == Unanswered {
			continue
		}
		if a < MinAnswer || a > MaxAnswer {
			return nil, fmt.Errorf("%w: item %d (%s) answered %d", ErrAnswerOutOfRange, i+1, items[i].ID, a)
		}
		item := items[i]
		v := scoredValue(a, item)

		s, ok := byID[item.SubscaleID]
		if !ok {
			s = &acc{id: item.SubscaleID}
			byID[item.SubscaleID] = s
			order = append(order, s)
		}
		s.sum += v
		s.count++

		result.PerItem = append(result.PerItem, ItemScore{
			SubscaleID: item.SubscaleID,
			ItemCode:   itemCode(i, item),
			Raw:        v,
			Normalized: float64(v-int(MinAnswer)) / float64(MaxAnswer-MinAnswer) * 100,
		})
	}

	var total float64
	for _, s := range order {
		minPossible := s.count * int(MinAnswer)
		maxPossible := s.count * int(MaxAnswer)
		normalized := float64(s.sum-minPossible) / float64(max(maxPossible-minPossible, 1)) * 100

		title := titles[s.id]
		if title == "" {
			title = capitalize(s.id)
		}
		result.Subscales = append(result.Subscales, SubscaleResult{
			SubscaleID: s.id,
			Title:      title,
			Normalized: normalized,
			RawSum:     s.sum,
			Items:      s.count,
		})
		total += normalized
	}
	if len(result.Subscales) > 0 {
		result.Overall = total / float64(len(result.Subscales))
	}

	sort.SliceStable(result.Subscales, func(i, j int) bool {
		a, b := result.Subscales[i], result.Subscales[j]
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.SubscaleID < b.SubscaleID
	})
	return result, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
