package prakriti

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyTotals is returned when Classify is called with an all-zero score
// triple. Callers are expected to classify only after ten answers have been
// recorded, so hitting this indicates a caller bug rather than bad user input.
var ErrEmptyTotals = errors.New("prakriti: classify called with zero totals")

// dualTypeGap is the maximum rounded-percentage gap between the top two
// doshas for the result to count as a dual constitution.
const dualTypeGap = 10

// ComputeTotals sums a set of per-response score triples. The input may hold
// anywhere from zero to ten triples; partial sets are used for progress
// reporting, the full set for final classification.
func ComputeTotals(triples []Scores) Scores {
	var totals Scores
	for _, t := range triples {
		totals = totals.Add(t)
	}
	return totals
}

// Classify derives a constitutional classification from final totals.
//
// Percentages are rounded half-up independently per dosha, so the three
// values may sum to 99, 100, or 101; no remainder reallocation is done.
// Doshas are ranked by raw score, with ties resolved by the fixed priority
// Vata > Pitta > Kapha. The result is dual-type when the rounded percentages
// of the top two doshas are within 10 points of each other.
func Classify(totals Scores) (Classification, error) {
	total := totals.Total()
	if total == 0 {
		return Classification{}, ErrEmptyTotals
	}

	percent := Scores{
		Vata:  roundPercent(totals.Vata, total),
		Pitta: roundPercent(totals.Pitta, total),
		Kapha: roundPercent(totals.Kapha, total),
	}

	ranked := rank(totals)

	c := Classification{
		Primary: ranked[0],
		Percent: percent,
	}

	gap := percent.Of(ranked[0]) - percent.Of(ranked[1])
	if gap < 0 {
		gap = -gap
	}
	if gap <= dualTypeGap {
		c.Secondary = ranked[1]
		c.DualType = true
	}

	return c, nil
}

// rank orders the three doshas by raw score, descending. The starting order
// encodes the tie-break priority; the stable sort preserves it for equal
// scores.
func rank(totals Scores) [3]Dosha {
	order := [3]Dosha{DoshaVata, DoshaPitta, DoshaKapha}
	sort.SliceStable(order[:], func(i, j int) bool {
		return totals.Of(order[i]) > totals.Of(order[j])
	})
	return order
}

func roundPercent(score, total int) int {
	return int(math.Round(float64(score) / float64(total) * 100))
}
