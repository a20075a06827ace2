package prakriti

// Dosha is one of the three ayurvedic constitutional categories.
type Dosha string

const (
	DoshaVata  Dosha = "vata"
	DoshaPitta Dosha = "pitta"
	DoshaKapha Dosha = "kapha"
)

// Scores is a per-dosha integer triple. It is used both for single-option
// allocations and for running assessment totals.
type Scores struct {
	Vata  int `json:"vata" bson:"vata"`
	Pitta int `json:"pitta" bson:"pitta"`
	Kapha int `json:"kapha" bson:"kapha"`
}

// Add returns the elementwise sum of two score triples.
func (s Scores) Add(o Scores) Scores {
	return Scores{
		Vata:  s.Vata + o.Vata,
		Pitta: s.Pitta + o.Pitta,
		Kapha: s.Kapha + o.Kapha,
	}
}

// Total returns the sum across all three doshas.
func (s Scores) Total() int {
	return s.Vata + s.Pitta + s.Kapha
}

// Of returns the score for a single dosha.
func (s Scores) Of(d Dosha) int {
	switch d {
	case DoshaVata:
		return s.Vata
	case DoshaPitta:
		return s.Pitta
	case DoshaKapha:
		return s.Kapha
	}
	return 0
}

// Classification is the outcome of a completed assessment: the dominant
// dosha, an optional close-second, and the rounded percentage breakdown.
type Classification struct {
	Primary   Dosha  `json:"primary" bson:"primary"`
	Secondary Dosha  `json:"secondary,omitempty" bson:"secondary,omitempty"`
	DualType  bool   `json:"dualType" bson:"dualType"`
	Percent   Scores `json:"percent" bson:"percent"`
}
