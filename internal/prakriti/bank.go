package prakriti

// QuestionCount is the fixed size of the assessment questionnaire.
const QuestionCount = 10

// OptionsPerQuestion is the fixed number of answer options per question.
const OptionsPerQuestion = 3

// Option is one answer choice. Each option carries the score triple that is
// copied onto the patient's response at submission time. The catalog below
// allocates 3 points to a single dosha per option, but nothing in the scoring
// code relies on that convention.
type Option struct {
	Text   string `json:"text"`
	Scores Scores `json:"scores"`
}

// Question is one entry of the immutable questionnaire catalog.
type Question struct {
	Number   int                        `json:"number"`
	Category string                     `json:"category"`
	Prompt   string                     `json:"prompt"`
	Options  [OptionsPerQuestion]Option `json:"options"`
}

// OptionAt returns the option at the given index, if it exists.
func (q Question) OptionAt(idx int) (Option, bool) {
	if idx < 0 || idx >= OptionsPerQuestion {
		return Option{}, false
	}
	return q.Options[idx], true
}

var (
	vata  = Scores{Vata: 3}
	pitta = Scores{Pitta: 3}
	kapha = Scores{Kapha: 3}
)

// catalog is the fixed ten-question prakriti questionnaire. Question numbers
// are 1-based and contiguous; each question owns one of the ten categories.
var catalog = [QuestionCount]Question{
	{
		Number:   1,
		Category: "body-frame",
		Prompt:   "How would you describe your natural body frame?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Thin and light, with prominent joints", Scores: vata},
			{Text: "Medium build with good muscle tone", Scores: pitta},
			{Text: "Broad and sturdy, gains weight easily", Scores: kapha},
		},
	},
	{
		Number:   2,
		Category: "skin",
		Prompt:   "Which best describes your skin?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Dry, rough, and cool to the touch", Scores: vata},
			{Text: "Warm, reddish, prone to irritation", Scores: pitta},
			{Text: "Thick, smooth, and slightly oily", Scores: kapha},
		},
	},
	{
		Number:   3,
		Category: "hair",
		Prompt:   "Which best describes your hair?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Dry, frizzy, and prone to split ends", Scores: vata},
			{Text: "Fine and straight, with early greying or thinning", Scores: pitta},
			{Text: "Thick, wavy, and lustrous", Scores: kapha},
		},
	},
	{
		Number:   4,
		Category: "appetite",
		Prompt:   "How would you describe your appetite?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Irregular — I sometimes forget to eat", Scores: vata},
			{Text: "Strong — I get irritable when meals are late", Scores: pitta},
			{Text: "Mild but steady — I can skip a meal comfortably", Scores: kapha},
		},
	},
	{
		Number:   5,
		Category: "digestion",
		Prompt:   "How does your digestion usually behave?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Variable, prone to gas and bloating", Scores: vata},
			{Text: "Fast and intense, prone to acidity", Scores: pitta},
			{Text: "Slow, with heaviness after meals", Scores: kapha},
		},
	},
	{
		Number:   6,
		Category: "sleep",
		Prompt:   "How do you usually sleep?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Light and easily disturbed", Scores: vata},
			{Text: "Moderate in length but sound", Scores: pitta},
			{Text: "Deep and long — hard to wake up", Scores: kapha},
		},
	},
	{
		Number:   7,
		Category: "energy",
		Prompt:   "What is your typical energy pattern?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Comes in bursts and fades quickly", Scores: vata},
			{Text: "Focused and driven through the day", Scores: pitta},
			{Text: "Steady and enduring, but slow to start", Scores: kapha},
		},
	},
	{
		Number:   8,
		Category: "temperament",
		Prompt:   "Which best describes your temperament?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Enthusiastic, with quickly changing moods", Scores: vata},
			{Text: "Intense and competitive, sharp when stressed", Scores: pitta},
			{Text: "Calm and patient, slow to anger", Scores: kapha},
		},
	},
	{
		Number:   9,
		Category: "memory",
		Prompt:   "How does your memory work?",
		Options: [OptionsPerQuestion]Option{
			{Text: "I learn fast and forget fast", Scores: vata},
			{Text: "Sharp and precise", Scores: pitta},
			{Text: "Slow to learn but I rarely forget", Scores: kapha},
		},
	},
	{
		Number:   10,
		Category: "climate-preference",
		Prompt:   "Which weather do you find hardest to tolerate?",
		Options: [OptionsPerQuestion]Option{
			{Text: "Cold, dry, and windy weather", Scores: vata},
			{Text: "Hot weather and strong sun", Scores: pitta},
			{Text: "Damp, cool, and cloudy weather", Scores: kapha},
		},
	},
}

// Questions returns a copy of the full catalog in question-number order.
func Questions() []Question {
	out := make([]Question, QuestionCount)
	copy(out, catalog[:])
	return out
}

// QuestionByNumber looks up a question by its 1-based number.
func QuestionByNumber(n int) (Question, bool) {
	if n < 1 || n > QuestionCount {
		return Question{}, false
	}
	return catalog[n-1], true
}
