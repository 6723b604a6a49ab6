package diagnosis

import "github.com/abhisek/skillcoach/internal/answer"

// ChoiceClassifier maps the selected options of a choice question to the
// codes the author attached to them.
type ChoiceClassifier struct{}

func (c *ChoiceClassifier) Name() string { return "choice" }

func (c *ChoiceClassifier) Classify(input *ClassifyInput) string {
	q := input.Question
	if !q.Type.IsChoice() {
		return ""
	}

	indices, resolved := answer.SelectedIndices(input.Answer)
	for _, idx := range indices {
		if code := optionCode(input, idx); code != "" {
			return code
		}
	}

	if q.Config.DefaultMisconception != "" {
		return q.Config.DefaultMisconception
	}
	if !resolved || len(indices) == 0 {
		return CodeUnanswered
	}
	return ""
}

// optionCode looks an option up in the authored option map, then on the
// option itself, then under its flat option_<n>_misconception key.
func optionCode(input *ClassifyInput, idx int) string {
	q := input.Question
	if code := q.Config.OptionMisconceptions[idx]; code != "" {
		return code
	}
	if idx >= 0 && idx < len(q.Options) && q.Options[idx].Misconception != "" {
		return q.Options[idx].Misconception
	}
	return q.Config.FlatOptionCodes[idx]
}
