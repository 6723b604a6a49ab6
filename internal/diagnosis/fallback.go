package diagnosis

// FallbackClassifier returns the author's default code or the generic
// incorrect_<type> code. Choice questions are left to ChoiceClassifier, which
// may resolve an index without finding a code.
type FallbackClassifier struct{}

func (c *FallbackClassifier) Name() string { return "fallback" }

func (c *FallbackClassifier) Classify(input *ClassifyInput) string {
	if input.Question.Type.IsChoice() {
		return ""
	}
	if code := input.Question.Config.DefaultMisconception; code != "" {
		return code
	}
	return IncorrectCode(input.Question.Type)
}
