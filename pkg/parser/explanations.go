package parser

import (
	"encoding/json"
	"regexp"

	"github.com/helmcode/flowchart-explainer/pkg/model"
)

// FallbackTerm labels the single item produced when the reply is not a JSON list.
const FallbackTerm = "Flowchart Analysis"

var (
	jsonFence = regexp.MustCompile("(?s)```json\n?(.*?)\n?```")
	anyFence  = regexp.MustCompile("(?s)```\n?(.*?)\n?```")
)

// Result is the outcome of parsing a model reply. Fallback is set when the reply
// could not be decoded and Explanations holds the raw text as a single item.
type Result struct {
	Explanations []model.Explanation
	Fallback     bool
}

// Parse extracts the explanation list from a model reply. It never fails: text that
// does not decode as a JSON array of explanations is wrapped in one item.
func Parse(raw string) Result {
	var explanations []model.Explanation
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &explanations); err != nil {
		return Result{
			Explanations: []model.Explanation{{Term: FallbackTerm, Explanation: raw}},
			Fallback:     true,
		}
	}
	if explanations == nil {
		explanations = []model.Explanation{}
	}
	return Result{Explanations: explanations}
}

// ExtractJSON returns the interior of the first ```json fence, or of the first bare
// ``` fence, or the text unchanged when neither is present.
func ExtractJSON(text string) string {
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := anyFence.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}
