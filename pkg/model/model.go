package model

// AnalysisRequest is the body accepted by the gateway. ImageBase64 holds a data URL
// such as "data:image/png;base64,iVBOR...".
type AnalysisRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// Explanation is one concept found in a flowchart and its plain-language meaning.
type Explanation struct {
	Term        string `json:"term" yaml:"term"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// AnalysisResponse is either a list of explanations or an error message, never both.
type AnalysisResponse struct {
	Explanations []Explanation `json:"explanations,omitempty"`
	Error        string        `json:"error,omitempty"`
}
