package prompts

// System instructs the model to explain every element of the flowchart and to answer
// with a JSON array of {"term", "explanation"} objects.
const System = `You are an expert at analyzing flowcharts and diagrams. Analyze the flowchart image and identify every term, concept, and relationship. For each element, provide a clear, simple explanation suitable for learning. Structure your response as a JSON array of objects with "term" and "explanation" fields. Be thorough and explain all visible concepts.`

// Instruction accompanies the image in the user message.
const Instruction = `Please analyze this flowchart and explain every term and concept in simple language. Include all visible text, relationships, and key ideas.`

// Prompt is the pair of texts sent alongside an image.
type Prompt struct {
	System      string
	Instruction string
}

func Flowchart() Prompt {
	return Prompt{System: System, Instruction: Instruction}
}
