package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/flowchart-explainer/pkg/model"
)

// DisplayResults formats and writes the explanations
func DisplayResults(w io.Writer, explanations []model.Explanation, format string) error {
	switch format {
	case "json":
		return displayJSON(w, explanations)
	case "yaml":
		return displayYAML(w, explanations)
	case "human":
		fallthrough
	default:
		displayHuman(w, explanations)
	}
	return nil
}

func displayJSON(w io.Writer, explanations []model.Explanation) error {
	output, err := json.MarshalIndent(map[string][]model.Explanation{"explanations": nonNil(explanations)}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, explanations []model.Explanation) error {
	output, err := yaml.Marshal(map[string][]model.Explanation{"explanations": nonNil(explanations)})
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, explanations []model.Explanation) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)
	if len(explanations) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No concepts found in this flowchart.")
		return
	}

	cyan.Fprintf(w, "📘 %d CONCEPTS EXPLAINED:\n\n", len(explanations))
	for i, e := range explanations {
		white.Fprintf(w, "   %d. %s\n", i+1, e.Term)
		fmt.Fprintln(w, wrapText(e.Explanation, 80, "      "))
		fmt.Fprintln(w)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output, --speak to listen"))
}

func nonNil(explanations []model.Explanation) []model.Explanation {
	if explanations == nil {
		return []model.Explanation{}
	}
	return explanations
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
